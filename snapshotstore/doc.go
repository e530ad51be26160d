// Package snapshotstore provides durable storage for the state a host store
// holds between dispatches, without giving the reducer core an I/O boundary
// of its own.
//
// One Snapshot holds the latest state of one duck namespace as JSON, with a
// monotonically increasing version for optimistic concurrency: a save with a
// version lower than or equal to the stored one loses and is rejected.
//
// Key types:
//   - Snapshot: one namespace's serialized state with version metadata
//   - StateToJSON / StateFromJSON: the codec between duck.State and JSON
//
// Common usage pattern:
//
//	stateJSON, err := snapshotstore.StateToJSON(currentState)
//	if err != nil {
//		// handle error
//	}
//
//	snapshot, err := snapshotstore.BuildSnapshot("counter", version, stateJSON)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Save(ctx, snapshot)
//	if errors.Is(err, snapshotstore.ErrConcurrencyConflict) {
//		// another writer persisted a newer state first
//	}
//
// Storage engines live in subpackages; see postgresengine for the Postgres
// implementation.
package snapshotstore
