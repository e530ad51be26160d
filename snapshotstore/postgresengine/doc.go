// Package postgresengine provides a PostgreSQL implementation of the
// snapshot store.
//
// This package persists the latest reduced state of each duck namespace in
// a single PostgreSQL row, supporting multiple database adapters
// (pgx, sql.DB, sqlx) with atomic upserts and optimistic concurrency control.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Atomic version-guarded upserts with concurrency conflict detection
//   - Configurable table names, logging, and metrics
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewSnapshotStoreFromPGXPool(db)
//
//	// With operational logging and a custom table
//	store, _ := postgresengine.NewSnapshotStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("my_snapshots"),
//		postgresengine.WithLogger(logger),
//	)
//
//	snapshot, _ := snapshotstore.BuildSnapshot("counter", 1, stateJSON)
//	err := store.Save(ctx, snapshot)
//	loaded, err := store.Load(ctx, "counter")
package postgresengine
