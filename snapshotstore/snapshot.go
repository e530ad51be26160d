package snapshotstore

import (
	"encoding/json"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/reduxkit/ducks-go/duck"
)

// Snapshot is a DTO holding the latest persisted state of one duck
// namespace.
//
// It is built on scalars and raw JSON to stay agnostic of how the host
// models its state. While its properties are exported, it should only be
// constructed with the BuildSnapshot factory method, which validates the
// input.
type Snapshot struct {
	Namespace duck.NamespaceString
	Version   VersionUint
	StateJSON json.RawMessage
	UpdatedAt time.Time
}

// Validate ensures the snapshot has valid data for storage operations.
func (s Snapshot) Validate() error {
	if s.Namespace == "" {
		return ErrEmptyNamespaceSupplied
	}

	if s.Version == 0 {
		return ErrZeroSnapshotVersion
	}

	if !jsoniter.ConfigFastest.Valid(s.StateJSON) {
		return ErrInvalidStateJSON
	}

	return nil
}

// BuildSnapshot is a factory method for Snapshot.
//
// The version must be one higher than the last successfully saved version
// for the namespace (1 for the first save); storage engines reject stale
// versions with ErrConcurrencyConflict.
func BuildSnapshot(
	namespace duck.NamespaceString,
	version VersionUint,
	stateJSON json.RawMessage,
) (Snapshot, error) {

	snapshot := Snapshot{
		Namespace: namespace,
		Version:   version,
		StateJSON: stateJSON,
		UpdatedAt: time.Now(),
	}

	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
