package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reduxkit/ducks-go/snapshotstore"
	"github.com/reduxkit/ducks-go/testutil/postgresengine/pgtesthelpers"
)

func Test_SaveAndLoad_Snapshot(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// arrange
	pgtesthelpers.CleanUp(t, wrapper)

	stateJSON := `{"count":7,"lastAction":"counter/INCREMENT"}`
	snapshot, err := snapshotstore.BuildSnapshot("counter", 1, []byte(stateJSON))
	require.NoError(t, err, "building snapshot should succeed")

	// act
	saveErr := ss.Save(ctxWithTimeout, snapshot)

	// assert
	assert.NoError(t, saveErr, "saving snapshot should succeed")

	loadedSnapshot, loadErr := ss.Load(ctxWithTimeout, "counter")

	assert.NoError(t, loadErr, "loading snapshot should succeed")
	assert.Equal(t, snapshot.Namespace, loadedSnapshot.Namespace)
	assert.Equal(t, snapshot.Version, loadedSnapshot.Version)
	assert.JSONEq(t, string(snapshot.StateJSON), string(loadedSnapshot.StateJSON))
	assert.WithinDuration(t, snapshot.UpdatedAt, loadedSnapshot.UpdatedAt, time.Second)
}

func Test_Load_Snapshot_FailsWhenNamespaceHasNoSnapshot(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// arrange
	pgtesthelpers.CleanUp(t, wrapper)

	// act
	_, loadErr := ss.Load(ctxWithTimeout, "never-saved")

	// assert
	assert.ErrorIs(t, loadErr, snapshotstore.ErrSnapshotNotFound)
}

func Test_Save_Snapshot_ReplacesOlderVersion(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// arrange
	pgtesthelpers.CleanUp(t, wrapper)

	first, err := snapshotstore.BuildSnapshot("counter", 1, []byte(`{"count":1}`))
	require.NoError(t, err)
	require.NoError(t, ss.Save(ctxWithTimeout, first))

	second, err := snapshotstore.BuildSnapshot("counter", 2, []byte(`{"count":2}`))
	require.NoError(t, err)

	// act
	saveErr := ss.Save(ctxWithTimeout, second)

	// assert
	assert.NoError(t, saveErr, "saving a newer version should succeed")

	loadedSnapshot, loadErr := ss.Load(ctxWithTimeout, "counter")
	assert.NoError(t, loadErr)
	assert.Equal(t, snapshotstore.VersionUint(2), loadedSnapshot.Version)
	assert.JSONEq(t, `{"count":2}`, string(loadedSnapshot.StateJSON))
}

func Test_Save_Snapshot_FailsWithConcurrencyConflict_ForStaleVersion(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// arrange
	pgtesthelpers.CleanUp(t, wrapper)

	current, err := snapshotstore.BuildSnapshot("counter", 3, []byte(`{"count":3}`))
	require.NoError(t, err)
	require.NoError(t, ss.Save(ctxWithTimeout, current))

	tests := []struct {
		name         string
		staleVersion snapshotstore.VersionUint
	}{
		{name: "same_version", staleVersion: 3},
		{name: "lower_version", staleVersion: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			stale, buildErr := snapshotstore.BuildSnapshot("counter", tt.staleVersion, []byte(`{"count":0}`))
			require.NoError(t, buildErr)

			// act
			saveErr := ss.Save(ctxWithTimeout, stale)

			// assert
			assert.ErrorIs(t, saveErr, snapshotstore.ErrConcurrencyConflict)

			loadedSnapshot, loadErr := ss.Load(ctxWithTimeout, "counter")
			assert.NoError(t, loadErr)
			assert.Equal(t, snapshotstore.VersionUint(3), loadedSnapshot.Version, "stored snapshot should be untouched")
			assert.JSONEq(t, `{"count":3}`, string(loadedSnapshot.StateJSON))
		})
	}
}

func Test_Save_Snapshot_ValidatesInput(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	tests := []struct {
		name          string
		snapshot      snapshotstore.Snapshot
		expectedError error
	}{
		{
			name: "empty_namespace",
			snapshot: snapshotstore.Snapshot{
				Namespace: "",
				Version:   1,
				StateJSON: []byte(`{}`),
				UpdatedAt: time.Now(),
			},
			expectedError: snapshotstore.ErrEmptyNamespaceSupplied,
		},
		{
			name: "zero_version",
			snapshot: snapshotstore.Snapshot{
				Namespace: "counter",
				Version:   0,
				StateJSON: []byte(`{}`),
				UpdatedAt: time.Now(),
			},
			expectedError: snapshotstore.ErrZeroSnapshotVersion,
		},
		{
			name: "invalid_state_json",
			snapshot: snapshotstore.Snapshot{
				Namespace: "counter",
				Version:   1,
				StateJSON: []byte(`{"count":`),
				UpdatedAt: time.Now(),
			},
			expectedError: snapshotstore.ErrInvalidStateJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			saveErr := ss.Save(ctxWithTimeout, tt.snapshot)

			// assert
			assert.ErrorIs(t, saveErr, tt.expectedError)
		})
	}
}

func Test_Delete_Snapshot(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// arrange
	pgtesthelpers.CleanUp(t, wrapper)

	snapshot, err := snapshotstore.BuildSnapshot("todos", 1, []byte(`{"items":{}}`))
	require.NoError(t, err)
	require.NoError(t, ss.Save(ctxWithTimeout, snapshot))

	// act
	deleteErr := ss.Delete(ctxWithTimeout, "todos")

	// assert
	assert.NoError(t, deleteErr, "deleting snapshot should succeed")

	_, loadErr := ss.Load(ctxWithTimeout, "todos")
	assert.ErrorIs(t, loadErr, snapshotstore.ErrSnapshotNotFound)
}

func Test_Delete_Snapshot_FailsWhenNamespaceHasNoSnapshot(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// arrange
	pgtesthelpers.CleanUp(t, wrapper)

	// act
	deleteErr := ss.Delete(ctxWithTimeout, "never-saved")

	// assert
	assert.ErrorIs(t, deleteErr, snapshotstore.ErrSnapshotNotFound)
}

func Test_Load_Snapshot_FailsForEmptyNamespace(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wrapper := pgtesthelpers.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	ss := wrapper.GetSnapshotStore()

	// act
	_, loadErr := ss.Load(ctxWithTimeout, "")

	// assert
	assert.ErrorIs(t, loadErr, snapshotstore.ErrEmptyNamespaceSupplied)
}
