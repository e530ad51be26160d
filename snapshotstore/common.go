package snapshotstore

import (
	"errors"
)

var ErrEmptyNamespaceSupplied = errors.New("empty namespace supplied")
var ErrZeroSnapshotVersion = errors.New("snapshot version must start at 1")
var ErrInvalidStateJSON = errors.New("state json is not valid")
var ErrEmptySnapshotTableName = errors.New("empty snapshotTableName supplied")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrSnapshotNotFound = errors.New("no snapshot stored for this namespace")
var ErrConcurrencyConflict = errors.New("concurrency conflict, a snapshot with the same or a higher version is already stored")
var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrSavingSnapshotFailed = errors.New("saving snapshot failed")
var ErrLoadingSnapshotFailed = errors.New("loading snapshot failed")
var ErrDeletingSnapshotFailed = errors.New("deleting snapshot failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")

// VersionUint is a type alias for uint, representing the optimistic-concurrency
// version of a stored snapshot. The first saved snapshot of a namespace has
// version 1.
type VersionUint = uint
