package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/reduxkit/ducks-go/snapshotstore"
	"github.com/reduxkit/ducks-go/snapshotstore/postgresengine/internal/adapters"
)

const (
	defaultSnapshotTableName    = "duck_snapshots"
	logMsgBuildSaveQueryFailed  = "failed to build snapshot upsert query"
	logMsgBuildLoadQueryFailed  = "failed to build snapshot select query"
	logMsgBuildDeleteQueryFail  = "failed to build snapshot delete query"
	logMsgDBQueryFailed         = "database query execution failed"
	logMsgDBExecFailed          = "database execution failed"
	logMsgCloseRowsFailed       = "failed to close database rows"
	logMsgScanRowFailed         = "failed to scan database row"
	logMsgSnapshotSaved         = "snapshot saved"
	logMsgSnapshotLoaded        = "snapshot loaded"
	logMsgSnapshotDeleted       = "snapshot deleted"
	logMsgConcurrencyConflict   = "concurrency conflict detected"
	logMsgSQLExecuted           = "executed sql for: "
	logMsgOperation             = "snapshotstore operation: "
	logAttrError                = "error"
	logAttrQuery                = "query"
	logAttrNamespace            = "namespace"
	logAttrVersion              = "version"
	logAttrDurationMS           = "duration_ms"
	logActionSave               = "save"
	logActionLoad               = "load"
	logActionDelete             = "delete"
	metricOperationDuration     = "snapshotstore_operation_duration_seconds"
	metricConcurrencyConflicts  = "snapshotstore_concurrency_conflicts_total"
	labelOperation              = "operation"
	labelNamespace              = "namespace"
	colNamespace                = "namespace"
	colVersion                  = "version"
	colState                    = "state"
	colUpdatedAt                = "updated_at"
	dialectPostgres             = "postgres"
	castJsonb                   = "?::jsonb"
	qualifiedExcludedVersionCol = "excluded." + colVersion
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// SnapshotStore persists the latest reduced state per duck namespace in a
// PostgreSQL table, one row per namespace, guarded by an optimistic
// concurrency version. It leverages a database adapter and supports
// customizable logging, metrics, and snapshot table configuration.
type SnapshotStore struct {
	db                adapters.DBAdapter
	snapshotTableName string
	logger            Logger
	metricsCollector  MetricsCollector
}

// NewSnapshotStoreFromPGXPool creates a new SnapshotStore using a pgx Pool with optional configuration.
func NewSnapshotStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (SnapshotStore, error) {
	if db == nil {
		return SnapshotStore{}, snapshotstore.ErrNilDatabaseConnection
	}

	ss := SnapshotStore{
		db:                adapters.NewPGXAdapter(db),
		snapshotTableName: defaultSnapshotTableName,
	}

	for _, option := range options {
		if err := option(&ss); err != nil {
			return SnapshotStore{}, err
		}
	}

	return ss, nil
}

// NewSnapshotStoreFromSQLDB creates a new SnapshotStore using a sql.DB with optional configuration.
func NewSnapshotStoreFromSQLDB(db *sql.DB, options ...Option) (SnapshotStore, error) {
	if db == nil {
		return SnapshotStore{}, snapshotstore.ErrNilDatabaseConnection
	}

	ss := SnapshotStore{
		db:                adapters.NewSQLAdapter(db),
		snapshotTableName: defaultSnapshotTableName,
	}

	for _, option := range options {
		if err := option(&ss); err != nil {
			return SnapshotStore{}, err
		}
	}

	return ss, nil
}

// NewSnapshotStoreFromSQLX creates a new SnapshotStore using a sqlx.DB with optional configuration.
func NewSnapshotStoreFromSQLX(db *sqlx.DB, options ...Option) (SnapshotStore, error) {
	if db == nil {
		return SnapshotStore{}, snapshotstore.ErrNilDatabaseConnection
	}

	ss := SnapshotStore{
		db:                adapters.NewSQLXAdapter(db),
		snapshotTableName: defaultSnapshotTableName,
	}

	for _, option := range options {
		if err := option(&ss); err != nil {
			return SnapshotStore{}, err
		}
	}

	return ss, nil
}

// Save stores the supplied snapshot, inserting the first row for its
// namespace or replacing an older one.
//
// The upsert only wins when the stored version is lower than the supplied
// one, so concurrent writers cannot overwrite newer state with stale state:
// the loser observes snapshotstore.ErrConcurrencyConflict and should reload
// before retrying.
func (ss SnapshotStore) Save(ctx context.Context, snapshot snapshotstore.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	start := time.Now()

	sqlQuery, buildQueryErr := ss.buildSaveQuery(snapshot)
	if buildQueryErr != nil {
		ss.logError(logMsgBuildSaveQueryFailed, logAttrError, buildQueryErr.Error())
		return errors.Join(snapshotstore.ErrBuildingQueryFailed, buildQueryErr)
	}

	rowsAffected, execErr := ss.db.Exec(ctx, sqlQuery)
	if execErr != nil {
		ss.logError(logMsgDBExecFailed, logAttrError, execErr.Error())
		return errors.Join(snapshotstore.ErrSavingSnapshotFailed, execErr)
	}

	duration := time.Since(start)
	ss.logSQLWithDuration(logActionSave, sqlQuery, duration)

	if rowsAffected == 0 {
		ss.logInfo(logMsgConcurrencyConflict,
			logAttrNamespace, snapshot.Namespace,
			logAttrVersion, snapshot.Version,
		)
		ss.incrementCounter(metricConcurrencyConflicts, map[string]string{
			labelNamespace: snapshot.Namespace,
		})

		return snapshotstore.ErrConcurrencyConflict
	}

	ss.logInfo(logMsgSnapshotSaved,
		logAttrNamespace, snapshot.Namespace,
		logAttrVersion, snapshot.Version,
		logAttrDurationMS, ss.durationToMilliseconds(duration),
	)
	ss.recordDuration(metricOperationDuration, duration, map[string]string{
		labelOperation: logActionSave,
		labelNamespace: snapshot.Namespace,
	})

	return nil
}

// Load retrieves the latest snapshot stored for the supplied namespace.
// It returns snapshotstore.ErrSnapshotNotFound when no snapshot was saved yet.
func (ss SnapshotStore) Load(ctx context.Context, namespace string) (snapshotstore.Snapshot, error) {
	var empty snapshotstore.Snapshot

	if namespace == "" {
		return empty, snapshotstore.ErrEmptyNamespaceSupplied
	}

	start := time.Now()

	sqlQuery, buildQueryErr := ss.buildLoadQuery(namespace)
	if buildQueryErr != nil {
		ss.logError(logMsgBuildLoadQueryFailed, logAttrError, buildQueryErr.Error())
		return empty, errors.Join(snapshotstore.ErrBuildingQueryFailed, buildQueryErr)
	}

	rows, queryErr := ss.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		ss.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error())
		return empty, errors.Join(snapshotstore.ErrLoadingSnapshotFailed, queryErr)
	}
	defer ss.closeRows(rows)

	if !rows.Next() {
		return empty, snapshotstore.ErrSnapshotNotFound
	}

	snapshot := snapshotstore.Snapshot{Namespace: namespace}

	var version int64
	var stateJSON []byte

	if scanErr := rows.Scan(&version, &stateJSON, &snapshot.UpdatedAt); scanErr != nil {
		ss.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
		return empty, errors.Join(snapshotstore.ErrScanningDBRowFailed, scanErr)
	}

	snapshot.Version = snapshotstore.VersionUint(version)
	snapshot.StateJSON = stateJSON

	duration := time.Since(start)
	ss.logSQLWithDuration(logActionLoad, sqlQuery, duration)
	ss.logInfo(logMsgSnapshotLoaded,
		logAttrNamespace, namespace,
		logAttrVersion, snapshot.Version,
		logAttrDurationMS, ss.durationToMilliseconds(duration),
	)
	ss.recordDuration(metricOperationDuration, duration, map[string]string{
		labelOperation: logActionLoad,
		labelNamespace: namespace,
	})

	return snapshot, nil
}

// Delete removes the snapshot stored for the supplied namespace.
// It returns snapshotstore.ErrSnapshotNotFound when there was nothing to delete.
func (ss SnapshotStore) Delete(ctx context.Context, namespace string) error {
	if namespace == "" {
		return snapshotstore.ErrEmptyNamespaceSupplied
	}

	start := time.Now()

	sqlQuery, buildQueryErr := ss.buildDeleteQuery(namespace)
	if buildQueryErr != nil {
		ss.logError(logMsgBuildDeleteQueryFail, logAttrError, buildQueryErr.Error())
		return errors.Join(snapshotstore.ErrBuildingQueryFailed, buildQueryErr)
	}

	rowsAffected, execErr := ss.db.Exec(ctx, sqlQuery)
	if execErr != nil {
		ss.logError(logMsgDBExecFailed, logAttrError, execErr.Error())
		return errors.Join(snapshotstore.ErrDeletingSnapshotFailed, execErr)
	}

	duration := time.Since(start)
	ss.logSQLWithDuration(logActionDelete, sqlQuery, duration)

	if rowsAffected == 0 {
		return snapshotstore.ErrSnapshotNotFound
	}

	ss.logInfo(logMsgSnapshotDeleted,
		logAttrNamespace, namespace,
		logAttrDurationMS, ss.durationToMilliseconds(duration),
	)
	ss.recordDuration(metricOperationDuration, duration, map[string]string{
		labelOperation: logActionDelete,
		labelNamespace: namespace,
	})

	return nil
}

func (ss SnapshotStore) buildSaveQuery(snapshot snapshotstore.Snapshot) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(ss.snapshotTableName).
		Cols(colNamespace, colVersion, colState, colUpdatedAt).
		Vals(goqu.Vals{
			snapshot.Namespace,
			snapshot.Version,
			goqu.L(castJsonb, string(snapshot.StateJSON)),
			snapshot.UpdatedAt,
		}).
		OnConflict(goqu.DoUpdate(colNamespace, goqu.Record{
			colVersion:   goqu.L(qualifiedExcludedVersionCol),
			colState:     goqu.L("excluded." + colState),
			colUpdatedAt: goqu.L("excluded." + colUpdatedAt),
		}).Where(
			goqu.T(ss.snapshotTableName).Col(colVersion).Lt(goqu.L(qualifiedExcludedVersionCol)),
		))

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", err
	}

	return sqlQuery, nil
}

func (ss SnapshotStore) buildLoadQuery(namespace string) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ss.snapshotTableName).
		Select(colVersion, colState, colUpdatedAt).
		Where(goqu.Ex{colNamespace: namespace})

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", err
	}

	return sqlQuery, nil
}

func (ss SnapshotStore) buildDeleteQuery(namespace string) (sqlQueryString, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(ss.snapshotTableName).
		Where(goqu.Ex{colNamespace: namespace})

	sqlQuery, _, err := deleteStmt.ToSQL()
	if err != nil {
		return "", err
	}

	return sqlQuery, nil
}

func (ss SnapshotStore) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		ss.logWarn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

func (ss SnapshotStore) logSQLWithDuration(action string, sqlQuery sqlQueryString, duration queryDuration) {
	if ss.logger != nil {
		ss.logger.Debug(
			logMsgSQLExecuted+action,
			logAttrQuery, sqlQuery,
			logAttrDurationMS, ss.durationToMilliseconds(duration),
		)
	}
}

func (ss SnapshotStore) logInfo(msg string, args ...any) {
	if ss.logger != nil {
		ss.logger.Info(logMsgOperation+msg, args...)
	}
}

func (ss SnapshotStore) logWarn(msg string, args ...any) {
	if ss.logger != nil {
		ss.logger.Warn(msg, args...)
	}
}

func (ss SnapshotStore) logError(msg string, args ...any) {
	if ss.logger != nil {
		ss.logger.Error(msg, args...)
	}
}

func (ss SnapshotStore) recordDuration(metric string, duration time.Duration, labels map[string]string) {
	if ss.metricsCollector != nil {
		ss.metricsCollector.RecordDuration(metric, duration, labels)
	}
}

func (ss SnapshotStore) incrementCounter(metric string, labels map[string]string) {
	if ss.metricsCollector != nil {
		ss.metricsCollector.IncrementCounter(metric, labels)
	}
}

func (ss SnapshotStore) durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
