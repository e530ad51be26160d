package pgtesthelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/reduxkit/ducks-go/snapshotstore/postgresengine"
	"github.com/reduxkit/ducks-go/testutil/postgresengine/config"
)

// Adapter type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const snapshotTableName = "duck_snapshots"

const createSnapshotTableDDL = `
	CREATE TABLE IF NOT EXISTS ` + snapshotTableName + ` (
		namespace  TEXT PRIMARY KEY,
		version    BIGINT NOT NULL,
		state      JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`

// Wrapper interface to abstract over different adapter types
type Wrapper interface {
	GetSnapshotStore() postgresengine.SnapshotStore
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool *pgxpool.Pool
	ss   postgresengine.SnapshotStore
}

func (w *PGXPoolWrapper) GetSnapshotStore() postgresengine.SnapshotStore {
	return w.ss
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db *sql.DB
	ss postgresengine.SnapshotStore
}

func (w *SQLDBWrapper) GetSnapshotStore() postgresengine.SnapshotStore {
	return w.ss
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db *sqlx.DB
	ss postgresengine.SnapshotStore
}

func (w *SQLXWrapper) GetSnapshotStore() postgresengine.SnapshotStore {
	return w.ss
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the
// ADAPTER_TYPE environment variable and makes sure the snapshot table exists.
func CreateWrapperWithTestConfig(t testing.TB) Wrapper {
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	var wrapper Wrapper

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		ss, err := postgresengine.NewSnapshotStoreFromPGXPool(connPool)
		assert.NoError(t, err, "error creating snapshot store")

		wrapper = &PGXPoolWrapper{pool: connPool, ss: ss}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		ss, err := postgresengine.NewSnapshotStoreFromSQLDB(db)
		assert.NoError(t, err, "error creating snapshot store")

		wrapper = &SQLDBWrapper{db: db, ss: ss}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		ss, err := postgresengine.NewSnapshotStoreFromSQLX(db)
		assert.NoError(t, err, "error creating snapshot store")

		wrapper = &SQLXWrapper{db: db, ss: ss}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}

	ensureSnapshotTable(t, wrapper)

	return wrapper
}

// CleanUp cleans up the snapshot table for the given wrapper
func CleanUp(t testing.TB, wrapper Wrapper) {
	execDDL(t, wrapper, "TRUNCATE TABLE "+snapshotTableName)
}

func ensureSnapshotTable(t testing.TB, wrapper Wrapper) {
	execDDL(t, wrapper, createSnapshotTableDDL)
}

func execDDL(t testing.TB, wrapper Wrapper, ddl string) {
	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := w.pool.Exec(context.Background(), ddl)
		assert.NoError(t, err, "error preparing the snapshot table")

	case *SQLDBWrapper:
		_, err := w.db.Exec(ddl)
		assert.NoError(t, err, "error preparing the snapshot table")

	case *SQLXWrapper:
		_, err := w.db.Exec(ddl)
		assert.NoError(t, err, "error preparing the snapshot table")

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}
}
