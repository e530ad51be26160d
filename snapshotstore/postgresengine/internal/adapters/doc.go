// Package adapters provides database adapter implementations for the
// PostgreSQL snapshot store.
//
// It implements the adapter pattern to support multiple PostgreSQL database
// libraries: pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through the common DBAdapter interface, so the
// snapshot store works with whichever connection type the host application
// already uses.
package adapters
