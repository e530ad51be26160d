// Package config provides database connection configurations for
// PostgreSQL snapshot store testing.
//
// It supplies ready-to-use configurations for all supported adapters
// (pgxpool.Pool, sql.DB, sqlx.DB), all pointing at the same test database.
// The DSN defaults to a local docker-compose setup and can be overridden
// with the TEST_POSTGRES_DSN environment variable.
package config
