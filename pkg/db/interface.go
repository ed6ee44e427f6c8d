package db

import "database/sql"

// DBProvider is an interface for database clients that provide access to a sql.DB handle.
// PostgresClient, SupabaseClient (direct mode) and SQLiteClient all satisfy it.
type DBProvider interface {
	DB() *sql.DB
	Dialect() Dialect
}

// Dialect names the SQL flavour behind a DBProvider.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)
