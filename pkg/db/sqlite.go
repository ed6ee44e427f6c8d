package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteClient opens a local SQLite database through the pure-Go driver. It
// is the zero-infrastructure SQL backend and what the SQL store tests run on.
type SQLiteClient struct {
	path string
	db   *sql.DB
}

func NewSQLiteClient(path string) *SQLiteClient {
	return &SQLiteClient{path: path}
}

// Connect creates the parent directory if needed and opens the database.
func (c *SQLiteClient) Connect(ctx context.Context) error {
	if c.path == "" {
		return fmt.Errorf("sqlite path is required")
	}
	if c.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
			return fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", c.path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; SQLite serialises writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite: %w", err)
	}
	c.db = db
	return nil
}

func (c *SQLiteClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *SQLiteClient) DB() *sql.DB {
	return c.db
}

func (c *SQLiteClient) Dialect() Dialect {
	return DialectSQLite
}
