package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"hackathon-radar/pkg/db"
	"hackathon-radar/pkg/domain"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore keeps the dataset in a table keyed by (source, id). Rows are only
// ever inserted; seq records first-seen order.
type SQLStore struct {
	provider db.DBProvider
	table    string
	name     string
}

// NewSQLStore returns a store over provider. name is used in logs and errors
// ("postgres", "sqlite", "supabase").
func NewSQLStore(provider db.DBProvider, table, name string) (*SQLStore, error) {
	if provider == nil || provider.DB() == nil {
		return nil, fmt.Errorf("%s store: database not connected", name)
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("%s store: invalid table name %q", name, table)
	}
	return &SQLStore{provider: provider, table: table, name: name}, nil
}

func (s *SQLStore) Name() string { return s.name }

// EnsureSchema creates the table if it does not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.provider.DB().ExecContext(ctx, s.ddl()); err != nil {
		return persistErr(s.name, "create table", err)
	}
	return nil
}

func (s *SQLStore) ddl() string {
	seq := "seq BIGSERIAL PRIMARY KEY"
	ts := "TIMESTAMPTZ NOT NULL"
	if s.provider.Dialect() == db.DialectSQLite {
		seq = "seq INTEGER PRIMARY KEY AUTOINCREMENT"
		ts = "TEXT NOT NULL"
	}
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  %s,
  source TEXT NOT NULL,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  college TEXT NOT NULL DEFAULT 'Open',
  location TEXT NOT NULL DEFAULT 'India',
  mode TEXT NOT NULL DEFAULT 'Offline',
  start_date TEXT,
  end_date TEXT,
  source_type TEXT NOT NULL DEFAULT '',
  source_url TEXT NOT NULL DEFAULT '',
  confidence TEXT NOT NULL DEFAULT 'low',
  uploaded_at %s,
  UNIQUE (source, id)
)`, s.table, seq, ts)
}

// Load returns all rows in first-seen order.
func (s *SQLStore) Load(ctx context.Context) (domain.Dataset, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT source, id, name, college, location, mode, start_date, end_date,
  source_type, source_url, confidence, uploaded_at FROM %s ORDER BY seq`, s.table)

	rows, err := s.provider.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, persistErr(s.name, "query", err)
	}
	defer rows.Close()

	dataset := domain.Dataset{}
	for rows.Next() {
		var (
			h          domain.Hackathon
			start, end sql.NullString
			uploaded   any
		)
		if err := rows.Scan(&h.Source, &h.ID, &h.Name, &h.College, &h.Location, &h.Mode, &start, &end,
			&h.SourceType, &h.SourceURL, &h.Confidence, &uploaded); err != nil {
			return nil, persistErr(s.name, "scan", err)
		}
		h.StartDate = start.String
		h.EndDate = end.String
		at, err := scanTime(uploaded)
		if err != nil {
			return nil, &CorruptionError{Backend: s.name, Err: fmt.Errorf("row %s: %w", h.Key(), err)}
		}
		h.UploadedAt = at
		dataset = append(dataset, h)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(s.name, "rows", err)
	}
	return dataset, nil
}

// Save inserts every record whose key is not yet stored, inside one
// transaction. Existing rows are left untouched by ON CONFLICT DO NOTHING.
func (s *SQLStore) Save(ctx context.Context, dataset domain.Dataset) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	_, err := s.InsertMissing(ctx, dataset)
	return err
}

// InsertMissing inserts records in one transaction and reports how many rows
// were new.
func (s *SQLStore) InsertMissing(ctx context.Context, records []domain.Hackathon) (int, error) {
	tx, err := s.provider.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, persistErr(s.name, "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.insertQuery())
	if err != nil {
		return 0, persistErr(s.name, "prepare insert", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, h := range records {
		res, err := stmt.ExecContext(ctx, h.Source, h.ID, h.Name, h.College, h.Location, string(h.Mode),
			nullable(h.StartDate), nullable(h.EndDate), string(h.SourceType), h.SourceURL,
			string(h.Confidence), s.timeArg(h.UploadedAt))
		if err != nil {
			return 0, persistErr(s.name, "insert", fmt.Errorf("record %s: %w", h.Key(), err))
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, persistErr(s.name, "commit", err)
	}
	return inserted, nil
}

func (s *SQLStore) insertQuery() string {
	cols := []string{"source", "id", "name", "college", "location", "mode", "start_date", "end_date",
		"source_type", "source_url", "confidence", "uploaded_at"}
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = s.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (source, id) DO NOTHING",
		s.table, strings.Join(cols, ", "), strings.Join(params, ", "))
}

func (s *SQLStore) placeholder(i int) string {
	if s.provider.Dialect() == db.DialectSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", i)
}

func (s *SQLStore) timeArg(t time.Time) any {
	if s.provider.Dialect() == db.DialectSQLite {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanTime accepts what the drivers hand back for uploaded_at.
func scanTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseStoredTime(t)
	case []byte:
		return parseStoredTime(string(t))
	case nil:
		return time.Time{}, fmt.Errorf("uploaded_at is null")
	default:
		return time.Time{}, fmt.Errorf("unexpected uploaded_at type %T", v)
	}
}

func parseStoredTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable uploaded_at %q", s)
}
