package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/db"
	"hackathon-radar/pkg/domain"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	client := db.NewSQLiteClient(filepath.Join(t.TempDir(), "hackathons.db"))
	require.NoError(t, client.Connect(context.Background()))
	t.Cleanup(func() { _ = client.Close() })

	s, err := NewSQLStore(client, "hackathons", "sqlite")
	require.NoError(t, err)
	return s
}

func TestSQLStore_SQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	want := sampleDataset()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLStore_SQLite_AppendOnly(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	original := sampleDataset()
	require.NoError(t, s.Save(ctx, original))

	changed := sampleDataset()
	changed[0].Name = "CodeFest (renamed)"
	extra := changed[0]
	extra.ID = "cf2"
	changed = append(changed, extra)

	n, err := s.InsertMissing(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "CodeFest", got[0].Name)
	assert.Equal(t, "cf2", got[2].ID)
}

func TestNewSQLStore_Validation(t *testing.T) {
	client := db.NewSQLiteClient(filepath.Join(t.TempDir(), "h.db"))
	_, err := NewSQLStore(client, "hackathons", "sqlite")
	assert.Error(t, err, "not connected")

	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()
	_, err = NewSQLStore(client, "hackathons; DROP TABLE x", "sqlite")
	assert.Error(t, err)
}

func TestSQLStore_Postgres_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	client := db.NewPostgresClient(db.PostgresConfig{DSN: dsn})
	require.NoError(t, client.Connect(ctx))
	defer client.Close()

	s, err := NewSQLStore(client, "hackathons_test", "postgres")
	require.NoError(t, err)
	_, err = client.DB().ExecContext(ctx, "DROP TABLE IF EXISTS hackathons_test")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleDataset()))
	require.NoError(t, s.Save(ctx, sampleDataset()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleDataset(), got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestScanTime(t *testing.T) {
	want := sampleDataset()[0].UploadedAt
	for _, v := range []any{want, want.Format("2006-01-02T15:04:05Z07:00"), []byte("2026-02-01 10:00:00")} {
		got, err := scanTime(v)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%v", v)
	}
	_, err := scanTime(nil)
	assert.Error(t, err)
	_, err = scanTime(domain.Hackathon{})
	assert.Error(t, err)
}
