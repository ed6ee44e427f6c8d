package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
)

func sampleDataset() domain.Dataset {
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return domain.Dataset{
		{
			ID: "cf1", Name: "CodeFest", College: "Open", Location: "India", Mode: domain.ModeOnline,
			StartDate: "2026-03-03", EndDate: "2026-03-04", Source: "Devfolio", SourceType: domain.SourceAggregator,
			SourceURL: "https://devfolio.co/hackathons/codefest", Confidence: domain.ConfidenceHigh, UploadedAt: at,
		},
		{
			ID: "d_abc", Name: "Innovate2026", College: "Open", Location: "India", Mode: domain.ModeOffline,
			Source: "CBIT Website", SourceType: domain.SourceInstitutional, Confidence: domain.ConfidenceLow, UploadedAt: at,
		},
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "hackathons.json"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "hackathons.json")
	s := NewFileStore(path)
	want := sampleDataset()

	require.NoError(t, s.Save(context.Background(), want))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptFileIsMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hackathons.json")
	require.NoError(t, os.WriteFile(path, []byte("[{not json"), 0o644))

	s := NewFileStore(path)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	got, err := s.Load(context.Background())
	assert.Empty(t, got)

	var corrupt *CorruptionError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, path+".corrupt-1700000000", corrupt.MovedTo)
	_, statErr := os.Stat(corrupt.MovedTo)
	assert.NoError(t, statErr)

	// LoadOrEmpty recovers and the next save starts a fresh file.
	ds, err := LoadOrEmpty(context.Background(), s, logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestFileStore_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hackathons.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_FailedSaveKeepsPreviousData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hackathons.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(context.Background(), sampleDataset()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Save(ctx, domain.Dataset{})
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_ReadErrorIsFatal(t *testing.T) {
	// A directory in place of the file cannot be read.
	dir := t.TempDir()
	_, err := NewFileStore(dir).Load(context.Background())
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))

	_, err = LoadOrEmpty(context.Background(), NewFileStore(dir), logger.Nop())
	require.Error(t, err)
}
