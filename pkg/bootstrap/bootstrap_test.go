package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/extraction"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/store"
)

const manualCatalog = `
sources:
  - name: Campus Desk
    type: manual
    source_type: manual
    records:
      - id: cf1
        name: CodeFest
        college: VNR VJIET
        location: Hyderabad
        mode: offline
        start_date: "2026-03-01"
    raw_inputs:
      - source: CBIT Website
        source_type: institutional
        raw_text: "CBIT Innovation Hackathon on Feb 12, 2026 at Gandipet campus."
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	catalog := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(manualCatalog), 0o644))
	return config.Config{
		DataPath:      filepath.Join(dir, "public", "hackathons.json"),
		SourcesFile:   catalog,
		StoreBackend:  BackendSQLite,
		SQLitePath:    filepath.Join(dir, "hackathons.db"),
		AIProvider:    "openai",
		SupabaseTable: "hackathons",
	}
}

func TestOpenStore(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	s, closeFn, err := OpenStore(ctx, cfg, BackendFile, logger.Nop())
	require.NoError(t, err)
	closeFn()
	fs, ok := s.(*store.FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.DataPath, fs.Path())

	s, closeFn, err = OpenStore(ctx, cfg, "SQLite", logger.Nop())
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, "sqlite", s.Name())

	_, closeFn, err = OpenStore(ctx, cfg, "cassandra", logger.Nop())
	require.Error(t, err)
	assert.NotNil(t, closeFn)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestPublishers(t *testing.T) {
	cfg := testConfig(t)
	assert.Empty(t, Publishers(cfg, BackendFile, logger.Nop()))

	names := func(backend string) []string {
		var out []string
		for _, p := range Publishers(cfg, backend, logger.Nop()) {
			out = append(out, p.Name())
		}
		return out
	}
	assert.Equal(t, []string{"snapshot"}, names(BackendMongo))

	cfg.SFTPHost, cfg.SFTPUser, cfg.SFTPPass = "static.example.org", "deploy", "secret"
	assert.Equal(t, []string{"sftp"}, names(BackendFile))
	assert.Equal(t, []string{"snapshot", "sftp"}, names(BackendRedis))
}

func TestExtractor_DisabledWithoutKey(t *testing.T) {
	ext, err := Extractor(context.Background(), config.Config{AIProvider: "gemini"})
	require.NoError(t, err)
	_, ok := ext.(extraction.Disabled)
	assert.True(t, ok)
}

func TestOrchestrator_ManualRunOnSQLite(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	orch, closeFn, err := Orchestrator(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	summary, err := orch.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AdaptersRun)
	assert.Equal(t, 1, summary.RecordsAdded)
	assert.Equal(t, 1, summary.Total)
	assert.NotEmpty(t, summary.Errors, "raw input without an extractor is reported")

	// the display file is written by the snapshot publisher
	snap, err := store.NewFileStore(cfg.DataPath).Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, "cf1", snap[0].ID)
	assert.Equal(t, "Campus Desk", snap[0].Source)
}

func TestOrchestrator_SkipsInvalidEntries(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	catalog := manualCatalog + `
  - name: Broken Vendor
    type: api
    site: nope
    url: http://127.0.0.1:1/api
  - name: No Site
    type: api
    url: http://127.0.0.1:1/api
`
	require.NoError(t, os.WriteFile(cfg.SourcesFile, []byte(catalog), 0o644))

	orch, closeFn, err := Orchestrator(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	summary, err := orch.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AdaptersRun)
	assert.Equal(t, 1, summary.RecordsAdded)
}

func TestOrchestrator_BadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.SourcesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, closeFn, err := Orchestrator(context.Background(), cfg, logger.Nop())
	require.Error(t, err)
	closeFn()
}
