package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_PATH", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("RUN_TIMEOUT", "")
	t.Setenv("SFTP_PORT", "")
	t.Setenv("SFTP_FILE_NAME", "")

	cfg := Load()
	assert.Equal(t, "data/hackathons.json", cfg.DataPath)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 10*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 22, cfg.SFTPPort)
	assert.Equal(t, "hackathons.json", cfg.SFTPFileName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_PATH", "/tmp/out.json")
	t.Setenv("EXTRACT_WORKERS", "7")
	t.Setenv("ADAPTER_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	assert.Equal(t, "/tmp/out.json", cfg.DataPath)
	assert.Equal(t, 7, cfg.ExtractWorkers)
	assert.Equal(t, 5*time.Second, cfg.AdapterTimeout)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestSFTPEnabled(t *testing.T) {
	assert.False(t, Config{SFTPHost: "h"}.SFTPEnabled())
	assert.True(t, Config{SFTPHost: "h", SFTPUser: "u", SFTPPass: "p"}.SFTPEnabled())
}

func TestLoadCatalog_Default(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	names := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		names = append(names, s.Name)
	}
	assert.Subset(t, names, []string{"Unstop", "Devfolio", "HackerEarth", "Devpost", "MLH", "Hackalist", "Hackathon.com", "TAIKAI", "Placeholder Inputs"})

	var manual SourceConfig
	for _, s := range c.Sources {
		if s.Type == KindManual {
			manual = s
		}
	}
	require.Len(t, manual.RawInputs, 2)
	assert.Equal(t, "CBIT Website", manual.RawInputs[0].Source)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "sources: []", "no sources"},
		{"unknown type", "sources:\n  - name: x\n    type: ftp\n", "unknown type"},
		{"api without site", "sources:\n  - name: x\n    type: api\n    url: http://x\n", "site decoder"},
		{"duplicate", "sources:\n  - name: x\n    type: manual\n  - name: x\n    type: manual\n", "duplicate"},
		{"scrape without item", "sources:\n  - name: x\n    type: scrape\n    url: http://x\n", "selectors.item"},
		{"announcement without pages", "sources:\n  - name: x\n    type: announcement\n", "pages_file"},
		{"bad confidence", "sources:\n  - name: x\n    type: feed\n    url: http://x\n    confidence: sure\n", "invalid confidence"},
		{"bad yaml", "sources: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseCatalog_KeepsValidEntries(t *testing.T) {
	data := `
sources:
  - name: Broken
    type: api
    url: https://example.com/api
  - name: Campus
    type: announcement
    pages: ["https://example.edu/events/hack"]
  - name: Campus
    type: feed
    url: https://example.com/feed.xml
`
	c, err := ParseCatalog([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site decoder")
	assert.Contains(t, err.Error(), "duplicate")
	require.NotNil(t, c)
	require.Len(t, c.Sources, 1)
	assert.Equal(t, KindAnnouncement, c.Sources[0].Type)
	assert.NoError(t, c.Validate())
}

func TestLoadCatalog_FileAndEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `
sources:
  - name: Campus
    type: announcement
    source_type: institutional
    pages: ["https://example.edu/events/hack"]
  - name: Old
    type: feed
    url: https://example.com/feed.xml
    disabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	enabled := c.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "Campus", enabled[0].Name)
}
