package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/logger"
)

func TestBuild_DefaultCatalog(t *testing.T) {
	catalog, err := config.LoadCatalog("")
	require.NoError(t, err)

	srcs, err := Build(catalog, "", logger.Nop())
	require.NoError(t, err)
	assert.Len(t, srcs, len(catalog.Enabled()))

	withManual, err := Build(catalog, "/etc/hackathons/manual.yaml", logger.Nop())
	require.NoError(t, err)
	require.Len(t, withManual, len(srcs)+1)
	assert.Equal(t, ManualInputsName, withManual[len(withManual)-1].Name())
}

func TestBuild_Errors(t *testing.T) {
	catalog := &config.Catalog{Sources: []config.SourceConfig{
		{Name: "a", Type: config.KindAPI, Site: "nope", URL: "http://x"},
		{Name: "b", Type: config.KindManual, RawInputs: nil, Match: map[string]string{"prize": "x"}},
		{Name: "c", Type: config.KindManual},
	}}
	srcs, err := Build(catalog, "", logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), "prize")
	require.Len(t, srcs, 1, "valid entries are still built")
	assert.Equal(t, "c", srcs[0].Name())
}
