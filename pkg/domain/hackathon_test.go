package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHackathon_JSONFieldNames(t *testing.T) {
	h := Hackathon{
		ID:         "cf1",
		Name:       "CodeFest",
		College:    "Open",
		Location:   "India",
		Mode:       ModeOnline,
		Source:     "Devfolio",
		SourceType: SourceAggregator,
		Confidence: ConfidenceHigh,
		UploadedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(h)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, k := range []string{"id", "name", "college", "location", "mode", "source", "source_type", "source_url", "confidence", "uploaded_at"} {
		assert.Contains(t, fields, k)
	}
	// Unknown dates are absent, not empty strings.
	assert.NotContains(t, fields, "start_date")
	assert.NotContains(t, fields, "end_date")
	assert.Equal(t, "2026-01-02T03:04:05Z", fields["uploaded_at"])
	assert.False(t, strings.Contains(string(raw), "Start"))
}

func TestConfidence_Valid(t *testing.T) {
	assert.True(t, ConfidenceHigh.Valid())
	assert.True(t, ConfidenceMedium.Valid())
	assert.True(t, ConfidenceLow.Valid())
	assert.False(t, Confidence("").Valid())
	assert.False(t, Confidence("HIGH").Valid())
}

func TestDataset_Keys(t *testing.T) {
	d := Dataset{
		{Source: "A", ID: "1"},
		{Source: "B", ID: "1"},
	}
	keys := d.Keys()
	assert.Len(t, keys, 2)
	assert.True(t, keys[Key{Source: "A", ID: "1"}])
	assert.False(t, keys[Key{Source: "A", ID: "2"}])
}
