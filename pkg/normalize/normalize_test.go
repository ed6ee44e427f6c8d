package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hackathon-radar/pkg/domain"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestNormalize_FillsDefaults(t *testing.T) {
	n := New(clock)
	got := n.Normalize(domain.Candidate{Name: "Innovate2026"}, domain.SourceMeta{Name: "CBIT Website", Type: domain.SourceInstitutional})

	assert.Equal(t, "Innovate2026", got.Name)
	assert.Equal(t, "Open", got.College)
	assert.Equal(t, "India", got.Location)
	assert.Equal(t, domain.ModeOffline, got.Mode)
	assert.Equal(t, domain.ConfidenceLow, got.Confidence)
	assert.Equal(t, "CBIT Website", got.Source)
	assert.Equal(t, domain.SourceInstitutional, got.SourceType)
	assert.Equal(t, "", got.SourceURL)
	assert.Equal(t, fixedNow, got.UploadedAt)
	assert.True(t, strings.HasPrefix(got.ID, "d_"))
}

func TestNormalize_KeepsProvidedFields(t *testing.T) {
	n := New(clock)
	got := n.Normalize(domain.Candidate{
		ID:         "cf1",
		Name:       "  CodeFest  ",
		College:    "IIT Delhi",
		Location:   "Delhi",
		Mode:       "online",
		StartDate:  "2026-03-03",
		EndDate:    "March 4, 2026",
		Source:     "Devfolio",
		SourceType: domain.SourceAggregator,
		SourceURL:  "https://devfolio.co/hackathons/codefest",
		Confidence: domain.ConfidenceHigh,
	}, domain.SourceMeta{Name: "ignored"})

	assert.Equal(t, "cf1", got.ID)
	assert.Equal(t, "CodeFest", got.Name)
	assert.Equal(t, "IIT Delhi", got.College)
	assert.Equal(t, domain.ModeOnline, got.Mode)
	assert.Equal(t, "2026-03-03", got.StartDate)
	assert.Equal(t, "2026-03-04", got.EndDate)
	assert.Equal(t, "Devfolio", got.Source)
	assert.Equal(t, domain.ConfidenceHigh, got.Confidence)
}

func TestNormalize_MetaConfidenceAndName(t *testing.T) {
	n := New(clock)
	got := n.Normalize(domain.Candidate{Confidence: "MEDIUM"}, domain.SourceMeta{Name: "X", Confidence: domain.ConfidenceHigh})
	assert.Equal(t, domain.ConfidenceMedium, got.Confidence)
	assert.Equal(t, DefaultName, got.Name)

	got = n.Normalize(domain.Candidate{Name: "A", Confidence: "sure"}, domain.SourceMeta{Name: "X", Confidence: domain.ConfidenceHigh})
	assert.Equal(t, domain.ConfidenceHigh, got.Confidence)
}

func TestDeriveID_Deterministic(t *testing.T) {
	a := DeriveID("CBIT Website", "CBIT  Innovation Hackathon")
	b := DeriveID("CBIT Website", "cbit innovation\thackathon")
	c := DeriveID("Instagram Poster", "CBIT Innovation Hackathon")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, DeriveID("CBIT Website", "CBIT Innovation Hackathon 2"))
}

func TestMode(t *testing.T) {
	tests := map[string]domain.Mode{
		"Online":    domain.ModeOnline,
		"VIRTUAL":   domain.ModeOnline,
		" remote ":  domain.ModeOnline,
		"Offline":   domain.ModeOffline,
		"in-person": domain.ModeOffline,
		"hybrid":    domain.ModeOffline,
		"":          domain.ModeOffline,
		"whatever":  domain.ModeOffline,
	}
	for in, want := range tests {
		assert.Equal(t, want, Mode(in), in)
	}
}

func TestDate(t *testing.T) {
	tests := map[string]string{
		"2026-02-12":           "2026-02-12",
		"2026-02-12T10:00:00Z": "2026-02-12",
		"Feb 12, 2026":         "2026-02-12",
		"12/02/2026":           "2026-02-12",
		"28/02/2026":           "2026-02-28",
		"":                     "",
		"next week sometime":   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Date(in), in)
	}
}
