package sources

import (
	"errors"
	"fmt"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/filter"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
)

// ManualInputsName names the adapter created for MANUAL_INPUTS_FILE.
const ManualInputsName = "Manual Inputs"

// Build creates one adapter per enabled catalog entry. When manualFile is
// set and no catalog entry reads it, an extra manual adapter is added for it.
// Entries that cannot be built are left out and reported together in the
// returned error; the adapters that could be built are returned either way.
func Build(catalog *config.Catalog, manualFile string, log *logger.Logger) ([]Source, error) {
	var out []Source
	var errs []error
	manualCovered := false

	for _, sc := range catalog.Enabled() {
		src, err := New(sc, log)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %q: %w", sc.Name, err))
			continue
		}
		if sc.Type == config.KindManual && sc.File == manualFile {
			manualCovered = true
		}
		out = append(out, src)
	}
	if manualFile != "" && !manualCovered {
		out = append(out, NewManualSource(config.SourceConfig{
			Name:       ManualInputsName,
			Type:       config.KindManual,
			SourceType: domain.SourceManual,
			File:       manualFile,
		}, log))
	}
	return out, errors.Join(errs...)
}

// New creates the adapter for one catalog entry, wrapped with its filters.
func New(sc config.SourceConfig, log *logger.Logger) (Source, error) {
	if err := filter.FieldEquals(sc.Match).Validate(); err != nil {
		return nil, err
	}

	var src Source
	switch sc.Type {
	case config.KindAPI:
		api, err := NewAPISource(sc, clientFor(sc, httpclient.APIClient), log)
		if err != nil {
			return nil, err
		}
		src = api
	case config.KindScrape:
		src = NewScrapeSource(sc, clientFor(sc, httpclient.BrowserClient), log)
	case config.KindFeed:
		src = NewFeedSource(sc, clientFor(sc, httpclient.BrowserClient), log)
	case config.KindAnnouncement:
		src = NewAnnouncementSource(sc, clientFor(sc, httpclient.BrowserClient), log)
	case config.KindManual:
		src = NewManualSource(sc, log)
	default:
		return nil, fmt.Errorf("unknown source type %q", sc.Type)
	}
	return WithFilters(src, sc.Keywords, sc.Match), nil
}

func clientFor(sc config.SourceConfig, def httpclient.ClientType) *httpclient.HTTPClient {
	return httpclient.NewClient(httpclient.ParseClientType(sc.Client, def))
}
