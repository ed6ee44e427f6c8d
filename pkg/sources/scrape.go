package sources

import (
	"context"
	"fmt"
	"strings"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/sites"
)

// ScrapeSource parses HTML listing pages with CSS selectors.
//
// Pages are either url with a {page} placeholder, or url followed by
// page_pattern formatted with the page number (e.g. "/page/%d").
type ScrapeSource struct {
	cfg    config.SourceConfig
	meta   domain.SourceMeta
	client *httpclient.HTTPClient
	sel    sites.Selectors
	log    *logger.Logger
}

func NewScrapeSource(cfg config.SourceConfig, client *httpclient.HTTPClient, log *logger.Logger) *ScrapeSource {
	meta := metaFor(cfg, domain.SourceCommunity, domain.ConfidenceMedium)
	if !strings.Contains(cfg.URL, pagePlaceholder) {
		meta.URL = cfg.URL
	}
	return &ScrapeSource{
		cfg:    cfg,
		meta:   meta,
		client: client,
		sel:    sites.Selectors(cfg.Selectors),
		log:    log.Component("scrape").With("source", cfg.Name),
	}
}

func (s *ScrapeSource) Name() string            { return s.cfg.Name }
func (s *ScrapeSource) Meta() domain.SourceMeta { return s.meta }

func (s *ScrapeSource) pager() pager {
	if s.cfg.PagePattern == "" {
		return templatePager(s.cfg.Name, s.cfg.URL, s.cfg.MaxPages, s.log)
	}
	maxPages := s.cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return pager{
		name:     s.cfg.Name,
		maxPages: maxPages,
		pageURL: func(page int) string {
			return s.cfg.URL + fmt.Sprintf(s.cfg.PagePattern, page)
		},
		log: s.log,
	}
}

func (s *ScrapeSource) Fetch(ctx context.Context) (Batch, error) {
	candidates, err := s.pager().run(ctx, func(ctx context.Context, pageURL string) ([]domain.Candidate, error) {
		body, err := s.client.GetBody(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		return sites.ExtractListings(string(body), pageURL, s.sel)
	})
	if err != nil {
		return Batch{}, fetchErr(s.cfg.Name, err)
	}
	s.log.Debug("scraped listings", "count", len(candidates))
	return Batch{Candidates: candidates}, nil
}
