package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/content"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/filter"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/sitemap"
	"hackathon-radar/pkg/worker"
)

const (
	defaultAnnouncementPages = 20
	announcementWorkers      = 3
)

// AnnouncementSource reads institutional notice pages. Page URLs come from
// the catalog, a page list file and, optionally, a sitemap filtered by path. Each page's main
// text (HTML via readability, or a PDF circular) becomes one raw text input.
type AnnouncementSource struct {
	cfg     config.SourceConfig
	meta    domain.SourceMeta
	client  *httpclient.HTTPClient
	sitemap *sitemap.Parser
	log     *logger.Logger
}

func NewAnnouncementSource(cfg config.SourceConfig, client *httpclient.HTTPClient, log *logger.Logger) *AnnouncementSource {
	meta := metaFor(cfg, domain.SourceInstitutional, domain.ConfidenceLow)
	log = log.Component("announcement").With("source", cfg.Name)
	return &AnnouncementSource{
		cfg:     cfg,
		meta:    meta,
		client:  client,
		sitemap: sitemap.NewParser(client, log),
		log:     log,
	}
}

func (s *AnnouncementSource) Name() string            { return s.cfg.Name }
func (s *AnnouncementSource) Meta() domain.SourceMeta { return s.meta }

func (s *AnnouncementSource) Fetch(ctx context.Context) (Batch, error) {
	pages, err := s.pageURLs(ctx)
	if err != nil {
		return Batch{}, fetchErr(s.cfg.Name, err)
	}
	if len(pages) == 0 {
		s.log.Debug("no announcement pages")
		return Batch{}, nil
	}

	pool := worker.NewPool(announcementWorkers, s.readPage)
	results := pool.Run(ctx, pages)

	var out []domain.RawTextInput
	var failed []error
	for _, r := range results {
		if r.Err != nil {
			s.log.Warn("announcement page failed", "url", r.Job, "error", r.Err)
			failed = append(failed, r.Err)
			continue
		}
		if r.Value == "" {
			continue
		}
		out = append(out, domain.RawTextInput{
			Source:     s.meta.Name,
			SourceType: s.meta.Type,
			SourceURL:  r.Job,
			RawText:    r.Value,
		})
	}
	if len(out) == 0 && len(failed) == len(pages) {
		return Batch{}, fetchErr(s.cfg.Name, fmt.Errorf("all %d pages failed: %w", len(pages), errors.Join(failed...)))
	}
	return Batch{RawTexts: out}, nil
}

// pageURLs merges the configured pages with sitemap entries, drops root URLs,
// URLs outside path_contains and duplicates, and caps the list at max_items.
func (s *AnnouncementSource) pageURLs(ctx context.Context) ([]string, error) {
	candidates := append([]string(nil), s.cfg.Pages...)
	if s.cfg.PagesFile != "" {
		listed, err := ReadURLList(s.cfg.PagesFile)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, listed...)
	}
	if s.cfg.Sitemap != "" {
		entries, err := s.sitemap.ParseFromURL(ctx, s.cfg.Sitemap)
		if err != nil {
			if len(candidates) == 0 {
				return nil, err
			}
			s.log.Warn("sitemap unavailable, using configured pages", "error", err)
		}
		for _, e := range entries {
			candidates = append(candidates, e.Location)
		}
	}

	seen := make(map[string]bool)
	var unique []string
	for _, u := range candidates {
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}

	filters := []filter.Filter{filter.NewBaseURLFilter()}
	if s.cfg.PathContains != "" {
		filters = append(filters, filter.NewPathContainsFilter(s.cfg.PathContains))
	}
	kept, err := filter.FilterURLs(ctx, unique, filters...)
	if err != nil {
		return nil, err
	}

	limit := s.cfg.MaxItems
	if limit <= 0 {
		limit = defaultAnnouncementPages
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept, nil
}

func (s *AnnouncementSource) readPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &httpclient.HTTPError{Method: http.MethodGet, URL: pageURL, StatusCode: resp.StatusCode, Body: body}
	}

	if content.IsPDF(resp.Header.Get("Content-Type"), body) {
		text, err := content.ExtractTextFromPDFReader(bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to read PDF %s: %w", pageURL, err)
		}
		return content.Compose("", text), nil
	}
	return content.Announcement(string(body))
}
