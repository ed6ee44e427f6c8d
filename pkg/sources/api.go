package sources

import (
	"context"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/sites"
)

// APISource reads a paged JSON endpoint and maps it with a site decoder.
type APISource struct {
	cfg    config.SourceConfig
	meta   domain.SourceMeta
	client *httpclient.HTTPClient
	decode sites.Decoder
	log    *logger.Logger
}

func NewAPISource(cfg config.SourceConfig, client *httpclient.HTTPClient, log *logger.Logger) (*APISource, error) {
	decode, err := sites.Lookup(cfg.Site)
	if err != nil {
		return nil, err
	}
	return &APISource{
		cfg:    cfg,
		meta:   metaFor(cfg, domain.SourceAggregator, domain.ConfidenceHigh),
		client: client,
		decode: decode,
		log:    log.Component("api").With("source", cfg.Name),
	}, nil
}

func (s *APISource) Name() string            { return s.cfg.Name }
func (s *APISource) Meta() domain.SourceMeta { return s.meta }

func (s *APISource) Fetch(ctx context.Context) (Batch, error) {
	p := templatePager(s.cfg.Name, s.cfg.URL, s.cfg.MaxPages, s.log)
	candidates, err := p.run(ctx, func(ctx context.Context, pageURL string) ([]domain.Candidate, error) {
		body, err := s.client.GetBody(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		return s.decode(body, s.cfg.Params)
	})
	if err != nil {
		return Batch{}, fetchErr(s.cfg.Name, err)
	}
	s.log.Debug("fetched listings", "count", len(candidates))
	return Batch{Candidates: candidates}, nil
}

// metaFor builds provenance from the catalog entry, falling back to the
// kind's defaults. The URL is left for the adapter to set: an API endpoint
// is not a link a reader can follow.
func metaFor(cfg config.SourceConfig, defType domain.SourceType, defConfidence domain.Confidence) domain.SourceMeta {
	m := domain.SourceMeta{
		Name:       cfg.Name,
		Type:       cfg.SourceType,
		Confidence: cfg.Confidence,
	}
	if m.Type == "" {
		m.Type = defType
	}
	if m.Confidence == "" {
		m.Confidence = defConfidence
	}
	return m
}
