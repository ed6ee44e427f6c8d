package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/content"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
)

const defaultFeedItems = 50

// FeedSource turns RSS/Atom items into raw text for extraction. Community
// channels (club blogs, event newsletters) publish this way.
type FeedSource struct {
	cfg    config.SourceConfig
	meta   domain.SourceMeta
	client *httpclient.HTTPClient
	parser *gofeed.Parser
	log    *logger.Logger
}

func NewFeedSource(cfg config.SourceConfig, client *httpclient.HTTPClient, log *logger.Logger) *FeedSource {
	meta := metaFor(cfg, domain.SourceCommunity, domain.ConfidenceLow)
	meta.URL = cfg.URL
	return &FeedSource{
		cfg:    cfg,
		meta:   meta,
		client: client,
		parser: gofeed.NewParser(),
		log:    log.Component("feed").With("source", cfg.Name),
	}
}

func (s *FeedSource) Name() string            { return s.cfg.Name }
func (s *FeedSource) Meta() domain.SourceMeta { return s.meta }

func (s *FeedSource) Fetch(ctx context.Context) (Batch, error) {
	body, err := s.client.GetBody(ctx, s.cfg.URL)
	if err != nil {
		return Batch{}, fetchErr(s.cfg.Name, err)
	}
	feed, err := s.parser.ParseString(string(body))
	if err != nil {
		return Batch{}, fetchErr(s.cfg.Name, fmt.Errorf("failed to parse feed: %w", err))
	}

	limit := s.cfg.MaxItems
	if limit <= 0 {
		limit = defaultFeedItems
	}

	var out []domain.RawTextInput
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		if len(out) >= limit {
			break
		}
		text := itemText(item)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, domain.RawTextInput{
			Source:     s.meta.Name,
			SourceType: s.meta.Type,
			SourceURL:  item.Link,
			RawText:    text,
		})
	}
	s.log.Debug("read feed", "items", len(feed.Items), "kept", len(out))
	return Batch{RawTexts: out}, nil
}

func itemText(item *gofeed.Item) string {
	var parts []string
	for _, s := range []string{item.Description, item.Content} {
		if t := content.PlainText(s); t != "" && !contains(parts, t) {
			parts = append(parts, t)
		}
	}
	if item.Published != "" {
		parts = append(parts, "Published: "+item.Published)
	}
	if len(parts) == 0 && strings.TrimSpace(item.Title) == "" {
		return ""
	}
	return content.Compose(item.Title, strings.Join(parts, "\n"))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
