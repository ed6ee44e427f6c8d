package sources

import (
	"context"
	"strconv"
	"strings"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
)

const (
	pagePlaceholder = "{page}"
	defaultMaxPages = 10
)

// pageFunc fetches and decodes one page.
type pageFunc func(ctx context.Context, pageURL string) ([]domain.Candidate, error)

// pager walks numbered pages. It stops at the first page that fails, is
// empty, or only repeats listings already seen, or after maxPages. A failure
// on page 1 is returned; later failures end pagination with what was
// collected so far.
type pager struct {
	name     string
	maxPages int
	pageURL  func(page int) string
	log      *logger.Logger
}

// templatePager substitutes {page} in url. A url without the placeholder is
// a single page.
func templatePager(name, url string, maxPages int, log *logger.Logger) pager {
	if !strings.Contains(url, pagePlaceholder) {
		maxPages = 1
	} else if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return pager{
		name:     name,
		maxPages: maxPages,
		pageURL: func(page int) string {
			return strings.ReplaceAll(url, pagePlaceholder, strconv.Itoa(page))
		},
		log: log,
	}
}

func (p pager) run(ctx context.Context, fetch pageFunc) ([]domain.Candidate, error) {
	var all []domain.Candidate
	seen := make(map[string]bool)

	for page := 1; page <= p.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}

		pageURL := p.pageURL(page)
		items, err := fetch(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			p.log.Warn("page failed, stopping pagination", "source", p.name, "page", page, "error", err)
			break
		}
		if len(items) == 0 {
			p.log.Debug("empty page, stopping pagination", "source", p.name, "page", page)
			break
		}

		fresh := 0
		for _, c := range items {
			key := listingKey(c)
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, c)
			fresh++
		}
		if fresh == 0 {
			p.log.Debug("page repeats earlier listings, stopping pagination", "source", p.name, "page", page)
			break
		}
	}
	return all, nil
}

func listingKey(c domain.Candidate) string {
	if c.ID != "" {
		return "id:" + c.ID
	}
	return "n:" + strings.ToLower(strings.Join(strings.Fields(c.Name), " ")) + "|" + c.SourceURL
}
