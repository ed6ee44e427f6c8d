package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
)

// maxDepth bounds sitemap index recursion.
const maxDepth = 3

// Entry represents a single URL entry from a sitemap
type Entry struct {
	Location string // URL of the page
	LastMod  string // Last modification date (optional)
}

// urlSet represents a regular sitemap structure
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Location string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
}

// sitemapIndex represents a sitemap index structure
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Location string `xml:"loc"`
}

// Parser handles sitemap parsing operations
type Parser struct {
	client *httpclient.HTTPClient
	log    *logger.Logger
}

// NewParser creates a new sitemap parser
func NewParser(client *httpclient.HTTPClient, log *logger.Logger) *Parser {
	if client == nil {
		client = httpclient.NewClient(httpclient.BrowserClient)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{client: client, log: log.Component("sitemap")}
}

// ParseFromURL fetches and parses a sitemap or sitemap index. Child sitemaps
// of an index that fail are logged and skipped; the call fails only when no
// child produced entries.
func (p *Parser) ParseFromURL(ctx context.Context, sitemapURL string) ([]Entry, error) {
	return p.parseFromURL(ctx, sitemapURL, 0)
}

func (p *Parser) parseFromURL(ctx context.Context, sitemapURL string, depth int) ([]Entry, error) {
	body, err := p.client.GetBody(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}

	// Check if it's a sitemap index (contains <sitemapindex>)
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	if !bytes.Contains(head, []byte("sitemapindex")) {
		return p.parseSitemap(bytes.NewReader(body))
	}

	if depth >= maxDepth {
		return nil, fmt.Errorf("sitemap index nesting deeper than %d at %s", maxDepth, sitemapURL)
	}
	sitemapURLs, err := p.parseSitemapIndex(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap index: %w", err)
	}
	if len(sitemapURLs) == 0 {
		return nil, fmt.Errorf("sitemap index contained no sitemap URLs")
	}

	var allEntries []Entry
	for _, child := range sitemapURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := p.parseFromURL(ctx, child, depth+1)
		if err != nil {
			p.log.Warn("skipping child sitemap", "url", child, "error", err)
			continue
		}
		allEntries = append(allEntries, entries...)
	}

	if len(allEntries) == 0 {
		return nil, fmt.Errorf("no entries found in any sitemap from index")
	}
	return allEntries, nil
}

// parseSitemapIndex parses a sitemap index file
func (p *Parser) parseSitemapIndex(reader io.Reader) ([]string, error) {
	var index sitemapIndex
	if err := xml.NewDecoder(reader).Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap index XML: %w", err)
	}

	urls := make([]string, 0, len(index.Sitemaps))
	for _, ref := range index.Sitemaps {
		if ref.Location != "" {
			urls = append(urls, ref.Location)
		}
	}
	return urls, nil
}

// parseSitemap parses a regular sitemap XML
func (p *Parser) parseSitemap(reader io.Reader) ([]Entry, error) {
	var set urlSet
	if err := xml.NewDecoder(reader).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap XML: %w", err)
	}

	entries := make([]Entry, 0, len(set.URLs))
	for _, u := range set.URLs {
		if u.Location != "" {
			entries = append(entries, Entry{Location: u.Location, LastMod: u.LastMod})
		}
	}
	return entries, nil
}
