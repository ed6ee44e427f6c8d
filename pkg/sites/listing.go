package sites

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hackathon-radar/pkg/domain"
)

// Selectors drive ExtractListings. Item selects one element per listing; the
// other selectors are evaluated inside it. Empty selectors are skipped.
type Selectors struct {
	Item     string
	Name     string
	Link     string
	Date     string
	End      string
	Location string
	Mode     string
	College  string
	// IDAttr names an attribute on the item holding a native id,
	// e.g. "data-id".
	IDAttr string
}

// ExtractListings parses an HTML listing page. pageURL resolves relative
// links when the document has no <base>, canonical or og:url hint.
func ExtractListings(html, pageURL string, sel Selectors) ([]domain.Candidate, error) {
	if sel.Item == "" {
		return nil, fmt.Errorf("item selector is required")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	baseURL := getBaseURL(doc)
	if baseURL == "" {
		baseURL = pageURL
	}

	var result []domain.Candidate
	seen := make(map[string]bool)

	doc.Find(sel.Item).Each(func(i int, item *goquery.Selection) {
		c := domain.Candidate{
			Name:      text(item, sel.Name),
			StartDate: text(item, sel.Date),
			EndDate:   text(item, sel.End),
			Location:  text(item, sel.Location),
			Mode:      text(item, sel.Mode),
			College:   text(item, sel.College),
		}
		if sel.Name == "" {
			c.Name = collapse(item.Text())
		}
		if sel.IDAttr != "" {
			if id, ok := item.Attr(sel.IDAttr); ok {
				c.ID = strings.TrimSpace(id)
			}
		}

		link := item
		if sel.Link != "" {
			link = item.Find(sel.Link).First()
		}
		if href, ok := link.Attr("href"); ok {
			c.SourceURL = normalizeURL(href, baseURL)
		}

		if c.Name == "" {
			return
		}
		// The same card often appears twice (featured + list); keep one.
		dedupKey := c.ID + "|" + c.SourceURL + "|" + strings.ToLower(c.Name)
		if seen[dedupKey] {
			return
		}
		seen[dedupKey] = true
		result = append(result, c)
	})

	return result, nil
}

func text(item *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	sel := item.Find(selector).First()
	if dt, ok := sel.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}
	return collapse(sel.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// getBaseURL extracts the base URL from the HTML document
// Tries multiple sources: <base> tag, canonical link, og:url meta tag
func getBaseURL(doc *goquery.Document) string {
	if baseHref, exists := doc.Find("base").Attr("href"); exists && baseHref != "" {
		return baseHref
	}
	for _, hint := range []struct{ selector, attr string }{
		{"link[rel='canonical']", "href"},
		{"meta[property='og:url']", "content"},
	} {
		v, exists := doc.Find(hint.selector).Attr(hint.attr)
		if !exists || v == "" {
			continue
		}
		if parsed, err := url.Parse(v); err == nil && parsed.IsAbs() {
			parsed.Path = ""
			parsed.RawQuery = ""
			parsed.Fragment = ""
			return parsed.String()
		}
	}
	return ""
}

// normalizeURL resolves href against baseURL and drops the fragment. Anchors,
// javascript: and mailto: links yield "".
func normalizeURL(href, baseURL string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	parsed.Fragment = ""
	if parsed.IsAbs() {
		return parsed.String()
	}
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
