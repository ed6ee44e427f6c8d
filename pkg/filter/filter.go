package filter

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"hackathon-radar/pkg/domain"
)

// Filter defines the interface for URL filtering
type Filter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// FilterURLs applies all filters to a list of URLs
func FilterURLs(ctx context.Context, urls []string, filters ...Filter) ([]string, error) {
	filtered := make([]string, 0, len(urls))

	for _, urlStr := range urls {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, urlStr)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", urlStr, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, urlStr)
		}
	}

	return filtered, nil
}

// BaseURLFilter filters out base/root URLs
type BaseURLFilter struct{}

// NewBaseURLFilter creates a new base URL filter
func NewBaseURLFilter() *BaseURLFilter {
	return &BaseURLFilter{}
}

// ShouldKeep returns false if URL is a base/root URL
func (f *BaseURLFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return true, nil
	}
	return strings.Trim(parsed.Path, "/") != "", nil
}

// PathContainsFilter keeps URLs whose path contains a fragment, e.g.
// "/events/" on a college sitemap.
type PathContainsFilter struct {
	fragment string
}

func NewPathContainsFilter(fragment string) *PathContainsFilter {
	return &PathContainsFilter{fragment: strings.ToLower(fragment)}
}

func (f *PathContainsFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	if f.fragment == "" {
		return true, nil
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, nil
	}
	return strings.Contains(strings.ToLower(parsed.Path), f.fragment), nil
}

// AlreadyFetchedFilter filters out URLs that already exist in the provided set
type AlreadyFetchedFilter struct {
	fetchedURLs map[string]bool
}

// NewAlreadyFetchedFilter creates a new already-fetched filter
func NewAlreadyFetchedFilter(fetchedURLs map[string]bool) *AlreadyFetchedFilter {
	return &AlreadyFetchedFilter{
		fetchedURLs: fetchedURLs,
	}
}

// ShouldKeep returns false if URL is already in the fetched set
func (f *AlreadyFetchedFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return !f.fetchedURLs[urlStr], nil
}

// Keywords keeps raw text that mentions at least one keyword,
// case-insensitively. An empty keyword list keeps everything.
type Keywords []string

func (k Keywords) Keep(text string) bool {
	if len(k) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range k {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// RawTexts returns the inputs whose text passes k.
func (k Keywords) RawTexts(in []domain.RawTextInput) []domain.RawTextInput {
	if len(k) == 0 {
		return in
	}
	out := make([]domain.RawTextInput, 0, len(in))
	for _, r := range in {
		if k.Keep(r.RawText) {
			out = append(out, r)
		}
	}
	return out
}

// FieldEquals keeps candidates whose named fields equal the given values,
// case-insensitively. Field names are the JSON names of domain.Candidate.
type FieldEquals map[string]string

// Validate rejects unknown field names.
func (m FieldEquals) Validate() error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := field(domain.Candidate{}, k); !ok {
			return fmt.Errorf("unknown match field %q", k)
		}
	}
	return nil
}

func (m FieldEquals) Keep(c domain.Candidate) bool {
	for k, want := range m {
		got, ok := field(c, k)
		if !ok || !strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want)) {
			return false
		}
	}
	return true
}

// Candidates returns the candidates that pass m.
func (m FieldEquals) Candidates(in []domain.Candidate) []domain.Candidate {
	if len(m) == 0 {
		return in
	}
	out := make([]domain.Candidate, 0, len(in))
	for _, c := range in {
		if m.Keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func field(c domain.Candidate, name string) (string, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "name":
		return c.Name, true
	case "college":
		return c.College, true
	case "location":
		return c.Location, true
	case "mode":
		return c.Mode, true
	case "start_date":
		return c.StartDate, true
	case "end_date":
		return c.EndDate, true
	case "source_url":
		return c.SourceURL, true
	case "confidence":
		return string(c.Confidence), true
	}
	return "", false
}
