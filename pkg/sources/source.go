// Package sources holds the adapters that pull hackathon listings from
// external systems. Every adapter is independent of the others; a failing
// adapter returns an error and contributes nothing.
package sources

import (
	"context"
	"fmt"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/filter"
)

// Batch is what one adapter produced in one run.
type Batch struct {
	Candidates []domain.Candidate
	RawTexts   []domain.RawTextInput
}

// Len returns the number of items in the batch.
func (b Batch) Len() int { return len(b.Candidates) + len(b.RawTexts) }

// Source is one external listing provider.
type Source interface {
	Name() string
	// Meta fills provenance fields that candidates leave empty.
	Meta() domain.SourceMeta
	Fetch(ctx context.Context) (Batch, error)
}

// FetchError wraps any failure of an adapter.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(source string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Source: source, Err: err}
}

// filtered applies per-source keyword and field filters to another source.
type filtered struct {
	Source
	keywords filter.Keywords
	match    filter.FieldEquals
}

// WithFilters wraps src so that raw texts must mention one of keywords and
// candidates must match every field in match. Empty filters pass all items.
func WithFilters(src Source, keywords []string, match map[string]string) Source {
	if len(keywords) == 0 && len(match) == 0 {
		return src
	}
	return &filtered{Source: src, keywords: keywords, match: match}
}

func (f *filtered) Fetch(ctx context.Context) (Batch, error) {
	b, err := f.Source.Fetch(ctx)
	if err != nil {
		return Batch{}, err
	}
	return Batch{
		Candidates: f.match.Candidates(b.Candidates),
		RawTexts:   f.keywords.RawTexts(b.RawTexts),
	}, nil
}
