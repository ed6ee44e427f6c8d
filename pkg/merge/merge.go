package merge

import (
	"errors"
	"fmt"

	"hackathon-radar/pkg/domain"
)

var ErrInvalidRecord = errors.New("record has empty source or id")

// Merge appends to existing every record whose (source, id) is not already
// present. The first record seen for a key wins, whether it was stored by an
// earlier run or appeared earlier in records. existing is not modified.
//
// The returned dataset keeps existing order and then first-seen order of the
// new records. added counts the appended records.
func Merge(existing domain.Dataset, records []domain.Hackathon) (domain.Dataset, int, error) {
	seen := make(map[domain.Key]bool, len(existing)+len(records))
	updated := make(domain.Dataset, 0, len(existing)+len(records))

	// Stored records are carried over untouched, duplicates included.
	for _, h := range existing {
		seen[h.Key()] = true
		updated = append(updated, h)
	}

	added := 0
	for _, h := range records {
		if h.Source == "" || h.ID == "" {
			return nil, 0, fmt.Errorf("merge %q: %w", h.Name, ErrInvalidRecord)
		}
		k := h.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		updated = append(updated, h)
		added++
	}
	return updated, added, nil
}

// NewOnly returns the records of merged that are not in existing. It is used
// by backends that append instead of rewriting the whole dataset.
func NewOnly(existing, merged domain.Dataset) []domain.Hackathon {
	keys := existing.Keys()
	out := make([]domain.Hackathon, 0)
	for _, h := range merged {
		if !keys[h.Key()] {
			out = append(out, h)
		}
	}
	return out
}
