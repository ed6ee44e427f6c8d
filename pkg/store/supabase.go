package store

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/merge"
)

const (
	supabaseInsertBatch = 500
	supabasePageSize    = 1000
	supabaseColumns     = "id,name,college,location,mode,start_date,end_date,source,source_type,source_url,confidence,uploaded_at"
)

// SupabaseRESTStore talks to the hackathons table through PostgREST. It is
// used when only the project URL and API key are configured. The table is
// expected to have the same columns as SQLStore creates.
type SupabaseRESTStore struct {
	client *supabase.Client
	table  string
}

func NewSupabaseRESTStore(client *supabase.Client, table string) (*SupabaseRESTStore, error) {
	if client == nil {
		return nil, fmt.Errorf("supabase store: SDK not initialized")
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("supabase store: invalid table name %q", table)
	}
	return &SupabaseRESTStore{client: client, table: table}, nil
}

func (s *SupabaseRESTStore) Name() string { return "supabase" }

// Load selects all rows ordered by seq, one page at a time. The server may
// cap a page below supabasePageSize (max-rows), so paging stops on an empty
// page rather than a short one.
func (s *SupabaseRESTStore) Load(ctx context.Context) (domain.Dataset, error) {
	rows := domain.Dataset{}
	for offset := 0; ; {
		if err := ctx.Err(); err != nil {
			return nil, persistErr(s.Name(), "select", err)
		}
		var page []domain.Hackathon
		_, err := s.client.From(s.table).
			Select(supabaseColumns, "", false).
			Order("seq", &postgrest.OrderOpts{Ascending: true}).
			Range(offset, offset+supabasePageSize-1, "").
			ExecuteTo(&page)
		if err != nil {
			return nil, persistErr(s.Name(), "select", fmt.Errorf("offset %d: %w", offset, err))
		}
		if len(page) == 0 {
			return rows, nil
		}
		rows = append(rows, page...)
		offset += len(page)
	}
}

// Save inserts the records whose key is not in the table yet. PostgREST has
// no insert-if-absent without merging, so existing keys are read first.
// Each batch is one request and therefore one transaction; batches are sent
// in order, so a failure leaves a prefix of the new records stored.
func (s *SupabaseRESTStore) Save(ctx context.Context, dataset domain.Dataset) error {
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}
	missing := merge.NewOnly(existing, dataset)

	for start := 0; start < len(missing); start += supabaseInsertBatch {
		if err := ctx.Err(); err != nil {
			return persistErr(s.Name(), "insert", err)
		}
		end := start + supabaseInsertBatch
		if end > len(missing) {
			end = len(missing)
		}
		_, _, err := s.client.From(s.table).
			Insert(toRows(missing[start:end]), false, "", "minimal", "").
			Execute()
		if err != nil {
			return persistErr(s.Name(), "insert", fmt.Errorf("batch [%d:%d]: %w", start, end, err))
		}
	}
	return nil
}

// supabaseRow is the insert payload. PostgREST bulk inserts need every object
// to carry the same keys, so unknown dates are sent as null.
type supabaseRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	College    string  `json:"college"`
	Location   string  `json:"location"`
	Mode       string  `json:"mode"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Source     string  `json:"source"`
	SourceType string  `json:"source_type"`
	SourceURL  string  `json:"source_url"`
	Confidence string  `json:"confidence"`
	UploadedAt string  `json:"uploaded_at"`
}

func toRows(records []domain.Hackathon) []supabaseRow {
	rows := make([]supabaseRow, 0, len(records))
	for _, h := range records {
		rows = append(rows, supabaseRow{
			ID:         h.ID,
			Name:       h.Name,
			College:    h.College,
			Location:   h.Location,
			Mode:       string(h.Mode),
			StartDate:  optional(h.StartDate),
			EndDate:    optional(h.EndDate),
			Source:     h.Source,
			SourceType: string(h.SourceType),
			SourceURL:  h.SourceURL,
			Confidence: string(h.Confidence),
			UploadedAt: h.UploadedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return rows
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
