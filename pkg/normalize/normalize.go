package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"hackathon-radar/pkg/domain"
)

const (
	DefaultName       = "Unnamed Hackathon"
	DefaultCollege    = "Open"
	DefaultLocation   = "India"
	DefaultMode       = domain.ModeOffline
	DefaultConfidence = domain.ConfidenceLow
)

// idNamespace scopes derived ids so they never collide with other UUIDv5 users.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://hackathon-radar/derived-id"))

// Normalizer fills defaults and derives identity for candidates.
type Normalizer struct {
	now func() time.Time
}

// New returns a Normalizer stamping records with clock(). A nil clock uses
// time.Now.
func New(clock func() time.Time) *Normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{now: clock}
}

// Normalize turns a candidate into a canonical record. It never fails: every
// missing or unrecognised field gets its documented default.
func (n *Normalizer) Normalize(c domain.Candidate, meta domain.SourceMeta) domain.Hackathon {
	h := domain.Hackathon{
		Name:       collapse(c.Name),
		College:    collapse(c.College),
		Location:   collapse(c.Location),
		Mode:       Mode(c.Mode),
		StartDate:  Date(c.StartDate),
		EndDate:    Date(c.EndDate),
		Source:     strings.TrimSpace(c.Source),
		SourceType: c.SourceType,
		SourceURL:  strings.TrimSpace(c.SourceURL),
		Confidence: c.Confidence,
		UploadedAt: n.now().UTC(),
	}

	if h.Source == "" {
		h.Source = meta.Name
	}
	if h.SourceType == "" {
		h.SourceType = meta.Type
	}
	if h.SourceURL == "" {
		h.SourceURL = meta.URL
	}
	if h.Name == "" {
		h.Name = DefaultName
	}
	if h.College == "" {
		h.College = DefaultCollege
	}
	if h.Location == "" {
		h.Location = DefaultLocation
	}
	if !h.Confidence.Valid() {
		h.Confidence = domain.Confidence(strings.ToLower(strings.TrimSpace(string(h.Confidence))))
	}
	if !h.Confidence.Valid() {
		h.Confidence = meta.Confidence
	}
	if !h.Confidence.Valid() {
		h.Confidence = DefaultConfidence
	}

	h.ID = strings.TrimSpace(c.ID)
	if h.ID == "" {
		h.ID = DeriveID(h.Source, h.Name)
	}
	return h
}

// DeriveID computes the stable identity of a listing with no native id. It
// depends only on the source and the lower-cased, whitespace-collapsed name.
func DeriveID(source, name string) string {
	key := strings.TrimSpace(source) + "\n" + NormalizeName(name)
	return "d_" + uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// NormalizeName lower-cases a name and collapses runs of whitespace.
func NormalizeName(name string) string {
	return strings.ToLower(collapse(name))
}

// Mode maps free-form participation modes onto Online/Offline. Anything not
// recognisably online is Offline.
func Mode(raw string) domain.Mode {
	switch strings.ToLower(collapse(raw)) {
	case "online", "virtual", "remote", "digital", "online event":
		return domain.ModeOnline
	default:
		return DefaultMode
	}
}

// Date coerces a date string to YYYY-MM-DD. Unparseable input yields "".
// Numeric dates are read day-first, as Indian listings write them.
func Date(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return t.Format(domain.DateLayout)
	}
	t, err := dateparse.ParseIn(raw, time.UTC,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
