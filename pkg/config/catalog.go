package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hackathon-radar/pkg/domain"
)

//go:embed sources.yaml
var defaultCatalog []byte

// Source kinds understood by the adapter factory.
const (
	KindAPI          = "api"
	KindScrape       = "scrape"
	KindFeed         = "feed"
	KindAnnouncement = "announcement"
	KindManual       = "manual"
)

var ErrEmptyCatalog = errors.New("source catalog has no sources")

// Catalog is the list of configured sources.
type Catalog struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one adapter. Which fields matter depends on Type.
type SourceConfig struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	SourceType domain.SourceType `yaml:"source_type"`
	Disabled   bool              `yaml:"disabled"`
	// Confidence overrides the kind's default confidence for records that
	// do not carry their own.
	Confidence domain.Confidence `yaml:"confidence"`

	// HTTP header profile: browser | cloudflare | api
	Client string `yaml:"client"`

	// api / scrape / feed
	URL      string            `yaml:"url"`
	Site     string            `yaml:"site"`
	Params   map[string]string `yaml:"params"`
	MaxPages int               `yaml:"max_pages"`

	// scrape
	PagePattern string    `yaml:"page_pattern"`
	Selectors   Selectors `yaml:"selectors"`

	// announcement
	Pages        []string `yaml:"pages"`
	PagesFile    string   `yaml:"pages_file"`
	Sitemap      string   `yaml:"sitemap"`
	PathContains string   `yaml:"path_contains"`
	MaxItems     int      `yaml:"max_items"`

	// manual
	File      string                `yaml:"file"`
	Records   []domain.Candidate    `yaml:"records"`
	RawInputs []domain.RawTextInput `yaml:"raw_inputs"`

	// Filters applied to whatever the adapter emits.
	Keywords []string          `yaml:"keywords"`
	Match    map[string]string `yaml:"match"`
}

// Selectors are the CSS selectors used by scrape sources. Item is required,
// the rest are looked up inside each item.
type Selectors struct {
	Item     string `yaml:"item"`
	Name     string `yaml:"name"`
	Link     string `yaml:"link"`
	Date     string `yaml:"date"`
	End      string `yaml:"end"`
	Location string `yaml:"location"`
	Mode     string `yaml:"mode"`
	College  string `yaml:"college"`
	IDAttr   string `yaml:"id_attr"`
}

// LoadCatalog reads the catalog at path, or the embedded default when path
// is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source catalog: %w", err)
		}
		data = b
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog. Problems with single
// entries do not discard the catalog: the returned catalog then holds only
// the valid entries and err lists the others. A nil catalog means the file
// itself is unusable.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse source catalog: %w", err)
	}
	if len(c.Sources) == 0 {
		return nil, ErrEmptyCatalog
	}
	valid, err := c.partition()
	if err != nil {
		return &Catalog{Sources: valid}, err
	}
	return &c, nil
}

// Validate checks every source and returns all problems joined together.
func (c *Catalog) Validate() error {
	if len(c.Sources) == 0 {
		return ErrEmptyCatalog
	}
	_, err := c.partition()
	return err
}

// partition returns the entries that pass validation, in catalog order. A
// repeated name keeps its first occurrence.
func (c *Catalog) partition() ([]SourceConfig, error) {
	var valid []SourceConfig
	var errs []error
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("source #%d: name is required", i+1))
			continue
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("source %q: duplicate name", s.Name))
			continue
		}
		seen[s.Name] = true
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("source %q: %w", s.Name, err))
			continue
		}
		valid = append(valid, s)
	}
	return valid, errors.Join(errs...)
}

func (s SourceConfig) validate() error {
	switch s.Type {
	case KindAPI:
		if s.URL == "" {
			return errors.New("url is required")
		}
		if s.Site == "" {
			return errors.New("site decoder is required")
		}
	case KindScrape:
		if s.URL == "" {
			return errors.New("url is required")
		}
		if s.Selectors.Item == "" {
			return errors.New("selectors.item is required")
		}
	case KindFeed:
		if s.URL == "" {
			return errors.New("url is required")
		}
	case KindAnnouncement:
		if len(s.Pages) == 0 && s.PagesFile == "" && s.Sitemap == "" {
			return errors.New("pages, pages_file or sitemap is required")
		}
	case KindManual:
		if s.File == "" && len(s.Records) == 0 && len(s.RawInputs) == 0 {
			return errors.New("file, records or raw_inputs is required")
		}
	default:
		return fmt.Errorf("unknown type %q", s.Type)
	}
	if s.Confidence != "" && !s.Confidence.Valid() {
		return fmt.Errorf("invalid confidence %q", s.Confidence)
	}
	return nil
}

// Enabled returns the sources not marked disabled.
func (c *Catalog) Enabled() []SourceConfig {
	out := make([]SourceConfig, 0, len(c.Sources))
	for _, s := range c.Sources {
		if !s.Disabled {
			out = append(out, s)
		}
	}
	return out
}
