package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/content"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
)

// ManualFile is the format of a hand-maintained inputs file: records typed in
// by an admin, announcement texts pasted from posters or chats, and paths of
// saved pages or PDF circulars.
type ManualFile struct {
	Records   []domain.Candidate    `yaml:"records"`
	RawInputs []domain.RawTextInput `yaml:"raw_inputs"`
	RawFiles  []RawFile             `yaml:"raw_files"`
}

// RawFile points at a saved announcement. Relative paths are resolved
// against the inputs file's directory. .pdf and .html/.htm files have their
// text extracted; anything else is read as plain text.
type RawFile struct {
	Path       string            `yaml:"path"`
	Source     string            `yaml:"source"`
	SourceType domain.SourceType `yaml:"source_type"`
	SourceURL  string            `yaml:"source_url"`
}

// ManualSource emits catalog-inline records and raw inputs plus the contents
// of an optional inputs file.
type ManualSource struct {
	cfg  config.SourceConfig
	meta domain.SourceMeta
	log  *logger.Logger
}

func NewManualSource(cfg config.SourceConfig, log *logger.Logger) *ManualSource {
	return &ManualSource{
		cfg:  cfg,
		meta: metaFor(cfg, domain.SourceManual, domain.ConfidenceLow),
		log:  log.Component("manual").With("source", cfg.Name),
	}
}

func (s *ManualSource) Name() string            { return s.cfg.Name }
func (s *ManualSource) Meta() domain.SourceMeta { return s.meta }

func (s *ManualSource) Fetch(ctx context.Context) (Batch, error) {
	b := Batch{
		Candidates: append([]domain.Candidate(nil), s.cfg.Records...),
		RawTexts:   s.rawInputs(s.cfg.RawInputs),
	}
	if s.cfg.File == "" {
		return b, nil
	}

	mf, err := ReadManualFile(s.cfg.File)
	if err != nil {
		return Batch{}, fetchErr(s.cfg.Name, err)
	}
	b.Candidates = append(b.Candidates, mf.Records...)
	b.RawTexts = append(b.RawTexts, s.rawInputs(mf.RawInputs)...)

	dir := filepath.Dir(s.cfg.File)
	for _, rf := range mf.RawFiles {
		if err := ctx.Err(); err != nil {
			return Batch{}, fetchErr(s.cfg.Name, err)
		}
		text, err := readRawFile(dir, rf.Path)
		if err != nil {
			s.log.Warn("skipping raw file", "path", rf.Path, "error", err)
			continue
		}
		if in := s.rawInput(domain.RawTextInput{
			Source: rf.Source, SourceType: rf.SourceType, SourceURL: rf.SourceURL, RawText: text,
		}); !in.Empty() {
			b.RawTexts = append(b.RawTexts, in)
		}
	}
	return b, nil
}

// ReadManualFile parses a manual inputs file.
func ReadManualFile(path string) (*ManualFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manual inputs: %w", err)
	}
	var mf ManualFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse manual inputs %s: %w", path, err)
	}
	return &mf, nil
}

func (s *ManualSource) rawInputs(in []domain.RawTextInput) []domain.RawTextInput {
	out := make([]domain.RawTextInput, 0, len(in))
	for _, r := range in {
		if r = s.rawInput(r); !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

// rawInput attributes an input without its own source to this adapter.
func (s *ManualSource) rawInput(r domain.RawTextInput) domain.RawTextInput {
	if strings.TrimSpace(r.Source) == "" {
		r.Source = s.meta.Name
		if r.SourceType == "" {
			r.SourceType = s.meta.Type
		}
	}
	if r.SourceType == "" {
		r.SourceType = domain.SourceCommunity
	}
	return r
}

func readRawFile(dir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := content.ExtractTextFromPDFFile(path)
		if err != nil {
			return "", err
		}
		return content.Compose("", text), nil
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return content.Announcement(string(data))
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
}
