package extraction

import (
	"context"
	"strings"
	"time"

	"hackathon-radar/pkg/domain"
)

// Disabled is used when no credential is configured. It fails every call
// with ErrUnavailable and never touches the network.
type Disabled struct {
	Reason string
}

func (d Disabled) Name() string { return "disabled" }

func (d Disabled) Extract(ctx context.Context, rawText string) (domain.Candidate, error) {
	return domain.Candidate{}, &Error{Reason: ReasonUnavailable, Err: ErrUnavailable}
}

// Options selects and configures a backend.
type Options struct {
	Provider      string // openai | gemini
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	Timeout       time.Duration
}

// New returns the configured backend, or Disabled when the selected
// provider has no credential.
func New(ctx context.Context, opts Options) (Extractor, error) {
	switch strings.ToLower(opts.Provider) {
	case "gemini":
		if opts.GeminiKey == "" {
			return Disabled{Reason: "GEMINI_API_KEY not set"}, nil
		}
		return NewGemini(ctx, GeminiConfig{APIKey: opts.GeminiKey, Model: opts.GeminiModel})
	default:
		if opts.OpenAIKey == "" {
			return Disabled{Reason: "OPENAI_API_KEY not set"}, nil
		}
		return NewOpenAI(OpenAIConfig{
			APIKey:  opts.OpenAIKey,
			BaseURL: opts.OpenAIBaseURL,
			Model:   opts.OpenAIModel,
			Timeout: opts.Timeout,
		}), nil
	}
}
