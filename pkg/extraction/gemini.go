package extraction

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"hackathon-radar/pkg/domain"
)

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint. Tests point it at a local server.
	BaseURL string
}

// GeminiExtractor asks Gemini for a JSON response with the same contract as
// the OpenAI backend.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg GeminiConfig) (*GeminiExtractor, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: cfg.Model}, nil
}

func (e *GeminiExtractor) Name() string { return "gemini:" + e.model }

func (e *GeminiExtractor) Extract(ctx context.Context, rawText string) (domain.Candidate, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(rawText, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0),
			ResponseMIMEType:  "application/json",
		})
	if err != nil {
		return domain.Candidate{}, fail(ReasonTransport, "generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return domain.Candidate{}, fail(ReasonPayload, "response has no text")
	}
	result, err := ParseResponse(text)
	if err != nil {
		return domain.Candidate{}, err
	}
	return result.Candidate(), nil
}
