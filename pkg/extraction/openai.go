package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/httpclient"
)

// OpenAIConfig configures the chat-completions backend. BaseURL may point at
// any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIExtractor calls POST {BaseURL}/chat/completions.
type OpenAIExtractor struct {
	cfg  OpenAIConfig
	http *httpclient.HTTPClient
}

func NewOpenAI(cfg OpenAIConfig) *OpenAIExtractor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &OpenAIExtractor{
		cfg:  cfg,
		http: httpclient.NewClientWithTimeout(httpclient.APIClient, cfg.Timeout),
	}
}

func (e *OpenAIExtractor) Name() string { return "openai:" + e.cfg.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *OpenAIExtractor) Extract(ctx context.Context, rawText string) (domain.Candidate, error) {
	payload, err := json.Marshal(chatRequest{
		Model: e.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: rawText},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return domain.Candidate{}, fail(ReasonPayload, "encode request: %w", err)
	}

	url := strings.TrimRight(e.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return domain.Candidate{}, fail(ReasonTransport, "build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return domain.Candidate{}, fail(ReasonTransport, "call %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return domain.Candidate{}, fail(ReasonTransport, "read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Candidate{}, &Error{Reason: ReasonTransport, Err: &httpclient.HTTPError{
			Method: http.MethodPost, URL: url, StatusCode: resp.StatusCode, Body: body,
		}}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return domain.Candidate{}, fail(ReasonPayload, "decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return domain.Candidate{}, fail(ReasonPayload, "response has no message content")
	}

	result, err := ParseResponse(*out.Choices[0].Message.Content)
	if err != nil {
		return domain.Candidate{}, err
	}
	return result.Candidate(), nil
}
