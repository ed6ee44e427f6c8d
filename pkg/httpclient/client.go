package httpclient

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers to avoid 406 (Not Acceptable) errors
	// Used for listing pages that require browser-like User-Agent and headers
	BrowserClient ClientType = "browser"

	// CloudflareClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// Used for Cloudflare-protected sites that block browser-like User-Agents
	CloudflareClient ClientType = "cloudflare"

	// APIClient asks for JSON and identifies the ingester honestly.
	APIClient ClientType = "api"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "hackathon-radar/1.0 (+https://github.com/hackathon-radar)"
	maxBodyBytes   = 16 << 20
)

// ParseClientType maps a config string to a ClientType, falling back to def.
func ParseClientType(s string, def ClientType) ClientType {
	switch ClientType(strings.ToLower(strings.TrimSpace(s))) {
	case BrowserClient:
		return BrowserClient
	case CloudflareClient:
		return CloudflareClient
	case APIClient:
		return APIClient
	}
	return def
}

// HTTPError carries status/body for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// HTTPClient wraps an http.Client with configuration
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
}

// NewClient creates a new HTTP client with the specified type
func NewClient(clientType ClientType) *HTTPClient {
	return NewClientWithTimeout(clientType, defaultTimeout)
}

// NewClientWithTimeout creates a client whose requests are bounded by timeout.
func NewClientWithTimeout(clientType ClientType, timeout time.Duration) *HTTPClient {
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:     client,
		clientType: clientType,
	}
}

// Type returns the header profile of the client.
func (c *HTTPClient) Type() ClientType {
	return c.clientType
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// GetBody performs a GET and returns the decoded body. Non-2xx responses are
// returned as *HTTPError.
func (c *HTTPClient) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Method: http.MethodGet, URL: url, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// GetJSON fetches url and decodes the JSON body into out.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.GetBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}
	return nil
}

// ReadBody reads a response body, undoing br or gzip content encoding.
func ReadBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		// Browser-like headers to avoid 406 (Not Acceptable) errors
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip, br")
		req.Header.Set("Upgrade-Insecure-Requests", "1")

	case CloudflareClient:
		// Cloudflare allows simple tools like curl but blocks browser-like User-Agents
		req.Header.Set("User-Agent", "curl/8.7.1")

	case APIClient:
		req.Header.Set("User-Agent", userAgent)
		if req.Header.Get("Accept") == "" {
			req.Header.Set("Accept", "application/json")
		}
		req.Header.Set("Accept-Encoding", "gzip, br")

	default:
		// Default: use Go's default User-Agent
	}
}
