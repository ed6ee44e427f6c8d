package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
)

func listingPage(names ...string) string {
	html := `<html><body><div class="grid">`
	for _, n := range names {
		html += fmt.Sprintf(`<div class="card"><h3>%s</h3><a href="/e/%s">details</a><span class="city">Hyderabad</span></div>`, n, n)
	}
	return html + `</div></body></html>`
}

func TestScrapeSource_PagePattern(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events/page/1":
			w.Write([]byte(listingPage("alpha", "beta")))
		case "/events/page/2":
			w.Write([]byte(listingPage("gamma")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	src := NewScrapeSource(config.SourceConfig{
		Name:        "Hyderabad Events",
		Type:        config.KindScrape,
		URL:         server.URL + "/events",
		PagePattern: "/page/%d",
		Selectors:   config.Selectors{Item: ".card", Name: "h3", Link: "a", Location: ".city"},
	}, httpclient.NewClient(httpclient.BrowserClient), logger.Nop())

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, b.Candidates, 3)
	assert.Equal(t, "gamma", b.Candidates[2].Name)
	assert.Equal(t, server.URL+"/e/alpha", b.Candidates[0].SourceURL)
	assert.Equal(t, "Hyderabad", b.Candidates[0].Location)

	meta := src.Meta()
	assert.Equal(t, domain.ConfidenceMedium, meta.Confidence)
	assert.Equal(t, server.URL+"/events", meta.URL)
}

func TestScrapeSource_NoListingsOnFirstPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>Coming soon</body></html>`))
	}))
	defer server.Close()

	src := NewScrapeSource(config.SourceConfig{
		Name: "Empty", URL: server.URL, Selectors: config.Selectors{Item: ".card"},
	}, httpclient.NewClient(httpclient.BrowserClient), logger.Nop())

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, b.Len())
}
