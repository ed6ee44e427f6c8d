package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/httpclient"
	"hackathon-radar/pkg/logger"
)

const eventPage = `<html><head><title>Innovation Hackathon 2026</title></head><body>
<nav>Home | Admissions | Placements</nav>
<article><h1>Innovation Hackathon 2026</h1>
<p>The Department of CSE at Chaitanya Bharathi Institute of Technology announces the CBIT Innovation
Hackathon from February 12 to February 14, 2026 at the Gandipet campus. Student teams from any college
may participate and build solutions around sustainability, health care and campus life.</p>
<p>Registrations close on February 5. Shortlisted teams will be informed by email and will receive
travel support. Prizes worth two lakh rupees will be awarded across three tracks.</p>
</article></body></html>`

func TestAnnouncementSource_SitemapAndPages(t *testing.T) {
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			w.Write([]byte(`<urlset>
				<url><loc>` + serverURL + `/</loc></url>
				<url><loc>` + serverURL + `/events/innovate</loc></url>
				<url><loc>` + serverURL + `/events/gone</loc></url>
				<url><loc>` + serverURL + `/news/results</loc></url>
			</urlset>`))
		case "/events/innovate":
			w.Write([]byte(eventPage))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	serverURL = server.URL

	src := NewAnnouncementSource(config.SourceConfig{
		Name:         "CBIT Website",
		Type:         config.KindAnnouncement,
		Pages:        []string{server.URL + "/events/innovate"},
		Sitemap:      server.URL + "/sitemap.xml",
		PathContains: "/events/",
	}, httpclient.NewClient(httpclient.BrowserClient), logger.Nop())

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, b.RawTexts, 1, "duplicate page collapsed, 404 page skipped")

	in := b.RawTexts[0]
	assert.Equal(t, "CBIT Website", in.Source)
	assert.Equal(t, domain.SourceInstitutional, in.SourceType)
	assert.Equal(t, server.URL+"/events/innovate", in.SourceURL)
	assert.Contains(t, in.RawText, "February 12 to February 14")
}

func TestAnnouncementSource_AllPagesFail(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	src := NewAnnouncementSource(config.SourceConfig{
		Name:  "Dead Site",
		Pages: []string{server.URL + "/a", server.URL + "/b"},
	}, httpclient.NewClient(httpclient.BrowserClient), logger.Nop())

	_, err := src.Fetch(context.Background())
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Dead Site", fetchErr.Source)
}

func TestAnnouncementSource_MaxItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventPage))
	}))
	defer server.Close()

	src := NewAnnouncementSource(config.SourceConfig{
		Name:     "Campus",
		Pages:    []string{server.URL + "/1", server.URL + "/2", server.URL + "/3"},
		MaxItems: 2,
	}, httpclient.NewClient(httpclient.BrowserClient), logger.Nop())

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, b.RawTexts, 2)
}

func TestAnnouncementSource_PagesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventPage))
	}))
	defer server.Close()

	list := filepath.Join(t.TempDir(), "pages.txt")
	body := "# CBIT notices\n" + server.URL + "/events/innovate,\n\n" + server.URL + "/events/codefest\n"
	require.NoError(t, os.WriteFile(list, []byte(body), 0o644))

	src := NewAnnouncementSource(config.SourceConfig{
		Name:      "CBIT Website",
		PagesFile: list,
	}, httpclient.NewClient(httpclient.BrowserClient), logger.Nop())

	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, b.RawTexts, 2)
	assert.Equal(t, server.URL+"/events/innovate", b.RawTexts[0].SourceURL)
}

func TestReadURLList(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("https://cbit.ac.in/events/a,\n# comment\n\n  https://cbit.ac.in/events/b  \n"), 0o644))
	urls, err := ReadURLList(good)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cbit.ac.in/events/a", "https://cbit.ac.in/events/b"}, urls)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("https://cbit.ac.in/a\nnot a url\n"), 0o644))
	_, err = ReadURLList(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ReadURLList(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
