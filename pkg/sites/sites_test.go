package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackathon-radar/pkg/domain"
)

func TestDecodeUnstop(t *testing.T) {
	body := `{"data":{"data":[
		{"id":101,"title":"Smart India Hack","slug":"hackathons/sih-101","region":"Hyderabad","mode":"offline","start_date":"2026-03-01T09:00:00+05:30","end_date":"2026-03-02","organisation":{"name":"IIIT Hyderabad"}},
		{"id":"102","title":"Remote Jam","slug":"","region":"","mode":"online"}
	]}}`
	got, err := DecodeUnstop([]byte(body), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "unstop_101", got[0].ID)
	assert.Equal(t, "https://unstop.com/hackathons/sih-101", got[0].SourceURL)
	assert.Equal(t, "IIIT Hyderabad", got[0].College)
	assert.Equal(t, "unstop_102", got[1].ID)
	assert.Equal(t, "", got[1].SourceURL)
	assert.Equal(t, "", got[1].Location)
}

func TestDecodeUnstop_EmptyAndMalformed(t *testing.T) {
	got, err := DecodeUnstop([]byte(`{"data":null}`), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = DecodeUnstop([]byte(`<html>rate limited</html>`), nil)
	assert.Error(t, err)
}

func TestDecodeDevfolio(t *testing.T) {
	body := `{"hackathons":[{"slug":"codefest","name":"CodeFest","location":"","is_online":true,"starts_at":"2026-03-03","ends_at":"2026-03-04"}]}`
	got, err := DecodeDevfolio([]byte(body), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Candidate{
		ID: "devfolio_codefest", Name: "CodeFest", Mode: "Online",
		StartDate: "2026-03-03", EndDate: "2026-03-04", SourceURL: "https://devfolio.co/hackathons/codefest",
	}, got[0])
}

func TestDecodeHackerEarth_FiltersNonHackathons(t *testing.T) {
	body := `[
		{"id":1,"title":"Hiring Challenge","event_type":"hiring","url":"https://he/1"},
		{"id":2,"title":"HE Hack","event_type":"hackathon","url":"https://he/2","city":"Pune","start_utc":"2026-04-01 10:00:00"},
		{"id":3,"title":"HE Online","event_type":"hackathon","url":"https://he/3","city":""}
	]`
	got, err := DecodeHackerEarth([]byte(body), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hackerearth_2", got[0].ID)
	assert.Equal(t, "Offline", got[0].Mode)
	assert.Equal(t, "Online", got[1].Mode)

	_, err = DecodeHackerEarth([]byte(`{"events":[]}`), nil)
	assert.Error(t, err, "object instead of array")
}

func TestDecodeMLH_Region(t *testing.T) {
	body := `{"data":[
		{"id":"a","name":"HackIndia","region":"Asia","event_type":"In-Person","website":"https://hackindia.xyz"},
		{"id":"b","name":"HackNY","region":"North America"}
	]}`
	got, err := DecodeMLH([]byte(body), map[string]string{"region": "asia"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mlh_a", got[0].ID)

	all, err := DecodeMLH([]byte(body), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDecodeHackalist_IDFromName(t *testing.T) {
	body := `{"hackathons":[{"name":"Hack  The North","url":"https://hackthenorth.com","location":"Waterloo","startDate":"September 12","endDate":"September 14"}]}`
	got, err := DecodeHackalist([]byte(body), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hackalist_Hack_The_North", got[0].ID)
	assert.Equal(t, "Offline", got[0].Mode)
}

func TestDecodeOthers(t *testing.T) {
	dp, err := DecodeDevpost([]byte(`{"hackathons":[{"id":9,"title":"DP","online":"true","url":"https://dp/9"}]}`), nil)
	require.NoError(t, err)
	require.Len(t, dp, 1)
	assert.Equal(t, "devpost_9", dp[0].ID)
	assert.Equal(t, "Online", dp[0].Mode)

	hc, err := DecodeHackathonCom([]byte(`{"data":[{"id":5,"name":"HC","city":"Paris","online":false}]}`), nil)
	require.NoError(t, err)
	require.Len(t, hc, 1)
	assert.Equal(t, "hackathoncom_5", hc[0].ID)
	assert.Equal(t, "Offline", hc[0].Mode)

	tk, err := DecodeTaikai([]byte(`{"data":[{"id":"x1","name":"TK","slug":"org/hackathons/tk","remote":true}]}`), nil)
	require.NoError(t, err)
	require.Len(t, tk, 1)
	assert.Equal(t, "https://taikai.network/org/hackathons/tk", tk[0].SourceURL)
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		_, err := Lookup(name)
		assert.NoError(t, err, name)
	}
	assert.Len(t, Names(), 8)
	_, err := Lookup("meetup")
	assert.Error(t, err)
}

const listingHTML = `<html><head><link rel="canonical" href="https://events.example.edu/hackathons?page=1"></head><body>
<ul>
  <li class="event" data-id="e-1">
    <a class="title" href="/events/innovate-2026">Innovate  2026</a>
    <time class="start" datetime="2026-02-12">Feb 12</time>
    <span class="where">Gandipet</span>
  </li>
  <li class="event" data-id="e-2">
    <a class="title" href="https://other.example.com/x#details">Open Hack</a>
  </li>
  <li class="event" data-id="e-1">
    <a class="title" href="/events/innovate-2026">Innovate 2026</a>
  </li>
  <li class="event"><a class="title" href="#"></a></li>
</ul></body></html>`

func TestExtractListings(t *testing.T) {
	got, err := ExtractListings(listingHTML, "https://fallback.example.com/list", Selectors{
		Item: "li.event", Name: "a.title", Link: "a.title", Date: "time.start", Location: ".where", IDAttr: "data-id",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "e-1", got[0].ID)
	assert.Equal(t, "Innovate 2026", got[0].Name)
	assert.Equal(t, "https://events.example.edu/events/innovate-2026", got[0].SourceURL)
	assert.Equal(t, "2026-02-12", got[0].StartDate)
	assert.Equal(t, "Gandipet", got[0].Location)

	assert.Equal(t, "https://other.example.com/x", got[1].SourceURL)
}

func TestExtractListings_PageURLFallback(t *testing.T) {
	html := `<div class="card"><h3>Hack A</h3><a href="a.html">more</a></div>`
	got, err := ExtractListings(html, "https://site.example/list/", Selectors{Item: ".card", Name: "h3", Link: "a"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://site.example/list/a.html", got[0].SourceURL)

	_, err = ExtractListings(html, "", Selectors{})
	assert.Error(t, err)
}
