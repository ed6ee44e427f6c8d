package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// MaxAnnouncementChars caps the text handed to extraction. Institutional
// pages carry long footers and menus that only cost tokens.
const MaxAnnouncementChars = 6000

// ExtractText extracts the main text from HTML content
func ExtractText(htmlContent string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return strings.TrimSpace(article.TextContent), nil
}

// ExtractTitle extracts the page title from HTML content with fallback mechanisms
func ExtractTitle(htmlContent string) (string, error) {
	// Try readability first
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		title := strings.TrimSpace(article.Title)
		if title != "" {
			return title, nil
		}
	}

	// Fallback: Try parsing HTML directly with goquery
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}

// Announcement turns an HTML page into the text sent to extraction: the
// title, a blank line, then the main text, whitespace-collapsed per line and
// truncated to MaxAnnouncementChars. A page without readable text yields "".
func Announcement(htmlContent string) (string, error) {
	text, err := ExtractText(htmlContent)
	if err != nil {
		return "", err
	}
	title, _ := ExtractTitle(htmlContent)
	return Compose(title, text), nil
}

// Compose joins a title and body into one announcement text.
func Compose(title, body string) string {
	body = tidy(body)
	title = strings.Join(strings.Fields(title), " ")
	if body == "" {
		return ""
	}
	out := body
	if title != "" && !strings.HasPrefix(body, title) {
		out = title + "\n\n" + body
	}
	return truncate(out, MaxAnnouncementChars)
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	// back off to a rune boundary
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

// PlainText returns the visible text of an HTML fragment, such as a feed
// item description. Input that does not parse is returned unchanged.
func PlainText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return tidy(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return tidy(fragment)
	}
	doc.Find("script, style").Remove()
	doc.Find("br, p, div, li").Each(func(i int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return tidy(doc.Text())
}
