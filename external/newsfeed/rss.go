package newsfeed

import (
	"bytes"
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"golang.org/x/net/html/charset"
)

const maxDescriptionRunes = 400

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
}

// parseRSS keeps the first limit items that carry a title.
func parseRSS(raw []byte, feed Feed, limit int) ([]news.Item, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.Strict = false
	decoder.CharsetReader = charset.NewReaderLabel

	var doc rssDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, crerr.Wrap(err, "decode rss")
	}

	domain := feedDomain(feed.URL)
	out := make([]news.Item, 0, min(limit, len(doc.Channel.Items)))
	for _, item := range doc.Channel.Items {
		if len(out) >= limit {
			break
		}
		title := plainText(item.Title)
		if title == "" {
			continue
		}
		out = append(out, news.Item{
			Title:       title,
			Description: descriptionMarkdown(item.Description, domain),
			Link:        strings.TrimSpace(item.Link),
			Source:      feed.Name,
			PublishedAt: parsePubDate(item.PubDate),
		})
	}
	return out, nil
}

// plainText strips markup some feeds embed in titles.
func plainText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func descriptionMarkdown(fragment, domain string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}

	text := fragment
	if strings.Contains(fragment, "<") {
		md, err := htmltomarkdown.ConvertString(fragment, converter.WithDomain(domain))
		if err != nil {
			text = plainText(fragment)
		} else {
			text = strings.TrimSpace(md)
		}
	}

	runes := []rune(text)
	if len(runes) > maxDescriptionRunes {
		text = strings.TrimSpace(string(runes[:maxDescriptionRunes])) + "..."
	}
	return text
}

func parsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func feedDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
