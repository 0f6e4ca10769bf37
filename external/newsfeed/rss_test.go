package newsfeed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRSS_SkipsUntitledItems(t *testing.T) {
	raw := `<rss><channel>
<item><title></title><link>https://a</link></item>
<item><title>Fenerbahce &amp; Besiktas derby preview</title><description>Plain text</description><pubDate>bogus</pubDate></item>
</channel></rss>`

	items, err := parseRSS([]byte(raw), Feed{Name: "BBC Sport", URL: "https://feeds.bbci.co.uk/sport/football/rss.xml"}, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fenerbahce & Besiktas derby preview", items[0].Title)
	assert.Equal(t, "Plain text", items[0].Description)
	assert.True(t, items[0].PublishedAt.IsZero())
}

func TestParseRSS_InvalidDocument(t *testing.T) {
	_, err := parseRSS([]byte("not xml at all <"), Feed{Name: "x"}, 10)
	assert.Error(t, err)
}

func TestParsePubDate(t *testing.T) {
	want := time.Date(2025, time.March, 9, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, want, parsePubDate("Sun, 09 Mar 2025 18:30:00 +0000"))
	assert.Equal(t, want, parsePubDate("Sun, 9 Mar 2025 20:30:00 +0200"))
	assert.Equal(t, want, parsePubDate("2025-03-09T18:30:00Z"))
	assert.True(t, parsePubDate("").IsZero())
}

func TestDescriptionMarkdown_Truncates(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 200) + "</p>"
	got := descriptionMarkdown(long, "https://www.espn.com")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), maxDescriptionRunes+3)
}

func TestFeedDomain(t *testing.T) {
	assert.Equal(t, "https://www.goal.com", feedDomain("https://www.goal.com/feeds/en/news"))
	assert.Equal(t, "", feedDomain("::bad"))
}
