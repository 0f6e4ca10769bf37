package news

import (
	"sort"
	"strings"
)

const (
	DefaultLimit    = 15
	generalFallback = 10
	minKeywordLen   = 4
)

// FilterByTeams keeps items whose title or description mentions any word of
// either team name longer than three characters. Matching is case-insensitive.
func FilterByTeams(items []Item, home, away string) []Item {
	keywords := append(teamKeywords(home), teamKeywords(away)...)
	if len(keywords) == 0 {
		return []Item{}
	}

	out := make([]Item, 0, len(items))
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Description)
		for _, word := range keywords {
			if strings.Contains(text, word) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func teamKeywords(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	out := make([]string, 0, len(fields))
	for _, word := range fields {
		if len([]rune(word)) >= minKeywordLen {
			out = append(out, word)
		}
	}
	return out
}

// SortNewestFirst orders items by publish time descending. Undated items sort last.
func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}

// Select picks the headlines shown for a match: team-related items, or the
// first general items when nothing mentions either team, newest first.
func Select(items []Item, home, away string, limit int) []Item {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	relevant := FilterByTeams(items, home, away)
	if len(relevant) == 0 {
		n := min(len(items), generalFallback)
		relevant = append(make([]Item, 0, n), items[:n]...)
	}

	SortNewestFirst(relevant)
	if len(relevant) > limit {
		relevant = relevant[:limit]
	}
	return relevant
}
