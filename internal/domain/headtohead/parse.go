package headtohead

import (
	"strconv"
	"strings"
	"time"
)

const (
	enDash = "–"
	hyphen = "-"
)

// ParseScore reads "2–1" or "2-1". A side that fails to parse counts as 0;
// the score is rejected when it is empty, a bare placeholder, has no
// separator or neither side parses.
func ParseScore(score string) (home, away int, ok bool) {
	score = strings.TrimSpace(score)
	if score == "" || score == enDash || score == hyphen {
		return 0, 0, false
	}

	sep := enDash
	idx := strings.Index(score, enDash)
	if idx < 0 {
		sep = hyphen
		idx = strings.Index(score, hyphen)
	}
	if idx < 0 {
		return 0, 0, false
	}

	home, homeOK := leadingInt(score[:idx])
	away, awayOK := leadingInt(score[idx+len(sep):])
	if !homeOK && !awayOK {
		return 0, 0, false
	}
	return home, away, true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	out, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return out, true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseDate reads a meeting date in loc. The boolean is false for dates in
// none of the known layouts.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}
