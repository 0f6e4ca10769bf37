package headtohead

import (
	"testing"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 15, 18, 0, 0, 0, time.UTC)

func meeting(date, score, home, away string) matchrecord.H2HMatch {
	return matchrecord.H2HMatch{Date: date, Score: score, HomeTeam: home, AwayTeam: away, Competition: "Süper Lig"}
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in         string
		home, away int
		ok         bool
	}{
		{in: "2–1", home: 2, away: 1, ok: true},
		{in: "0-3", home: 0, away: 3, ok: true},
		{in: " 1 – 1 ", home: 1, away: 1, ok: true},
		{in: "x-2", home: 0, away: 2, ok: true},
		{in: "", ok: false},
		{in: "–", ok: false},
		{in: "-", ok: false},
		{in: "postponed", ok: false},
		{in: "a-b", ok: false},
	}
	for _, tc := range cases {
		home, away, ok := ParseScore(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.home, home, tc.in)
		assert.Equal(t, tc.away, away, tc.in)
	}
}

func TestSummarize_FiltersUnplayed(t *testing.T) {
	t.Parallel()

	got := Summarize([]matchrecord.H2HMatch{
		meeting("2025-03-15", "2–1", "Galatasaray", "Fenerbahce"),
		meeting("2025-04-01", "0-0", "Galatasaray", "Fenerbahce"),
		meeting("2024-10-01", "2-1", "Fenerbahce", "Galatasaray"),
		meeting("2024-04-01", "–", "Galatasaray", "Fenerbahce"),
		meeting("2024-02-01", "0–0", "Galatasaray", "Fenerbahce"),
		meeting("2023-09-01", "3–0", "Galatasaray", "Fenerbahce"),
	}, now, 0)

	assert.Equal(t, "Galatasaray", got.Team1)
	assert.Equal(t, 6, got.RawGames)
	assert.Equal(t, 3, got.TotalGames)
	assert.Equal(t, 1, got.Team1Wins)
	assert.Equal(t, 1, got.Team2Wins)
	assert.Equal(t, 1, got.Draws)
	assert.Equal(t, 4, got.Team1Goals)
	assert.Equal(t, 2, got.Team2Goals)
}

func TestSummarize_TodayAlwaysExcluded(t *testing.T) {
	t.Parallel()

	got := Summarize([]matchrecord.H2HMatch{
		meeting("2025-03-15", "4–0", "A", "B"),
	}, now, 0)
	assert.Equal(t, 0, got.TotalGames)
	assert.Empty(t, got.Recent)
}

func TestSummarize_RecentChronological(t *testing.T) {
	t.Parallel()

	got := Summarize([]matchrecord.H2HMatch{
		meeting("2025-01-10", "1–0", "A", "B"),
		meeting("2024-08-10", "2–2", "B", "A"),
		meeting("2024-01-10", "0–1", "A", "B"),
	}, now, 2)

	require.Len(t, got.Recent, 2)
	assert.Equal(t, "2024-08-10", got.Recent[0].Date)
	assert.Equal(t, "2025-01-10", got.Recent[1].Date)
	assert.Equal(t, 3, got.Decided())
}

func TestFromData_CountersFallback(t *testing.T) {
	t.Parallel()

	_, ok := FromData(nil, now, 0)
	assert.False(t, ok)

	got, ok := FromData(&matchrecord.H2HData{
		Team1: &matchrecord.H2HSide{Name: "A", Wins: 3, Draws: 2, Goals: 9},
		Team2: &matchrecord.H2HSide{Name: "B", Wins: 1, Goals: 5},
	}, now, 0)
	require.True(t, ok)
	assert.Equal(t, SourceCounters, got.Source)
	assert.Equal(t, 6, got.TotalGames)
	assert.Equal(t, 3, got.Team1Wins)
}
