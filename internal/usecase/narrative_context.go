package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/keyevents"
	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"github.com/riskibarqy/match-analyzer/internal/domain/roster"
	"github.com/riskibarqy/match-analyzer/internal/domain/teamstats"
)

const (
	CompetitionLeague        = "league"
	CompetitionInternational = "international"

	maxContextHeadlines   = 5
	maxContextFormations  = 3
	maxContextH2HMeetings = 5
)

// MatchContext is the flattened, human-readable view of an analysis handed to
// the text generator.
type MatchContext struct {
	HomeTeam        string
	AwayTeam        string
	CompetitionType string
	HomeLeague      string
	AwayLeague      string
	HomeManager     string
	AwayManager     string
	HomeStats       *ContextStats
	AwayStats       *ContextStats
	HomePlayers     *roster.Totals
	AwayPlayers     *roster.Totals
	H2H             *ContextH2H
	Prediction      ContextPrediction
	KeyEvents       keyevents.Estimates
	Headlines       []ContextHeadline
}

type ContextStats struct {
	Form             string
	PPG              string
	AvgGoalsFor      string
	AvgGoalsAgainst  string
	CleanSheetPct    string
	FailedToScorePct string
	BTTSPct          string
	Over25Pct        string
	CurrentStreak    string
	HomeRecord       string
	AwayRecord       string
	Formations       string
}

type ContextH2H struct {
	TotalGames    int
	Team1Wins     int
	Team2Wins     int
	Draws         int
	Team1Goals    int
	Team2Goals    int
	RecentResults []ContextResult
}

type ContextResult struct {
	Date  string
	Score string
}

type ContextPrediction struct {
	HomeWinPct    string
	DrawPct       string
	AwayWinPct    string
	ExpectedScore string
	BTTSPct       string
	Over25Pct     string
	Confidence    string
}

type ContextHeadline struct {
	Title  string
	Source string
	Date   string
}

// BuildMatchContext flattens an analysis and up to five headlines.
func BuildMatchContext(a Analysis, headlines []news.Item) MatchContext {
	out := MatchContext{
		HomeTeam:        a.Home.Name,
		AwayTeam:        a.Away.Name,
		CompetitionType: competitionType(a.Home.League, a.Away.League),
		HomeLeague:      a.Home.League,
		AwayLeague:      a.Away.League,
		HomeManager:     a.Home.Manager,
		AwayManager:     a.Away.Manager,
		HomeStats:       contextStats(a.Home.Stats),
		AwayStats:       contextStats(a.Away.Stats),
		HomePlayers:     a.Home.Roster,
		AwayPlayers:     a.Away.Roster,
		Prediction: ContextPrediction{
			HomeWinPct:    a.Prediction.HomeWinPct,
			DrawPct:       a.Prediction.DrawPct,
			AwayWinPct:    a.Prediction.AwayWinPct,
			ExpectedScore: a.Prediction.ExpectedHomeGoals + "-" + a.Prediction.ExpectedAwayGoals,
			BTTSPct:       a.Prediction.BTTSPct,
			Over25Pct:     a.Prediction.Over25Pct,
			Confidence:    string(a.Prediction.Confidence),
		},
		KeyEvents: a.KeyEvents,
		Headlines: []ContextHeadline{},
	}

	if a.H2H != nil {
		h2h := &ContextH2H{
			TotalGames:    a.H2H.TotalGames,
			Team1Wins:     a.H2H.Team1Wins,
			Team2Wins:     a.H2H.Team2Wins,
			Draws:         a.H2H.Draws,
			Team1Goals:    a.H2H.Team1Goals,
			Team2Goals:    a.H2H.Team2Goals,
			RecentResults: []ContextResult{},
		}
		for i, m := range a.H2H.Meetings {
			if i == maxContextH2HMeetings {
				break
			}
			h2h.RecentResults = append(h2h.RecentResults, ContextResult{Date: m.Date, Score: m.Score})
		}
		out.H2H = h2h
	}

	for i, item := range headlines {
		if i == maxContextHeadlines {
			break
		}
		date := ""
		if !item.PublishedAt.IsZero() {
			date = item.PublishedAt.Format(time.DateOnly)
		}
		out.Headlines = append(out.Headlines, ContextHeadline{Title: item.Title, Source: item.Source, Date: date})
	}

	return out
}

// competitionType reports an international fixture when both teams play in
// known but different leagues.
func competitionType(homeLeague, awayLeague string) string {
	homeLeague = strings.TrimSpace(homeLeague)
	awayLeague = strings.TrimSpace(awayLeague)
	if homeLeague != "" && awayLeague != "" && !strings.EqualFold(homeLeague, awayLeague) {
		return CompetitionInternational
	}
	return CompetitionLeague
}

func contextStats(s *teamstats.Snapshot) *ContextStats {
	if s == nil {
		return nil
	}

	form := make([]string, 0, len(s.Form.Last5))
	for _, r := range s.Form.Last5 {
		form = append(form, string(r))
	}
	streak := ""
	if s.CurrentStreak.Count > 0 {
		streak = fmt.Sprintf("%d %s", s.CurrentStreak.Count, s.CurrentStreak.Type)
	}

	return &ContextStats{
		Form:             strings.Join(form, "-"),
		PPG:              s.PPG,
		AvgGoalsFor:      s.AvgGoalsFor,
		AvgGoalsAgainst:  s.AvgGoalsAgainst,
		CleanSheetPct:    s.CleanSheetPct,
		FailedToScorePct: s.FailedToScorePct,
		BTTSPct:          s.BTTSPct,
		Over25Pct:        s.Over25Pct,
		CurrentStreak:    streak,
		HomeRecord:       venueRecord(s.Home),
		AwayRecord:       venueRecord(s.Away),
		Formations:       topFormations(s.Formations),
	}
}

func venueRecord(v teamstats.VenueStats) string {
	if v.Matches == 0 {
		return ""
	}
	return fmt.Sprintf("%dW %dD %dL", v.Wins, v.Draws, v.Losses)
}

func topFormations(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > maxContextFormations {
		names = names[:maxContextFormations]
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
