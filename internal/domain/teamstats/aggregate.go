package teamstats

import (
	"strings"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/statvalue"
)

// Aggregate reduces a team's chronological match log into a snapshot.
//
// Matches without a result are dropped, then the competition filter keeps
// labels equal to or containing competition. With no surviving match the
// snapshot is derived from the roster; with no roster either the source is
// SourceNone and the zero snapshot must be treated as absent.
func Aggregate(team *matchrecord.TeamInfo, competition string) (Snapshot, Source) {
	var matches []matchrecord.Match
	if team != nil {
		matches = FilterMatches(team.RecentMatches, competition)
	}

	if len(matches) == 0 {
		if !team.HasRoster() {
			return Snapshot{}, SourceNone
		}
		return fromRoster(team), SourcePlayers
	}

	return fromMatches(matches), SourceMatches
}

// FilterMatches keeps played matches of the requested competition, preserving
// order. An empty competition or AllCompetitions keeps every competition.
func FilterMatches(matches []matchrecord.Match, competition string) []matchrecord.Match {
	competition = strings.TrimSpace(competition)
	filterByComp := competition != "" && !strings.EqualFold(competition, AllCompetitions)

	out := make([]matchrecord.Match, 0, len(matches))
	for _, m := range matches {
		if !m.Result.Valid() {
			continue
		}
		if filterByComp && m.Competition != competition && !strings.Contains(m.Competition, competition) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func fromRoster(team *matchrecord.TeamInfo) Snapshot {
	games := team.FixtureCount()
	if games <= 0 {
		games = 1
	}

	var goals float64
	for _, p := range team.Players {
		goals += p.Goals.Float()
	}

	out := emptySnapshot()
	out.Total.GoalsFor = goals
	out.Fixtures = games
	out.AvgGoalsFor = statvalue.Fixed(goals/float64(games), 2)
	if points := team.Points.Float(); points != 0 {
		out.PPG = statvalue.Fixed(points/float64(games), 2)
	}
	return out
}

func fromMatches(matches []matchrecord.Match) Snapshot {
	out := emptySnapshot()

	for _, m := range matches {
		gf := m.GoalsFor.Float()
		ga := m.GoalsAgainst.Float()
		goals := gf + ga

		out.Total.add(m)
		if m.Venue == matchrecord.VenueHome {
			out.Home.add(m)
		} else {
			out.Away.add(m)
		}

		if ga == 0 {
			out.CleanSheets++
		}
		if gf == 0 {
			out.FailedToScore++
		}
		if gf > 0 && ga > 0 {
			out.BTTS++
		}
		if goals > 1.5 {
			out.Over15++
		}
		if goals > 2.5 {
			out.Over25++
		}
		if goals > 3.5 {
			out.Over35++
		}
		if m.Formation != "" {
			out.Formations[m.Formation]++
		}
	}

	last5 := tail(matches, 5)
	out.Form.Last5 = results(last5)
	out.Form.Last10 = results(tail(matches, 10))
	for _, m := range last5 {
		out.Form.Points += m.Result.Points()
	}

	out.CurrentStreak = currentStreak(matches)

	total := float64(out.Total.Matches)
	out.AvgGoalsFor = statvalue.Fixed(statvalue.Ratio(out.Total.GoalsFor, total), 2)
	out.AvgGoalsAgainst = statvalue.Fixed(statvalue.Ratio(out.Total.GoalsAgainst, total), 2)
	out.PPG = statvalue.Fixed(statvalue.Ratio(float64(out.Total.Points()), total), 2)
	out.HomePPG = venuePPG(out.Home)
	out.AwayPPG = venuePPG(out.Away)
	out.CleanSheetPct = statvalue.Fixed(statvalue.Percent(float64(out.CleanSheets), total), 1)
	out.FailedToScorePct = statvalue.Fixed(statvalue.Percent(float64(out.FailedToScore), total), 1)
	out.BTTSPct = statvalue.Fixed(statvalue.Percent(float64(out.BTTS), total), 1)
	out.Over15Pct = statvalue.Fixed(statvalue.Percent(float64(out.Over15), total), 1)
	out.Over25Pct = statvalue.Fixed(statvalue.Percent(float64(out.Over25), total), 1)
	out.Over35Pct = statvalue.Fixed(statvalue.Percent(float64(out.Over35), total), 1)

	return out
}

func venuePPG(v VenueStats) string {
	if v.Matches == 0 {
		return "0.00"
	}
	return statvalue.Fixed(float64(v.Points())/float64(v.Matches), 2)
}

func currentStreak(matches []matchrecord.Match) Streak {
	var out Streak
	for i := len(matches) - 1; i >= 0; i-- {
		result := matches[i].Result
		switch {
		case out.Count == 0:
			out.Type = result
			out.Count = 1
		case out.Type == result:
			out.Count++
		default:
			return out
		}
	}
	return out
}

func tail(matches []matchrecord.Match, n int) []matchrecord.Match {
	if len(matches) <= n {
		return matches
	}
	return matches[len(matches)-n:]
}

func results(matches []matchrecord.Match) []matchrecord.Result {
	out := make([]matchrecord.Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Result)
	}
	return out
}
