package textgen

import (
	"strconv"

	"github.com/riskibarqy/match-analyzer/internal/domain/roster"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const systemPrompt = `You are a professional football analyst. Analyse the supplied match data and give concrete, numeric predictions.

Rules:
1. Only use player and manager names that appear in the data. Do not invent names.
2. Back every prediction with numbers or percentage probabilities.
3. Avoid vague wording such as "could" or "has potential"; write "65% likely" or "expected value: 3.2" instead.
4. Give an expected count for every key event: penalties, cards, corners, shots and free kicks.
5. Reflect the goal analysis in the predicted score.

Format:

TEAM STRENGTH
Form, goals scored and conceded, home and away record, with numbers.

COMPETITION CONTEXT
League fixture: table position and points. International fixture: the relative strength of the two leagues.

SQUAD AND PLAYERS
Key players, top scorers and top assisters, using names from the data only.

KEY EVENT PREDICTIONS
- Total expected goals (home, away)
- Total shots and shots on target
- Corners
- Yellow cards (home, away)
- Red card risk %
- Penalty chance %
- Free-kick goal chance %
- Own goal risk %

SCORE PREDICTION
Main prediction with probability, two alternatives with probabilities, half-time score, first scorer side, both teams to score, over 2.5.

BETTING ANGLES
The three best-value bets with an expected value for each.

RISK FACTORS
The factors most likely to change the outcome.`

// BuildUserPrompt renders the match context as the user message.
func BuildUserPrompt(mc usecase.MatchContext) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, p := range parts {
			_, _ = buf.WriteString(p)
		}
		_ = buf.WriteByte('\n')
	}

	line("Analyse this match:")
	line()
	line(mc.HomeTeam, " vs ", mc.AwayTeam)
	line()
	if mc.CompetitionType == usecase.CompetitionInternational {
		line("Competition: INTERNATIONAL (teams from different leagues, weigh league strength)")
	} else {
		line("Competition: LEAGUE")
	}
	line("Home league: ", orNA(mc.HomeLeague))
	line("Away league: ", orNA(mc.AwayLeague))
	line()
	line("Managers:")
	line("- ", mc.HomeTeam, ": ", orNA(mc.HomeManager))
	line("- ", mc.AwayTeam, ": ", orNA(mc.AwayManager))

	writeStats := func(title string, s *usecase.ContextStats, venueLabel, venueRecord string) {
		line()
		line(title)
		line("- Last 5 form: ", orDefault(s.Form, "no data"))
		line("- Points per game: ", s.PPG)
		line("- Goals scored per game: ", s.AvgGoalsFor)
		line("- Goals conceded per game: ", s.AvgGoalsAgainst)
		line("- Clean sheets: ", s.CleanSheetPct, "%")
		line("- Failed to score: ", s.FailedToScorePct, "%")
		line("- Both teams scored: ", s.BTTSPct, "%")
		line("- Over 2.5: ", s.Over25Pct, "%")
		line("- Current streak: ", orNA(s.CurrentStreak))
		line("- ", venueLabel, " record: ", orNA(venueRecord))
		line("- Preferred formations: ", orNA(s.Formations))
	}
	if mc.HomeStats != nil {
		writeStats("HOME ("+mc.HomeTeam+") STATISTICS:", mc.HomeStats, "Home", mc.HomeStats.HomeRecord)
	}
	if mc.AwayStats != nil {
		writeStats("AWAY ("+mc.AwayTeam+") STATISTICS:", mc.AwayStats, "Away", mc.AwayStats.AwayRecord)
	}

	writePlayers := func(team string, t *roster.Totals) {
		line()
		line(team, " PLAYER STATISTICS:")
		line("- Total goals: ", formatFloat(t.TotalGoals))
		line("- Total assists: ", formatFloat(t.TotalAssists))
		line("- Total yellow cards: ", formatFloat(t.TotalYellowCards))
		line("- Total red cards: ", formatFloat(t.TotalRedCards))
		line("- Top scorer: ", orDefault(t.TopScorer, "unknown"))
		line("- Top assister: ", orDefault(t.TopAssister, "unknown"))
		line("- Most carded: ", orDefault(t.MostCarded, "unknown"))
		line("- Cards per game: ", formatFloat(t.AvgCardsPerGame))
	}
	if mc.HomePlayers != nil {
		writePlayers(mc.HomeTeam, mc.HomePlayers)
	}
	if mc.AwayPlayers != nil {
		writePlayers(mc.AwayTeam, mc.AwayPlayers)
	}

	if h := mc.H2H; h != nil {
		line()
		line("HEAD TO HEAD (played matches only):")
		line("- Total matches: ", strconv.Itoa(h.TotalGames))
		line("- ", mc.HomeTeam, " wins: ", strconv.Itoa(h.Team1Wins))
		line("- ", mc.AwayTeam, " wins: ", strconv.Itoa(h.Team2Wins))
		line("- Draws: ", strconv.Itoa(h.Draws))
		line("- ", mc.HomeTeam, " goals: ", strconv.Itoa(h.Team1Goals))
		line("- ", mc.AwayTeam, " goals: ", strconv.Itoa(h.Team2Goals))
		if len(h.RecentResults) > 0 {
			_, _ = buf.WriteString("- Recent meetings: ")
			for i, r := range h.RecentResults {
				if i > 0 {
					_, _ = buf.WriteString(", ")
				}
				_, _ = buf.WriteString(r.Date + ": " + r.Score)
			}
			_ = buf.WriteByte('\n')
		}
	}

	p := mc.Prediction
	line()
	line("STATISTICAL MODEL PREDICTION:")
	line("- ", mc.HomeTeam, " win: ", p.HomeWinPct, "%")
	line("- Draw: ", p.DrawPct, "%")
	line("- ", mc.AwayTeam, " win: ", p.AwayWinPct, "%")
	line("- Expected score: ", p.ExpectedScore)
	line("- Both teams to score: ", p.BTTSPct, "%")
	line("- Over 2.5: ", p.Over25Pct, "%")
	line("- Confidence: ", p.Confidence)

	k := mc.KeyEvents
	line()
	line("KEY EVENT MODEL:")
	line("- Expected goals: ", formatFloat(k.TotalXG), " (home ", formatFloat(k.HomeXG), ", away ", formatFloat(k.AwayXG), ")")
	line("- Expected yellow cards: ", formatFloat(k.TotalYellowExpected))
	line("- Expected corners: ", formatFloat(k.TotalCorners))
	line("- Red card chance: ", formatFloat(k.RedCardProb), "%")
	line("- Penalty chance: ", formatFloat(k.PenaltyProb), "%")

	if len(mc.Headlines) > 0 {
		line()
		line("LATEST HEADLINES (interpret, do not invent content):")
		for i, h := range mc.Headlines {
			line(strconv.Itoa(i+1), ". \"", h.Title, "\" (", h.Source, ", ", orNA(h.Date), ")")
		}
	}

	line()
	_, _ = buf.WriteString("Give every prediction as a concrete number. Compute an expected value for each key event and reflect it in the final score prediction.")

	return buf.String()
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
