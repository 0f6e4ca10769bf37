package roster

import (
	"sort"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

const (
	DefaultTopScorers = 5
	cardRiskYellows   = 3
)

// TopScorers returns outfield players who scored, most goals first.
func TopScorers(players []matchrecord.Player, limit int) []matchrecord.Player {
	if limit <= 0 {
		limit = DefaultTopScorers
	}

	out := make([]matchrecord.Player, 0, len(players))
	for _, p := range players {
		if p.Position == matchrecord.PositionGoalkeeper || p.Goals.Float() <= 0 {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Goals > out[j].Goals
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CardRisks returns players one booking away from trouble, most yellows first.
func CardRisks(players []matchrecord.Player) []matchrecord.Player {
	out := make([]matchrecord.Player, 0)
	for _, p := range players {
		if p.YellowCards.Float() >= cardRiskYellows {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].YellowCards > out[j].YellowCards
	})
	return out
}

// Totals aggregates a squad's scoring and discipline figures.
type Totals struct {
	TotalGoals       float64 `json:"totalGoals"`
	TotalAssists     float64 `json:"totalAssists"`
	TotalYellowCards float64 `json:"totalYellowCards"`
	TotalRedCards    float64 `json:"totalRedCards"`
	MatchCount       int     `json:"matchCount"`
	TopScorer        string  `json:"topScorer,omitempty"`
	TopAssister      string  `json:"topAssister,omitempty"`
	MostCarded       string  `json:"mostCarded,omitempty"`
	AvgCardsPerGame  float64 `json:"avgCardsPerGame"`
}

// DefaultMatchCount stands in for an unknown number of fixtures.
const DefaultMatchCount = 10

// Summarize totals a squad. It returns false when there are no players.
func Summarize(players []matchrecord.Player, matchCount int) (Totals, bool) {
	if len(players) == 0 {
		return Totals{}, false
	}

	out := Totals{MatchCount: matchCount}
	var bestGoals, bestAssists, bestCards float64
	for _, p := range players {
		goals := p.Goals.Float()
		assists := p.Assists.Float()
		cards := p.YellowCards.Float() + p.RedCards.Float()

		out.TotalGoals += goals
		out.TotalAssists += assists
		out.TotalYellowCards += p.YellowCards.Float()
		out.TotalRedCards += p.RedCards.Float()

		if goals > bestGoals {
			bestGoals = goals
			out.TopScorer = p.Name
		}
		if assists > bestAssists {
			bestAssists = assists
			out.TopAssister = p.Name
		}
		if cards > bestCards {
			bestCards = cards
			out.MostCarded = p.Name
		}
	}

	games := matchCount
	if games <= 0 {
		games = DefaultMatchCount
	}
	out.AvgCardsPerGame = (out.TotalYellowCards + out.TotalRedCards) / float64(games)
	return out, true
}
