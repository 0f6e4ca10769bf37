package prediction

import (
	"math"

	"github.com/riskibarqy/match-analyzer/internal/domain/headtohead"
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/statvalue"
	"github.com/riskibarqy/match-analyzer/internal/domain/teamstats"
)

const (
	weightForm     = 0.30
	weightH2H      = 0.20
	weightVenue    = 0.25
	weightGoalDiff = 0.15
	weightStreak   = 0.10

	// expectedGoalsDivisor normalizes the opponent's concession rate.
	expectedGoalsDivisor = 1.5

	maxFormPoints = 15.0
	maxPPG        = 3.0
)

// DefaultSnapshot is the "average team" used when a side has no statistics.
func DefaultSnapshot() teamstats.Snapshot {
	return teamstats.Snapshot{
		Total: teamstats.VenueStats{Matches: 1, Draws: 1, GoalsFor: 1, GoalsAgainst: 1},
		Form: teamstats.Form{
			Last5:  []matchrecord.Result{},
			Last10: []matchrecord.Result{},
			Points: 7,
		},
		CurrentStreak:    teamstats.Streak{Type: matchrecord.ResultDraw, Count: 1},
		Formations:       map[string]int{},
		AvgGoalsFor:      "1.00",
		AvgGoalsAgainst:  "1.00",
		PPG:              "1.50",
		HomePPG:          "1.50",
		AwayPPG:          "1.50",
		CleanSheetPct:    "30.0",
		FailedToScorePct: "20.0",
		BTTSPct:          "50.0",
		Over15Pct:        "0.0",
		Over25Pct:        "50.0",
		Over35Pct:        "0.0",
	}
}

// Predict blends form, head-to-head, venue, goal difference and streak into
// outcome percentages. A nil snapshot is replaced by DefaultSnapshot and a nil
// summary gives both sides an even head-to-head score. It never fails.
func Predict(home, away *teamstats.Snapshot, h2h *headtohead.Summary, params Params) Prediction {
	params = params.Normalize()

	hs, homeDefault := orDefault(home)
	as, awayDefault := orDefault(away)

	homeH2H, awayH2H := h2hScores(h2h)

	homeFactors := factors(hs, homeH2H, hs.HomePPGValue())
	homeFactors.UsedDefault = homeDefault
	awayFactors := factors(as, awayH2H, as.AwayPPGValue())
	awayFactors.UsedDefault = awayDefault

	total := homeFactors.Weighted + awayFactors.Weighted + params.DrawBaseline

	expectedHome := hs.AvgGoalsForValue() * (as.AvgGoalsAgainstValue() / expectedGoalsDivisor)
	expectedAway := as.AvgGoalsForValue() * (hs.AvgGoalsAgainstValue() / expectedGoalsDivisor) * params.AwayDampener

	return Prediction{
		HomeWinPct:        statvalue.Fixed(homeFactors.Weighted/total*100, 1),
		DrawPct:           statvalue.Fixed(params.DrawBaseline/total*100, 1),
		AwayWinPct:        statvalue.Fixed(awayFactors.Weighted/total*100, 1),
		ExpectedHomeGoals: statvalue.Fixed(expectedHome, 1),
		ExpectedAwayGoals: statvalue.Fixed(expectedAway, 1),
		BTTSPct:           statvalue.Fixed((hs.BTTSPctValue()+as.BTTSPctValue())/2, 1),
		Over25Pct:         statvalue.Fixed((hs.Over25PctValue()+as.Over25PctValue())/2, 1),
		Confidence:        confidence(homeFactors.Weighted - awayFactors.Weighted),
		Home:              homeFactors,
		Away:              awayFactors,
	}
}

func orDefault(s *teamstats.Snapshot) (teamstats.Snapshot, bool) {
	if s == nil {
		return DefaultSnapshot(), true
	}
	return *s, false
}

func h2hScores(h2h *headtohead.Summary) (float64, float64) {
	if h2h == nil {
		return 50, 50
	}
	decided := float64(h2h.Decided())
	if decided <= 0 {
		return 50, 50
	}
	return float64(h2h.Team1Wins) / decided * 100, float64(h2h.Team2Wins) / decided * 100
}

func factors(s teamstats.Snapshot, h2h, venuePPG float64) Factors {
	out := Factors{
		Form:     float64(s.Form.Points) / maxFormPoints * 100,
		H2H:      h2h,
		Venue:    math.Min(venuePPG/maxPPG*100, 100),
		GoalDiff: clamp(50+3*(s.Total.GoalsFor-s.Total.GoalsAgainst), 0, 100),
		Streak:   streakScore(s.CurrentStreak),
	}
	out.Weighted = out.Form*weightForm +
		out.H2H*weightH2H +
		out.Venue*weightVenue +
		out.GoalDiff*weightGoalDiff +
		out.Streak*weightStreak
	return out
}

func streakScore(s teamstats.Streak) float64 {
	switch s.Type {
	case matchrecord.ResultWin:
		return 70
	case matchrecord.ResultLoss:
		return 30
	default:
		return 50
	}
}

func confidence(diff float64) Confidence {
	diff = math.Abs(diff)
	switch {
	case diff > 20:
		return ConfidenceHigh
	case diff > 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
