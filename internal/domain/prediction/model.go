package prediction

import "github.com/riskibarqy/match-analyzer/internal/domain/statvalue"

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Params holds the hand-tuned constants of the model.
type Params struct {
	// DrawBaseline competes with both weighted side scores during normalization.
	DrawBaseline float64
	// AwayDampener scales the away side's expected goals.
	AwayDampener float64
}

func DefaultParams() Params {
	return Params{
		DrawBaseline: 18,
		AwayDampener: 0.85,
	}
}

// Normalize replaces non-positive values with defaults.
func (p Params) Normalize() Params {
	def := DefaultParams()
	if p.DrawBaseline <= 0 {
		p.DrawBaseline = def.DrawBaseline
	}
	if p.AwayDampener <= 0 {
		p.AwayDampener = def.AwayDampener
	}
	return p
}

// Factors are the per-side component scores, each on a 0..100 scale.
type Factors struct {
	Form        float64 `json:"form"`
	H2H         float64 `json:"h2h"`
	Venue       float64 `json:"venue"`
	GoalDiff    float64 `json:"goalDiff"`
	Streak      float64 `json:"streak"`
	Weighted    float64 `json:"weighted"`
	UsedDefault bool    `json:"usedDefault"`
}

type Prediction struct {
	HomeWinPct        string     `json:"homeWinPct"`
	DrawPct           string     `json:"drawPct"`
	AwayWinPct        string     `json:"awayWinPct"`
	ExpectedHomeGoals string     `json:"expectedHomeGoals"`
	ExpectedAwayGoals string     `json:"expectedAwayGoals"`
	BTTSPct           string     `json:"bttsPct"`
	Over25Pct         string     `json:"over25Pct"`
	Confidence        Confidence `json:"confidence"`

	Home Factors `json:"home"`
	Away Factors `json:"away"`
}

func (p Prediction) HomeWinPctValue() float64        { return statvalue.Value(p.HomeWinPct) }
func (p Prediction) DrawPctValue() float64           { return statvalue.Value(p.DrawPct) }
func (p Prediction) AwayWinPctValue() float64        { return statvalue.Value(p.AwayWinPct) }
func (p Prediction) ExpectedHomeGoalsValue() float64 { return statvalue.Value(p.ExpectedHomeGoals) }
func (p Prediction) ExpectedAwayGoalsValue() float64 { return statvalue.Value(p.ExpectedAwayGoals) }
func (p Prediction) BTTSPctValue() float64           { return statvalue.Value(p.BTTSPct) }
func (p Prediction) Over25PctValue() float64         { return statvalue.Value(p.Over25Pct) }
