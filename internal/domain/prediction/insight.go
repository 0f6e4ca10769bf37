package prediction

import "math"

type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// favouriteMargin is how far one side must lead the other to be favoured.
const favouriteMargin = 10.0

func Favourite(p Prediction) Outcome {
	home := p.HomeWinPctValue()
	away := p.AwayWinPctValue()
	switch {
	case home > away+favouriteMargin:
		return OutcomeHome
	case away > home+favouriteMargin:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

type Trend string

const (
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// FormTrend classifies last-5 form points.
func FormTrend(points int) Trend {
	switch {
	case points >= 10:
		return TrendRising
	case points >= 6:
		return TrendStable
	default:
		return TrendFalling
	}
}

type ReliabilityLevel string

const (
	ReliabilityHigh    ReliabilityLevel = "high"
	ReliabilityMedium  ReliabilityLevel = "medium"
	ReliabilityLow     ReliabilityLevel = "low"
	ReliabilityVeryLow ReliabilityLevel = "very-low"
)

type ReliabilityInput struct {
	// DataQuality and FormConsistency are 0..100 scores.
	DataQuality     float64
	FormConsistency float64
	H2HGames        int
	HomeWinPct      float64
	DrawPct         float64
	AwayWinPct      float64
}

type Reliability struct {
	Score     float64          `json:"score"`
	Level     ReliabilityLevel `json:"level"`
	Clarity   float64          `json:"clarity"`
	H2HWeight float64          `json:"h2hWeight"`
}

// evenShare is the outcome share of a perfectly balanced three-way market.
const evenShare = 33.3

// EvaluateReliability scores how much the prediction can be trusted.
func EvaluateReliability(in ReliabilityInput) Reliability {
	top := math.Max(in.HomeWinPct, math.Max(in.DrawPct, in.AwayWinPct))
	clarity := (top - evenShare) * 1.5
	h2h := math.Min(float64(in.H2HGames)*10, 100)

	score := in.DataQuality*0.3 + clarity*0.3 + h2h*0.2 + in.FormConsistency*0.2

	out := Reliability{Score: score, Clarity: clarity, H2HWeight: h2h}
	switch {
	case score >= 75:
		out.Level = ReliabilityHigh
	case score >= 50:
		out.Level = ReliabilityMedium
	case score >= 25:
		out.Level = ReliabilityLow
	default:
		out.Level = ReliabilityVeryLow
	}
	return out
}
