package poisson

import (
	"math"
	"sort"
	"strconv"
)

const (
	// MaxGoals is the highest goal count per side on the grid. Mass beyond it
	// is discarded, not renormalized.
	MaxGoals      = 6
	TopScorelines = 5
)

type Scoreline struct {
	Home        int     `json:"home"`
	Away        int     `json:"away"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Distribution holds percentages (probability × 100) derived from the
// truncated scoreline grid.
type Distribution struct {
	LambdaHome float64                             `json:"lambdaHome"`
	LambdaAway float64                             `json:"lambdaAway"`
	Grid       [MaxGoals + 1][MaxGoals + 1]float64 `json:"grid"`
	HomeWin    float64                             `json:"homeWin"`
	Draw       float64                             `json:"draw"`
	AwayWin    float64                             `json:"awayWin"`
	BTTS       float64                             `json:"btts"`
	Over15     float64                             `json:"over15"`
	Over25     float64                             `json:"over25"`
	Under25    float64                             `json:"under25"`
	Top        []Scoreline                         `json:"top"`
}

// Coverage is the share of total probability mass kept on the grid.
func (d Distribution) Coverage() float64 {
	return d.HomeWin + d.Draw + d.AwayWin
}

// Probability is the Poisson mass P(k; λ) = λ^k e^-λ / k!, computed in log
// space. A non-positive λ puts all mass on zero goals.
func Probability(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		if k == 0 {
			return 1
		}
		return 0
	}
	lgamma, _ := math.Lgamma(float64(k + 1))
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lgamma)
}

// Compute builds the 0..MaxGoals grid for two independent Poisson means.
func Compute(lambdaHome, lambdaAway float64) Distribution {
	out := Distribution{
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
	}

	var homeMass, awayMass [MaxGoals + 1]float64
	for k := 0; k <= MaxGoals; k++ {
		homeMass[k] = Probability(k, lambdaHome)
		awayMass[k] = Probability(k, lambdaAway)
	}

	scorelines := make([]Scoreline, 0, (MaxGoals+1)*(MaxGoals+1))
	for h := 0; h <= MaxGoals; h++ {
		for a := 0; a <= MaxGoals; a++ {
			pct := homeMass[h] * awayMass[a] * 100
			out.Grid[h][a] = pct

			switch {
			case h > a:
				out.HomeWin += pct
			case h < a:
				out.AwayWin += pct
			default:
				out.Draw += pct
			}
			if h > 0 && a > 0 {
				out.BTTS += pct
			}
			goals := float64(h + a)
			if goals > 1.5 {
				out.Over15 += pct
			}
			if goals > 2.5 {
				out.Over25 += pct
			} else {
				out.Under25 += pct
			}

			scorelines = append(scorelines, Scoreline{
				Home:        h,
				Away:        a,
				Label:       strconv.Itoa(h) + "-" + strconv.Itoa(a),
				Probability: pct,
			})
		}
	}

	sort.SliceStable(scorelines, func(i, j int) bool {
		return scorelines[i].Probability > scorelines[j].Probability
	})
	out.Top = scorelines[:TopScorelines]

	return out
}
