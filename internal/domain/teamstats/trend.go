package teamstats

import (
	"math"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

const minFormRows = 5

// FormPoint is one row of the cumulative form chart. A nil side has no result
// at that index.
type FormPoint struct {
	Index      int                `json:"index"`
	Home       *int               `json:"home"`
	Away       *int               `json:"away"`
	HomeResult matchrecord.Result `json:"homeResult,omitempty"`
	AwayResult matchrecord.Result `json:"awayResult,omitempty"`
}

// FormSeries accumulates form points per match index for both sides. It always
// yields at least five rows.
func FormSeries(home, away []matchrecord.Result) []FormPoint {
	rows := max(len(home), len(away), minFormRows)
	out := make([]FormPoint, 0, rows)

	var homeTotal, awayTotal int
	for i := 0; i < rows; i++ {
		point := FormPoint{Index: i + 1}
		if i < len(home) {
			homeTotal += home[i].Points()
			value := homeTotal
			point.Home = &value
			point.HomeResult = home[i]
		}
		if i < len(away) {
			awayTotal += away[i].Points()
			value := awayTotal
			point.Away = &value
			point.AwayResult = away[i]
		}
		out = append(out, point)
	}
	return out
}

// RadarProfile scales a snapshot onto 0..100 axes.
type RadarProfile struct {
	Attack     float64 `json:"attack"`
	Defence    float64 `json:"defence"`
	CleanSheet float64 `json:"cleanSheet"`
	PPG        float64 `json:"ppg"`
	Over25     float64 `json:"over25"`
	BTTS       float64 `json:"btts"`
}

// radarCeiling is the per-game value mapped to 100 on goal and points axes.
const radarCeiling = 3.0

func Profile(s Snapshot) RadarProfile {
	return RadarProfile{
		Attack:     scale(s.AvgGoalsForValue()),
		Defence:    100 - scale(s.AvgGoalsAgainstValue()),
		CleanSheet: s.CleanSheetPctValue(),
		PPG:        scale(s.PPGValue()),
		Over25:     s.Over25PctValue(),
		BTTS:       s.BTTSPctValue(),
	}
}

func scale(v float64) float64 {
	return math.Min(v/radarCeiling*100, 100)
}
