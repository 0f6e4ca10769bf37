package teamstats

import (
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/statvalue"
)

// Source tells what a snapshot was derived from.
type Source string

const (
	SourceMatches Source = "matches"
	SourcePlayers Source = "players"
	SourceNone    Source = "none"
)

// AllCompetitions disables the competition filter.
const AllCompetitions = "all"

type VenueStats struct {
	Matches      int     `json:"matches"`
	Wins         int     `json:"wins"`
	Draws        int     `json:"draws"`
	Losses       int     `json:"losses"`
	GoalsFor     float64 `json:"gf"`
	GoalsAgainst float64 `json:"ga"`
}

func (v *VenueStats) add(m matchrecord.Match) {
	v.Matches++
	v.GoalsFor += m.GoalsFor.Float()
	v.GoalsAgainst += m.GoalsAgainst.Float()
	switch m.Result {
	case matchrecord.ResultWin:
		v.Wins++
	case matchrecord.ResultDraw:
		v.Draws++
	case matchrecord.ResultLoss:
		v.Losses++
	}
}

// Points returns league points earned in the split.
func (v VenueStats) Points() int {
	return v.Wins*3 + v.Draws
}

type Form struct {
	Last5  []matchrecord.Result `json:"last5"`
	Last10 []matchrecord.Result `json:"last10"`
	Points int                  `json:"points"`
}

// Streak is the run of identical results ending at the most recent match.
// Type is empty when there are no matches.
type Streak struct {
	Type  matchrecord.Result `json:"type"`
	Count int                `json:"count"`
}

// Snapshot is the statistics of one team over its filtered match log. Rate
// fields are pre-formatted: averages and points-per-game to 2 decimals,
// percentages to 1 decimal.
type Snapshot struct {
	Total VenueStats `json:"total"`
	Home  VenueStats `json:"home"`
	Away  VenueStats `json:"away"`
	Form  Form       `json:"form"`

	CleanSheets   int `json:"cleanSheets"`
	FailedToScore int `json:"failedToScore"`
	BTTS          int `json:"btts"`
	Over15        int `json:"over15"`
	Over25        int `json:"over25"`
	Over35        int `json:"over35"`

	CurrentStreak Streak         `json:"currentStreak"`
	Formations    map[string]int `json:"formations"`

	AvgGoalsFor      string `json:"avgGoalsFor"`
	AvgGoalsAgainst  string `json:"avgGoalsAgainst"`
	PPG              string `json:"ppg"`
	HomePPG          string `json:"homePPG"`
	AwayPPG          string `json:"awayPPG"`
	CleanSheetPct    string `json:"cleanSheetPct"`
	FailedToScorePct string `json:"failedToScorePct"`
	BTTSPct          string `json:"bttsPct"`
	Over15Pct        string `json:"over15Pct"`
	Over25Pct        string `json:"over25Pct"`
	Over35Pct        string `json:"over35Pct"`

	// Fixtures is the scraped fixture count used by the roster fallback.
	Fixtures int `json:"fixtures,omitempty"`
}

func (s Snapshot) AvgGoalsForValue() float64     { return statvalue.Value(s.AvgGoalsFor) }
func (s Snapshot) AvgGoalsAgainstValue() float64 { return statvalue.Value(s.AvgGoalsAgainst) }
func (s Snapshot) PPGValue() float64             { return statvalue.Value(s.PPG) }
func (s Snapshot) HomePPGValue() float64         { return statvalue.Value(s.HomePPG) }
func (s Snapshot) AwayPPGValue() float64         { return statvalue.Value(s.AwayPPG) }
func (s Snapshot) CleanSheetPctValue() float64   { return statvalue.Value(s.CleanSheetPct) }
func (s Snapshot) FailedToScorePctValue() float64 {
	return statvalue.Value(s.FailedToScorePct)
}
func (s Snapshot) BTTSPctValue() float64   { return statvalue.Value(s.BTTSPct) }
func (s Snapshot) Over25PctValue() float64 { return statvalue.Value(s.Over25Pct) }

func emptySnapshot() Snapshot {
	return Snapshot{
		Form:             Form{Last5: []matchrecord.Result{}, Last10: []matchrecord.Result{}},
		Formations:       map[string]int{},
		AvgGoalsFor:      "0.00",
		AvgGoalsAgainst:  "0.00",
		PPG:              "0.00",
		HomePPG:          "0.00",
		AwayPPG:          "0.00",
		CleanSheetPct:    "0.0",
		FailedToScorePct: "0.0",
		BTTSPct:          "0.0",
		Over15Pct:        "0.0",
		Over25Pct:        "0.0",
		Over35Pct:        "0.0",
	}
}
