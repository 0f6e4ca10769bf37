package keyevents

import "math"

// TeamRates are the per-game figures of one side taken from its snapshot.
type TeamRates struct {
	AvgGoalsFor     float64
	AvgGoalsAgainst float64
}

// Cards are a squad's season discipline totals. MatchCount 0 means unknown.
type Cards struct {
	YellowCards float64
	RedCards    float64
	MatchCount  int
}

const (
	defaultCardMatches   = 10
	defaultYellowPerGame = 1.5
	defaultRedPerGame    = 0.1
	shotsOnTargetShare   = 0.35
)

type Estimates struct {
	HomeXG              float64 `json:"homeXG"`
	AwayXG              float64 `json:"awayXG"`
	TotalXG             float64 `json:"totalXG"`
	HomeYellowExpected  float64 `json:"homeYellowExpected"`
	AwayYellowExpected  float64 `json:"awayYellowExpected"`
	TotalYellowExpected float64 `json:"totalYellowExpected"`
	RedCardProb         float64 `json:"redCardProb"`
	PenaltyProb         float64 `json:"penaltyProb"`
	HomeCorners         float64 `json:"homeCorners"`
	AwayCorners         float64 `json:"awayCorners"`
	TotalCorners        float64 `json:"totalCorners"`
	HomeShots           float64 `json:"homeShots"`
	AwayShots           float64 `json:"awayShots"`
	HomeShotsOnTarget   float64 `json:"homeShotsOnTarget"`
	AwayShotsOnTarget   float64 `json:"awayShotsOnTarget"`
	FreeKickGoalProb    float64 `json:"freeKickGoalProb"`
	OwnGoalRisk         float64 `json:"ownGoalRisk"`
}

// Estimate derives secondary market figures. Nil card totals fall back to
// league-typical per-game rates. Probabilities are percentages.
func Estimate(home, away TeamRates, homeCards, awayCards *Cards) Estimates {
	var out Estimates

	out.HomeXG = (home.AvgGoalsFor + away.AvgGoalsAgainst) / 2
	out.AwayXG = (away.AvgGoalsFor + home.AvgGoalsAgainst) / 2
	out.TotalXG = out.HomeXG + out.AwayXG

	homeYellow, homeRed := perGame(homeCards)
	awayYellow, awayRed := perGame(awayCards)
	out.HomeYellowExpected = homeYellow
	out.AwayYellowExpected = awayYellow
	out.TotalYellowExpected = homeYellow + awayYellow
	out.RedCardProb = math.Min((homeRed+awayRed)*100, 40)

	attackIntensity := (home.AvgGoalsFor + away.AvgGoalsFor) / 2
	out.PenaltyProb = math.Min(15+attackIntensity*8+out.TotalYellowExpected*2, 45)

	out.HomeCorners = 4 + home.AvgGoalsFor*1.2
	out.AwayCorners = 4 + away.AvgGoalsFor*1.2
	out.TotalCorners = out.HomeCorners + out.AwayCorners

	out.HomeShots = 8 + home.AvgGoalsFor*3
	out.AwayShots = 8 + away.AvgGoalsFor*3
	out.HomeShotsOnTarget = out.HomeShots * shotsOnTargetShare
	out.AwayShotsOnTarget = out.AwayShots * shotsOnTargetShare

	out.FreeKickGoalProb = math.Min(5+out.TotalYellowExpected*1.5, 18)
	out.OwnGoalRisk = math.Min(3+out.TotalXG*0.8, 10)

	return out
}

func perGame(c *Cards) (yellow, red float64) {
	if c == nil {
		return defaultYellowPerGame, defaultRedPerGame
	}
	matches := c.MatchCount
	if matches <= 0 {
		matches = defaultCardMatches
	}
	return c.YellowCards / float64(matches), c.RedCards / float64(matches)
}
