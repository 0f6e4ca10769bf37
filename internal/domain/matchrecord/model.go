package matchrecord

import "time"

type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// Valid reports whether the result belongs to a played fixture.
func (r Result) Valid() bool {
	switch r {
	case ResultWin, ResultDraw, ResultLoss:
		return true
	default:
		return false
	}
}

// Points returns league points awarded for the result.
func (r Result) Points() int {
	switch r {
	case ResultWin:
		return 3
	case ResultDraw:
		return 1
	default:
		return 0
	}
}

type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

// Match is one historical fixture from a team's match log.
type Match struct {
	Result       Result `json:"result,omitempty"`
	Venue        Venue  `json:"venue,omitempty"`
	GoalsFor     Number `json:"gf"`
	GoalsAgainst Number `json:"ga"`
	Competition  string `json:"comp,omitempty"`
	Formation    string `json:"formation,omitempty"`
	Date         string `json:"date,omitempty"`
	Opponent     string `json:"opponent,omitempty"`
}

type Player struct {
	Name        string `json:"Player"`
	Position    string `json:"position,omitempty"`
	Goals       Number `json:"goals"`
	Assists     Number `json:"assists"`
	YellowCards Number `json:"cards_yellow"`
	RedCards    Number `json:"cards_red"`
	Minutes     Number `json:"minutes"`
	Games       Number `json:"games"`
}

const PositionGoalkeeper = "GK"

type RosterStats struct {
	KeeperCount  Number `json:"keeperCount"`
	PlayerCount  Number `json:"playerCount"`
	FixtureCount Number `json:"fixtureCount"`
}

type TeamInfo struct {
	TeamName      string       `json:"teamName,omitempty"`
	TeamID        string       `json:"teamId,omitempty"`
	League        string       `json:"league,omitempty"`
	Manager       string       `json:"manager,omitempty"`
	Points        Number       `json:"points"`
	Stats         *RosterStats `json:"stats,omitempty"`
	Players       []Player     `json:"players,omitempty"`
	Keepers       []Player     `json:"keepers,omitempty"`
	RecentMatches []Match      `json:"recentMatches,omitempty"`
}

// HasRoster reports whether any player rows were scraped for the team.
func (t *TeamInfo) HasRoster() bool {
	return t != nil && len(t.Players) > 0
}

// FixtureCount returns the scraped fixture count, or 0 when unknown.
func (t *TeamInfo) FixtureCount() int {
	if t == nil || t.Stats == nil {
		return 0
	}
	return t.Stats.FixtureCount.Int()
}

type H2HMatch struct {
	Date        string `json:"date"`
	Score       string `json:"score"`
	Venue       string `json:"venue"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	Competition string `json:"competition"`
}

type H2HSide struct {
	Name   string `json:"name,omitempty"`
	Wins   Number `json:"wins"`
	Draws  Number `json:"draws"`
	Goals  Number `json:"goals"`
	Losses Number `json:"losses"`
}

type H2HData struct {
	Team1      *H2HSide   `json:"team1,omitempty"`
	Team2      *H2HSide   `json:"team2,omitempty"`
	Matches    []H2HMatch `json:"matches,omitempty"`
	ScrapedAt  string     `json:"scrapedAt,omitempty"`
	HasHistory bool       `json:"hasHistory,omitempty"`
	TotalGames Number     `json:"totalGames"`
}

// MatchData is the decoded payload of a cached record.
type MatchData struct {
	H2H      *H2HData  `json:"h2h,omitempty"`
	HomeTeam *TeamInfo `json:"homeTeam,omitempty"`
	AwayTeam *TeamInfo `json:"awayTeam,omitempty"`
}

// Record is one raw row of the team details cache.
type Record struct {
	ID        int64     `db:"id"`
	TeamURL   string    `db:"team_url"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Parsed struct {
	Record       Record
	Data         MatchData
	HomeTeamName string
	AwayTeamName string
	HomeNameFrom NameSource
	AwayNameFrom NameSource
}
