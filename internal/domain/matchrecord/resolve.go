package matchrecord

import "strings"

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// NameSource tells which field a resolved team name was taken from.
type NameSource string

const (
	NameFromH2HFixture NameSource = "h2h-fixture"
	NameFromTeamInfo   NameSource = "team-info"
	NameFromH2HSummary NameSource = "h2h-summary"
	NameFromDefault    NameSource = "default"
)

const (
	DefaultHomeTeamName = "Home Team"
	DefaultAwayTeamName = "Away Team"
)

// ResolveTeamName picks the display name for one side, trying the first
// head-to-head fixture, then the team info block, then the head-to-head
// summary, then a fixed placeholder.
func ResolveTeamName(data MatchData, side Side) (string, NameSource) {
	if data.H2H != nil && len(data.H2H.Matches) > 0 {
		first := data.H2H.Matches[0]
		name := first.HomeTeam
		if side == SideAway {
			name = first.AwayTeam
		}
		if name = strings.TrimSpace(name); name != "" {
			return name, NameFromH2HFixture
		}
	}

	info := data.HomeTeam
	if side == SideAway {
		info = data.AwayTeam
	}
	if info != nil {
		if name := strings.TrimSpace(info.TeamName); name != "" {
			return name, NameFromTeamInfo
		}
	}

	if data.H2H != nil {
		summary := data.H2H.Team1
		if side == SideAway {
			summary = data.H2H.Team2
		}
		if summary != nil {
			if name := strings.TrimSpace(summary.Name); name != "" {
				return name, NameFromH2HSummary
			}
		}
	}

	if side == SideAway {
		return DefaultAwayTeamName, NameFromDefault
	}
	return DefaultHomeTeamName, NameFromDefault
}

// TeamSource tells whether a side's team info was scraped for that side or
// borrowed from the other one.
type TeamSource string

const (
	TeamFromOwn      TeamSource = "own"
	TeamFromMirrored TeamSource = "mirrored"
	TeamFromNone     TeamSource = "none"
)

type ResolvedTeams struct {
	Home       *TeamInfo
	Away       *TeamInfo
	HomeSource TeamSource
	AwaySource TeamSource
}

// ResolveTeams returns the team info for both sides. A record scraped from one
// team's page only carries that team, so a missing side mirrors the present one.
func ResolveTeams(data MatchData) ResolvedTeams {
	out := ResolvedTeams{
		Home:       data.HomeTeam,
		Away:       data.AwayTeam,
		HomeSource: TeamFromOwn,
		AwaySource: TeamFromOwn,
	}

	switch {
	case data.HomeTeam == nil && data.AwayTeam == nil:
		out.HomeSource = TeamFromNone
		out.AwaySource = TeamFromNone
	case data.HomeTeam == nil:
		out.Home = data.AwayTeam
		out.HomeSource = TeamFromMirrored
	case data.AwayTeam == nil:
		out.Away = data.HomeTeam
		out.AwaySource = TeamFromMirrored
	}

	return out
}
