package matchrecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTeamName_Precedence(t *testing.T) {
	t.Parallel()

	full := MatchData{
		H2H: &H2HData{
			Team1:   &H2HSide{Name: "Summary Home"},
			Team2:   &H2HSide{Name: "Summary Away"},
			Matches: []H2HMatch{{HomeTeam: "Fixture Home", AwayTeam: "Fixture Away"}},
		},
		HomeTeam: &TeamInfo{TeamName: "Info Home"},
		AwayTeam: &TeamInfo{TeamName: "Info Away"},
	}

	name, source := ResolveTeamName(full, SideHome)
	assert.Equal(t, "Fixture Home", name)
	assert.Equal(t, NameFromH2HFixture, source)

	noFixture := full
	noFixture.H2H = &H2HData{Team1: full.H2H.Team1, Team2: full.H2H.Team2}
	name, source = ResolveTeamName(noFixture, SideAway)
	assert.Equal(t, "Info Away", name)
	assert.Equal(t, NameFromTeamInfo, source)

	summaryOnly := MatchData{H2H: noFixture.H2H}
	name, source = ResolveTeamName(summaryOnly, SideAway)
	assert.Equal(t, "Summary Away", name)
	assert.Equal(t, NameFromH2HSummary, source)

	name, source = ResolveTeamName(MatchData{}, SideHome)
	assert.Equal(t, DefaultHomeTeamName, name)
	assert.Equal(t, NameFromDefault, source)
}

func TestResolveTeams_MirrorsMissingSide(t *testing.T) {
	t.Parallel()

	home := &TeamInfo{TeamName: "Galatasaray"}
	got := ResolveTeams(MatchData{HomeTeam: home})
	assert.Same(t, home, got.Away)
	assert.Equal(t, TeamFromMirrored, got.AwaySource)
	assert.Equal(t, TeamFromOwn, got.HomeSource)

	got = ResolveTeams(MatchData{})
	assert.Nil(t, got.Home)
	assert.Equal(t, TeamFromNone, got.HomeSource)
}

func TestParse_WrappedPayload(t *testing.T) {
	t.Parallel()

	object := `{"homeTeam":{"teamName":"Fenerbahce","points":"1,2","recentMatches":[{"result":"W","venue":"Home","gf":"2","ga":1}]}}`
	wrapped := `"{\"awayTeam\":{\"teamName\":\"Besiktas\"}}"`

	parsed, ok := Parse(Record{ID: 1, Data: []byte(object)})
	require.True(t, ok)
	assert.Equal(t, "Fenerbahce", parsed.HomeTeamName)
	assert.Equal(t, NameFromTeamInfo, parsed.HomeNameFrom)
	assert.Equal(t, DefaultAwayTeamName, parsed.AwayTeamName)
	assert.Equal(t, Number(12), parsed.Data.HomeTeam.Points)
	require.Len(t, parsed.Data.HomeTeam.RecentMatches, 1)
	assert.Equal(t, Number(2), parsed.Data.HomeTeam.RecentMatches[0].GoalsFor)

	parsed, ok = Parse(Record{ID: 2, Data: []byte(wrapped)})
	require.True(t, ok)
	assert.Equal(t, "Besiktas", parsed.AwayTeamName)

	_, ok = Parse(Record{ID: 3, Data: []byte(`{not json`)})
	assert.False(t, ok)

	all := ParseAll([]Record{{ID: 1, Data: []byte(object)}, {ID: 3, Data: nil}})
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].Record.ID)
}
