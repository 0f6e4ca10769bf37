package headtohead

import (
	"strings"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

// DefaultRecent is how many surviving meetings are kept for trend display.
const DefaultRecent = 6

type Source string

const (
	SourceMeetings Source = "meetings"
	SourceCounters Source = "counters"
)

type Meeting struct {
	Date        string    `json:"date"`
	Score       string    `json:"score"`
	Venue       string    `json:"venue"`
	Competition string    `json:"competition"`
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	HomeGoals   int       `json:"homeGoals"`
	AwayGoals   int       `json:"awayGoals"`
	PlayedOn    time.Time `json:"playedOn,omitempty"`
}

// Summary tallies meetings from Team1's perspective. Team1 is the home side of
// the first listed meeting, the same side the record's home team name comes from.
type Summary struct {
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
	Team1Wins  int    `json:"team1Wins"`
	Team2Wins  int    `json:"team2Wins"`
	Draws      int    `json:"draws"`
	Team1Goals int    `json:"team1Goals"`
	Team2Goals int    `json:"team2Goals"`
	TotalGames int    `json:"totalGames"`
	RawGames   int    `json:"rawGames"`
	Source     Source `json:"source"`

	// Meetings are the surviving meetings, newest first as listed by the source.
	Meetings []Meeting `json:"meetings"`
	// Recent holds the newest surviving meetings in chronological order.
	Recent []Meeting `json:"recent"`
}

// Decided returns the number of meetings the win share is computed over.
func (s Summary) Decided() int {
	return s.Team1Wins + s.Team2Wins + s.Draws
}

// Summarize filters meetings that were not actually played and tallies the
// rest. A meeting is dropped when it is dated today, when its score is empty,
// a placeholder or unparseable, or when it is 0-0 and not dated strictly
// before today.
func Summarize(matches []matchrecord.H2HMatch, now time.Time, recent int) Summary {
	out := Summary{
		RawGames: len(matches),
		Source:   SourceMeetings,
		Meetings: []Meeting{},
		Recent:   []Meeting{},
	}
	if len(matches) > 0 {
		out.Team1 = strings.TrimSpace(matches[0].HomeTeam)
		out.Team2 = strings.TrimSpace(matches[0].AwayTeam)
	}

	today := dayOf(now)
	for _, m := range matches {
		meeting, ok := survive(m, today, now.Location())
		if !ok {
			continue
		}

		team1Goals, team2Goals := meeting.HomeGoals, meeting.AwayGoals
		if out.swapped(meeting) {
			team1Goals, team2Goals = team2Goals, team1Goals
		}

		out.Team1Goals += team1Goals
		out.Team2Goals += team2Goals
		switch {
		case team1Goals > team2Goals:
			out.Team1Wins++
		case team1Goals < team2Goals:
			out.Team2Wins++
		default:
			out.Draws++
		}
		out.Meetings = append(out.Meetings, meeting)
	}
	out.TotalGames = len(out.Meetings)

	if recent <= 0 {
		recent = DefaultRecent
	}
	latest := out.Meetings
	if len(latest) > recent {
		latest = latest[:recent]
	}
	for i := len(latest) - 1; i >= 0; i-- {
		out.Recent = append(out.Recent, latest[i])
	}

	return out
}

// FromData summarizes the head-to-head block of a record. Records that carry
// only the scraped counters and no meeting list fall back to those counters.
// The boolean is false when there is no head-to-head information at all.
func FromData(data *matchrecord.H2HData, now time.Time, recent int) (Summary, bool) {
	if data == nil {
		return Summary{}, false
	}
	if len(data.Matches) > 0 {
		return Summarize(data.Matches, now, recent), true
	}
	if data.Team1 == nil || data.Team2 == nil {
		return Summary{}, false
	}

	out := Summary{
		Team1:      data.Team1.Name,
		Team2:      data.Team2.Name,
		Team1Wins:  data.Team1.Wins.Int(),
		Team2Wins:  data.Team2.Wins.Int(),
		Draws:      data.Team1.Draws.Int(),
		Team1Goals: data.Team1.Goals.Int(),
		Team2Goals: data.Team2.Goals.Int(),
		TotalGames: data.TotalGames.Int(),
		Source:     SourceCounters,
		Meetings:   []Meeting{},
		Recent:     []Meeting{},
	}
	if out.TotalGames == 0 {
		out.TotalGames = out.Decided()
	}
	out.RawGames = out.TotalGames
	return out, true
}

func (s Summary) swapped(m Meeting) bool {
	if s.Team1 == "" {
		return false
	}
	home := strings.TrimSpace(m.HomeTeam)
	away := strings.TrimSpace(m.AwayTeam)
	if strings.EqualFold(home, s.Team1) {
		return false
	}
	return strings.EqualFold(away, s.Team1) || (s.Team2 != "" && strings.EqualFold(home, s.Team2))
}

func survive(m matchrecord.H2HMatch, today time.Time, loc *time.Location) (Meeting, bool) {
	home, away, ok := ParseScore(m.Score)
	if !ok {
		return Meeting{}, false
	}

	playedOn, dated := ParseDate(m.Date, loc)
	if dated && dayOf(playedOn).Equal(today) {
		return Meeting{}, false
	}
	if home == 0 && away == 0 && (!dated || !dayOf(playedOn).Before(today)) {
		return Meeting{}, false
	}

	return Meeting{
		Date:        m.Date,
		Score:       m.Score,
		Venue:       m.Venue,
		Competition: m.Competition,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeGoals:   home,
		AwayGoals:   away,
		PlayedOn:    playedOn,
	}, true
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
