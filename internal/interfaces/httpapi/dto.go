package httpapi

import (
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/headtohead"
	"github.com/riskibarqy/match-analyzer/internal/domain/keyevents"
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"github.com/riskibarqy/match-analyzer/internal/domain/poisson"
	"github.com/riskibarqy/match-analyzer/internal/domain/prediction"
	"github.com/riskibarqy/match-analyzer/internal/domain/roster"
	"github.com/riskibarqy/match-analyzer/internal/domain/teamstats"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
)

type matchSummaryDTO struct {
	RecordID       int64  `json:"recordId"`
	TeamURL        string `json:"teamUrl"`
	UpdatedAt      string `json:"updatedAt"`
	HomeTeam       string `json:"homeTeam"`
	AwayTeam       string `json:"awayTeam"`
	HomeNameSource string `json:"homeNameSource"`
	AwayNameSource string `json:"awayNameSource"`
	HomeLeague     string `json:"homeLeague,omitempty"`
	AwayLeague     string `json:"awayLeague,omitempty"`
	H2HGames       int    `json:"h2hGames"`
	NextDate       string `json:"nextDate,omitempty"`
	Venue          string `json:"venue,omitempty"`
}

type playerDTO struct {
	Name        string  `json:"name"`
	Position    string  `json:"position,omitempty"`
	Goals       float64 `json:"goals"`
	Assists     float64 `json:"assists"`
	YellowCards float64 `json:"yellowCards"`
	RedCards    float64 `json:"redCards"`
	Minutes     float64 `json:"minutes"`
	Games       float64 `json:"games"`
}

type teamAnalysisDTO struct {
	Name        string                 `json:"name"`
	NameSource  string                 `json:"nameSource"`
	TeamSource  string                 `json:"teamSource"`
	League      string                 `json:"league,omitempty"`
	Manager     string                 `json:"manager,omitempty"`
	Stats       *teamstats.Snapshot    `json:"stats"`
	StatsSource string                 `json:"statsSource"`
	FormTrend   string                 `json:"formTrend"`
	Profile     teamstats.RadarProfile `json:"profile"`
	Roster      *roster.Totals         `json:"roster"`
	TopScorers  []playerDTO            `json:"topScorers"`
	CardRisks   []playerDTO            `json:"cardRisks"`
}

type analysisDTO struct {
	RecordID    int64                  `json:"recordId"`
	TeamURL     string                 `json:"teamUrl"`
	UpdatedAt   string                 `json:"updatedAt"`
	Competition string                 `json:"competition,omitempty"`
	Home        teamAnalysisDTO        `json:"home"`
	Away        teamAnalysisDTO        `json:"away"`
	H2H         *headtohead.Summary    `json:"h2h"`
	Prediction  prediction.Prediction  `json:"prediction"`
	Favourite   string                 `json:"favourite"`
	Reliability prediction.Reliability `json:"reliability"`
	Poisson     poisson.Distribution   `json:"poisson"`
	KeyEvents   keyevents.Estimates    `json:"keyEvents"`
	FormSeries  []teamstats.FormPoint  `json:"formSeries"`
}

type batchResultDTO struct {
	RecordID int64        `json:"recordId"`
	Analysis *analysisDTO `json:"analysis,omitempty"`
	Error    *batchError  `json:"error,omitempty"`
}

type batchError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type matchNewsDTO struct {
	RecordID int64       `json:"recordId"`
	HomeTeam string      `json:"homeTeam"`
	AwayTeam string      `json:"awayTeam"`
	Items    []news.Item `json:"items"`
}

type narrativeDTO struct {
	RecordID    int64  `json:"recordId"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	Analysis    string `json:"analysis"`
	Headlines   int    `json:"headlines"`
	GeneratedAt string `json:"generatedAt"`
}

func matchSummaryToDTO(v usecase.MatchSummary) matchSummaryDTO {
	return matchSummaryDTO{
		RecordID:       v.RecordID,
		TeamURL:        v.TeamURL,
		UpdatedAt:      formatTime(v.UpdatedAt),
		HomeTeam:       v.HomeTeam,
		AwayTeam:       v.AwayTeam,
		HomeNameSource: string(v.HomeNameSource),
		AwayNameSource: string(v.AwayNameSource),
		HomeLeague:     v.HomeLeague,
		AwayLeague:     v.AwayLeague,
		H2HGames:       v.H2HGames,
		NextDate:       v.NextDate,
		Venue:          v.Venue,
	}
}

func analysisToDTO(v usecase.Analysis) analysisDTO {
	formSeries := v.FormSeries
	if formSeries == nil {
		formSeries = []teamstats.FormPoint{}
	}

	return analysisDTO{
		RecordID:    v.RecordID,
		TeamURL:     v.TeamURL,
		UpdatedAt:   formatTime(v.UpdatedAt),
		Competition: v.Competition,
		Home:        teamAnalysisToDTO(v.Home),
		Away:        teamAnalysisToDTO(v.Away),
		H2H:         v.H2H,
		Prediction:  v.Prediction,
		Favourite:   string(v.Favourite),
		Reliability: v.Reliability,
		Poisson:     v.Poisson,
		KeyEvents:   v.KeyEvents,
		FormSeries:  formSeries,
	}
}

func teamAnalysisToDTO(v usecase.TeamAnalysis) teamAnalysisDTO {
	return teamAnalysisDTO{
		Name:        v.Name,
		NameSource:  string(v.NameSource),
		TeamSource:  string(v.TeamSource),
		League:      v.League,
		Manager:     v.Manager,
		Stats:       v.Stats,
		StatsSource: string(v.StatsSource),
		FormTrend:   string(v.FormTrend),
		Profile:     v.Profile,
		Roster:      v.Roster,
		TopScorers:  playersToDTO(v.TopScorers),
		CardRisks:   playersToDTO(v.CardRisks),
	}
}

func playersToDTO(players []matchrecord.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerDTO{
			Name:        p.Name,
			Position:    p.Position,
			Goals:       p.Goals.Float(),
			Assists:     p.Assists.Float(),
			YellowCards: p.YellowCards.Float(),
			RedCards:    p.RedCards.Float(),
			Minutes:     p.Minutes.Float(),
			Games:       p.Games.Float(),
		})
	}
	return out
}

func batchResultToDTO(v usecase.BatchResult) batchResultDTO {
	out := batchResultDTO{RecordID: v.RecordID}
	if v.Err != nil {
		kind := classify(v.Err)
		msg := v.Err.Error()
		if kind.target == nil {
			msg = internalMessage
		}
		out.Error = &batchError{Code: kind.status, Reason: kind.reason, Message: msg}
		return out
	}
	if v.Analysis != nil {
		dto := analysisToDTO(*v.Analysis)
		out.Analysis = &dto
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
