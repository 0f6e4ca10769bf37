package textgen

import (
	"strings"
	"testing"

	"github.com/riskibarqy/match-analyzer/internal/domain/roster"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt_Minimal(t *testing.T) {
	got := BuildUserPrompt(sampleContext())

	assert.True(t, strings.HasPrefix(got, "Analyse this match:\n\nFenerbahce vs Besiktas\n"))
	assert.Contains(t, got, "Competition: LEAGUE")
	assert.Contains(t, got, "- Fenerbahce: N/A")
	assert.Contains(t, got, "- Expected score: 1.8-1.1")
	assert.NotContains(t, got, "HEAD TO HEAD")
	assert.NotContains(t, got, "LATEST HEADLINES")
}

func TestBuildUserPrompt_Full(t *testing.T) {
	mc := sampleContext()
	mc.CompetitionType = usecase.CompetitionInternational
	mc.HomeStats = &usecase.ContextStats{Form: "W-W-D", PPG: "2.33", HomeRecord: "2W 1D 0L"}
	mc.AwayPlayers = &roster.Totals{TotalGoals: 31, TopScorer: "Immobile", AvgCardsPerGame: 1.5}
	mc.H2H = &usecase.ContextH2H{
		TotalGames: 3, Team1Wins: 2, Draws: 1, Team1Goals: 5, Team2Goals: 2,
		RecentResults: []usecase.ContextResult{{Date: "2024-09-14", Score: "2-1"}, {Date: "2024-02-03", Score: "0-0"}},
	}
	mc.Headlines = []usecase.ContextHeadline{{Title: "Derby week", Source: "ESPN", Date: "2025-03-10"}}

	got := BuildUserPrompt(mc)

	assert.Contains(t, got, "Competition: INTERNATIONAL")
	assert.Contains(t, got, "HOME (Fenerbahce) STATISTICS:\n- Last 5 form: W-W-D\n")
	assert.Contains(t, got, "- Home record: 2W 1D 0L")
	assert.NotContains(t, got, "AWAY (Besiktas) STATISTICS")
	assert.Contains(t, got, "Besiktas PLAYER STATISTICS:\n- Total goals: 31\n")
	assert.Contains(t, got, "- Top scorer: Immobile")
	assert.Contains(t, got, "- Cards per game: 1.5")
	assert.Contains(t, got, "- Recent meetings: 2024-09-14: 2-1, 2024-02-03: 0-0\n")
	assert.Contains(t, got, "1. \"Derby week\" (ESPN, 2025-03-10)")
}
