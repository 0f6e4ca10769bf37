package usecase

import (
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

var fixedNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

const sampleRecordJSON = `{
  "h2h": {
    "totalGames": 3,
    "matches": [
      {"date": "2025-03-20", "score": "", "homeTeam": "Fenerbahce", "awayTeam": "Besiktas", "venue": "Kadikoy"},
      {"date": "2024-10-01", "score": "2-1", "homeTeam": "Fenerbahce", "awayTeam": "Besiktas"},
      {"date": "2024-04-01", "score": "0-0", "homeTeam": "Besiktas", "awayTeam": "Fenerbahce"},
      {"date": "2023-09-01", "score": "1–3", "homeTeam": "Besiktas", "awayTeam": "Fenerbahce"}
    ]
  },
  "homeTeam": {
    "teamName": "Fenerbahce SK",
    "league": "Super Lig",
    "manager": "J. Mourinho",
    "stats": {"fixtureCount": "12"},
    "players": [
      {"Player": "Dzeko", "position": "FW", "goals": "9", "assists": 2, "cards_yellow": 3, "cards_red": 0},
      {"Player": "Livakovic", "position": "GK", "goals": 0, "assists": 0, "cards_yellow": 1, "cards_red": 0}
    ],
    "recentMatches": [
      {"result": "W", "venue": "Home", "gf": 2, "ga": 0, "comp": "Super Lig", "formation": "4-2-3-1"},
      {"result": "W", "venue": "Away", "gf": 3, "ga": 1, "comp": "Super Lig", "formation": "4-2-3-1"},
      {"result": "D", "venue": "Home", "gf": 1, "ga": 1, "comp": "Europa League", "formation": "4-3-3"},
      {"result": "L", "venue": "Away", "gf": 0, "ga": 1, "comp": "Super Lig", "formation": "4-2-3-1"}
    ]
  },
  "awayTeam": {
    "teamName": "Besiktas JK",
    "league": "Super Lig",
    "recentMatches": [
      {"result": "L", "venue": "Away", "gf": 0, "ga": 2, "comp": "Super Lig"},
      {"result": "D", "venue": "Home", "gf": 2, "ga": 2, "comp": "Super Lig"}
    ]
  }
}`

func sampleRecord(id int64) matchrecord.Record {
	return matchrecord.Record{
		ID:        id,
		TeamURL:   "https://example.test/match/fenerbahce-besiktas",
		Data:      []byte(sampleRecordJSON),
		UpdatedAt: fixedNow.Add(-time.Hour),
	}
}

func brokenRecord(id int64) matchrecord.Record {
	return matchrecord.Record{ID: id, Data: []byte(`{not json`)}
}

func newTestAnalysisService(records matchrecord.Repository) *AnalysisService {
	return NewAnalysisService(records, AnalysisConfig{
		Workers: 2,
		Now:     func() time.Time { return fixedNow },
	})
}
