package memory

import (
	"strconv"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

var seedUpdatedAt = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

// SeedRecords returns sample cache rows covering the payload shapes the
// scraper produces: a full record, a string-wrapped record with a roster-only
// side, and a record that carries head-to-head counters only.
func SeedRecords() []matchrecord.Record {
	return []matchrecord.Record{
		{
			ID:        1,
			TeamURL:   "https://fbref.com/en/squads/persija-jakarta",
			Data:      []byte(seedPersijaPersib),
			UpdatedAt: seedUpdatedAt,
		},
		{
			ID:        2,
			TeamURL:   "https://fbref.com/en/squads/arsenal",
			Data:      []byte(strconv.Quote(seedArsenalChelsea)),
			UpdatedAt: seedUpdatedAt.Add(-2 * time.Hour),
		},
		{
			ID:        3,
			TeamURL:   "https://fbref.com/en/squads/galatasaray",
			Data:      []byte(seedCountersOnly),
			UpdatedAt: seedUpdatedAt.Add(-24 * time.Hour),
		},
	}
}

const seedPersijaPersib = `{
  "h2h": {
    "totalGames": 5,
    "hasHistory": true,
    "matches": [
      {"date": "2025-08-16", "score": "2–1", "venue": "Jakarta International Stadium", "homeTeam": "Persija Jakarta", "awayTeam": "Persib Bandung", "competition": "Liga 1"},
      {"date": "2025-02-12", "score": "1–1", "venue": "Gelora Bandung Lautan Api", "homeTeam": "Persib Bandung", "awayTeam": "Persija Jakarta", "competition": "Liga 1"},
      {"date": "2024-09-23", "score": "2-0", "venue": "Si Jalak Harupat", "homeTeam": "Persib Bandung", "awayTeam": "Persija Jakarta", "competition": "Liga 1"},
      {"date": "2024-07-06", "score": "1–3", "venue": "Jakarta International Stadium", "homeTeam": "Persija Jakarta", "awayTeam": "Persib Bandung", "competition": "Liga 1"},
      {"date": "2023-12-18", "score": "0–0", "venue": "Gelora Bung Karno", "homeTeam": "Persija Jakarta", "awayTeam": "Persib Bandung", "competition": "Liga 1"}
    ]
  },
  "homeTeam": {
    "teamName": "Persija Jakarta",
    "league": "Liga 1",
    "manager": "Mauricio Souza",
    "points": "21",
    "stats": {"playerCount": 24, "keeperCount": 3, "fixtureCount": 10},
    "players": [
      {"Player": "Gustavo Almeida", "position": "FW", "goals": "7", "assists": "1", "cards_yellow": "2", "cards_red": "0", "minutes": "812", "games": "10"},
      {"Player": "Maciej Gajos", "position": "MF", "goals": "3", "assists": "4", "cards_yellow": "3", "cards_red": "0", "minutes": "900", "games": "10"},
      {"Player": "Rizky Ridho", "position": "DF", "goals": "1", "assists": "0", "cards_yellow": "4", "cards_red": "1", "minutes": "880", "games": "10"},
      {"Player": "Andritany Ardhiyasa", "position": "GK", "goals": "0", "assists": "0", "cards_yellow": "1", "cards_red": "0", "minutes": "900", "games": "10"}
    ],
    "recentMatches": [
      {"date": "2025-09-20", "result": "W", "venue": "Home", "gf": "3", "ga": "1", "comp": "Liga 1", "opponent": "Bali United", "formation": "4-3-3"},
      {"date": "2025-09-27", "result": "D", "venue": "Away", "gf": "1", "ga": "1", "comp": "Liga 1", "opponent": "PSM Makassar", "formation": "4-3-3"},
      {"date": "2025-10-03", "result": "W", "venue": "Home", "gf": "2", "ga": "0", "comp": "Piala Presiden", "opponent": "Arema", "formation": "4-2-3-1"},
      {"date": "2025-10-11", "result": "L", "venue": "Away", "gf": "0", "ga": "2", "comp": "Liga 1", "opponent": "Borneo FC", "formation": "4-3-3"},
      {"date": "2025-10-18", "result": "W", "venue": "Home", "gf": "2", "ga": "1", "comp": "Liga 1", "opponent": "Persita", "formation": "4-3-3"},
      {"date": "2025-10-25", "result": "W", "venue": "Away", "gf": "1", "ga": "0", "comp": "Liga 1", "opponent": "Madura United", "formation": "4-3-3"}
    ]
  },
  "awayTeam": {
    "teamName": "Persib Bandung",
    "league": "Liga 1",
    "manager": "Bojan Hodak",
    "points": "23",
    "stats": {"playerCount": 25, "keeperCount": 3, "fixtureCount": 10},
    "players": [
      {"Player": "Ramon Tanque", "position": "FW", "goals": "6", "assists": "2", "cards_yellow": "1", "cards_red": "0", "minutes": "760", "games": "9"},
      {"Player": "Beckham Putra", "position": "MF", "goals": "4", "assists": "3", "cards_yellow": "3", "cards_red": "0", "minutes": "830", "games": "10"},
      {"Player": "Teja Paku Alam", "position": "GK", "goals": "0", "assists": "0", "cards_yellow": "0", "cards_red": "0", "minutes": "900", "games": "10"}
    ],
    "recentMatches": [
      {"date": "2025-09-21", "result": "W", "venue": "Away", "gf": "2", "ga": "1", "comp": "Liga 1", "opponent": "Persis", "formation": "4-2-3-1"},
      {"date": "2025-09-28", "result": "W", "venue": "Home", "gf": "3", "ga": "0", "comp": "Liga 1", "opponent": "Dewa United", "formation": "4-2-3-1"},
      {"date": "2025-10-02", "result": "D", "venue": "Away", "gf": "2", "ga": "2", "comp": "AFC Champions League Two", "opponent": "Port FC", "formation": "4-2-3-1"},
      {"date": "2025-10-12", "result": "W", "venue": "Home", "gf": "1", "ga": "0", "comp": "Liga 1", "opponent": "PSBS Biak", "formation": "4-2-3-1"},
      {"date": "2025-10-19", "result": "L", "venue": "Away", "gf": "1", "ga": "2", "comp": "Liga 1", "opponent": "Malut United", "formation": "3-4-3"}
    ]
  }
}`

const seedArsenalChelsea = `{
  "h2h": {
    "totalGames": 3,
    "matches": [
      {"date": "2025-03-16", "score": "1–0", "venue": "Emirates Stadium", "homeTeam": "Arsenal", "awayTeam": "Chelsea", "competition": "Premier League"},
      {"date": "2024-11-10", "score": "1–1", "venue": "Stamford Bridge", "homeTeam": "Chelsea", "awayTeam": "Arsenal", "competition": "Premier League"},
      {"date": "2024-04-23", "score": "5–0", "venue": "Emirates Stadium", "homeTeam": "Arsenal", "awayTeam": "Chelsea", "competition": "Premier League"}
    ]
  },
  "homeTeam": {
    "teamName": "Arsenal",
    "league": "Premier League",
    "manager": "Mikel Arteta",
    "recentMatches": [
      {"result": "W", "venue": "Home", "gf": 2, "ga": 0, "comp": "Premier League", "formation": "4-3-3"},
      {"result": "W", "venue": "Away", "gf": 1, "ga": 0, "comp": "Champions League", "formation": "4-3-3"},
      {"result": "W", "venue": "Away", "gf": 2, "ga": 1, "comp": "Premier League", "formation": "4-3-3"},
      {"result": "D", "venue": "Home", "gf": 1, "ga": 1, "comp": "Premier League", "formation": "4-3-3"}
    ]
  },
  "awayTeam": {
    "teamName": "Chelsea",
    "league": "Premier League",
    "manager": "Enzo Maresca",
    "points": "17",
    "stats": {"fixtureCount": "9"},
    "players": [
      {"Player": "Cole Palmer", "position": "MF", "goals": "5", "assists": "3", "cards_yellow": "2", "cards_red": "0"},
      {"Player": "Nicolas Jackson", "position": "FW", "goals": "4", "assists": "1", "cards_yellow": "3", "cards_red": "0"},
      {"Player": "Moises Caicedo", "position": "MF", "goals": "1", "assists": "1", "cards_yellow": "5", "cards_red": "0"},
      {"Player": "Robert Sanchez", "position": "GK", "goals": "0", "assists": "0", "cards_yellow": "1", "cards_red": "0"}
    ]
  }
}`

const seedCountersOnly = `{
  "h2h": {
    "totalGames": "8",
    "team1": {"name": "Galatasaray", "wins": "4", "draws": "2", "losses": "2", "goals": "13"},
    "team2": {"name": "Fenerbahce", "wins": "2", "draws": "2", "losses": "4", "goals": "9"}
  }
}`
