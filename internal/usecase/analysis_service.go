package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-analyzer/internal/domain/headtohead"
	"github.com/riskibarqy/match-analyzer/internal/domain/keyevents"
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/poisson"
	"github.com/riskibarqy/match-analyzer/internal/domain/prediction"
	"github.com/riskibarqy/match-analyzer/internal/domain/roster"
	"github.com/riskibarqy/match-analyzer/internal/domain/teamstats"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/riskibarqy/match-analyzer/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultListLimit    = 100
	maxListLimit        = 500
	defaultBatchWorkers = 4
	maxBatchSize        = 50
	maxExpectedGoals    = 10.0
)

type AnalysisConfig struct {
	Params  prediction.Params
	Workers int
	// RecentH2H is how many surviving meetings are kept for display.
	RecentH2H int
	Now       func() time.Time
	Logger    *logging.Logger
}

type AnalysisService struct {
	records   matchrecord.Repository
	params    prediction.Params
	workers   int
	recentH2H int
	now       func() time.Time
	logger    *logging.Logger
}

func NewAnalysisService(records matchrecord.Repository, cfg AnalysisConfig) *AnalysisService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &AnalysisService{
		records:   records,
		params:    cfg.Params.Normalize(),
		workers:   workers,
		recentH2H: cfg.RecentH2H,
		now:       now,
		logger:    logger,
	}
}

type ListMatchesInput struct {
	Query string
	Limit int
}

type MatchSummary struct {
	RecordID       int64
	TeamURL        string
	UpdatedAt      time.Time
	HomeTeam       string
	AwayTeam       string
	HomeNameSource matchrecord.NameSource
	AwayNameSource matchrecord.NameSource
	HomeLeague     string
	AwayLeague     string
	H2HGames       int
	NextDate       string
	Venue          string
}

// ListMatches returns the most recently updated records whose team names
// contain the query, case-insensitively. Undecodable rows are skipped.
func (s *AnalysisService) ListMatches(ctx context.Context, input ListMatchesInput) ([]MatchSummary, error) {
	ctx, span := spans.Start(ctx, "AnalysisService.ListMatches", attribute.String("query", input.Query))
	defer span.End()

	limit := input.Limit
	if limit < 0 || limit > maxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxListLimit)
	}
	if limit == 0 {
		limit = defaultListLimit
	}

	records, err := s.records.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent records: %w", err)
	}

	parsedRecords := matchrecord.ParseAll(records)
	if skipped := len(records) - len(parsedRecords); skipped > 0 {
		s.logger.WarnContext(ctx, "skipped undecodable match records", "skipped", skipped)
	}

	query := strings.ToLower(strings.TrimSpace(input.Query))
	out := make([]MatchSummary, 0, len(parsedRecords))
	for _, parsed := range parsedRecords {
		if query != "" &&
			!strings.Contains(strings.ToLower(parsed.HomeTeamName), query) &&
			!strings.Contains(strings.ToLower(parsed.AwayTeamName), query) {
			continue
		}
		out = append(out, summarizeRecord(parsed))
	}

	return out, nil
}

func summarizeRecord(parsed matchrecord.Parsed) MatchSummary {
	out := MatchSummary{
		RecordID:       parsed.Record.ID,
		TeamURL:        parsed.Record.TeamURL,
		UpdatedAt:      parsed.Record.UpdatedAt,
		HomeTeam:       parsed.HomeTeamName,
		AwayTeam:       parsed.AwayTeamName,
		HomeNameSource: parsed.HomeNameFrom,
		AwayNameSource: parsed.AwayNameFrom,
	}
	if parsed.Data.HomeTeam != nil {
		out.HomeLeague = parsed.Data.HomeTeam.League
	}
	if parsed.Data.AwayTeam != nil {
		out.AwayLeague = parsed.Data.AwayTeam.League
	}
	if h2h := parsed.Data.H2H; h2h != nil {
		out.H2HGames = h2h.TotalGames.Int()
	}
	out.NextDate, out.Venue = fixtureOf(parsed.Data)
	return out
}

// fixtureOf reads the upcoming fixture, which the store keeps as the first
// head-to-head entry.
func fixtureOf(data matchrecord.MatchData) (date, venue string) {
	if data.H2H == nil || len(data.H2H.Matches) == 0 {
		return "", ""
	}
	next := data.H2H.Matches[0]
	return strings.TrimSpace(next.Date), strings.TrimSpace(next.Venue)
}

type TeamAnalysis struct {
	Name        string
	NameSource  matchrecord.NameSource
	TeamSource  matchrecord.TeamSource
	League      string
	Manager     string
	Stats       *teamstats.Snapshot
	StatsSource teamstats.Source
	FormTrend   prediction.Trend
	Profile     teamstats.RadarProfile
	Roster      *roster.Totals
	TopScorers  []matchrecord.Player
	CardRisks   []matchrecord.Player
}

type Analysis struct {
	RecordID    int64
	TeamURL     string
	UpdatedAt   time.Time
	Competition string
	// FixtureDate is the raw date of the upcoming meeting, empty when unknown.
	FixtureDate string
	Home        TeamAnalysis
	Away        TeamAnalysis
	H2H         *headtohead.Summary
	Prediction  prediction.Prediction
	Favourite   prediction.Outcome
	Reliability prediction.Reliability
	Poisson     poisson.Distribution
	KeyEvents   keyevents.Estimates
	FormSeries  []teamstats.FormPoint
}

// Analyze loads one record and runs the full statistics pipeline on it.
func (s *AnalysisService) Analyze(ctx context.Context, recordID int64, competition string) (Analysis, error) {
	ctx, span := spans.Start(ctx, "AnalysisService.Analyze", attribute.Int64("record.id", recordID))
	defer span.End()

	if recordID <= 0 {
		return Analysis{}, fmt.Errorf("%w: record id must be greater than zero", ErrInvalidInput)
	}

	record, exists, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		tracing.Fail(span, err)
		return Analysis{}, fmt.Errorf("get record: %w", err)
	}
	if !exists {
		return Analysis{}, fmt.Errorf("%w: record=%d", ErrNotFound, recordID)
	}

	return s.analyzeRecord(record, competition)
}

func (s *AnalysisService) analyzeRecord(record matchrecord.Record, competition string) (Analysis, error) {
	parsed, ok := matchrecord.Parse(record)
	if !ok {
		return Analysis{}, fmt.Errorf("%w: record=%d has no decodable match data", ErrUnprocessable, record.ID)
	}
	return s.buildAnalysis(parsed, competition), nil
}

func (s *AnalysisService) buildAnalysis(parsed matchrecord.Parsed, competition string) Analysis {
	competition = strings.TrimSpace(competition)
	teams := matchrecord.ResolveTeams(parsed.Data)

	home := analyzeTeam(teams.Home, competition)
	home.Name, home.NameSource, home.TeamSource = parsed.HomeTeamName, parsed.HomeNameFrom, teams.HomeSource
	away := analyzeTeam(teams.Away, competition)
	away.Name, away.NameSource, away.TeamSource = parsed.AwayTeamName, parsed.AwayNameFrom, teams.AwaySource

	var h2h *headtohead.Summary
	if summary, ok := headtohead.FromData(parsed.Data.H2H, s.now(), s.recentH2H); ok {
		h2h = &summary
	}

	pred := prediction.Predict(home.Stats, away.Stats, h2h, s.params)
	homeStats := orDefaultSnapshot(home.Stats)
	awayStats := orDefaultSnapshot(away.Stats)

	out := Analysis{
		RecordID:    parsed.Record.ID,
		TeamURL:     parsed.Record.TeamURL,
		UpdatedAt:   parsed.Record.UpdatedAt,
		Competition: competition,
		Home:        home,
		Away:        away,
		H2H:         h2h,
		Prediction:  pred,
		Favourite:   prediction.Favourite(pred),
		Poisson:     poisson.Compute(pred.ExpectedHomeGoalsValue(), pred.ExpectedAwayGoalsValue()),
		KeyEvents: keyevents.Estimate(
			rates(homeStats),
			rates(awayStats),
			cards(home.Roster),
			cards(away.Roster),
		),
		FormSeries: teamstats.FormSeries(homeStats.Form.Last5, awayStats.Form.Last5),
	}
	out.FixtureDate, _ = fixtureOf(parsed.Data)
	out.Reliability = prediction.EvaluateReliability(reliabilityInput(out))
	return out
}

func analyzeTeam(info *matchrecord.TeamInfo, competition string) TeamAnalysis {
	out := TeamAnalysis{StatsSource: teamstats.SourceNone, TopScorers: []matchrecord.Player{}, CardRisks: []matchrecord.Player{}}
	if info == nil {
		out.FormTrend = prediction.FormTrend(0)
		return out
	}

	out.League = info.League
	out.Manager = info.Manager

	snapshot, source := teamstats.Aggregate(info, competition)
	out.StatsSource = source
	if source != teamstats.SourceNone {
		out.Stats = &snapshot
		out.Profile = teamstats.Profile(snapshot)
	}
	out.FormTrend = prediction.FormTrend(snapshot.Form.Points)

	if totals, ok := roster.Summarize(info.Players, info.FixtureCount()); ok {
		out.Roster = &totals
	}
	out.TopScorers = roster.TopScorers(info.Players, roster.DefaultTopScorers)
	out.CardRisks = roster.CardRisks(info.Players)
	return out
}

func orDefaultSnapshot(s *teamstats.Snapshot) teamstats.Snapshot {
	if s == nil {
		return prediction.DefaultSnapshot()
	}
	return *s
}

func rates(s teamstats.Snapshot) keyevents.TeamRates {
	return keyevents.TeamRates{
		AvgGoalsFor:     s.AvgGoalsForValue(),
		AvgGoalsAgainst: s.AvgGoalsAgainstValue(),
	}
}

func cards(totals *roster.Totals) *keyevents.Cards {
	if totals == nil {
		return nil
	}
	return &keyevents.Cards{
		YellowCards: totals.TotalYellowCards,
		RedCards:    totals.TotalRedCards,
		MatchCount:  totals.MatchCount,
	}
}

func reliabilityInput(a Analysis) prediction.ReliabilityInput {
	in := prediction.ReliabilityInput{
		DataQuality:     (sourceQuality(a.Home.StatsSource) + sourceQuality(a.Away.StatsSource)) / 2,
		FormConsistency: (formDepth(a.Home.Stats) + formDepth(a.Away.Stats)) / 2,
		HomeWinPct:      a.Prediction.HomeWinPctValue(),
		DrawPct:         a.Prediction.DrawPctValue(),
		AwayWinPct:      a.Prediction.AwayWinPctValue(),
	}
	if a.H2H != nil {
		in.H2HGames = a.H2H.TotalGames
	}
	return in
}

func sourceQuality(source teamstats.Source) float64 {
	switch source {
	case teamstats.SourceMatches:
		return 100
	case teamstats.SourcePlayers:
		return 50
	default:
		return 0
	}
}

// formDepth scores how much of the last-10 window is filled.
func formDepth(s *teamstats.Snapshot) float64 {
	if s == nil {
		return 0
	}
	return math.Min(float64(len(s.Form.Last10))*10, 100)
}

type BatchInput struct {
	RecordIDs   []int64
	Competition string
}

type BatchResult struct {
	RecordID int64
	Analysis *Analysis
	Err      error
}

// AnalyzeBatch analyzes several records on a worker pool. Results keep the
// input order and carry a per-record error instead of failing the batch.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, input BatchInput) ([]BatchResult, error) {
	ctx, span := spans.Start(ctx, "AnalysisService.AnalyzeBatch", attribute.Int("batch.size", len(input.RecordIDs)))
	defer span.End()

	if len(input.RecordIDs) == 0 {
		return nil, fmt.Errorf("%w: record ids are required", ErrInvalidInput)
	}
	if len(input.RecordIDs) > maxBatchSize {
		return nil, fmt.Errorf("%w: at most %d record ids per batch", ErrInvalidInput, maxBatchSize)
	}
	for _, id := range input.RecordIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: record id must be greater than zero", ErrInvalidInput)
		}
	}

	records, err := s.records.ListByIDs(ctx, uniqueIDs(input.RecordIDs))
	if err != nil {
		return nil, fmt.Errorf("list records by ids: %w", err)
	}
	byID := make(map[int64]matchrecord.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}

	results := make([]BatchResult, len(input.RecordIDs))
	workerCount := min(s.workers, len(input.RecordIDs))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, id := range input.RecordIDs {
		i, id := i, id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			results[i] = BatchResult{RecordID: id}
			if ctxErr := ctx.Err(); ctxErr != nil {
				results[i].Err = ctxErr
				return
			}
			record, ok := byID[id]
			if !ok {
				results[i].Err = fmt.Errorf("%w: record=%d", ErrNotFound, id)
				return
			}
			analysis, analyzeErr := s.analyzeRecord(record, input.Competition)
			if analyzeErr != nil {
				results[i].Err = analyzeErr
				return
			}
			results[i].Analysis = &analysis
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "batch analysis finished",
		"records", len(input.RecordIDs),
		"failed", failed,
		"workers", workerCount,
	)

	return results, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type PoissonInput struct {
	HomeExpectedGoals float64
	AwayExpectedGoals float64
}

// Poisson computes an ad-hoc score distribution for two expected-goal values.
func (s *AnalysisService) Poisson(ctx context.Context, input PoissonInput) (poisson.Distribution, error) {
	_, span := spans.Start(ctx, "AnalysisService.Poisson")
	defer span.End()

	for _, v := range []float64{input.HomeExpectedGoals, input.AwayExpectedGoals} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > maxExpectedGoals {
			return poisson.Distribution{}, fmt.Errorf("%w: expected goals must be between 0 and %.0f", ErrInvalidInput, maxExpectedGoals)
		}
	}

	return poisson.Compute(input.HomeExpectedGoals, input.AwayExpectedGoals), nil
}
