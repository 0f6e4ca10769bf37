package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// TextGenerator turns a match context into prose.
type TextGenerator interface {
	Generate(ctx context.Context, input MatchContext) (string, error)
}

type NarrativeService struct {
	analysis  *AnalysisService
	news      *NewsService
	generator TextGenerator
	now       func() time.Time
	logger    *logging.Logger
}

func NewNarrativeService(analysis *AnalysisService, newsSvc *NewsService, generator TextGenerator, logger *logging.Logger) *NarrativeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NarrativeService{
		analysis:  analysis,
		news:      newsSvc,
		generator: generator,
		now:       time.Now,
		logger:    logger,
	}
}

type Narrative struct {
	RecordID    int64
	HomeTeam    string
	AwayTeam    string
	Text        string
	Headlines   int
	GeneratedAt time.Time
}

// Generate analyzes a record and describes it.
func (s *NarrativeService) Generate(ctx context.Context, recordID int64) (Narrative, error) {
	ctx, span := spans.Start(ctx, "NarrativeService.Generate", attribute.Int64("record.id", recordID))
	defer span.End()

	if s.generator == nil {
		return Narrative{}, fmt.Errorf("%w: text generation is disabled", ErrDependencyUnavailable)
	}

	analysis, err := s.analysis.Analyze(ctx, recordID, "")
	if err != nil {
		return Narrative{}, fmt.Errorf("analyze record: %w", err)
	}
	return s.Describe(ctx, analysis)
}

// Describe attaches headlines when news is available and asks the generator
// for prose about an analysis already computed. Missing news never fails
// the call.
func (s *NarrativeService) Describe(ctx context.Context, analysis Analysis) (Narrative, error) {
	if s.generator == nil {
		return Narrative{}, fmt.Errorf("%w: text generation is disabled", ErrDependencyUnavailable)
	}

	var headlines []news.Item
	if s.news != nil {
		var err error
		headlines, err = s.news.Headlines(ctx, analysis.Home.Name, analysis.Away.Name, maxContextHeadlines)
		if err != nil {
			s.logger.WarnContext(ctx, "news unavailable for narrative, continuing without headlines",
				"record_id", analysis.RecordID,
				"error", err,
			)
			headlines = nil
		}
	}

	input := BuildMatchContext(analysis, headlines)
	text, err := s.generator.Generate(ctx, input)
	if err != nil {
		return Narrative{}, fmt.Errorf("generate narrative: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Narrative{}, fmt.Errorf("%w: text generator returned no content", ErrDependencyUnavailable)
	}

	return Narrative{
		RecordID:    analysis.RecordID,
		HomeTeam:    analysis.Home.Name,
		AwayTeam:    analysis.Away.Name,
		Text:        text,
		Headlines:   len(input.Headlines),
		GeneratedAt: s.now().UTC(),
	}, nil
}
