package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"github.com/riskibarqy/match-analyzer/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
)

type NewsService struct {
	records  matchrecord.Repository
	provider news.Provider
}

func NewNewsService(records matchrecord.Repository, provider news.Provider) *NewsService {
	return &NewsService{
		records:  records,
		provider: provider,
	}
}

type MatchNews struct {
	RecordID int64
	HomeTeam string
	AwayTeam string
	Items    []news.Item
}

// ForMatch returns headlines for the two teams of a record.
func (s *NewsService) ForMatch(ctx context.Context, recordID int64, limit int) (MatchNews, error) {
	ctx, span := spans.Start(ctx, "NewsService.ForMatch", attribute.Int64("record.id", recordID))
	defer span.End()

	if recordID <= 0 {
		return MatchNews{}, fmt.Errorf("%w: record id must be greater than zero", ErrInvalidInput)
	}

	record, exists, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return MatchNews{}, fmt.Errorf("get record: %w", err)
	}
	if !exists {
		return MatchNews{}, fmt.Errorf("%w: record=%d", ErrNotFound, recordID)
	}
	parsed, ok := matchrecord.Parse(record)
	if !ok {
		return MatchNews{}, fmt.Errorf("%w: record=%d has no decodable match data", ErrUnprocessable, recordID)
	}

	items, err := s.Headlines(ctx, parsed.HomeTeamName, parsed.AwayTeamName, limit)
	if err != nil {
		tracing.Fail(span, err)
		return MatchNews{}, err
	}

	return MatchNews{
		RecordID: recordID,
		HomeTeam: parsed.HomeTeamName,
		AwayTeam: parsed.AwayTeamName,
		Items:    items,
	}, nil
}

// Headlines fetches every feed and selects the items relevant to the teams.
func (s *NewsService) Headlines(ctx context.Context, home, away string, limit int) ([]news.Item, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: news provider is disabled", ErrDependencyUnavailable)
	}

	items, err := s.provider.Fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			return nil, fmt.Errorf("fetch news: %w", err)
		}
		return nil, fmt.Errorf("%w: fetch news: %v", ErrDependencyUnavailable, err)
	}

	return news.Select(items, home, away, limit), nil
}
