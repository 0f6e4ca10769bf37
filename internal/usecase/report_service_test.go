package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	matchrecordmock "github.com/riskibarqy/match-analyzer/internal/mocks/domain/matchrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Fenerbahce_vs_Besiktas_JK_analysis.txt", ReportFileName("Fenerbahce", "Besiktas JK"))
	assert.Equal(t, "team_vs_Real_Madrid_analysis.txt", ReportFileName("??", "Real Madrid!"))
}

func TestReportService_Export(t *testing.T) {
	t.Parallel()

	repo := matchrecordmock.NewRepository(t)
	repo.On("GetByID", mock.Anything, int64(1)).Return(sampleRecord(1), true, nil).Once()

	service := NewReportService(newTestAnalysisService(repo), nil)
	service.now = func() time.Time { return fixedNow.AddDate(0, 1, 0) }

	got, err := service.Export(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Equal(t, "Fenerbahce_vs_Besiktas_analysis.txt", got.FileName)
	assert.True(t, strings.HasPrefix(got.Body, "MATCH ANALYSIS REPORT\n"))
	assert.Contains(t, got.Body, "Date: 2025-03-20\n")
	assert.Contains(t, got.Body, "League: Super Lig\n")
	assert.Contains(t, got.Body, "Match: Fenerbahce VS Besiktas\n")
	assert.Contains(t, got.Body, "MOST LIKELY SCORES")
	assert.Contains(t, got.Body, "HEAD TO HEAD")
	assert.NotContains(t, got.Body, "\nANALYSIS\n")
	assert.True(t, strings.HasSuffix(got.Body, "Generated by Match Analyzer\n"))
}

func TestReportService_Export_NarrativeDisabled(t *testing.T) {
	t.Parallel()

	repo := matchrecordmock.NewRepository(t)
	repo.On("GetByID", mock.Anything, int64(1)).Return(sampleRecord(1), true, nil).Once()

	_, err := NewReportService(newTestAnalysisService(repo), nil).Export(context.Background(), 1, true)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestRenderReport_DateFallsBackToToday(t *testing.T) {
	t.Parallel()

	a := Analysis{Home: TeamAnalysis{Name: "Ajax"}, Away: TeamAnalysis{Name: "PSV"}}
	body := RenderReport(a, "", fixedNow)
	assert.Contains(t, body, "Date: 2025-03-20\n")

	a.FixtureDate = "2025-04-06"
	body = RenderReport(a, "", fixedNow)
	assert.Contains(t, body, "Date: 2025-04-06\n")
}

func TestReportService_Export_WithNarrativeLoadsRecordOnce(t *testing.T) {
	t.Parallel()

	repo := matchrecordmock.NewRepository(t)
	repo.On("GetByID", mock.Anything, int64(1)).Return(sampleRecord(1), true, nil).Once()
	generator := newTextGeneratorMock(t)
	generator.On("Generate", mock.Anything, mock.Anything).Return("Tight derby expected.", nil).Once()

	analysis := newTestAnalysisService(repo)
	service := NewReportService(analysis, NewNarrativeService(analysis, nil, generator, nil))

	got, err := service.Export(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Contains(t, got.Body, "\nANALYSIS\n")
	assert.Contains(t, got.Body, "Tight derby expected.")
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}
