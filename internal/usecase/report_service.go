package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/match-analyzer/internal/domain/poisson"
	"go.opentelemetry.io/otel/attribute"
)

const reportRule = "=================================================="

var reportFileUnsafe = regexp.MustCompile(`[^A-Za-z0-9]+`)

type Report struct {
	FileName string
	Body     string
}

type ReportService struct {
	analysis  *AnalysisService
	narrative *NarrativeService
	now       func() time.Time
}

func NewReportService(analysis *AnalysisService, narrative *NarrativeService) *ReportService {
	return &ReportService{
		analysis:  analysis,
		narrative: narrative,
		now:       time.Now,
	}
}

// Export renders a plain-text report for a record. When withNarrative is set
// the generated analysis text is embedded, otherwise the section is omitted.
func (s *ReportService) Export(ctx context.Context, recordID int64, withNarrative bool) (Report, error) {
	ctx, span := spans.Start(ctx, "ReportService.Export", attribute.Int64("record.id", recordID), attribute.Bool("report.narrative", withNarrative))
	defer span.End()

	analysis, err := s.analysis.Analyze(ctx, recordID, "")
	if err != nil {
		return Report{}, err
	}

	text := ""
	if withNarrative {
		if s.narrative == nil {
			return Report{}, fmt.Errorf("%w: text generation is disabled", ErrDependencyUnavailable)
		}
		narrative, err := s.narrative.Describe(ctx, analysis)
		if err != nil {
			return Report{}, err
		}
		text = narrative.Text
	}

	return Report{
		FileName: ReportFileName(analysis.Home.Name, analysis.Away.Name),
		Body:     RenderReport(analysis, text, s.now()),
	}, nil
}

// ReportFileName builds "<home>_vs_<away>_analysis.txt" from sanitized names.
func ReportFileName(home, away string) string {
	clean := func(name string) string {
		name = strings.Trim(reportFileUnsafe.ReplaceAllString(name, "_"), "_")
		if name == "" {
			return "team"
		}
		return name
	}
	return clean(home) + "_vs_" + clean(away) + "_analysis.txt"
}

// RenderReport writes the text layout of an analysis. The date line shows
// the fixture date, or today when the record has none.
func RenderReport(a Analysis, narrative string, today time.Time) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	league := a.Home.League
	if league == "" {
		league = a.Away.League
	}
	if league == "" {
		league = "-"
	}

	fmt.Fprintf(buf, "MATCH ANALYSIS REPORT\n%s\n\n", reportRule)
	date := a.FixtureDate
	if date == "" {
		date = today.Format(time.DateOnly)
	}
	fmt.Fprintf(buf, "Date: %s\n", date)
	fmt.Fprintf(buf, "League: %s\n", league)
	fmt.Fprintf(buf, "Match: %s VS %s\n\n", a.Home.Name, a.Away.Name)

	p := a.Prediction
	fmt.Fprintf(buf, "PREDICTION SUMMARY\n%s\n", reportRule)
	fmt.Fprintf(buf, "%s win: %s%%\n", a.Home.Name, p.HomeWinPct)
	fmt.Fprintf(buf, "Draw: %s%%\n", p.DrawPct)
	fmt.Fprintf(buf, "%s win: %s%%\n", a.Away.Name, p.AwayWinPct)
	fmt.Fprintf(buf, "Expected score: %s - %s\n", p.ExpectedHomeGoals, p.ExpectedAwayGoals)
	fmt.Fprintf(buf, "Both teams to score: %s%%\n", p.BTTSPct)
	fmt.Fprintf(buf, "Over 2.5 goals: %s%%\n", p.Over25Pct)
	fmt.Fprintf(buf, "Confidence: %s\n\n", p.Confidence)

	writeTopScorelines(buf, a.Poisson)

	k := a.KeyEvents
	fmt.Fprintf(buf, "KEY EVENTS\n%s\n", reportRule)
	fmt.Fprintf(buf, "Expected goals: %.2f - %.2f\n", k.HomeXG, k.AwayXG)
	fmt.Fprintf(buf, "Yellow cards: %.1f\n", k.TotalYellowExpected)
	fmt.Fprintf(buf, "Red card chance: %.0f%%\n", k.RedCardProb)
	fmt.Fprintf(buf, "Penalty chance: %.0f%%\n", k.PenaltyProb)
	fmt.Fprintf(buf, "Corners: %.1f\n\n", k.TotalCorners)

	if a.H2H != nil {
		h := a.H2H
		fmt.Fprintf(buf, "HEAD TO HEAD\n%s\n", reportRule)
		fmt.Fprintf(buf, "Games: %d  %s %d  Draws %d  %s %d\n\n",
			h.TotalGames, h.Team1, h.Team1Wins, h.Draws, h.Team2, h.Team2Wins)
	}

	if narrative = strings.TrimSpace(narrative); narrative != "" {
		fmt.Fprintf(buf, "ANALYSIS\n%s\n%s\n\n", reportRule, narrative)
	}

	fmt.Fprintf(buf, "%s\nGenerated by Match Analyzer\n", reportRule)
	return buf.String()
}

func writeTopScorelines(buf *bytebufferpool.ByteBuffer, d poisson.Distribution) {
	if len(d.Top) == 0 {
		return
	}
	fmt.Fprintf(buf, "MOST LIKELY SCORES\n%s\n", reportRule)
	for _, s := range d.Top {
		fmt.Fprintf(buf, "%s: %.1f%%\n", s.Label, s.Probability)
	}
	buf.WriteString("\n")
}
