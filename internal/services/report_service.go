// Package services orchestrates the survey report pipeline: workbook decode,
// score normalization, aggregation, narrative generation and report
// assembly. All I/O and waiting happens at this layer; the statistics core
// below it is pure and never suspends.
package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SethFaerber/tma-report/internal/infrastructure"
	"github.com/SethFaerber/tma-report/internal/narrative"
	"github.com/SethFaerber/tma-report/internal/report"
	"github.com/SethFaerber/tma-report/internal/scoring"
	"github.com/SethFaerber/tma-report/internal/stats"
	"github.com/SethFaerber/tma-report/internal/survey"
	"github.com/SethFaerber/tma-report/internal/workbook"
)

// ReportService runs the full pipeline for one uploaded survey.
type ReportService struct {
	taxonomy   *survey.Taxonomy
	decoder    *workbook.Decoder
	normalizer *scoring.Normalizer
	engine     *stats.Engine
	generator  narrative.Generator
	metrics    *infrastructure.Metrics
	logger     *slog.Logger
}

// NewReportService wires the pipeline components. metrics may be nil in
// tests; generator falls back to the static generator when nil.
func NewReportService(
	taxonomy *survey.Taxonomy,
	vocab scoring.Vocabulary,
	generator narrative.Generator,
	metrics *infrastructure.Metrics,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	if generator == nil {
		generator = narrative.Static{}
	}
	return &ReportService{
		taxonomy:   taxonomy,
		decoder:    workbook.NewDecoder(logger),
		normalizer: scoring.NewNormalizer(vocab, logger),
		engine:     stats.NewEngine(taxonomy, logger),
		generator:  generator,
		metrics:    metrics,
		logger:     logger,
	}
}

// GenerateFromWorkbook decodes an uploaded workbook and produces the report.
func (s *ReportService) GenerateFromWorkbook(ctx context.Context, upload io.Reader) (*report.Report, error) {
	rows, err := s.decoder.Decode(ctx, upload, s.taxonomy.Len())
	if err != nil {
		return nil, err
	}
	return s.GenerateFromRows(ctx, rows)
}

// GenerateFromRows runs normalization, aggregation and narrative generation
// over pre-decoded response rows.
func (s *ReportService) GenerateFromRows(ctx context.Context, rows []survey.ResponseRow) (*report.Report, error) {
	normalized, err := s.normalizer.NormalizeRows(ctx, s.taxonomy, rows)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.UnmatchedCells.Add(float64(normalized.Unmatched))
		s.metrics.EmptyCells.Add(float64(normalized.Empty))
	}

	return s.generate(ctx, normalized.Respondents)
}

// GenerateExample produces a report from a deterministic built-in roster so
// clients can inspect the report shape without preparing a workbook. Scores
// cycle through the full 1..5 range to exercise every report section.
func (s *ReportService) GenerateExample(ctx context.Context) (*report.Report, error) {
	respondents, err := exampleRespondents(s.taxonomy)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, respondents)
}

func exampleRespondents(taxonomy *survey.Taxonomy) ([]survey.Respondent, error) {
	names := []string{"Avery", "Blake", "Casey", "Devon", "Emerson"}
	out := make([]survey.Respondent, 0, len(names))
	for ri, name := range names {
		scores := make([]survey.Score, taxonomy.Len())
		for qi := range scores {
			scores[qi] = survey.Score((ri+qi)%5 + 1)
		}
		respondent, err := survey.NewRespondent(name, scores, taxonomy)
		if err != nil {
			return nil, err
		}
		out = append(out, respondent)
	}
	return out, nil
}

func (s *ReportService) generate(ctx context.Context, respondents []survey.Respondent) (*report.Report, error) {
	dataset := s.engine.Calculate(ctx, respondents)

	if s.metrics != nil {
		s.metrics.RespondentsExcluded.Add(float64(len(respondents) - len(dataset.Respondents)))
		s.metrics.RespondentsProcessed.Add(float64(len(dataset.Respondents)))
	}

	prose, err := s.generator.Generate(ctx, dataset)
	if err != nil {
		// The statistics are still worth a report; degrade to the static
		// narrative instead of failing the whole upload.
		s.logger.ErrorContext(ctx, "narrative generation failed, using static narrative",
			slog.String("error", err.Error()))
		prose, _ = narrative.Static{}.Generate(ctx, dataset)
	}

	out := report.New(dataset, prose)
	if s.metrics != nil {
		s.metrics.ReportsGenerated.Inc()
	}

	s.logger.InfoContext(ctx, "generated survey report",
		slog.String("report_id", out.ID),
		slog.Int("respondents", len(dataset.Respondents)),
	)

	return out, nil
}
