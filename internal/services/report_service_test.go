package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SethFaerber/tma-report/internal/infrastructure"
	"github.com/SethFaerber/tma-report/internal/narrative"
	"github.com/SethFaerber/tma-report/internal/scoring"
	"github.com/SethFaerber/tma-report/internal/stats"
	"github.com/SethFaerber/tma-report/internal/survey"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testTaxonomy(t *testing.T) *survey.Taxonomy {
	t.Helper()
	taxonomy, err := survey.NewTaxonomy([]survey.Question{
		{Driver: survey.DriverPurpose, Skill: "Vision", Text: "We share a vision."},
		{Driver: survey.DriverPurpose, Skill: "Mission", Text: "We know our mission."},
		{Driver: survey.DriverProfit, Skill: "Margins", Text: "Margins are healthy."},
	}, 3)
	require.NoError(t, err)
	return taxonomy
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, *stats.Dataset) (*narrative.Narrative, error) {
	return nil, errors.New("upstream unavailable")
}

func TestGenerateFromRows(t *testing.T) {
	taxonomy := testTaxonomy(t)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), nil, nil, testLogger())

	out, err := service.GenerateFromRows(context.Background(), []survey.ResponseRow{
		{Name: "Alice", Cells: []string{"Strongly Agree", "Agree", "Neutral"}},
		{Name: "Bob", Cells: []string{"Agree", "Agree", "Disagree"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	require.NotNil(t, out.Dataset)
	require.Len(t, out.Dataset.QuestionStats, 3)
	assert.Equal(t, 4.50, out.Dataset.QuestionStats[0].Average)
	assert.Equal(t, 4.00, out.Dataset.QuestionStats[1].Average)
	assert.Equal(t, 2.50, out.Dataset.QuestionStats[2].Average)

	require.Len(t, out.Dataset.DriverScores, 2)
	assert.Equal(t, survey.DriverPurpose, out.Dataset.DriverScores[0].Driver)
	assert.Equal(t, 4.25, out.Dataset.DriverScores[0].Score)
	assert.Equal(t, 2.50, out.Dataset.DriverScores[1].Score)

	require.NotNil(t, out.Narrative)
	assert.NotEmpty(t, out.Narrative.Overview)
}

func TestGenerateFromRows_NarrativeFailureDegradesToStatic(t *testing.T) {
	taxonomy := testTaxonomy(t)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), failingGenerator{}, nil, testLogger())

	out, err := service.GenerateFromRows(context.Background(), []survey.ResponseRow{
		{Name: "Alice", Cells: []string{"Agree", "Agree", "Agree"}},
	})
	require.NoError(t, err)

	require.NotNil(t, out.Narrative)
	assert.NotEmpty(t, out.Narrative.Overview)
}

func TestGenerateFromRows_Metrics(t *testing.T) {
	taxonomy := testTaxonomy(t)
	registry := prometheus.NewRegistry()
	metrics := infrastructure.NewMetrics(registry)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), nil, metrics, testLogger())

	_, err := service.GenerateFromRows(context.Background(), []survey.ResponseRow{
		{Name: "Alice", Cells: []string{"Agree", "banana", ""}},
		{Name: "Ghost", Cells: []string{"", "", ""}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReportsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UnmatchedCells))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.EmptyCells))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RespondentsExcluded))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RespondentsProcessed))
}

func TestGenerateExample(t *testing.T) {
	taxonomy := testTaxonomy(t)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), nil, nil, testLogger())

	out, err := service.GenerateExample(context.Background())
	require.NoError(t, err)

	require.NotNil(t, out.Dataset)
	require.Len(t, out.Dataset.Respondents, 5)
	assert.Equal(t, "Avery", out.Dataset.Respondents[0].Name)

	// Scores cycle 1..5 across the roster, so every question sees each score
	// exactly once.
	require.Len(t, out.Dataset.QuestionStats, 3)
	for _, stat := range out.Dataset.QuestionStats {
		assert.Equal(t, 3.00, stat.Average)
		assert.Equal(t, 1.41, stat.StdDev)
		assert.Equal(t, [5]int{1, 1, 1, 1, 1}, stat.Distribution)
	}

	require.NotNil(t, out.Narrative)
	assert.NotEmpty(t, out.Narrative.Overview)
}

func TestGenerateExample_Deterministic(t *testing.T) {
	taxonomy := testTaxonomy(t)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), nil, nil, testLogger())

	a, err := service.GenerateExample(context.Background())
	require.NoError(t, err)
	b, err := service.GenerateExample(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Dataset, b.Dataset)
}

func TestGenerateFromWorkbook(t *testing.T) {
	taxonomy := testTaxonomy(t)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), nil, nil, testLogger())

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]string{
		{"Name", "Q1", "Q2", "Q3"},
		{"Alice", "Strongly Agree", "Agree", "Neutral"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	out, err := service.GenerateFromWorkbook(context.Background(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, out.Dataset.Respondents, 1)
	assert.Equal(t, "Alice", out.Dataset.Respondents[0].Name)
}

func TestGenerateFromWorkbook_BadUpload(t *testing.T) {
	taxonomy := testTaxonomy(t)
	service := NewReportService(taxonomy, scoring.DefaultVocabulary(), nil, nil, testLogger())

	_, err := service.GenerateFromWorkbook(context.Background(), bytes.NewReader([]byte("garbage")))
	assert.Error(t, err)
}
