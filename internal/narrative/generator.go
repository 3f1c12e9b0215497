// Package narrative produces the prose sections of the survey report. The
// calculated dataset is the single source of statistical truth: generators
// only describe it and never recompute statistics.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/SethFaerber/tma-report/internal/stats"
)

// Narrative holds the prose sections rendered alongside the statistics.
type Narrative struct {
	Overview      string `json:"overview"`
	Strengths     string `json:"strengths"`
	Opportunities string `json:"opportunities"`
	Alignment     string `json:"alignment"`
}

// Generator produces narrative text for a calculated dataset.
type Generator interface {
	Generate(ctx context.Context, dataset *stats.Dataset) (*Narrative, error)
}

// Static is a deterministic generator used when no text-generation API is
// configured. It derives plain commentary directly from the dataset so the
// report pipeline works end to end without network access.
type Static struct{}

// Generate implements Generator.
func (Static) Generate(_ context.Context, dataset *stats.Dataset) (*Narrative, error) {
	n := &Narrative{}

	var overview strings.Builder
	fmt.Fprintf(&overview, "This report summarizes responses from %d team members across %d questions.",
		len(dataset.Respondents), len(dataset.QuestionStats))
	if dataset.Extremes.Strongest != nil {
		fmt.Fprintf(&overview, " The strongest driver is %s (%.2f) and the weakest is %s (%.2f).",
			dataset.Extremes.Strongest.Driver, dataset.Extremes.Strongest.Score,
			dataset.Extremes.Weakest.Driver, dataset.Extremes.Weakest.Score)
	}
	n.Overview = overview.String()

	if dataset.HighestQuestion != nil {
		n.Strengths = fmt.Sprintf("The team scored highest on %q (%.2f, %s).",
			dataset.HighestQuestion.Question.Text,
			dataset.HighestQuestion.Average,
			dataset.HighestQuestion.Question.Driver)
	}
	if dataset.LowestQuestion != nil {
		n.Opportunities = fmt.Sprintf("The team scored lowest on %q (%.2f, %s).",
			dataset.LowestQuestion.Question.Text,
			dataset.LowestQuestion.Average,
			dataset.LowestQuestion.Question.Driver)
	}
	if dataset.MostAlignedQuestion != nil && dataset.MostDisagreedQuestion != nil {
		n.Alignment = fmt.Sprintf(
			"Responses agreed most on %q (std dev %.2f) and diverged most on %q (std dev %.2f).",
			dataset.MostAlignedQuestion.Question.Text, dataset.MostAlignedQuestion.StdDev,
			dataset.MostDisagreedQuestion.Question.Text, dataset.MostDisagreedQuestion.StdDev)
	}

	return n, nil
}
