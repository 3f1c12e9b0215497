package narrative

import (
	"fmt"
	"strings"

	"github.com/SethFaerber/tma-report/internal/stats"
)

// Section markers the remote model is asked to emit, so the response can be
// split back into the report's prose sections.
const (
	markerOverview      = "## OVERVIEW"
	markerStrengths     = "## STRENGTHS"
	markerOpportunities = "## OPPORTUNITIES"
	markerAlignment     = "## ALIGNMENT"
)

// buildPrompt renders the pre-aggregated statistics into the generation
// prompt. The model is given finished numbers only; it is never asked to
// compute anything.
func buildPrompt(dataset *stats.Dataset) string {
	var b strings.Builder

	b.WriteString("You are writing the narrative sections of a team alignment survey report.\n")
	b.WriteString("Use only the statistics provided below. Do not invent or recompute numbers.\n")
	fmt.Fprintf(&b, "Respond with four sections headed exactly %s, %s, %s and %s.\n\n",
		markerOverview, markerStrengths, markerOpportunities, markerAlignment)

	fmt.Fprintf(&b, "Respondents: %d\nQuestions: %d\n\n", len(dataset.Respondents), len(dataset.QuestionStats))

	b.WriteString("Driver scores:\n")
	for _, ds := range dataset.DriverScores {
		fmt.Fprintf(&b, "- %s: %.2f\n", ds.Driver, ds.Score)
	}
	if dataset.Extremes.Strongest != nil {
		fmt.Fprintf(&b, "Strongest driver: %s (%.2f)\n", dataset.Extremes.Strongest.Driver, dataset.Extremes.Strongest.Score)
		fmt.Fprintf(&b, "Weakest driver: %s (%.2f)\n", dataset.Extremes.Weakest.Driver, dataset.Extremes.Weakest.Score)
	}
	b.WriteString("\n")

	if dataset.HighestQuestion != nil {
		fmt.Fprintf(&b, "Highest scoring question: %q (average %.2f)\n",
			dataset.HighestQuestion.Question.Text, dataset.HighestQuestion.Average)
	}
	if dataset.LowestQuestion != nil {
		fmt.Fprintf(&b, "Lowest scoring question: %q (average %.2f)\n",
			dataset.LowestQuestion.Question.Text, dataset.LowestQuestion.Average)
	}
	if dataset.MostAlignedQuestion != nil {
		fmt.Fprintf(&b, "Most aligned question: %q (std dev %.2f)\n",
			dataset.MostAlignedQuestion.Question.Text, dataset.MostAlignedQuestion.StdDev)
	}
	if dataset.MostDisagreedQuestion != nil {
		fmt.Fprintf(&b, "Most disagreed question: %q (std dev %.2f)\n",
			dataset.MostDisagreedQuestion.Question.Text, dataset.MostDisagreedQuestion.StdDev)
	}
	b.WriteString("\nRespondent summaries:\n")
	for _, r := range dataset.Respondents {
		fmt.Fprintf(&b, "- %s: overall %.2f, highest driver %s, lowest driver %s, outlier answers %d\n",
			r.Name, r.OverallAverage, r.HighestDriver, r.LowestDriver, len(r.OutlierQuestions))
	}

	return b.String()
}

// parseSections splits a model response on the section markers. Text before
// the first marker, or a response with no markers at all, lands in Overview
// so nothing the model wrote is silently dropped.
func parseSections(text string) *Narrative {
	n := &Narrative{}

	current := &n.Overview
	for _, line := range strings.Split(text, "\n") {
		switch strings.TrimSpace(line) {
		case markerOverview:
			current = &n.Overview
			continue
		case markerStrengths:
			current = &n.Strengths
			continue
		case markerOpportunities:
			current = &n.Opportunities
			continue
		case markerAlignment:
			current = &n.Alignment
			continue
		}
		if *current != "" {
			*current += "\n"
		}
		*current += line
	}

	n.Overview = strings.TrimSpace(n.Overview)
	n.Strengths = strings.TrimSpace(n.Strengths)
	n.Opportunities = strings.TrimSpace(n.Opportunities)
	n.Alignment = strings.TrimSpace(n.Alignment)
	return n
}
