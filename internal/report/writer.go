package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	apperrors "github.com/SethFaerber/tma-report/internal/errors"
	"github.com/SethFaerber/tma-report/internal/stats"
)

// WriteJSON writes the report as indented JSON with a format marker.
func WriteJSON(w io.Writer, r *Report) error {
	payload := map[string]interface{}{
		"report": r,
		"format": "tma_report_v1",
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return apperrors.NewRenderError("encode report to JSON", err)
	}
	return nil
}

// WriteCSV writes the full question statistics table in original question
// order, one row per question.
func WriteCSV(w io.Writer, r *Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Index", "Driver", "Skill", "Question", "Average", "StdDev", "Score1", "Score2", "Score3", "Score4", "Score5"}
	if err := writer.Write(header); err != nil {
		return apperrors.NewRenderError("write CSV header", err)
	}

	for _, stat := range r.Dataset.QuestionStats {
		row := []string{
			fmt.Sprintf("%d", stat.Question.Index),
			string(stat.Question.Driver),
			stat.Question.Skill,
			stat.Question.Text,
			fmt.Sprintf("%.2f", stat.Average),
			fmt.Sprintf("%.2f", stat.StdDev),
		}
		for _, count := range stat.Distribution {
			row = append(row, fmt.Sprintf("%d", count))
		}
		if err := writer.Write(row); err != nil {
			return apperrors.NewRenderError("write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewRenderError("flush CSV output", err)
	}
	return nil
}

// WriteText renders the report's tabular sections as plain-text tables for
// terminal output and plain-text report attachments.
func WriteText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "Team Alignment Report %s (generated %s)\n\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04"))

	if r.Narrative != nil && r.Narrative.Overview != "" {
		fmt.Fprintf(w, "%s\n\n", r.Narrative.Overview)
	}

	fmt.Fprintln(w, "Driver scores:")
	if err := writeDriverTable(w, r.Dataset.DriverScores); err != nil {
		return err
	}

	sections := []struct {
		title string
		stats []stats.QuestionStats
	}{
		{"Highest scoring questions", r.Dataset.HighestScoring},
		{"Lowest scoring questions", r.Dataset.LowestScoring},
		{"Most aligned questions", r.Dataset.MostAligned},
		{"Most divided questions", r.Dataset.MostDifferent},
	}
	for _, section := range sections {
		fmt.Fprintf(w, "\n%s:\n", section.title)
		if err := writeQuestionTable(w, section.stats); err != nil {
			return err
		}
	}

	return nil
}

func writeDriverTable(w io.Writer, scores []stats.DriverScore) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Driver", "Score"})

	var data [][]string
	for _, ds := range scores {
		data = append(data, []string{string(ds.Driver), fmt.Sprintf("%.2f", ds.Score)})
	}
	if err := table.Bulk(data); err != nil {
		return apperrors.NewRenderError("render driver table", err)
	}
	if err := table.Render(); err != nil {
		return apperrors.NewRenderError("render driver table", err)
	}
	return nil
}

func writeQuestionTable(w io.Writer, questionStats []stats.QuestionStats) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Driver", "Question", "Average", "StdDev"})

	var data [][]string
	for _, stat := range questionStats {
		data = append(data, []string{
			string(stat.Question.Driver),
			stat.Question.Text,
			fmt.Sprintf("%.2f", stat.Average),
			fmt.Sprintf("%.2f", stat.StdDev),
		})
	}
	if err := table.Bulk(data); err != nil {
		return apperrors.NewRenderError("render question table", err)
	}
	if err := table.Render(); err != nil {
		return apperrors.NewRenderError("render question table", err)
	}
	return nil
}
