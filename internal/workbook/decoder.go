// Package workbook extracts survey response rows from uploaded Excel
// workbooks. It is a narrow collaborator: it locates the response sheet,
// validates the column layout against the taxonomy length, and hands raw
// cell text to the scoring normalizer. No score interpretation happens here.
package workbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/SethFaerber/tma-report/internal/errors"
	"github.com/SethFaerber/tma-report/internal/survey"
)

// candidateSheets are tried by name before scanning the whole workbook.
var candidateSheets = []string{"Responses", "responses", "Form Responses 1", "Sheet1"}

// Decoder reads survey workbooks.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder creates a workbook decoder.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Decode reads an uploaded workbook and extracts one ResponseRow per
// respondent. The expected layout is a header row (respondent label plus one
// column per question) followed by one row per respondent with the name in
// the first column. The header must carry exactly questionCount answer
// columns; anything else means the upload does not match the configured
// taxonomy and is rejected rather than silently truncated or padded.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, questionCount int) ([]survey.ResponseRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("open workbook", err)
	}
	defer f.Close()

	sheet, rows, err := d.findResponseSheet(f, questionCount)
	if err != nil {
		return nil, err
	}

	d.logger.InfoContext(ctx, "decoding survey workbook",
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)),
	)

	header := rows[0]
	if len(header)-1 != questionCount {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"workbook has %d answer columns, taxonomy has %d questions", len(header)-1, questionCount))
	}

	out := make([]survey.ResponseRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		record := survey.ResponseRow{
			Cells: make([]string, questionCount),
		}
		if len(row) > 0 {
			record.Name = strings.TrimSpace(row[0])
		}
		// excelize trims trailing empty cells, so pad back to full width.
		for i := 0; i < questionCount; i++ {
			if i+1 < len(row) {
				record.Cells[i] = row[i+1]
			}
		}
		out = append(out, record)
	}

	d.logger.InfoContext(ctx, "decoded survey workbook",
		slog.String("sheet", sheet),
		slog.Int("respondent_rows", len(out)),
	)

	return out, nil
}

// findResponseSheet locates the sheet holding survey responses: first by
// candidate names, then by scanning for a sheet whose header width matches
// the taxonomy.
func (d *Decoder) findResponseSheet(f *excelize.File, questionCount int) (string, [][]string, error) {
	for _, name := range candidateSheets {
		rows, err := f.GetRows(name)
		if err == nil && len(rows) > 0 {
			return name, rows, nil
		}
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if len(rows[0])-1 == questionCount {
			return name, rows, nil
		}
	}

	return "", nil, apperrors.NewParsingError("no response sheet found in workbook", nil)
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
