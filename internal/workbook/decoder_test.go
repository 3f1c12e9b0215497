package workbook

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// buildWorkbook creates an in-memory workbook with the given sheet name and
// rows for decoder tests.
func buildWorkbook(t *testing.T, sheet string, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestDecode(t *testing.T) {
	upload := buildWorkbook(t, "Responses", [][]string{
		{"Name", "Q1", "Q2", "Q3"},
		{"Alice", "Strongly Agree", "Agree", "Neutral"},
		{"Bob", "Disagree", "", "banana"},
	})

	decoder := NewDecoder(testLogger())
	rows, err := decoder.Decode(context.Background(), upload, 3)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, []string{"Strongly Agree", "Agree", "Neutral"}, rows[0].Cells)
	assert.Equal(t, "Bob", rows[1].Name)
	assert.Equal(t, []string{"Disagree", "", "banana"}, rows[1].Cells)
}

func TestDecode_PadsTrailingEmptyCells(t *testing.T) {
	upload := buildWorkbook(t, "Responses", [][]string{
		{"Name", "Q1", "Q2", "Q3"},
		{"Carol", "Agree"},
	})

	decoder := NewDecoder(testLogger())
	rows, err := decoder.Decode(context.Background(), upload, 3)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Agree", "", ""}, rows[0].Cells)
}

func TestDecode_SkipsEmptyRows(t *testing.T) {
	upload := buildWorkbook(t, "Sheet1", [][]string{
		{"Name", "Q1"},
		{"", ""},
		{"Dave", "Neutral"},
	})

	decoder := NewDecoder(testLogger())
	rows, err := decoder.Decode(context.Background(), upload, 1)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Dave", rows[0].Name)
}

func TestDecode_ColumnCountMismatch(t *testing.T) {
	upload := buildWorkbook(t, "Responses", [][]string{
		{"Name", "Q1", "Q2"},
		{"Alice", "Agree", "Agree"},
	})

	decoder := NewDecoder(testLogger())
	_, err := decoder.Decode(context.Background(), upload, 5)
	assert.Error(t, err)
}

func TestDecode_FindsSheetByLayout(t *testing.T) {
	upload := buildWorkbook(t, "Custom Export", [][]string{
		{"Name", "Q1", "Q2"},
		{"Alice", "Agree", "Neutral"},
	})

	decoder := NewDecoder(testLogger())
	rows, err := decoder.Decode(context.Background(), upload, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestDecode_NotAWorkbook(t *testing.T) {
	decoder := NewDecoder(testLogger())
	_, err := decoder.Decode(context.Background(), bytes.NewReader([]byte("not an xlsx")), 3)
	assert.Error(t, err)
}
