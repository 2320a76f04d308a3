package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/knowtest/internal/session"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	levelsSheet  = "Levels"
)

// WriteXLSX writes the report as a workbook with a per-topic summary sheet
// and a per-level score sheet.
func WriteXLSX(w io.Writer, r *session.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(levelsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	summary := [][]any{{"Topic", "Passed levels", "Highest passed", "Highest by ratio", "Started"}}
	levels := [][]any{{"Topic", "Level", "Correct", "Answered", "Ratio", "Passed", "Passed by ratio"}}
	for _, t := range r.Topics {
		summary = append(summary, []any{
			t.Title,
			levelList(t),
			levelName(int(t.Highest)),
			levelName(int(t.HighestByRatio)),
			t.Started,
		})
		for _, l := range t.Levels {
			if !l.Started {
				levels = append(levels, []any{t.Title, l.Level.String(), "", "", "not started", l.Passed, false})
				continue
			}
			levels = append(levels, []any{
				t.Title, l.Level.String(), l.Score.Correct, l.Score.Answered,
				l.Score.Ratio(), l.Passed, l.PassedByRatio,
			})
		}
	}

	if err := writeRows(f, summarySheet, summary, header); err != nil {
		return err
	}
	if err := writeRows(f, levelsSheet, levels, header); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(levelsSheet, "A", "B", 20); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the report workbook to path.
func SaveXLSX(path string, r *session.Report) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := WriteXLSX(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

func levelList(t session.TopicReport) string {
	if len(t.PassedLevels) == 0 {
		return "None"
	}
	names := make([]string, len(t.PassedLevels))
	for i, l := range t.PassedLevels {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}
