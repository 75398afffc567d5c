package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/justsurfingit/job-tracker/internal/practice"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	answersSheet = "Answers"
)

// Band fill colors, shared with the terminal review.
var bandColors = map[practice.Band]string{
	practice.BandStrong:   "C6EFCE",
	practice.BandAdequate: "FFEB9C",
	practice.BandWeak:     "FFC7CE",
}

// ReviewToExcel writes a practice session review to an xlsx workbook with a
// summary sheet and one row per scored answer.
func ReviewToExcel(job practice.Job, summary practice.Summary, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(answersSheet); err != nil {
		return "", err
	}

	if err := writeSummary(f, job, summary); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeAnswers(f, summary); err != nil {
		return "", fmt.Errorf("failed to create answers sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return outputPath, nil
}

func writeSummary(f *excelize.File, job practice.Job, summary practice.Summary) error {
	f.SetColWidth(summarySheet, "A", "A", 22)
	f.SetColWidth(summarySheet, "B", "B", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	f.SetCellValue(summarySheet, "A1", "Interview Practice Review")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.MergeCell(summarySheet, "A1", "B1")

	rows := [][2]any{
		{"Job:", job.Title},
		{"Company:", job.Company},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Questions:", summary.TotalQuestions},
		{"Completed:", summary.CompletedCount},
		{"Average Score:", fmt.Sprintf("%.1f/10", summary.AverageScore)},
		{"Overall:", string(summary.Band)},
	}
	for i, r := range rows {
		row := i + 3
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1])
	}

	bandStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{bandColors[summary.Band]}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last := len(rows) + 2
	return f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", last), fmt.Sprintf("B%d", last), bandStyle)
}

func writeAnswers(f *excelize.File, summary practice.Summary) error {
	headers := []string{"#", "Category", "Difficulty", "Question", "Your Answer", "Score", "Feedback", "Improvements", "Ideal Points"}
	widths := []float64{5, 16, 12, 50, 50, 8, 50, 40, 40}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(answersSheet, col, col, widths[i])
		f.SetCellValue(answersSheet, col+"1", h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(answersSheet, "A1", lastCol+"1", headerStyle)

	bandStyles := make(map[practice.Band]int, len(bandColors))
	for band, color := range bandColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
		})
		if err != nil {
			return err
		}
		bandStyles[band] = style
	}

	for i, item := range summary.Items {
		row := i + 2
		values := []any{
			item.Index + 1,
			item.Question.Category.Label(),
			string(item.Question.Difficulty),
			item.Question.Question,
			item.Feedback.UserAnswer,
			item.Feedback.Score,
			item.Feedback.Feedback,
			strings.Join(item.Feedback.ImprovementSuggestions, "\n"),
			strings.Join(item.Feedback.IdealPoints, "\n"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(answersSheet, cell, &values); err != nil {
			return err
		}
		f.SetCellStyle(answersSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), wrapStyle)
		f.SetCellStyle(answersSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), bandStyles[item.Band])
	}
	return nil
}
