package export

import (
	"path/filepath"
	"testing"

	"github.com/justsurfingit/job-tracker/internal/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReviewToExcel(t *testing.T) {
	questions := []practice.Question{
		{Question: "Explain goroutines.", Category: practice.CategoryTechnical, Difficulty: practice.DifficultyEasy},
		{Question: "Tell me about a failure.", Category: practice.CategoryBehavioral, Difficulty: practice.DifficultyMedium},
		{Question: "Why us?", Category: practice.CategoryCompanySpecific, Difficulty: practice.DifficultyHard},
	}
	summary := practice.Summarize(questions, map[int]practice.Feedback{
		0: {UserAnswer: "Lightweight threads.", Feedback: "Good.", Score: 9, IdealPoints: []string{"M:N scheduling", "Stack growth"}},
		2: {UserAnswer: "Mission.", Feedback: "Too vague.", Score: 4, ImprovementSuggestions: []string{"Cite the product"}},
	})

	out, err := ReviewToExcel(practice.Job{ID: "1", Title: "Go Developer", Company: "Acme"}, summary, filepath.Join(t.TempDir(), "review"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Answers"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", title)

	avg, err := f.GetCellValue("Summary", "B8")
	require.NoError(t, err)
	assert.Equal(t, "6.5/10", avg)

	band, err := f.GetCellValue("Summary", "B9")
	require.NoError(t, err)
	assert.Equal(t, "adequate", band)

	rows, err := f.GetRows("Answers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Explain goroutines.", rows[1][3])
	assert.Equal(t, "9", rows[1][5])
	assert.Equal(t, "M:N scheduling\nStack growth", rows[1][8])
	assert.Equal(t, "3", rows[2][0])
	assert.Equal(t, "company specific", rows[2][1])
}

func TestReviewToExcelEmptySummary(t *testing.T) {
	summary := practice.Summarize(nil, nil)

	out, err := ReviewToExcel(practice.Job{Title: "SRE", Company: "Acme"}, summary, filepath.Join(t.TempDir(), "empty.XLSX"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	avg, err := f.GetCellValue("Summary", "B8")
	require.NoError(t, err)
	assert.Equal(t, "0.0/10", avg)

	rows, err := f.GetRows("Answers")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
