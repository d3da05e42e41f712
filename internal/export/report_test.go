package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/pkg/models"
)

func TestProgressReport(t *testing.T) {
	catalog := course.DefaultCatalog()

	done := models.ProgressRecord{}
	for _, field := range catalog.CompletionFields() {
		done[field] = true
	}
	partial := models.ProgressRecord{"intro_complete": true}

	rows := []ReportRow{
		{
			User:    models.User{Name: "Ada", Email: "ada@example.edu", Institution: "AEA"},
			Summary: course.ComputeProgress(catalog, done),
		},
		{
			User:    models.User{Name: "Grace", Email: "grace@example.edu"},
			Summary: course.ComputeProgress(catalog, partial),
		},
	}

	f, err := ProgressReport(catalog, rows)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	cell := func(col, row int) string {
		t.Helper()
		name, err := excelize.CoordinatesToCellName(col, row)
		require.NoError(t, err)
		value, err := f.GetCellValue(SheetName, name)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "Name", cell(1, 1))
	assert.Equal(t, "Email", cell(2, 1))
	assert.Equal(t, "Institution", cell(3, 1))
	assert.Equal(t, "Introduction to Computational Thinking", cell(4, 1))
	assert.Equal(t, "Completed Modules", cell(4+catalog.Len(), 1))
	assert.Equal(t, "Overall %", cell(5+catalog.Len(), 1))

	assert.Equal(t, "Ada", cell(1, 2))
	assert.Equal(t, "yes", cell(4, 2))
	assert.Equal(t, "6/6", cell(4+catalog.Len(), 2))
	assert.Equal(t, "100", cell(5+catalog.Len(), 2))

	assert.Equal(t, "Grace", cell(1, 3))
	assert.Equal(t, "yes", cell(4, 3), "intro column")
	assert.Equal(t, "no", cell(5, 3), "decomposition column")
	assert.Equal(t, "1/6", cell(4+catalog.Len(), 3))
	assert.Equal(t, "16", cell(5+catalog.Len(), 3))
}

func TestProgressReportEmpty(t *testing.T) {
	f, err := ProgressReport(course.DefaultCatalog(), nil)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", value)
}
