// Package export builds the administrator's progress report spreadsheet.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/pkg/models"
)

// SheetName is the worksheet holding the report.
const SheetName = "Progress"

// ReportRow pairs a user with their computed progress.
type ReportRow struct {
	User    models.User
	Summary course.ProgressSummary
}

// ProgressReport builds an xlsx workbook with one row per user: identity
// columns, one completion column per catalog module, and the aggregate
// counters. Callers own writing the file to its destination.
func ProgressReport(catalog *course.Catalog, rows []ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %v", err)
	}

	headers := []string{"Name", "Email", "Institution"}
	for _, mod := range catalog.Modules() {
		headers = append(headers, mod.Title)
	}
	headers = append(headers, "Completed Modules", "Overall %")

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %v", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %v", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{row.User.Name, row.User.Email, row.User.Institution}
		for _, status := range row.Summary.Modules {
			if status.Completed {
				values = append(values, "yes")
			} else {
				values = append(values, "no")
			}
		}
		values = append(values,
			fmt.Sprintf("%d/%d", row.Summary.CompletedModules, row.Summary.TotalModules),
			row.Summary.OverallPercent,
		)

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %v", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %v", i+2, err)
			}
		}
	}

	return f, nil
}
