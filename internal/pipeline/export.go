package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"escala/internal"
)

// ExportResultToXLSX writes one row per shift plus a per-month summary sheet
// with the quota balance.
func ExportResultToXLSX(result *internal.ProcessResult, goalHours float64, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetName(sheet, "turnos")
	sheet = "turnos"

	headers := []string{"month", "date", "start", "end", "hours", "source_file", "description", "manual"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	r := 1
	for _, month := range BuildReport(result, goalHours) {
		for _, shift := range month.Shifts {
			r++
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(sheet, cell, value)
			}
			set(1, month.MonthYear)
			set(2, shift.Date)
			set(3, shift.StartTime)
			set(4, shift.EndTime)
			set(5, shift.Hours)
			set(6, shift.FileName)
			set(7, shift.Description)
			set(8, shift.IsManual)
		}
	}

	summary := "resumo"
	if _, err := f.NewSheet(summary); err != nil {
		return err
	}
	summaryHeaders := []string{"month", "total_hours", "goal", "balance", "shifts"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summary, cell, h)
	}
	for i, month := range BuildReport(result, goalHours) {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(summary, cell, value)
		}
		set(1, month.MonthYear)
		set(2, month.TotalHours)
		set(3, month.Goal)
		set(4, month.Balance)
		set(5, len(month.Shifts))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
