// Package export writes the weekly schedule to an Excel workbook, one sheet
// per date column with staff laid out as on the grid.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"medigrid/internal/model"
)

var headerColumns = []string{"시간", "담당자", "제목", "구분", "환자명", "환자번호", "메모"}

// WriteWeek writes appointments for the given dates into w as an xlsx
// workbook. Dates keep their display order; appointments off the date axis
// are skipped.
func WriteWeek(w io.Writer, dates []string, staff model.StaffList, appointments []model.Appointment) error {
	f := excelize.NewFile()
	defer f.Close()

	byDate := make(map[string][]model.Appointment)
	for _, a := range appointments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	for i, date := range dates {
		sheet := sheetName(date)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		if err := writeHeader(f, sheet); err != nil {
			return err
		}

		row := 2
		for _, a := range byDate[date] {
			name := a.StaffName
			if s, ok := staff.Lookup(a.StaffID); ok {
				name = s.Name
			}
			values := []interface{}{
				a.StartTime + " - " + a.EndTime,
				name,
				a.Title,
				string(a.Type),
				a.PatientName,
				a.PatientNumber,
				a.Notes,
			}
			for col, val := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return fmt.Errorf("write cell %s!%s: %w", sheet, cell, err)
				}
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string) error {
	for i, col := range headerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(headerColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}
	return nil
}

func sheetName(date string) string {
	// Excel sheet names cap at 31 chars; dates are well under.
	if len(date) > 31 {
		return date[:31]
	}
	return date
}
