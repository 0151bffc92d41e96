package salary

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Salaries"

var exportHeader = []any{
	"Employee Number", "Employee", "Month", "Year",
	"Base Salary", "Bonus", "Attendance Bonus", "Deduction", "Total",
	"Status", "Paid At",
}

// renderWorkbook writes one row per salary under a bold header and a totals
// row at the bottom.
func renderWorkbook(month, year string, salaries []Salary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	var grand int64
	for i, sal := range salaries {
		var number, name, paidAt string
		if sal.Employee != nil {
			number = sal.Employee.EmployeeNumber
			name = sal.Employee.FullName
		}
		if sal.PaidAt != nil {
			paidAt = sal.PaidAt.Format("2006-01-02")
		}
		row := []any{
			number, name, sal.Month, sal.Year,
			sal.BaseSalary, sal.Bonus, sal.AttendanceBonus, sal.Deduction, sal.Total,
			string(sal.Status), paidAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
		grand += sal.Total
	}

	totalRow := len(salaries) + 2
	if err := f.SetCellValue(exportSheet, fmt.Sprintf("H%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(exportSheet, fmt.Sprintf("I%d", totalRow), grand); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(exportSheet, totalRow, totalRow, bold); err != nil {
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title: fmt.Sprintf("Salaries %s/%s", month, year),
	}); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// ExportFilename is the download name of a monthly export.
func ExportFilename(month, year string) string {
	return fmt.Sprintf("salaries-%s-%s.xlsx", year, month)
}
