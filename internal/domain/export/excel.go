package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"slipgen/internal/domain/slip"
)

const workbookSheet = "Salary Slips"

var workbookHeaders = []string{
	"Employee",
	"Employee ID",
	"Department",
	"Month",
	"Total Earnings",
	"Total Deductions",
	"Net Salary",
	"Created",
}

// Workbook writes all persisted slips into one spreadsheet, one row per
// record. Totals come from the shared calculator, so the workbook can never
// disagree with the rendered slip on net salary.
func Workbook(records []slip.SalaryRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(workbookSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, header := range workbookHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(workbookSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		totals := slip.ComputeTotals(rec)
		row := i + 2
		values := []any{
			rec.EmployeeName,
			rec.EmployeeID,
			rec.Department,
			rec.MonthYear,
			totals.TotalEarnings,
			totals.TotalDeductions,
			totals.NetSalary,
			rec.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(workbookSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
