// Package render maps a salary record to a structured visual document. The
// mapping is pure: identical input yields identical output, so the same
// Render call backs both the interactive preview and the pre-export capture.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"slipgen/internal/domain/slip"
)

// LineItem is a single labeled earnings or deduction amount.
type LineItem struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// Detail is one label/value pair in the employee details block.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is the rendered slip.
type Document struct {
	LogoRef        string   `json:"logoRef,omitempty"`
	CompanyName    string   `json:"companyName"`
	CompanyAddress string   `json:"companyAddress"`
	Title          string   `json:"title"`
	Details        []Detail `json:"details"`

	Earnings        []LineItem `json:"earnings"`
	Deductions      []LineItem `json:"deductions"`
	TotalEarnings   LineItem   `json:"totalEarnings"`
	TotalDeductions LineItem   `json:"totalDeductions"`
	NetSalary       LineItem   `json:"netSalary"`

	SignatureLabels [2]string `json:"signatureLabels"`
	Footer          string    `json:"footer"`
}

// Options carries optional precomputed line items and totals. Anything not
// supplied is derived from the record.
type Options struct {
	Earnings   []LineItem
	Deductions []LineItem
	Totals     *slip.Totals
}

var earningLabels = []string{
	"Basic Salary",
	"HRA",
	"Conveyance",
	"Medical",
	"Special Allowance",
	"Other Earnings",
}

var deductionLabels = []string{
	"Provident Fund",
	"Professional Tax",
	"TDS (Tax)",
	"Other Deductions",
}

const footerText = "This is a computer-generated document and does not require a physical signature."

// Every monetary value on a slip uses this one convention.
var currencyPrinter = message.NewPrinter(language.MustParse("en-PK"))

// FormatCurrency renders an amount in the slip's fixed currency convention,
// e.g. "Rs 50,000.00".
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("Rs %v",
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Render maps a record to its document. Missing text fields render as fixed
// placeholders rather than blank space.
func Render(rec slip.SalaryRecord, opts Options) Document {
	earnings := opts.Earnings
	if earnings == nil {
		earnings = lineItems(earningLabels, slip.EarningAmounts(rec))
	}
	deductions := opts.Deductions
	if deductions == nil {
		deductions = lineItems(deductionLabels, slip.DeductionAmounts(rec))
	}

	var totals slip.Totals
	if opts.Totals != nil {
		totals = *opts.Totals
	} else {
		totals = slip.TotalsOf(amounts(earnings), amounts(deductions))
	}

	return Document{
		LogoRef:        rec.CompanyLogo,
		CompanyName:    orPlaceholder(rec.CompanyName, "COMPANY NAME"),
		CompanyAddress: orPlaceholder(rec.CompanyAddress, "Company Address"),
		Title:          "Salary Slip for " + orPlaceholder(rec.MonthYear, "Month Year"),
		Details: []Detail{
			{Label: "Employee Name", Value: orDash(rec.EmployeeName)},
			{Label: "Designation", Value: orDash(rec.Designation)},
			{Label: "Employee ID", Value: orDash(rec.EmployeeID)},
			{Label: "Department", Value: orDash(rec.Department)},
			{Label: "PAN Number", Value: orDash(rec.PANNumber)},
			{Label: "Bank Name", Value: orDash(rec.BankName)},
			{Label: "Account No", Value: orDash(rec.AccountNumber)},
		},
		Earnings:        earnings,
		Deductions:      deductions,
		TotalEarnings:   lineItem("Total Earnings", totals.TotalEarnings),
		TotalDeductions: lineItem("Total Deductions", totals.TotalDeductions),
		NetSalary:       lineItem("Net Salary Payable", totals.NetSalary),
		SignatureLabels: [2]string{"Employee Signature", "Authorized Signature"},
		Footer:          footerText,
	}
}

func lineItems(labels []string, values []float64) []LineItem {
	items := make([]LineItem, len(labels))
	for i, label := range labels {
		items[i] = lineItem(label, values[i])
	}
	return items
}

func lineItem(label string, value float64) LineItem {
	return LineItem{Label: label, Value: value, Formatted: FormatCurrency(value)}
}

func amounts(items []LineItem) []float64 {
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = item.Value
	}
	return values
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func orDash(value string) string {
	return orPlaceholder(value, "-")
}
