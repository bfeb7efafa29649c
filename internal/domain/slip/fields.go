package slip

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Apply copies raw field values onto a record. It is the single
// normalization step for untrusted input: only whitelisted field names are
// applied, amounts go through Amount coercion, and the server-owned id and
// createdAt fields are never writable. Unknown names are ignored.
func Apply(rec *SalaryRecord, fields map[string]any) {
	for name, value := range fields {
		switch name {
		case "companyName":
			rec.CompanyName = text(value)
		case "companyAddress":
			rec.CompanyAddress = text(value)
		case "companyLogo":
			rec.CompanyLogo = text(value)
		case "employeeName":
			rec.EmployeeName = text(value)
		case "designation":
			rec.Designation = text(value)
		case "employeeId":
			rec.EmployeeID = text(value)
		case "department":
			rec.Department = text(value)
		case "monthYear":
			rec.MonthYear = text(value)
		case "bankName":
			rec.BankName = text(value)
		case "accountNumber":
			rec.AccountNumber = text(value)
		case "panNumber":
			rec.PANNumber = text(value)
		case "basicSalary":
			rec.BasicSalary = Amount(value)
		case "hra":
			rec.HRA = Amount(value)
		case "conveyanceAllowance":
			rec.ConveyanceAllowance = Amount(value)
		case "medicalAllowance":
			rec.MedicalAllowance = Amount(value)
		case "specialAllowance":
			rec.SpecialAllowance = Amount(value)
		case "otherEarnings":
			rec.OtherEarnings = Amount(value)
		case "pf":
			rec.PF = Amount(value)
		case "professionalTax":
			rec.ProfessionalTax = Amount(value)
		case "tds":
			rec.TDS = Amount(value)
		case "otherDeductions":
			rec.OtherDeductions = Amount(value)
		}
	}
}

func text(v any) string {
	s, _ := v.(string)
	return s
}

// Amount coerces a raw field value to a salary amount. Amounts are always
// defined and non-negative: anything unparseable, NaN, infinite or below
// zero reads as 0.
func Amount(v any) float64 {
	var amount float64
	switch value := v.(type) {
	case float64:
		amount = value
	case int:
		amount = float64(value)
	case json.Number:
		amount, _ = value.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			amount = parsed
		}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}

// Validate checks the required fields of a record about to be persisted.
func Validate(rec SalaryRecord) error {
	if strings.TrimSpace(rec.EmployeeName) == "" {
		return &ValidationError{Field: "employeeName"}
	}
	if strings.TrimSpace(rec.MonthYear) == "" {
		return &ValidationError{Field: "monthYear"}
	}
	return nil
}
