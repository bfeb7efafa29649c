package slip

import "time"

// SalaryRecord is the persisted shape of one salary slip: company and
// employee details plus the ten source amounts the totals derive from.
// Zero values are the documented defaults, so a freshly declared record
// is already a valid draft apart from the required fields.
type SalaryRecord struct {
	ID string `json:"id,omitempty"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyLogo    string `json:"companyLogo"`

	EmployeeName  string `json:"employeeName"`
	Designation   string `json:"designation"`
	EmployeeID    string `json:"employeeId"`
	Department    string `json:"department"`
	MonthYear     string `json:"monthYear"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	PANNumber     string `json:"panNumber"`

	BasicSalary         float64 `json:"basicSalary"`
	HRA                 float64 `json:"hra"`
	ConveyanceAllowance float64 `json:"conveyanceAllowance"`
	MedicalAllowance    float64 `json:"medicalAllowance"`
	SpecialAllowance    float64 `json:"specialAllowance"`
	OtherEarnings       float64 `json:"otherEarnings"`

	PF              float64 `json:"pf"`
	ProfessionalTax float64 `json:"professionalTax"`
	TDS             float64 `json:"tds"`
	OtherDeductions float64 `json:"otherDeductions"`

	CreatedAt time.Time `json:"createdAt"`
}

// EarningAmounts returns the six earning amounts in their fixed order.
func EarningAmounts(rec SalaryRecord) []float64 {
	return []float64{
		rec.BasicSalary,
		rec.HRA,
		rec.ConveyanceAllowance,
		rec.MedicalAllowance,
		rec.SpecialAllowance,
		rec.OtherEarnings,
	}
}

// DeductionAmounts returns the four deduction amounts in their fixed order.
func DeductionAmounts(rec SalaryRecord) []float64 {
	return []float64{
		rec.PF,
		rec.ProfessionalTax,
		rec.TDS,
		rec.OtherDeductions,
	}
}
