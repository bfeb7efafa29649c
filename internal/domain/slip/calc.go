package slip

// Totals are the derived summary figures of a slip. They are never stored;
// every view recomputes them from the ten source amounts so a listing and a
// detailed preview can never disagree on net salary for the same record.
type Totals struct {
	TotalEarnings   float64 `json:"totalEarnings"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
}

// ComputeTotals sums the earning and deduction fields of a record.
func ComputeTotals(rec SalaryRecord) Totals {
	return TotalsOf(EarningAmounts(rec), DeductionAmounts(rec))
}

// TotalsOf computes totals from already-derived line amounts, for callers
// that carry explicit line items instead of a full record.
func TotalsOf(earnings, deductions []float64) Totals {
	var totalEarnings, totalDeductions float64
	for _, amount := range earnings {
		totalEarnings += amount
	}
	for _, amount := range deductions {
		totalDeductions += amount
	}
	return Totals{
		TotalEarnings:   totalEarnings,
		TotalDeductions: totalDeductions,
		NetSalary:       totalEarnings - totalDeductions,
	}
}
