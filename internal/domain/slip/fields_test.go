package slip

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestAmountCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"json number", 1234.5, 1234.5},
		{"int", 42, 42},
		{"numeric string", "1600", 1600},
		{"decimal string", " 99.25 ", 99.25},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"negative", -500.0, 0},
		{"nan", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"json.Number", json.Number("2500"), 2500},
	}

	for _, tc := range cases {
		if got := Amount(tc.in); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestApplyWhitelist(t *testing.T) {
	var rec SalaryRecord
	Apply(&rec, map[string]any{
		"employeeName": "John Doe",
		"monthYear":    "November 2025",
		"basicSalary":  50000.0,
		"hra":          "25000",
		"pf":           1800.0,
		"favouriteColour": "blue",
	})

	if rec.EmployeeName != "John Doe" || rec.MonthYear != "November 2025" {
		t.Fatalf("text fields not applied: %+v", rec)
	}
	if rec.BasicSalary != 50000 || rec.HRA != 25000 || rec.PF != 1800 {
		t.Fatalf("amount fields not applied: %+v", rec)
	}
}

func TestApplyNeverWritesServerOwnedFields(t *testing.T) {
	created := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	rec := SalaryRecord{ID: "original-id", CreatedAt: created}

	Apply(&rec, map[string]any{
		"id":        "spoofed",
		"createdAt": "2030-01-01T00:00:00Z",
	})

	if rec.ID != "original-id" {
		t.Fatalf("id was overwritten: %q", rec.ID)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Fatalf("createdAt was overwritten: %v", rec.CreatedAt)
	}
}

func TestValidate(t *testing.T) {
	valid := SalaryRecord{EmployeeName: "John Doe", MonthYear: "November 2025"}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	missingName := SalaryRecord{MonthYear: "November 2025"}
	err := Validate(missingName)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "employeeName is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	blankMonth := SalaryRecord{EmployeeName: "John Doe", MonthYear: "   "}
	if err := Validate(blankMonth); !IsValidation(err) {
		t.Fatalf("expected validation error for blank monthYear, got %v", err)
	}
}
