package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

// Helper function to create basic test inputs
func createTestInputs() domain.TaxInputs {
	return domain.TaxInputs{
		GrossSalary:      decimal.NewFromInt(1200000),
		PFContribution:   decimal.NewFromInt(72000),
		TotalInvestments: decimal.NewFromInt(150000),
		RentPaid:         domain.DecimalPtr(decimal.NewFromInt(15000)),
		BasicSalary:      domain.DecimalPtr(decimal.NewFromInt(480000)),
		HRAPercentage:    domain.DecimalPtr(decimal.NewFromInt(40)),
		IsMetroCity:      domain.BoolPtr(true),
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInputs()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if !result.GrossSalary.Equal(base.GrossSalary) || !result.TotalInvestments.Equal(base.TotalInvestments) {
		t.Error("Expected inputs to be unchanged")
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestInputs()
	transforms := []InputTransform{
		&SetInvestments{Amount: decimal.NewFromInt(100000)},
		&AddInvestments{Amount: decimal.NewFromInt(50000)},
		&AddInvestments{Amount: decimal.NewFromInt(25000)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.TotalInvestments.Equal(decimal.NewFromInt(175000)) {
		t.Errorf("Expected investments 175000, got %s", result.TotalInvestments)
	}
	if !base.TotalInvestments.Equal(decimal.NewFromInt(150000)) {
		t.Error("Expected base inputs to be unchanged")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestInputs(), []InputTransform{nil})
	if err == nil || !strings.Contains(err.Error(), "index 0 is nil") {
		t.Errorf("Expected nil transform error, got %v", err)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	transforms := []InputTransform{
		&AddInvestments{Amount: decimal.NewFromInt(-200000)},
	}

	_, err := ApplyTransforms(createTestInputs(), transforms)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if te.TransformName != "add_investments" || te.Operation != "validate" {
		t.Errorf("Unexpected transform error %+v", te)
	}
}

func TestSetRent_DoesNotMutateBase(t *testing.T) {
	base := createTestInputs()

	result, err := (&SetRent{Monthly: decimal.NewFromInt(20000)}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.RentPaid.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected rent 20000, got %s", result.RentPaid)
	}
	if !base.RentPaid.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected base rent to stay 15000, got %s", base.RentPaid)
	}
}

func TestRaiseSalary(t *testing.T) {
	base := createTestInputs()

	result, err := (&RaiseSalary{Percent: decimal.NewFromInt(10)}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.GrossSalary.Equal(decimal.NewFromInt(1320000)) {
		t.Errorf("Expected gross 1320000, got %s", result.GrossSalary)
	}
	if !result.BasicSalary.Equal(decimal.NewFromInt(528000)) {
		t.Errorf("Expected basic 528000, got %s", result.BasicSalary)
	}
	if !result.PFContribution.Equal(base.PFContribution) {
		t.Error("Expected PF to be unchanged")
	}
	if !base.BasicSalary.Equal(decimal.NewFromInt(480000)) {
		t.Error("Expected base basic salary to be unchanged")
	}

	// Absent basic salary stays absent so the engine default applies
	base.BasicSalary = nil
	result, _ = (&RaiseSalary{Percent: decimal.NewFromInt(10)}).Apply(base)
	if result.BasicSalary != nil {
		t.Error("Expected basic salary to stay absent")
	}
}

func TestTransforms_Validate(t *testing.T) {
	base := createTestInputs()

	tests := []struct {
		name      string
		transform InputTransform
		wantErr   bool
	}{
		{"set investments", &SetInvestments{Amount: decimal.NewFromInt(0)}, false},
		{"negative investments", &SetInvestments{Amount: decimal.NewFromInt(-1)}, true},
		{"add within balance", &AddInvestments{Amount: decimal.NewFromInt(-150000)}, false},
		{"add below zero", &AddInvestments{Amount: decimal.NewFromInt(-150001)}, true},
		{"negative rent", &SetRent{Monthly: decimal.NewFromInt(-1)}, true},
		{"salary cut", &RaiseSalary{Percent: decimal.NewFromInt(-50)}, false},
		{"salary to zero", &RaiseSalary{Percent: decimal.NewFromInt(-100)}, true},
		{"metro", &SetMetro{Metro: false}, false},
		{"negative pf", &SetPF{Amount: decimal.NewFromInt(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransforms_Describe(t *testing.T) {
	tests := []struct {
		transform InputTransform
		name      string
		desc      string
	}{
		{&SetInvestments{Amount: decimal.NewFromInt(150000)}, "set_investments", "Declare ₹150000 of deductible investments"},
		{&AddInvestments{Amount: decimal.NewFromInt(50000)}, "add_investments", "Add ₹50000 of deductible investments"},
		{&SetRent{Monthly: decimal.NewFromInt(20000)}, "set_rent", "Pay ₹20000 rent per month"},
		{&RaiseSalary{Percent: decimal.NewFromInt(10)}, "raise_salary", "Raise salary by 10%"},
		{&SetMetro{Metro: false}, "set_metro", "Live in a non-metro city"},
		{&SetPF{Amount: decimal.NewFromInt(36000)}, "set_pf", "Contribute ₹36000 to PF per year"},
	}

	for _, tt := range tests {
		if tt.transform.Name() != tt.name {
			t.Errorf("Expected name %s, got %s", tt.name, tt.transform.Name())
		}
		if tt.transform.Description() != tt.desc {
			t.Errorf("Expected description %q, got %q", tt.desc, tt.transform.Description())
		}
	}
}

func TestTransformError(t *testing.T) {
	cause := errors.New("boom")

	err := NewTransformError("set_rent", "apply", "failed", nil)
	if err.Error() != "transform set_rent (apply): failed" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	err = NewTransformError("set_rent", "apply", "failed", cause)
	if err.Error() != "transform set_rent (apply): failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
}
