package transform

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []InputTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	// Test case-insensitive
	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"add_50k",
		"invest_150k",
		"invest_200k",
		"minimal_claims",
		"move_metro",
		"move_non_metro",
		"no_investments",
		"no_rent",
		"raise_10pct",
		"raise_10pct_invest_200k",
		"raise_20pct",
	}
	if got := registry.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected templates %v, got %v", expected, got)
	}

	for _, name := range expected {
		tmpl, _ := registry.Get(name)
		if tmpl.Description == "" || len(tmpl.Transforms) == 0 {
			t.Errorf("Template %s is incomplete", name)
		}
	}
}

func TestApplyTemplate_Combination(t *testing.T) {
	registry := CreateBuiltInTemplates()
	tmpl, _ := registry.Get("raise_10pct_invest_200k")

	result, err := ApplyTemplate(createTestInputs(), tmpl)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.GrossSalary.Equal(decimal.NewFromInt(1320000)) {
		t.Errorf("Expected gross 1320000, got %s", result.GrossSalary)
	}
	if !result.TotalInvestments.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("Expected investments 200000, got %s", result.TotalInvestments)
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"invest_150k", []string{"invest_150k"}},
		{"invest_150k, raise_10pct ,", []string{"invest_150k", "raise_10pct"}},
		{"set_rent:monthly=20000;no_investments", []string{"set_rent:monthly=20000", "no_investments"}},
		{"raise_salary:percent=5", []string{"raise_salary:percent=5"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ParseTemplateList(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestResolve(t *testing.T) {
	templates := CreateBuiltInTemplates()
	transforms := NewTransformRegistry()

	tmpl, err := Resolve(templates, transforms, "no_rent")
	if err != nil || tmpl.Name != "no_rent" {
		t.Errorf("Resolve(no_rent) = %v, %v", tmpl.Name, err)
	}

	tmpl, err = Resolve(templates, transforms, "set_rent:monthly=20000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tmpl.Name != "set_rent:monthly=20000" || len(tmpl.Transforms) != 1 {
		t.Errorf("Unexpected ad-hoc template %+v", tmpl)
	}
	if tmpl.Description != "Pay ₹20000 rent per month" {
		t.Errorf("Unexpected description %q", tmpl.Description)
	}

	if _, err := Resolve(templates, transforms, "retire_early"); err == nil {
		t.Error("Expected error for unknown template")
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{"Available Templates:", "Investments:", "Rent and City:", "Salary:", "Combination Strategies:", "raise_10pct_invest_200k", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("Expected empty registry message")
	}
}
