package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesLoader_EmptyPathUsesDefaults(t *testing.T) {
	rb, err := NewRulesLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRuleBook(), rb)
}

func TestRulesLoader_Overrides(t *testing.T) {
	doc := `
professional_tax_monthly: 0
cess_rate: 0.1
regimes:
  new:
    standard_deduction: 50000
    slabs:
      - {min: 0, max: 500000, rate: 0}
      - {min: 500000, rate: 0.2}
`
	rb, err := NewRulesLoader().Parse([]byte(doc))
	require.NoError(t, err)

	assert.True(t, rb.ProfessionalTaxMonthly.IsZero())
	assert.True(t, rb.CessRate.Equal(decimal.RequireFromString("0.1")))

	nw := rb.Regimes[domain.RegimeNew]
	assert.Equal(t, domain.RegimeNew, nw.Regime)
	assert.True(t, nw.StandardDeduction.Equal(decimal.NewFromInt(50000)))
	require.Len(t, nw.Slabs, 2)
	assert.True(t, nw.Slabs[1].Unbounded())
	// untouched keys keep the built-in values
	assert.Len(t, nw.Surcharge, len(domain.DefaultRuleBook().Regimes[domain.RegimeNew].Surcharge))
	assert.False(t, nw.AllowHRAExemption)

	old := rb.Regimes[domain.RegimeOld]
	assert.Equal(t, domain.DefaultRuleBook().Regimes[domain.RegimeOld], old)
}

func TestRulesLoader_Errors(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		errContains string
	}{
		{
			name:        "unknown regime key",
			doc:         "regimes:\n  flat:\n    standard_deduction: 1\n",
			errContains: `unknown regime "flat"`,
		},
		{
			name:        "gap in slab table",
			doc:         "regimes:\n  old:\n    slabs:\n      - {min: 0, max: 100, rate: 0}\n      - {min: 200, rate: 0.1}\n",
			errContains: "band 1 ends at 100 but band 2 starts at 200",
		},
		{
			name:        "cess rate out of range",
			doc:         "cess_rate: 4\n",
			errContains: "cess rate must be between 0 and 1",
		},
		{
			name:        "not yaml",
			doc:         "regimes: [",
			errContains: "failed to parse rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRulesLoader().Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRulesLoader_RoundTripDefaults(t *testing.T) {
	data, err := MarshalRules(domain.DefaultRuleBook())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	rb, err := NewRulesLoader().LoadFromFile(path)
	require.NoError(t, err)
	for _, r := range domain.AllRegimes() {
		want := domain.DefaultRuleBook().Regimes[r]
		got := rb.Regimes[r]
		assert.True(t, want.StandardDeduction.Equal(got.StandardDeduction), "%s standard deduction", r)
		assert.Len(t, got.Slabs, len(want.Slabs), "%s slabs", r)
		assert.Len(t, got.Surcharge, len(want.Surcharge), "%s surcharge", r)
	}
}

func TestRulesLoader_MissingFile(t *testing.T) {
	_, err := NewRulesLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")
}
