package calculation

import (
	"testing"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlabTaxCalculator_OldRegime(t *testing.T) {
	calc := NewSlabTaxCalculator()
	table := domain.DefaultOldSlabs()

	tests := []struct {
		name    string
		taxable string
		total   string
	}{
		{"zero income", "0", "0"},
		{"top of nil band", "250000", "0"},
		{"one rupee into 5% band", "250001", "0.05"},
		{"top of 5% band", "500000", "12500"},
		{"mid 20% band", "793600", "71220"},
		{"twelve lakh", "1200000", "172500"},
		{"negative clamps to zero", "-50000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := calc.Calculate(dec(tt.taxable), table)
			assertDecimal(t, tt.total, r.Total, "slab tax")
			require.Len(t, r.Bands, len(table))
		})
	}
}

func TestSlabTaxCalculator_OldRegimeBands(t *testing.T) {
	r := NewSlabTaxCalculator().Calculate(dec("1200000"), domain.DefaultOldSlabs())

	assertDecimal(t, "0", r.Bands[0].Tax, "band 1")
	assertDecimal(t, "12500", r.Bands[1].Tax, "band 2")
	assertDecimal(t, "100000", r.Bands[2].Tax, "band 3")
	assertDecimal(t, "60000", r.Bands[3].Tax, "band 4")
	assertDecimal(t, "200000", r.Bands[3].Taxable, "band 4 taxable")

	// OLD has three taxed bands; the remaining presentation slots stay zero
	expected := []string{"12500", "100000", "60000", "0", "0", "0"}
	for i, want := range expected {
		assertDecimal(t, want, r.Slabs[i], "slot")
	}
}

func TestSlabTaxCalculator_NewRegime(t *testing.T) {
	calc := NewSlabTaxCalculator()
	table := domain.DefaultNewSlabs()

	r := calc.Calculate(dec("1275000"), table)
	assertDecimal(t, "71250", r.Total, "slab tax")

	r = calc.Calculate(dec("3000000"), table)
	assertDecimal(t, "480000", r.Total, "slab tax")
	expected := []string{"20000", "40000", "60000", "80000", "100000", "180000"}
	for i, want := range expected {
		assertDecimal(t, want, r.Slabs[i], "slot")
	}
	assertDecimal(t, "600000", r.Bands[6].Taxable, "top band taxable")
}

func TestSlabTaxCalculator_Additive(t *testing.T) {
	r := NewSlabTaxCalculator().Calculate(dec("2750000"), domain.DefaultNewSlabs())

	sumTax := decimal.Zero
	sumTaxable := decimal.Zero
	for _, b := range r.Bands {
		sumTax = sumTax.Add(b.Tax)
		sumTaxable = sumTaxable.Add(b.Taxable)
	}
	assert.True(t, sumTax.Equal(r.Total), "band taxes must sum to total")
	assert.True(t, sumTaxable.Equal(dec("2750000")), "band allocations must sum to income")
}

func TestSlabTaxCalculator_Monotonic(t *testing.T) {
	calc := NewSlabTaxCalculator()

	for _, table := range []domain.SlabTable{domain.DefaultOldSlabs(), domain.DefaultNewSlabs()} {
		prev := decimal.Zero
		for income := int64(0); income <= 4000000; income += 37500 {
			tax := calc.Calculate(decimal.NewFromInt(income), table).Total
			assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
			prev = tax
		}
	}
}

func TestSlabTaxCalculator_OverflowSlots(t *testing.T) {
	// eight taxed bands fold the last three into slot six
	var table domain.SlabTable
	for i := int64(0); i < 8; i++ {
		band := domain.SlabBand{Min: decimal.NewFromInt(i * 100), Rate: decimal.NewFromFloat(0.1)}
		if i < 7 {
			band.Max = domain.DecimalPtr(decimal.NewFromInt((i + 1) * 100))
		}
		table = append(table, band)
	}

	r := NewSlabTaxCalculator().Calculate(dec("800"), table)
	assertDecimal(t, "80", r.Total, "total")
	assertDecimal(t, "10", r.Slabs[0], "slot 1")
	assertDecimal(t, "30", r.Slabs[5], "slot 6")
}

func TestSurchargeCalculator_Tiers(t *testing.T) {
	calc := NewSurchargeCalculator()
	rb := domain.DefaultRuleBook()
	oldTable := rb.Regimes[domain.RegimeOld].Surcharge
	newTable := rb.Regimes[domain.RegimeNew].Surcharge

	tests := []struct {
		name    string
		taxable string
		oldRate string
		newRate string
	}{
		{"negative income", "-1", "0", "0"},
		{"zero income", "0", "0", "0"},
		{"fifty lakh exactly", "5000000", "0", "0"},
		{"just above fifty lakh", "5000001", "0.10", "0.10"},
		{"one crore exactly", "10000000", "0.10", "0.10"},
		{"just above one crore", "10000001", "0.15", "0.15"},
		{"five crore exactly", "50000000", "0.25", "0.25"},
		{"six crore", "60000000", "0.37", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := dec("100000")

			s, r := calc.Calculate(dec(tt.taxable), tax, oldTable)
			assertDecimal(t, tt.oldRate, r, "old rate")
			assertDecimal(t, tax.Mul(dec(tt.oldRate)).String(), s, "old surcharge")

			_, r = calc.Calculate(dec(tt.taxable), tax, newTable)
			assertDecimal(t, tt.newRate, r, "new rate")
		})
	}
}

func TestSurchargeCalculator_EmptyTable(t *testing.T) {
	s, r := NewSurchargeCalculator().Calculate(dec("90000000"), dec("100"), nil)
	assert.True(t, s.IsZero())
	assert.True(t, r.IsZero())
}

func TestCessCalculator(t *testing.T) {
	calc := NewCessCalculator()

	assertDecimal(t, "2848.8", calc.Calculate(dec("71220"), decimal.Zero), "cess")
	assertDecimal(t, "70950", calc.Calculate(dec("1612500"), dec("161250")), "cess with surcharge")
	assertDecimal(t, "0", calc.Calculate(decimal.Zero, decimal.Zero), "zero cess")

	custom := NewCessCalculatorWithRate(dec("0.02"))
	assertDecimal(t, "2", custom.Calculate(dec("100"), decimal.Zero), "custom cess")
}
