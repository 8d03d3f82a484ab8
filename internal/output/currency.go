package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indiaTag = language.MustParse("en-IN")

// FormatINR renders an amount rounded to whole rupees with India-locale
// digit grouping, e.g. ₹81,628
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	p := message.NewPrinter(indiaTag)
	s := "₹" + p.Sprint(number.Decimal(rounded.Abs().IntPart()))
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatINRPrecise renders an amount with two decimal places and no grouping,
// for machine readable outputs
func FormatINRPrecise(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatRate renders a fractional rate as a percentage, e.g. 0.04 -> 4%
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
