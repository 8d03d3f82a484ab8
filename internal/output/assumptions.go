package output

// DefaultAssumptions lists key modeling assumptions rendered at the end of the console report.
var DefaultAssumptions = []string{
	"Slab tax is marginal; surcharge is the single tier rate applied to slab tax (no marginal relief)",
	"Health & education cess: 4% of slab tax plus surcharge",
	"Professional tax: flat 200/month under both regimes",
	"HRA exemption and investment deductions apply under the old regime only",
	"Rebate under section 87A is not modelled",
}
