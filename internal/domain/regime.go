package domain

import (
	"fmt"
	"strings"
)

// Regime selects one of the two mutually exclusive rule sets
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// DefaultRegime is used when no regime is supplied
const DefaultRegime = RegimeNew

// AllRegimes returns the regimes in presentation order
func AllRegimes() []Regime {
	return []Regime{RegimeOld, RegimeNew}
}

// ParseRegime converts a user supplied tag into a Regime. An empty string
// yields DefaultRegime.
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultRegime, nil
	case string(RegimeOld):
		return RegimeOld, nil
	case string(RegimeNew):
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("unknown regime %q (expected old or new)", s)
	}
}

// IsValid reports whether r is one of the known regimes
func (r Regime) IsValid() bool {
	return r == RegimeOld || r == RegimeNew
}

func (r Regime) String() string { return string(r) }

// Label returns a human readable name for reports
func (r Regime) Label() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return "Unknown Regime"
	}
}
