package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Region identifies a Spanish autonomous community for regional IRPF purposes.
type Region string

const (
	RegionMadrid        Region = "madrid"
	RegionCatalonia     Region = "catalonia"
	RegionAndalusia     Region = "andalusia"
	RegionValencia      Region = "valencia"
	RegionBasque        Region = "basque"
	RegionGalicia       Region = "galicia"
	RegionCastillaLeon  Region = "castilla_leon"
	RegionCanaryIslands Region = "canary_islands"
	RegionNone          Region = "none"
)

// Regions lists every autonomous community with a regional bracket table,
// in display order. RegionNone is excluded.
func Regions() []Region {
	return []Region{
		RegionMadrid,
		RegionCatalonia,
		RegionAndalusia,
		RegionValencia,
		RegionBasque,
		RegionGalicia,
		RegionCastillaLeon,
		RegionCanaryIslands,
	}
}

// ParseRegion converts a user-supplied region token into a Region.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RegionMadrid, RegionCatalonia, RegionAndalusia, RegionValencia,
		RegionBasque, RegionGalicia, RegionCastillaLeon, RegionCanaryIslands,
		RegionNone:
		return r, nil
	}
	return RegionNone, fmt.Errorf("unrecognized region %q (valid: madrid, catalonia, andalusia, valencia, basque, galicia, castilla_leon, canary_islands, none)", s)
}

// DisplayName returns the human-readable region name for reports.
func (r Region) DisplayName() string {
	if r == RegionNone {
		return "None (State only)"
	}
	words := strings.Split(string(r), "_")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// TaxpayerProfile carries the personal inputs of a single tax calculation.
// Values are annual euros unless Monthly is set, in which case GrossIncome
// is multiplied by 12 before any calculation.
type TaxpayerProfile struct {
	GrossIncome decimal.Decimal
	Monthly     bool
	Age         *int // nil when not provided
	Region      Region
	BeckhamLaw  bool
	// SocialSecurityRate replaces the configured contribution rate when
	// non-nil. An explicit zero is a valid rate, not an absence.
	SocialSecurityRate *decimal.Decimal
	// AllowanceOverride replaces the age-based personal allowance verbatim
	// when non-nil.
	AllowanceOverride *decimal.Decimal
}

// Dependents carries the dependent counts and family-status flags that feed
// the dependent allowance. All counts default to 0, all flags to false.
type Dependents struct {
	ChildrenUnder3         int
	Children3Plus          int
	ChildrenDisability33   int
	ChildrenDisability65   int
	Ascendants65           int
	AscendantsDisability33 int
	AscendantsDisability65 int

	// LargeFamily and LargeFamilySpecial are mutually exclusive in practice
	// but the engine does not enforce that; setting both sums both amounts.
	LargeFamily        bool
	LargeFamilySpecial bool
	SingleParent       bool

	// Taxpayer disability categories are independent and additive.
	TaxpayerDisability33         bool
	TaxpayerDisability65         bool
	TaxpayerDisabilityMobility   bool
	TaxpayerDisabilityDependency bool
}
