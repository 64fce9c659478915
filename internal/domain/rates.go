package domain

import (
	"github.com/shopspring/decimal"
)

// RatesConfig contains all tax rates and allowance amounts for one fiscal
// year. Defaults are embedded in the calculation package and may be replaced
// from a YAML rates file.
type RatesConfig struct {
	Metadata         RatesMetadata            `yaml:"metadata" json:"metadata"`
	SocialSecurity   SocialSecurityRates      `yaml:"social_security" json:"social_security"`
	Allowances       AllowanceRates           `yaml:"allowances" json:"allowances"`
	BeckhamLaw       BeckhamRates             `yaml:"beckham_law" json:"beckham_law"`
	StateBrackets    []RateBracket            `yaml:"state_brackets" json:"state_brackets"`
	RegionalBrackets map[Region][]RateBracket `yaml:"regional_brackets" json:"regional_brackets"`
}

// RatesMetadata describes the provenance of the rates data.
type RatesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// RateBracket is the serialized form of one progressive bracket. A zero Max
// on the final bracket means the bracket is open-ended.
type RateBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// SocialSecurityRates contains the employee contribution rate. No wage base
// ceiling is modeled.
type SocialSecurityRates struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// BeckhamRates contains the special-regime flat rate and its threshold.
type BeckhamRates struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
}

// AllowanceRates contains every allowance amount the engine knows about.
type AllowanceRates struct {
	PersonalUnder65 decimal.Decimal `yaml:"personal_under_65" json:"personal_under_65"`
	Personal65To74  decimal.Decimal `yaml:"personal_65_to_74" json:"personal_65_to_74"`
	Personal75Plus  decimal.Decimal `yaml:"personal_75_plus" json:"personal_75_plus"`

	FirstChild      decimal.Decimal `yaml:"first_child" json:"first_child"`
	SecondChild     decimal.Decimal `yaml:"second_child" json:"second_child"`
	ThirdChild      decimal.Decimal `yaml:"third_child" json:"third_child"`
	FourthPlusChild decimal.Decimal `yaml:"fourth_plus_child" json:"fourth_plus_child"`
	ChildUnder3     decimal.Decimal `yaml:"child_under_3" json:"child_under_3"`

	ChildDisability33 decimal.Decimal `yaml:"child_disability_33" json:"child_disability_33"`
	ChildDisability65 decimal.Decimal `yaml:"child_disability_65" json:"child_disability_65"`

	Ascendant65           decimal.Decimal `yaml:"ascendant_65" json:"ascendant_65"`
	AscendantDisability33 decimal.Decimal `yaml:"ascendant_disability_33" json:"ascendant_disability_33"`
	AscendantDisability65 decimal.Decimal `yaml:"ascendant_disability_65" json:"ascendant_disability_65"`

	LargeFamily        decimal.Decimal `yaml:"large_family" json:"large_family"`
	LargeFamilySpecial decimal.Decimal `yaml:"large_family_special" json:"large_family_special"`
	SingleParent       decimal.Decimal `yaml:"single_parent" json:"single_parent"`

	Disability33         decimal.Decimal `yaml:"disability_33" json:"disability_33"`
	Disability65         decimal.Decimal `yaml:"disability_65" json:"disability_65"`
	DisabilityMobility   decimal.Decimal `yaml:"disability_mobility" json:"disability_mobility"`
	DisabilityDependency decimal.Decimal `yaml:"disability_dependency" json:"disability_dependency"`
}
