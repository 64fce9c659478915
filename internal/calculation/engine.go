package calculation

import (
	"fmt"

	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// TaxEngine evaluates Spanish IRPF and Social Security for a single
// taxpayer. It is a pure, stateless evaluator over static bracket tables:
// every invocation is independent and the tables are validated once at
// construction.
type TaxEngine struct {
	Rates    domain.RatesConfig
	State    BracketTable
	Regional map[domain.Region]BracketTable

	allowances AllowanceCalculator
}

// NewTaxEngine builds an engine over the embedded 2024 rates.
func NewTaxEngine() (*TaxEngine, error) {
	return NewTaxEngineWithRates(DefaultRates())
}

// NewTaxEngineWithRates builds an engine over an explicit rates
// configuration, validating every bracket table up front. A malformed table
// is a fatal defect in the static data, reported here rather than as wrong
// results later.
func NewTaxEngineWithRates(rates domain.RatesConfig) (*TaxEngine, error) {
	state := tableFromRates(rates.StateBrackets)
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("state brackets: %w", err)
	}

	regional := make(map[domain.Region]BracketTable, len(rates.RegionalBrackets))
	for region, brackets := range rates.RegionalBrackets {
		table := tableFromRates(brackets)
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("regional brackets for %s: %w", region, err)
		}
		regional[region] = table
	}

	if rates.SocialSecurity.Rate.IsNegative() || rates.SocialSecurity.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: social security rate %s outside [0,1]", ErrInvalidTable, rates.SocialSecurity.Rate)
	}

	return &TaxEngine{
		Rates:      rates,
		State:      state,
		Regional:   regional,
		allowances: AllowanceCalculator{Rates: rates.Allowances},
	}, nil
}

// Calculate runs the three stages (contribution, allowance, brackets) for
// one taxpayer and returns the full breakdown. Inputs are validated before
// any computation; no partial result is ever returned.
func (e *TaxEngine) Calculate(profile domain.TaxpayerProfile, dependents domain.Dependents) (*domain.TaxResult, error) {
	if profile.Region == "" {
		profile.Region = domain.RegionNone
	}
	if err := e.validateInputs(profile, dependents); err != nil {
		return nil, err
	}

	ssRate := e.Rates.SocialSecurity.Rate
	if profile.SocialSecurityRate != nil {
		ssRate = *profile.SocialSecurityRate
	}

	gross := profile.GrossIncome
	if profile.Monthly {
		gross = gross.Mul(twelve)
	}

	ss := SocialSecurityContribution(gross, ssRate)
	afterSS := gross.Sub(ss)

	result := &domain.TaxResult{
		GrossIncome:    gross,
		SocialSecurity: ss,
		IncomeAfterSS:  afterSS,
		Region:         profile.Region,
		BeckhamLaw:     profile.BeckhamLaw,
		Age:            profile.Age,
	}

	if profile.BeckhamLaw {
		e.applyBeckham(result, gross)
	} else {
		e.applyStandard(result, profile, dependents, afterSS)
	}

	result.TotalDeductions = ss.Add(result.TotalIRPF)
	result.NetIncome = gross.Sub(result.TotalDeductions)
	if gross.IsPositive() {
		result.EffectiveRate = result.TotalDeductions.Div(gross)
	} else {
		result.EffectiveRate = decimal.Zero
	}

	return result, nil
}

// applyStandard runs the allowance stage and the state plus regional
// bracket walks. Regional tax is computed on the same taxable base as state
// tax.
func (e *TaxEngine) applyStandard(result *domain.TaxResult, profile domain.TaxpayerProfile, dependents domain.Dependents, afterSS decimal.Decimal) {
	result.PersonalAllowance = e.allowances.PersonalAllowance(profile)
	result.DependentAllowance = e.allowances.DependentAllowance(dependents)
	result.TotalAllowance = result.PersonalAllowance.Add(result.DependentAllowance)

	taxable := afterSS.Sub(result.TotalAllowance)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	result.TaxableIncome = taxable

	result.StateTax, result.StateBreakdown = e.State.Apply(taxable)
	if profile.Region != domain.RegionNone {
		result.RegionalTax, result.RegionalBreakdown = e.Regional[profile.Region].Apply(taxable)
	}
	result.TotalIRPF = result.StateTax.Add(result.RegionalTax)
}

// applyBeckham runs the special-regime path: allowances and regional tables
// are bypassed, the taxable base is gross income, the flat rate applies up
// to the threshold and any excess goes through the state progressive scale.
// StateTax and RegionalTax are reported as zero in this mode.
func (e *TaxEngine) applyBeckham(result *domain.TaxResult, gross decimal.Decimal) {
	result.TaxableIncome = gross

	flatBase := decimal.Min(gross, e.Rates.BeckhamLaw.Threshold)
	result.BeckhamFlatTax = flatBase.Mul(e.Rates.BeckhamLaw.Rate)

	excess := gross.Sub(e.Rates.BeckhamLaw.Threshold)
	if excess.IsPositive() {
		result.BeckhamExcessTax, result.StateBreakdown = e.State.Apply(excess)
	}

	result.BeckhamTax = result.BeckhamFlatTax.Add(result.BeckhamExcessTax)
	result.TotalIRPF = result.BeckhamTax
}

func (e *TaxEngine) validateInputs(profile domain.TaxpayerProfile, dependents domain.Dependents) error {
	if profile.GrossIncome.IsNegative() {
		return fmt.Errorf("%w: income cannot be negative", ErrInvalidInput)
	}
	if r := profile.SocialSecurityRate; r != nil && (r.IsNegative() || r.GreaterThan(decimal.NewFromInt(1))) {
		return fmt.Errorf("%w: social security rate must be between 0 and 1", ErrInvalidInput)
	}
	if profile.Age != nil && (*profile.Age < 0 || *profile.Age > 120) {
		return fmt.Errorf("%w: age must be between 0 and 120", ErrInvalidInput)
	}
	if profile.AllowanceOverride != nil && profile.AllowanceOverride.IsNegative() {
		return fmt.Errorf("%w: personal allowance cannot be negative", ErrInvalidInput)
	}
	if profile.Region != domain.RegionNone {
		if _, ok := e.Regional[profile.Region]; !ok {
			return fmt.Errorf("%w: unrecognized region %q", ErrInvalidInput, profile.Region)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"children-under-3", dependents.ChildrenUnder3},
		{"children-3-plus", dependents.Children3Plus},
		{"children-disability-33", dependents.ChildrenDisability33},
		{"children-disability-65", dependents.ChildrenDisability65},
		{"ascendants-65", dependents.Ascendants65},
		{"ascendants-disability-33", dependents.AscendantsDisability33},
		{"ascendants-disability-65", dependents.AscendantsDisability65},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, c.name)
		}
	}
	return nil
}
