package domain

import (
	"github.com/shopspring/decimal"
)

// BracketTax records the contribution of a single bracket to a tax total.
type BracketTax struct {
	Min           decimal.Decimal
	Max           decimal.Decimal // ignored when Open
	Open          bool            // bracket has no upper bound
	Rate          decimal.Decimal
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
}

// TaxResult is the complete outcome of one calculation run. All figures are
// annual euros at full precision; rounding happens at the display edge.
type TaxResult struct {
	GrossIncome    decimal.Decimal
	SocialSecurity decimal.Decimal
	IncomeAfterSS  decimal.Decimal

	PersonalAllowance  decimal.Decimal
	DependentAllowance decimal.Decimal
	TotalAllowance     decimal.Decimal
	TaxableIncome      decimal.Decimal

	StateTax    decimal.Decimal
	RegionalTax decimal.Decimal

	// Beckham figures are mutually exclusive with StateTax/RegionalTax:
	// when BeckhamLaw is set the latter are zero.
	BeckhamTax       decimal.Decimal
	BeckhamFlatTax   decimal.Decimal
	BeckhamExcessTax decimal.Decimal

	TotalIRPF       decimal.Decimal
	TotalDeductions decimal.Decimal // Social Security + IRPF
	NetIncome       decimal.Decimal
	EffectiveRate   decimal.Decimal // TotalDeductions / GrossIncome, 0 when gross is 0

	Region     Region
	BeckhamLaw bool
	Age        *int

	StateBreakdown    []BracketTax
	RegionalBreakdown []BracketTax
}

// MonthlyBreakdown is the monthly-equivalent projection of a TaxResult,
// each annual figure divided by 12.
type MonthlyBreakdown struct {
	Gross           decimal.Decimal
	SocialSecurity  decimal.Decimal
	StateTax        decimal.Decimal
	RegionalTax     decimal.Decimal
	TotalIRPF       decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

var twelve = decimal.NewFromInt(12)

// Monthly returns the monthly-equivalent projection. It is always part of
// the output surface regardless of verbosity.
func (r *TaxResult) Monthly() MonthlyBreakdown {
	return MonthlyBreakdown{
		Gross:           r.GrossIncome.Div(twelve),
		SocialSecurity:  r.SocialSecurity.Div(twelve),
		StateTax:        r.StateTax.Div(twelve),
		RegionalTax:     r.RegionalTax.Div(twelve),
		TotalIRPF:       r.TotalIRPF.Div(twelve),
		TotalDeductions: r.TotalDeductions.Div(twelve),
		Net:             r.NetIncome.Div(twelve),
	}
}
