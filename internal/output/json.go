package output

import (
	"encoding/json"

	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter renders the result as JSON for downstream tooling.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

type jsonBracket struct {
	Range         string          `json:"range"`
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

type jsonMonthly struct {
	Gross           decimal.Decimal `json:"gross"`
	SocialSecurity  decimal.Decimal `json:"social_security"`
	StateTax        decimal.Decimal `json:"state_tax"`
	RegionalTax     decimal.Decimal `json:"regional_tax"`
	TotalIRPF       decimal.Decimal `json:"total_irpf"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Net             decimal.Decimal `json:"net"`
}

type jsonReport struct {
	Region             string          `json:"region"`
	BeckhamLaw         bool            `json:"beckham_law"`
	GrossIncome        decimal.Decimal `json:"gross_income"`
	SocialSecurity     decimal.Decimal `json:"social_security"`
	IncomeAfterSS      decimal.Decimal `json:"income_after_ss"`
	PersonalAllowance  decimal.Decimal `json:"personal_allowance"`
	DependentAllowance decimal.Decimal `json:"dependent_allowance"`
	TotalAllowance     decimal.Decimal `json:"total_allowance"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	StateTax           decimal.Decimal `json:"state_tax"`
	RegionalTax        decimal.Decimal `json:"regional_tax"`
	BeckhamTax         decimal.Decimal `json:"beckham_tax"`
	TotalIRPF          decimal.Decimal `json:"total_irpf"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetIncome          decimal.Decimal `json:"net_income"`
	EffectiveRate      decimal.Decimal `json:"effective_rate"`
	Monthly            jsonMonthly     `json:"monthly"`
	StateBreakdown     []jsonBracket   `json:"state_breakdown,omitempty"`
	RegionalBreakdown  []jsonBracket   `json:"regional_breakdown,omitempty"`
}

func (j JSONFormatter) Format(result *domain.TaxResult, verbose bool) ([]byte, error) {
	monthly := result.Monthly()
	report := jsonReport{
		Region:             string(result.Region),
		BeckhamLaw:         result.BeckhamLaw,
		GrossIncome:        result.GrossIncome.Round(2),
		SocialSecurity:     result.SocialSecurity.Round(2),
		IncomeAfterSS:      result.IncomeAfterSS.Round(2),
		PersonalAllowance:  result.PersonalAllowance.Round(2),
		DependentAllowance: result.DependentAllowance.Round(2),
		TotalAllowance:     result.TotalAllowance.Round(2),
		TaxableIncome:      result.TaxableIncome.Round(2),
		StateTax:           result.StateTax.Round(2),
		RegionalTax:        result.RegionalTax.Round(2),
		BeckhamTax:         result.BeckhamTax.Round(2),
		TotalIRPF:          result.TotalIRPF.Round(2),
		TotalDeductions:    result.TotalDeductions.Round(2),
		NetIncome:          result.NetIncome.Round(2),
		EffectiveRate:      result.EffectiveRate.Round(4),
		Monthly: jsonMonthly{
			Gross:           monthly.Gross.Round(2),
			SocialSecurity:  monthly.SocialSecurity.Round(2),
			StateTax:        monthly.StateTax.Round(2),
			RegionalTax:     monthly.RegionalTax.Round(2),
			TotalIRPF:       monthly.TotalIRPF.Round(2),
			TotalDeductions: monthly.TotalDeductions.Round(2),
			Net:             monthly.Net.Round(2),
		},
	}
	if verbose {
		report.StateBreakdown = toJSONBrackets(result.StateBreakdown)
		report.RegionalBreakdown = toJSONBrackets(result.RegionalBreakdown)
	}

	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

func toJSONBrackets(breakdown []domain.BracketTax) []jsonBracket {
	out := make([]jsonBracket, 0, len(breakdown))
	for _, b := range breakdown {
		out = append(out, jsonBracket{
			Range:         FormatBracketRange(b),
			Rate:          b.Rate,
			TaxableAmount: b.TaxableAmount.Round(2),
			TaxAmount:     b.TaxAmount.Round(2),
		})
	}
	return out
}
