package calculation

import (
	"github.com/shopspring/decimal"
)

// SocialSecurityContribution computes the employee Social Security
// withholding: gross income times the contribution rate, rounded half-up to
// the cent. No contribution ceiling is modeled.
func SocialSecurityContribution(grossIncome, rate decimal.Decimal) decimal.Decimal {
	return grossIncome.Mul(rate).Round(2)
}
