package output

import (
	"strings"

	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as euros with European number
// formatting: space-grouped thousands and a comma decimal separator.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")
	out := "€" + groupThousands(intPart) + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatAmount formats a whole-euro amount (bracket bounds) without cents.
func FormatAmount(amount decimal.Decimal) string {
	return "€" + groupThousands(amount.StringFixed(0))
}

// FormatPercent formats a decimal fraction as a percentage.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatBracketRange renders a bracket's income range, using ∞ for the
// open-ended bracket.
func FormatBracketRange(b domain.BracketTax) string {
	if b.Open {
		return FormatAmount(b.Min) + " - ∞"
	}
	return FormatAmount(b.Min) + " - " + FormatAmount(b.Max)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var sb strings.Builder
	head := n % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
