package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a TaxResult in one output format.
type Formatter interface {
	Name() string
	Format(result *domain.TaxResult, verbose bool) ([]byte, error)
}

var formatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{Pretty: true},
	CSVFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// ConsoleFormatter renders the human-readable report: summary, optional
// per-bracket breakdowns, and the monthly-equivalent projection.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.TaxResult, verbose bool) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, "  Spanish Tax Calculation (IRPF + Social Security)")
	if result.BeckhamLaw {
		fmt.Fprintln(&buf, "  Tax Regime: Beckham Law (24% flat rate)")
	} else {
		fmt.Fprintf(&buf, "  Region: %s\n", result.Region.DisplayName())
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "Summary:")
	writeLine(&buf, "Gross Income:", FormatCurrency(result.GrossIncome))
	writeLine(&buf, "Social Security:", FormatCurrency(result.SocialSecurity))
	writeLine(&buf, "Income after SS:", FormatCurrency(result.IncomeAfterSS))
	if !result.BeckhamLaw {
		writeLine(&buf, personalAllowanceLabel(result.Age), FormatCurrency(result.PersonalAllowance))
		if result.DependentAllowance.IsPositive() {
			writeLine(&buf, "Dependent Allowances:", FormatCurrency(result.DependentAllowance))
			writeLine(&buf, "Total Allowances:", FormatCurrency(result.TotalAllowance))
		}
	}
	writeLine(&buf, "Taxable Income (IRPF):", FormatCurrency(result.TaxableIncome))
	if result.BeckhamLaw {
		writeLine(&buf, "Beckham Law Tax (24%):", FormatCurrency(result.BeckhamFlatTax))
		if result.BeckhamExcessTax.IsPositive() {
			writeLine(&buf, "Excess Tax (>€600k):", FormatCurrency(result.BeckhamExcessTax))
		}
	} else {
		writeLine(&buf, "State IRPF Tax:", FormatCurrency(result.StateTax))
		if result.RegionalTax.IsPositive() {
			writeLine(&buf, "Regional IRPF Tax:", FormatCurrency(result.RegionalTax))
		}
	}
	writeLine(&buf, "Total IRPF Tax:", FormatCurrency(result.TotalIRPF))
	writeLine(&buf, "Total Deductions:", FormatCurrency(result.TotalDeductions))
	writeLine(&buf, "Net Income:", FormatCurrency(result.NetIncome))
	writeLine(&buf, "Effective Tax Rate:", FormatPercent(result.EffectiveRate))
	fmt.Fprintln(&buf)

	if verbose {
		c.writeBreakdowns(&buf, result)
	}

	c.writeMonthly(&buf, result)
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeBreakdowns(buf *bytes.Buffer, result *domain.TaxResult) {
	if result.BeckhamLaw {
		fmt.Fprintln(buf, "Beckham Law Tax Breakdown:")
		fmt.Fprintln(buf)
		writeBreakdownHeader(buf, "Income Range")
		flatLabel := "All income"
		if result.BeckhamExcessTax.IsPositive() {
			flatLabel = "Up to €600 000"
		}
		writeBreakdownRow(buf, flatLabel,
			FormatCurrency(result.TaxableIncome.Sub(excessAmount(result))),
			"24.00%", FormatCurrency(result.BeckhamFlatTax))
		if result.BeckhamExcessTax.IsPositive() {
			writeBreakdownRow(buf, "Above €600 000",
				FormatCurrency(excessAmount(result)), "Progressive",
				FormatCurrency(result.BeckhamExcessTax))
			fmt.Fprintln(buf)
			fmt.Fprintln(buf, "Progressive Tax on Excess (>€600k):")
			fmt.Fprintln(buf)
			writeBracketTable(buf, result.StateBreakdown)
		}
		fmt.Fprintln(buf)
		return
	}

	if len(result.StateBreakdown) > 0 {
		fmt.Fprintln(buf, "State IRPF Tax Breakdown:")
		fmt.Fprintln(buf)
		writeBracketTable(buf, result.StateBreakdown)
		fmt.Fprintln(buf)
	}
	if len(result.RegionalBreakdown) > 0 {
		fmt.Fprintf(buf, "Regional IRPF Tax Breakdown (%s):\n", result.Region.DisplayName())
		fmt.Fprintln(buf)
		writeBracketTable(buf, result.RegionalBreakdown)
		fmt.Fprintln(buf)
	}
}

func (c ConsoleFormatter) writeMonthly(buf *bytes.Buffer, result *domain.TaxResult) {
	monthly := result.Monthly()
	fmt.Fprintln(buf, "Monthly Breakdown:")
	writeLine(buf, "Gross:", FormatCurrency(monthly.Gross))
	writeLine(buf, "Social Security:", FormatCurrency(monthly.SocialSecurity))
	if result.BeckhamLaw {
		writeLine(buf, "Total IRPF:", FormatCurrency(monthly.TotalIRPF))
	} else {
		writeLine(buf, "State IRPF:", FormatCurrency(monthly.StateTax))
		if monthly.RegionalTax.IsPositive() {
			writeLine(buf, "Regional IRPF:", FormatCurrency(monthly.RegionalTax))
		}
		writeLine(buf, "Total IRPF:", FormatCurrency(monthly.TotalIRPF))
	}
	writeLine(buf, "Total Deductions:", FormatCurrency(monthly.TotalDeductions))
	writeLine(buf, "Net:", FormatCurrency(monthly.Net))
	fmt.Fprintln(buf)
}

func personalAllowanceLabel(age *int) string {
	if age != nil {
		if *age >= 75 {
			return "Personal Allowance (75+):"
		}
		if *age >= 65 {
			return "Personal Allowance (65-74):"
		}
	}
	return "Personal Allowance:"
}

func excessAmount(result *domain.TaxResult) (excess decimal.Decimal) {
	for _, b := range result.StateBreakdown {
		excess = excess.Add(b.TaxableAmount)
	}
	return excess
}

func writeLine(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-27s %18s\n", label, value)
}

func writeBreakdownHeader(buf *bytes.Buffer, firstColumn string) {
	fmt.Fprintf(buf, "  %-25s %15s %11s %15s\n", firstColumn, "Amount", "Rate", "Tax")
	fmt.Fprintf(buf, "  %s\n", strings.Repeat("-", 69))
}

func writeBreakdownRow(buf *bytes.Buffer, rangeStr, amount, rate, tax string) {
	fmt.Fprintf(buf, "  %-25s %15s %11s %15s\n", rangeStr, amount, rate, tax)
}

func writeBracketTable(buf *bytes.Buffer, breakdown []domain.BracketTax) {
	writeBreakdownHeader(buf, "Bracket")
	for _, b := range breakdown {
		writeBreakdownRow(buf, FormatBracketRange(b),
			FormatCurrency(b.TaxableAmount), FormatPercent(b.Rate),
			FormatCurrency(b.TaxAmount))
	}
}
