package output

import (
	"bytes"
	"encoding/csv"

	"github.com/estax/estax/internal/domain"
)

// CSVFormatter renders a single summary row plus, when verbose, one row per
// bracket contribution.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.TaxResult, verbose bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Region", "BeckhamLaw", "GrossIncome", "SocialSecurity",
		"PersonalAllowance", "DependentAllowance", "TotalAllowance",
		"TaxableIncome", "StateTax", "RegionalTax", "BeckhamTax",
		"TotalIRPF", "TotalDeductions", "NetIncome", "EffectiveRate",
		"MonthlyGross", "MonthlySocialSecurity", "MonthlyTotalIRPF",
		"MonthlyTotalDeductions", "MonthlyNet",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	beckham := "false"
	if result.BeckhamLaw {
		beckham = "true"
	}
	monthly := result.Monthly()
	row := []string{
		string(result.Region),
		beckham,
		result.GrossIncome.StringFixed(2),
		result.SocialSecurity.StringFixed(2),
		result.PersonalAllowance.StringFixed(2),
		result.DependentAllowance.StringFixed(2),
		result.TotalAllowance.StringFixed(2),
		result.TaxableIncome.StringFixed(2),
		result.StateTax.StringFixed(2),
		result.RegionalTax.StringFixed(2),
		result.BeckhamTax.StringFixed(2),
		result.TotalIRPF.StringFixed(2),
		result.TotalDeductions.StringFixed(2),
		result.NetIncome.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		monthly.Gross.StringFixed(2),
		monthly.SocialSecurity.StringFixed(2),
		monthly.TotalIRPF.StringFixed(2),
		monthly.TotalDeductions.StringFixed(2),
		monthly.Net.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}

	if verbose {
		if err := writeBracketRows(w, "state", result.StateBreakdown); err != nil {
			return nil, err
		}
		if err := writeBracketRows(w, "regional", result.RegionalBreakdown); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeBracketRows(w *csv.Writer, table string, breakdown []domain.BracketTax) error {
	for _, b := range breakdown {
		row := []string{
			table,
			b.Min.StringFixed(0),
			maxBound(b),
			b.Rate.StringFixed(4),
			b.TaxableAmount.StringFixed(2),
			b.TaxAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func maxBound(b domain.BracketTax) string {
	if b.Open {
		return "inf"
	}
	return b.Max.StringFixed(0)
}
