package calculation

import (
	"errors"
	"fmt"

	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks caller-input problems detected before any
// calculation proceeds.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidTable marks a malformed static bracket table. This is a defect
// in the rates data and is surfaced at engine construction, never mid-run.
var ErrInvalidTable = errors.New("invalid bracket table")

// TaxBracket is one marginal band of a progressive table.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal // ignored when Open
	Open bool            // no upper bound
	Rate decimal.Decimal
}

// BracketTable is an ordered sequence of non-overlapping brackets covering
// [0, ∞). The final bracket is open-ended.
type BracketTable []TaxBracket

// Validate checks the structural invariants of the table: non-empty,
// starting at zero, contiguous, open-ended last bracket, rates within [0,1]
// and non-decreasing by bound.
func (bt BracketTable) Validate() error {
	if len(bt) == 0 {
		return fmt.Errorf("%w: table is empty", ErrInvalidTable)
	}
	if !bt[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket starts at %s, want 0", ErrInvalidTable, bt[0].Min)
	}
	for i, b := range bt {
		last := i == len(bt)-1
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidTable, i, b.Rate)
		}
		if i > 0 && b.Rate.LessThan(bt[i-1].Rate) {
			return fmt.Errorf("%w: bracket %d rate %s decreases from %s", ErrInvalidTable, i, b.Rate, bt[i-1].Rate)
		}
		if b.Open {
			if !last {
				return fmt.Errorf("%w: bracket %d is open-ended but not last", ErrInvalidTable, i)
			}
			continue
		}
		if last {
			return fmt.Errorf("%w: last bracket must be open-ended", ErrInvalidTable)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: bracket %d upper bound %s not above lower bound %s", ErrInvalidTable, i, b.Max, b.Min)
		}
		if !bt[i+1].Min.Equal(b.Max) {
			return fmt.Errorf("%w: bracket %d ends at %s but bracket %d starts at %s", ErrInvalidTable, i, b.Max, i+1, bt[i+1].Min)
		}
	}
	return nil
}

// Apply walks the table and returns the total tax on taxableIncome together
// with the per-bracket breakdown. Intermediate values keep full precision;
// rounding is left to the display edge.
func (bt BracketTable) Apply(taxableIncome decimal.Decimal) (decimal.Decimal, []domain.BracketTax) {
	total := decimal.Zero
	var breakdown []domain.BracketTax

	for _, b := range bt {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxableIncome
		if !b.Open && upper.GreaterThan(b.Max) {
			upper = b.Max
		}
		amount := upper.Sub(b.Min)
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		tax := amount.Mul(b.Rate)
		total = total.Add(tax)
		breakdown = append(breakdown, domain.BracketTax{
			Min:           b.Min,
			Max:           b.Max,
			Open:          b.Open,
			Rate:          b.Rate,
			TaxableAmount: amount,
			TaxAmount:     tax,
		})
	}
	return total, breakdown
}

// tableFromRates converts the serialized bracket list into a BracketTable.
// A zero Max on the final entry marks it open-ended.
func tableFromRates(brackets []domain.RateBracket) BracketTable {
	bt := make(BracketTable, 0, len(brackets))
	for i, b := range brackets {
		open := i == len(brackets)-1 && b.Max.IsZero()
		bt = append(bt, TaxBracket{Min: b.Min, Max: b.Max, Open: open, Rate: b.Rate})
	}
	return bt
}
