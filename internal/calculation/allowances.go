package calculation

import (
	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

// AllowanceCalculator computes personal and dependent allowances from a
// rates configuration.
type AllowanceCalculator struct {
	Rates domain.AllowanceRates
}

// PersonalAllowance selects the personal allowance: the override verbatim
// when given (age is ignored), otherwise by age band, defaulting to the
// under-65 amount when no age is provided.
func (ac AllowanceCalculator) PersonalAllowance(profile domain.TaxpayerProfile) decimal.Decimal {
	if profile.AllowanceOverride != nil {
		return *profile.AllowanceOverride
	}
	if profile.Age == nil {
		return ac.Rates.PersonalUnder65
	}
	switch age := *profile.Age; {
	case age >= 75:
		return ac.Rates.Personal75Plus
	case age >= 65:
		return ac.Rates.Personal65To74
	default:
		return ac.Rates.PersonalUnder65
	}
}

// DependentAllowance sums the independently computed dependent
// contributions. No category is capped; LargeFamily and LargeFamilySpecial
// both count when both flags are set (exclusivity is the caller's
// responsibility), and the four taxpayer disability amounts are additive.
func (ac AllowanceCalculator) DependentAllowance(d domain.Dependents) decimal.Decimal {
	total := ac.childAllowance(d.ChildrenUnder3, d.Children3Plus)

	total = total.Add(perHead(d.ChildrenDisability33, ac.Rates.ChildDisability33))
	total = total.Add(perHead(d.ChildrenDisability65, ac.Rates.ChildDisability65))

	total = total.Add(perHead(d.Ascendants65, ac.Rates.Ascendant65))
	total = total.Add(perHead(d.AscendantsDisability33, ac.Rates.AscendantDisability33))
	total = total.Add(perHead(d.AscendantsDisability65, ac.Rates.AscendantDisability65))

	if d.LargeFamily {
		total = total.Add(ac.Rates.LargeFamily)
	}
	if d.LargeFamilySpecial {
		total = total.Add(ac.Rates.LargeFamilySpecial)
	}
	if d.SingleParent {
		total = total.Add(ac.Rates.SingleParent)
	}

	if d.TaxpayerDisability33 {
		total = total.Add(ac.Rates.Disability33)
	}
	if d.TaxpayerDisability65 {
		total = total.Add(ac.Rates.Disability65)
	}
	if d.TaxpayerDisabilityMobility {
		total = total.Add(ac.Rates.DisabilityMobility)
	}
	if d.TaxpayerDisabilityDependency {
		total = total.Add(ac.Rates.DisabilityDependency)
	}

	return total
}

// childAllowance applies the ordinal schedule across the combined child
// count, then adds the flat under-3 bonus per under-3 child.
//
// Ranking policy: under-3 children occupy the lowest ranks, ahead of 3-plus
// children. The rule source does not specify an ordering; since the base
// amount depends only on rank and the under-3 bonus is a flat per-head
// add-on, the total is the same either way, but the attribution is fixed
// here so breakdowns stay deterministic.
func (ac AllowanceCalculator) childAllowance(under3, threePlus int) decimal.Decimal {
	total := decimal.Zero
	for rank := 1; rank <= under3+threePlus; rank++ {
		total = total.Add(ac.childBase(rank))
	}
	return total.Add(perHead(under3, ac.Rates.ChildUnder3))
}

func (ac AllowanceCalculator) childBase(rank int) decimal.Decimal {
	switch rank {
	case 1:
		return ac.Rates.FirstChild
	case 2:
		return ac.Rates.SecondChild
	case 3:
		return ac.Rates.ThirdChild
	default:
		return ac.Rates.FourthPlusChild
	}
}

func perHead(count int, amount decimal.Decimal) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(int64(count)))
}
