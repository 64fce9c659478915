package calculation

import (
	"github.com/estax/estax/internal/domain"
	"github.com/shopspring/decimal"
)

// 2024 rates. State brackets are the general scale; regional brackets are
// applied on top of the state scale on the same taxable base.

func bracket(min, max int64, rate float64) domain.RateBracket {
	return domain.RateBracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.NewFromFloat(rate),
	}
}

func openBracket(min int64, rate float64) domain.RateBracket {
	return domain.RateBracket{
		Min:  decimal.NewFromInt(min),
		Rate: decimal.NewFromFloat(rate),
	}
}

// regionalScale builds the common six-band regional layout from its rates.
func regionalScale(rates [6]float64) []domain.RateBracket {
	return []domain.RateBracket{
		bracket(0, 12450, rates[0]),
		bracket(12450, 20200, rates[1]),
		bracket(20200, 35200, rates[2]),
		bracket(35200, 60000, rates[3]),
		bracket(60000, 300000, rates[4]),
		openBracket(300000, rates[5]),
	}
}

// DefaultRates returns the embedded 2024 rates configuration.
func DefaultRates() domain.RatesConfig {
	return domain.RatesConfig{
		Metadata: domain.RatesMetadata{
			DataYear:    2024,
			Description: "Spanish IRPF and Social Security rates, general state scale plus regional scales",
		},
		SocialSecurity: domain.SocialSecurityRates{
			Rate: decimal.NewFromFloat(0.0635),
		},
		BeckhamLaw: domain.BeckhamRates{
			Rate:      decimal.NewFromFloat(0.24),
			Threshold: decimal.NewFromInt(600000),
		},
		Allowances: domain.AllowanceRates{
			PersonalUnder65: decimal.NewFromInt(5550),
			Personal65To74:  decimal.NewFromInt(6700),
			Personal75Plus:  decimal.NewFromInt(8100),

			FirstChild:      decimal.NewFromInt(2400),
			SecondChild:     decimal.NewFromInt(2700),
			ThirdChild:      decimal.NewFromInt(4000),
			FourthPlusChild: decimal.NewFromInt(4500),
			ChildUnder3:     decimal.NewFromInt(2800),

			ChildDisability33: decimal.NewFromInt(3000),
			ChildDisability65: decimal.NewFromInt(12000),

			Ascendant65:           decimal.NewFromInt(1150),
			AscendantDisability33: decimal.NewFromInt(3000),
			AscendantDisability65: decimal.NewFromInt(12000),

			LargeFamily:        decimal.NewFromInt(2400),
			LargeFamilySpecial: decimal.NewFromInt(4800),
			SingleParent:       decimal.NewFromInt(2100),

			Disability33:         decimal.NewFromInt(3000),
			Disability65:         decimal.NewFromInt(12000),
			DisabilityMobility:   decimal.NewFromInt(3000),
			DisabilityDependency: decimal.NewFromInt(12000),
		},
		StateBrackets: []domain.RateBracket{
			bracket(0, 12450, 0.19),
			bracket(12450, 20200, 0.24),
			bracket(20200, 35200, 0.30),
			bracket(35200, 60000, 0.37),
			bracket(60000, 300000, 0.45),
			openBracket(300000, 0.47),
		},
		RegionalBrackets: map[domain.Region][]domain.RateBracket{
			domain.RegionMadrid:        regionalScale([6]float64{0.09, 0.10, 0.11, 0.12, 0.13, 0.14}),
			domain.RegionCatalonia:     regionalScale([6]float64{0.10, 0.11, 0.12, 0.13, 0.14, 0.15}),
			domain.RegionAndalusia:     regionalScale([6]float64{0.10, 0.11, 0.12, 0.13, 0.14, 0.15}),
			domain.RegionValencia:      regionalScale([6]float64{0.10, 0.11, 0.12, 0.13, 0.14, 0.15}),
			domain.RegionBasque:        regionalScale([6]float64{0.09, 0.10, 0.11, 0.12, 0.13, 0.14}),
			domain.RegionGalicia:       regionalScale([6]float64{0.10, 0.11, 0.12, 0.13, 0.14, 0.15}),
			domain.RegionCastillaLeon:  regionalScale([6]float64{0.09, 0.10, 0.11, 0.12, 0.13, 0.14}),
			domain.RegionCanaryIslands: regionalScale([6]float64{0.08, 0.09, 0.10, 0.11, 0.12, 0.13}),
		},
	}
}
