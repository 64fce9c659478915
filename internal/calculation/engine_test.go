package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estax/estax/internal/domain"
)

func ratePtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func newEngine(t *testing.T) *TaxEngine {
	t.Helper()
	engine, err := NewTaxEngine()
	require.NoError(t, err)
	return engine
}

// assertCents checks a monetary value against a hand-computed reference,
// tolerating at most one cent of rounding drift.
func assertCents(t *testing.T, expected float64, actual decimal.Decimal, label string) {
	t.Helper()
	diff := actual.Sub(decimal.NewFromFloat(expected)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"%s: want %.2f, got %s (diff %s)", label, expected, actual.StringFixed(2), diff)
}

func TestCalculateMadrid60k(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(60000),
		Region:      domain.RegionMadrid,
	}, domain.Dependents{})
	require.NoError(t, err)

	assertCents(t, 3810.00, result.SocialSecurity, "social security")
	assertCents(t, 56190.00, result.IncomeAfterSS, "income after SS")
	assertCents(t, 5550.00, result.PersonalAllowance, "personal allowance")
	assertCents(t, 50640.00, result.TaxableIncome, "taxable income")
	assertCents(t, 14438.30, result.StateTax, "state tax")
	assertCents(t, 5398.30, result.RegionalTax, "regional tax")
	assertCents(t, 23646.60, result.TotalDeductions, "total deductions")
	assertCents(t, 36353.40, result.NetIncome, "net income")
	assert.True(t, result.BeckhamTax.IsZero())

	// Effective rate is deductions over gross.
	expectedRate := decimal.NewFromFloat(23646.60).Div(decimal.NewFromInt(60000))
	diff := result.EffectiveRate.Sub(expectedRate).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)), "effective rate %s", result.EffectiveRate)
}

func TestCalculateValenciaWithChildren(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(60000),
		Region:      domain.RegionValencia,
	}, domain.Dependents{
		ChildrenUnder3: 1,
		Children3Plus:  1,
	})
	require.NoError(t, err)

	// 2400 first rank + 2700 second rank + 2800 under-3 bonus.
	assertCents(t, 7900.00, result.DependentAllowance, "dependent allowance")
	assertCents(t, 5550.00+7900.00, result.TotalAllowance, "total allowance")
	assertCents(t, 60000-3810-5550-7900, result.TaxableIncome, "taxable income")
}

func TestCalculateBeckhamAboveThreshold(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(700000),
		Region:      domain.RegionMadrid,
		BeckhamLaw:  true,
	}, domain.Dependents{
		Children3Plus: 2, // must be ignored under the special regime
	})
	require.NoError(t, err)

	// Flat 24% on the first 600k, progressive state rates on the 100k excess.
	excessTax := 12450*0.19 + 7750*0.24 + 15000*0.30 + 24800*0.37 + 40000*0.45
	assertCents(t, 600000*0.24, result.BeckhamFlatTax, "flat portion")
	assertCents(t, excessTax, result.BeckhamExcessTax, "excess portion")
	assertCents(t, 600000*0.24+excessTax, result.BeckhamTax, "beckham tax")

	assert.True(t, result.StateTax.IsZero(), "state tax must be zero")
	assert.True(t, result.RegionalTax.IsZero(), "regional tax must be zero")
	assert.True(t, result.PersonalAllowance.IsZero(), "personal allowance must be zero")
	assert.True(t, result.DependentAllowance.IsZero(), "dependent allowance must be zero")
	assert.True(t, result.TaxableIncome.Equal(decimal.NewFromInt(700000)), "taxable base is gross income")
}

func TestCalculateBeckhamBelowThreshold(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(100000),
		BeckhamLaw:  true,
	}, domain.Dependents{})
	require.NoError(t, err)

	assertCents(t, 24000.00, result.BeckhamTax, "beckham tax")
	assert.True(t, result.BeckhamExcessTax.IsZero())
	assert.Empty(t, result.StateBreakdown)
}

func TestCalculateZeroIncome(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.Zero,
	}, domain.Dependents{})
	require.NoError(t, err)

	assert.True(t, result.EffectiveRate.IsZero(), "no division-by-zero fault")
	assert.True(t, result.NetIncome.IsZero())
	assert.True(t, result.TotalDeductions.IsZero())
}

func TestCalculateMonthlyFlag(t *testing.T) {
	engine := newEngine(t)

	annual, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(60000),
	}, domain.Dependents{})
	require.NoError(t, err)

	monthly, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(5000),
		Monthly:     true,
	}, domain.Dependents{})
	require.NoError(t, err)

	assert.Equal(t, annual, monthly)
}

func TestCalculateAgeAdjustedAllowance(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(60000),
		Age:         intPtr(68),
	}, domain.Dependents{})
	require.NoError(t, err)
	assertCents(t, 6700.00, result.PersonalAllowance, "allowance at 68")
}

func TestCalculateCustomSSRate(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome:        decimal.NewFromInt(60000),
		SocialSecurityRate: ratePtr(0.05),
	}, domain.Dependents{})
	require.NoError(t, err)
	assertCents(t, 3000.00, result.SocialSecurity, "custom SS rate")
}

func TestCalculateZeroSSRate(t *testing.T) {
	engine := newEngine(t)

	// An explicit 0% rate is a valid override, not an absent value; the
	// configured default must not be substituted.
	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome:        decimal.NewFromInt(60000),
		SocialSecurityRate: ratePtr(0),
	}, domain.Dependents{})
	require.NoError(t, err)

	assert.True(t, result.SocialSecurity.IsZero(), "explicit 0%% rate must yield zero contribution, got %s", result.SocialSecurity)
	assert.True(t, result.IncomeAfterSS.Equal(result.GrossIncome))
	// Taxable 60000 - 5550 = 54450 through the state scale.
	assertCents(t, 15848.00, result.StateTax, "state tax at zero SS")
	assert.True(t, result.TotalDeductions.Equal(result.TotalIRPF), "deductions are IRPF only")
}

func TestCalculateNilSSRateUsesConfigured(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(60000),
	}, domain.Dependents{})
	require.NoError(t, err)
	assertCents(t, 3810.00, result.SocialSecurity, "configured default rate")
}

func TestCalculateAllowanceFloorsTaxableAtZero(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Calculate(domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(4000),
	}, domain.Dependents{ChildrenDisability65: 1})
	require.NoError(t, err)

	assert.True(t, result.TaxableIncome.IsZero(), "taxable floored at zero")
	assert.True(t, result.StateTax.IsZero())
}

func TestCalculateMonotonicity(t *testing.T) {
	engine := newEngine(t)

	prevDeductions := decimal.NewFromInt(-1)
	prevNet := decimal.NewFromInt(-1)
	for income := int64(0); income <= 400000; income += 7500 {
		result, err := engine.Calculate(domain.TaxpayerProfile{
			GrossIncome: decimal.NewFromInt(income),
			Region:      domain.RegionCatalonia,
		}, domain.Dependents{})
		require.NoError(t, err)

		assert.True(t, result.TotalDeductions.GreaterThanOrEqual(prevDeductions),
			"deductions decreased at income %d", income)
		assert.True(t, result.NetIncome.GreaterThanOrEqual(prevNet),
			"net income decreased at income %d", income)
		prevDeductions = result.TotalDeductions
		prevNet = result.NetIncome
	}
}

func TestCalculateIdempotent(t *testing.T) {
	engine := newEngine(t)

	profile := domain.TaxpayerProfile{
		GrossIncome: decimal.NewFromInt(85000),
		Region:      domain.RegionGalicia,
		Age:         intPtr(66),
	}
	dependents := domain.Dependents{ChildrenUnder3: 1, Ascendants65: 1}

	first, err := engine.Calculate(profile, dependents)
	require.NoError(t, err)
	second, err := engine.Calculate(profile, dependents)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateInputValidation(t *testing.T) {
	engine := newEngine(t)

	negAllowance := decimal.NewFromInt(-100)
	tests := []struct {
		name       string
		profile    domain.TaxpayerProfile
		dependents domain.Dependents
	}{
		{
			name:    "negative income",
			profile: domain.TaxpayerProfile{GrossIncome: decimal.NewFromInt(-1)},
		},
		{
			name: "ss rate above one",
			profile: domain.TaxpayerProfile{
				GrossIncome:        decimal.NewFromInt(1000),
				SocialSecurityRate: ratePtr(1.5),
			},
		},
		{
			name: "negative ss rate",
			profile: domain.TaxpayerProfile{
				GrossIncome:        decimal.NewFromInt(1000),
				SocialSecurityRate: ratePtr(-0.1),
			},
		},
		{
			name: "negative age",
			profile: domain.TaxpayerProfile{
				GrossIncome: decimal.NewFromInt(1000),
				Age:         intPtr(-1),
			},
		},
		{
			name: "age above 120",
			profile: domain.TaxpayerProfile{
				GrossIncome: decimal.NewFromInt(1000),
				Age:         intPtr(130),
			},
		},
		{
			name: "unknown region",
			profile: domain.TaxpayerProfile{
				GrossIncome: decimal.NewFromInt(1000),
				Region:      domain.Region("atlantis"),
			},
		},
		{
			name: "negative allowance override",
			profile: domain.TaxpayerProfile{
				GrossIncome:       decimal.NewFromInt(1000),
				AllowanceOverride: &negAllowance,
			},
		},
		{
			name:       "negative child count",
			profile:    domain.TaxpayerProfile{GrossIncome: decimal.NewFromInt(1000)},
			dependents: domain.Dependents{ChildrenUnder3: -1},
		},
		{
			name:       "negative ascendant count",
			profile:    domain.TaxpayerProfile{GrossIncome: decimal.NewFromInt(1000)},
			dependents: domain.Dependents{AscendantsDisability65: -2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(tt.profile, tt.dependents)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, result, "no partial result on invalid input")
		})
	}
}

func TestNewTaxEngineWithRatesRejectsBadTables(t *testing.T) {
	rates := DefaultRates()
	rates.StateBrackets = []domain.RateBracket{
		bracket(100, 200, 0.1), // does not start at zero
		openBracket(200, 0.2),
	}

	engine, err := NewTaxEngineWithRates(rates)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.Nil(t, engine)
}

func TestNewTaxEngineWithRatesRejectsBadRegionalTable(t *testing.T) {
	rates := DefaultRates()
	rates.RegionalBrackets[domain.RegionMadrid] = []domain.RateBracket{
		bracket(0, 100, 0.3),
		openBracket(150, 0.4), // gap
	}

	engine, err := NewTaxEngineWithRates(rates)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.Nil(t, engine)
}
