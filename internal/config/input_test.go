package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estax/estax/internal/calculation"
	"github.com/estax/estax/internal/domain"
)

func writeRatesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeRatesFile(t, `
metadata:
  data_year: 2024
  description: test rates
social_security:
  rate: "0.0635"
beckham_law:
  rate: "0.24"
  threshold: "600000"
allowances:
  personal_under_65: "5550"
  personal_65_to_74: "6700"
  personal_75_plus: "8100"
  first_child: "2400"
state_brackets:
  - min: "0"
    max: "12450"
    rate: "0.19"
  - min: "12450"
    rate: "0.24"
regional_brackets:
  madrid:
    - min: "0"
      max: "12450"
      rate: "0.09"
    - min: "12450"
      rate: "0.10"
`)

	rates, err := NewRatesParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2024, rates.Metadata.DataYear)
	assert.True(t, rates.SocialSecurity.Rate.Equal(decimal.NewFromFloat(0.0635)))
	assert.Len(t, rates.StateBrackets, 2)
	assert.Len(t, rates.RegionalBrackets[domain.RegionMadrid], 2)

	// The loaded rates must build a working engine.
	engine, err := calculation.NewTaxEngineWithRates(*rates)
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewRatesParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := writeRatesFile(t, "state_brackets: [not: valid: yaml")
	_, err := NewRatesParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFileStructuralValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing state brackets",
			content: "social_security:\n  rate: \"0.0635\"\n",
			wantErr: "state_brackets is required",
		},
		{
			name: "unknown region key",
			content: `
state_brackets:
  - min: "0"
    rate: "0.19"
regional_brackets:
  atlantis:
    - min: "0"
      rate: "0.09"
`,
			wantErr: "unrecognized region",
		},
		{
			name: "none is not a region",
			content: `
state_brackets:
  - min: "0"
    rate: "0.19"
regional_brackets:
  none:
    - min: "0"
      rate: "0.09"
`,
			wantErr: "not a region",
		},
		{
			name: "negative social security rate",
			content: `
social_security:
  rate: "-0.1"
state_brackets:
  - min: "0"
    rate: "0.19"
`,
			wantErr: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRatesFile(t, tt.content)
			_, err := NewRatesParser().LoadFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRatesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	rates := calculation.DefaultRates()
	require.NoError(t, SaveRates(&rates, path))

	loaded, err := NewRatesParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, rates.Metadata, loaded.Metadata)
	assert.True(t, loaded.SocialSecurity.Rate.Equal(rates.SocialSecurity.Rate))
	require.Len(t, loaded.StateBrackets, len(rates.StateBrackets))
	for i := range rates.StateBrackets {
		assert.True(t, loaded.StateBrackets[i].Rate.Equal(rates.StateBrackets[i].Rate))
	}

	engine, err := calculation.NewTaxEngineWithRates(*loaded)
	require.NoError(t, err)
	assert.NotNil(t, engine)
}
