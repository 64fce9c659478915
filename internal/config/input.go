package config

import (
	"fmt"
	"os"

	"github.com/estax/estax/internal/domain"
	"gopkg.in/yaml.v3"
)

// RatesParser handles loading of rates configuration files.
type RatesParser struct{}

// NewRatesParser creates a new rates parser.
func NewRatesParser() *RatesParser {
	return &RatesParser{}
}

// LoadFromFile loads a full rates configuration from a YAML file. The file
// replaces the embedded defaults wholesale; bracket-table shape is validated
// again at engine construction.
func (rp *RatesParser) LoadFromFile(filename string) (*domain.RatesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rates domain.RatesConfig
	if err := yaml.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rp.ValidateRates(&rates); err != nil {
		return nil, fmt.Errorf("rates validation failed: %w", err)
	}

	return &rates, nil
}

// ValidateRates checks the structural requirements of a rates file.
func (rp *RatesParser) ValidateRates(rates *domain.RatesConfig) error {
	if len(rates.StateBrackets) == 0 {
		return fmt.Errorf("state_brackets is required")
	}
	for region := range rates.RegionalBrackets {
		if _, err := domain.ParseRegion(string(region)); err != nil {
			return fmt.Errorf("regional_brackets: %w", err)
		}
		if region == domain.RegionNone {
			return fmt.Errorf("regional_brackets: %q is not a region", region)
		}
	}
	if rates.SocialSecurity.Rate.IsNegative() {
		return fmt.Errorf("social_security.rate cannot be negative")
	}
	if rates.BeckhamLaw.Rate.IsNegative() || rates.BeckhamLaw.Threshold.IsNegative() {
		return fmt.Errorf("beckham_law rate and threshold cannot be negative")
	}
	a := rates.Allowances
	if a.PersonalUnder65.IsNegative() || a.Personal65To74.IsNegative() || a.Personal75Plus.IsNegative() {
		return fmt.Errorf("personal allowances cannot be negative")
	}
	return nil
}

// SaveRates writes a rates configuration to a YAML file, useful for
// generating a template from the embedded defaults.
func SaveRates(rates *domain.RatesConfig, filename string) error {
	data, err := yaml.Marshal(rates)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
