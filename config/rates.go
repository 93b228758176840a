package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"guardian/server/internal/valuation"
)

// ratesFile is the on-disk shape of a valuation rate override.
type ratesFile struct {
	BaseRatePerSqm  map[string]float64 `json:"base_rate_per_sqm"`
	TypeMultipliers map[string]float64 `json:"type_multipliers"`
}

// LoadRates returns the valuation rate tables, merging an optional JSON
// override file over the built-in defaults. Entries in the file replace
// matching default entries; everything else is kept, so a deployment can
// override a single city without restating the whole table.
func LoadRates(path string) (valuation.Rates, error) {
	rates := valuation.DefaultRates()
	if path == "" {
		return rates, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return rates, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return rates, fmt.Errorf("failed to read rates file: %v", err)
	}

	var file ratesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return rates, fmt.Errorf("failed to parse rates file: %v", err)
	}

	for city, rate := range file.BaseRatePerSqm {
		if rate < 0 {
			return rates, fmt.Errorf("negative base rate for %q", city)
		}
		rates.BaseRatePerSqm[city] = rate
	}
	for propertyType, multiplier := range file.TypeMultipliers {
		if multiplier <= 0 {
			return rates, fmt.Errorf("non-positive multiplier for %q", propertyType)
		}
		rates.TypeMultipliers[propertyType] = multiplier
	}

	return rates, nil
}
