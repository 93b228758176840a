package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRatesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRates_Defaults(t *testing.T) {
	rates, err := LoadRates("")
	require.NoError(t, err)

	assert.Equal(t, float64(250000), rates.BaseRatePerSqm["Lagos"])
	assert.Equal(t, float64(100000), rates.BaseRatePerSqm["default"])
	assert.Equal(t, 1.5, rates.TypeMultipliers["duplex"])
}

func TestLoadRates_OverrideMergesOverDefaults(t *testing.T) {
	path := writeRatesFile(t, `{
		"base_rate_per_sqm": {"Lagos": 300000, "Enugu": 90000},
		"type_multipliers": {"penthouse": 2.5}
	}`)

	rates, err := LoadRates(path)
	require.NoError(t, err)

	assert.Equal(t, float64(300000), rates.BaseRatePerSqm["Lagos"])
	assert.Equal(t, float64(90000), rates.BaseRatePerSqm["Enugu"])
	assert.Equal(t, float64(200000), rates.BaseRatePerSqm["Abuja"]) // untouched default
	assert.Equal(t, float64(100000), rates.BaseRatePerSqm["default"])
	assert.Equal(t, 2.5, rates.TypeMultipliers["penthouse"])
	assert.Equal(t, 1.0, rates.TypeMultipliers["apartment"])
}

func TestLoadRates_MissingFile(t *testing.T) {
	_, err := LoadRates(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadRates_InvalidJSON(t *testing.T) {
	path := writeRatesFile(t, "{not json")
	_, err := LoadRates(path)
	assert.Error(t, err)
}

func TestLoadRates_RejectsBadValues(t *testing.T) {
	path := writeRatesFile(t, `{"base_rate_per_sqm": {"Lagos": -5}}`)
	_, err := LoadRates(path)
	assert.Error(t, err)

	path = writeRatesFile(t, `{"type_multipliers": {"land": 0}}`)
	_, err = LoadRates(path)
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "stub", cfg.Ledger.Mode)
	assert.Equal(t, "0.0.2", cfg.Ledger.Account)
	assert.Equal(t, 100, cfg.Ledger.QueueSize)
}

func TestLoadConfig_RelayRequiresURL(t *testing.T) {
	t.Setenv("LEDGER_MODE", "relay")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("LEDGER_RELAY_URL", "https://relay.example.com")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "relay", cfg.Ledger.Mode)
}

func TestLoadConfig_RejectsUnknownLedgerMode(t *testing.T) {
	t.Setenv("LEDGER_MODE", "sometimes")
	_, err := LoadConfig()
	assert.Error(t, err)
}
