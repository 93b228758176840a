package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Server struct {
		Port    int    `env:"SERVER_PORT" envDefault:"8080"`
		GinMode string `env:"GIN_MODE" envDefault:"release"`

		// Comma-separated list of allowed CORS origins
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/guardian.db"`
	}

	// Ledger anchoring configuration
	Ledger struct {
		// "stub" for the in-process fake, "relay" for the HTTP relay client
		Mode string `env:"LEDGER_MODE" envDefault:"stub"`

		RelayURL    string `env:"LEDGER_RELAY_URL"`
		RelayAPIKey string `env:"LEDGER_RELAY_API_KEY"`

		// Account used by the stub for transaction IDs
		Account string `env:"LEDGER_ACCOUNT" envDefault:"0.0.2"`

		// Buffer size of the submission queue
		QueueSize int `env:"LEDGER_QUEUE_SIZE" envDefault:"100"`
	}

	// Inference API configuration (listing analysis)
	Inference struct {
		APIBase string `env:"INFERENCE_API_BASE" envDefault:"https://api.openai.com/v1"`
		APIKey  string `env:"INFERENCE_API_KEY"`
		Model   string `env:"INFERENCE_MODEL" envDefault:"gpt-4o-mini"`

		// Request timeout in seconds
		Timeout int `env:"INFERENCE_TIMEOUT" envDefault:"30"`
	}

	// Optional JSON file overriding the built-in valuation rate tables
	RatesPath string `env:"VALUATION_RATES_PATH"`
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Ledger.Mode != "stub" && cfg.Ledger.Mode != "relay" {
		return nil, fmt.Errorf("invalid LEDGER_MODE %q: must be \"stub\" or \"relay\"", cfg.Ledger.Mode)
	}
	if cfg.Ledger.Mode == "relay" && cfg.Ledger.RelayURL == "" {
		return nil, fmt.Errorf("LEDGER_RELAY_URL is required when LEDGER_MODE=relay")
	}

	return cfg, nil
}
