package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, with a .env file as fallback.
type Config struct {
	StoragePath     string        `env:"STORAGE_PATH" envDefault:"data/companion.json"`
	CompanionID     string        `env:"COMPANION_ID" envDefault:"companion"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ClassifyTimeout time.Duration `env:"CLASSIFY_TIMEOUT" envDefault:"2s"`
	TickInterval    time.Duration `env:"TICK_INTERVAL" envDefault:"30s"`
	PostInterval    time.Duration `env:"POST_INTERVAL" envDefault:"6h"`

	TraitOpenness          float64 `env:"TRAIT_OPENNESS" envDefault:"0.5"`
	TraitConscientiousness float64 `env:"TRAIT_CONSCIENTIOUSNESS" envDefault:"0.5"`
	TraitExtraversion      float64 `env:"TRAIT_EXTRAVERSION" envDefault:"0.5"`
	TraitAgreeableness     float64 `env:"TRAIT_AGREEABLENESS" envDefault:"0.5"`
	TraitNeuroticism       float64 `env:"TRAIT_NEUROTICISM" envDefault:"0.5"`
}

// New loads configuration. A missing .env file is fine — system environment
// variables win either way.
func New() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
