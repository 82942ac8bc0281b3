package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds process-wide settings. Loaded once at startup and read-only
// for the process lifetime.
type Config struct {
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIAPIBase string `envconfig:"OPENAI_API_BASE" default:"https://openrouter.ai/api/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"arliai/qwq-32b-arliai-rpr-v1:free"`

	GitHubToken    string `envconfig:"GITHUB_TOKEN"`
	GitHubUsername string `envconfig:"GITHUB_USERNAME"`

	SharedSecret string `envconfig:"SHARED_SECRET"`

	Host  string `envconfig:"HOST" default:"0.0.0.0"`
	Port  int    `envconfig:"PORT" default:"8000"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	OutDir string `envconfig:"OUT_DIR" default:"out"`
}

// Load reads a .env file when present, then the process environment.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MissingRequired lists the credential variables that are unset. The service
// still starts without them, degrading to fallback generation and local
// deployment.
func (c Config) MissingRequired() []string {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.GitHubUsername == "" {
		missing = append(missing, "GITHUB_USERNAME")
	}
	if c.SharedSecret == "" {
		missing = append(missing, "SHARED_SECRET")
	}
	return missing
}
