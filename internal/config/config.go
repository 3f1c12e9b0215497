// Package config loads and validates application configuration plus the
// survey taxonomy and Likert vocabulary. Everything here is resolved once at
// startup and handed to components as immutable values; a taxonomy/count
// mismatch aborts startup rather than truncating, since every positional
// invariant downstream depends on it.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
// Precedence: config file > environment variables > defaults.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Survey    SurveyConfig    `yaml:"survey" envconfig:"SURVEY"`
	Narrative NarrativeConfig `yaml:"narrative" envconfig:"NARRATIVE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"10485760" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/tma-report.log"`
}

// SurveyConfig contains the survey layout configuration.
type SurveyConfig struct {
	// QuestionCount is the expected taxonomy length. A loaded taxonomy of
	// any other length is a startup error.
	QuestionCount int `yaml:"question_count" envconfig:"QUESTION_COUNT" default:"82" validate:"gt=0"`
	// TaxonomyFile optionally overrides the embedded question taxonomy.
	TaxonomyFile string `yaml:"taxonomy_file" envconfig:"TAXONOMY_FILE"`
	// Vocabulary optionally overrides the five Likert phrases, ordered
	// strongest agreement first. Empty means the standard agreement scale.
	Vocabulary []string `yaml:"vocabulary" envconfig:"VOCABULARY"`
}

// NarrativeConfig configures the external text-generation collaborator.
type NarrativeConfig struct {
	// APIKey enables the remote generator; when empty the service falls
	// back to deterministic static narrative text.
	APIKey            string        `yaml:"api_key" envconfig:"API_KEY"`
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	Model             string        `yaml:"model" envconfig:"MODEL" default:"gemini-2.0-flash"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
	MaxRetries        int           `yaml:"max_retries" envconfig:"MAX_RETRIES" default:"2" validate:"gte=0,lte=10"`
	RequestsPerMinute float64       `yaml:"requests_per_minute" envconfig:"REQUESTS_PER_MINUTE" default:"30" validate:"gt=0"`
}

// Load loads configuration from environment variables and an optional YAML
// config file (TMA_CONFIG_FILE, default "config.yaml" when present).
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TMA", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	configFile := os.Getenv("TMA_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", configFile, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
