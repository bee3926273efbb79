// Package config loads application configuration from environment
// variables (prefix POKER) with an optional YAML file underneath.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Sheets   SheetsConfig   `yaml:"sheets" envconfig:"SHEETS"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SheetsConfig identifies the live spreadsheet source. The source is
// optional: when id or credentials are absent the application serves
// the bundled sample data instead.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	WorksheetName   string `yaml:"worksheet_name" envconfig:"WORKSHEET_NAME"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	// CredentialsJSON takes precedence over CredentialsFile when set.
	CredentialsJSON string `yaml:"credentials_json" envconfig:"CREDENTIALS_JSON"`
}

// DataConfig contains dataset handling configuration.
type DataConfig struct {
	SamplePath          string        `yaml:"sample_path" envconfig:"SAMPLE_PATH"`
	AssetsDir           string        `yaml:"assets_dir" envconfig:"ASSETS_DIR"`
	CacheTTL            time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`
	CurrencySymbol      string        `yaml:"currency_symbol" envconfig:"CURRENCY_SYMBOL"`
	SettlementTolerance float64       `yaml:"settlement_tolerance" envconfig:"SETTLEMENT_TOLERANCE"`
}

// Load reads configuration in three layers: built-in defaults, an
// optional config.yaml, and the environment, each overriding the last.
func Load() (*Config, error) {
	cfg := *Default()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("POKER", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// SheetsCredentials resolves the service-account JSON, preferring the
// inline value over the credentials file. Returns nil when neither is
// set, which leaves the source unconfigured.
func (c *Config) SheetsCredentials() ([]byte, error) {
	if c.Sheets.CredentialsJSON != "" {
		return []byte(c.Sheets.CredentialsJSON), nil
	}
	if c.Sheets.CredentialsFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Sheets.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	return data, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Data.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	if c.Data.SettlementTolerance <= 0 {
		return fmt.Errorf("settlement tolerance must be positive")
	}
	if c.Sheets.WorksheetName == "" {
		c.Sheets.WorksheetName = "sessions"
	}
	return nil
}

// configFilePath finds the optional YAML config in common locations.
func configFilePath() string {
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the configuration used when nothing is set, mostly
// for tests.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit:      RateLimitConfig{Enabled: true, RPS: 100, Burst: 50},
		},
		Logging: LoggingConfig{Level: "info", Output: "stdout", FilePath: "logs/app.log"},
		Sheets:  SheetsConfig{WorksheetName: "sessions"},
		Data: DataConfig{
			SamplePath:          "data/sessions_sample.csv",
			AssetsDir:           "assets",
			CacheTTL:            60 * time.Second,
			CurrencySymbol:      "£",
			SettlementTolerance: 1e-6,
		},
	}
}
