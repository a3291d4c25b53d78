package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for TealScan
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Engine      EngineConfig  `toml:"engine"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	MaxUploadSizeMB  int    `toml:"max_upload_size_mb"`
	ShutdownTimeout  string `toml:"shutdown_timeout"`
}

// GetShutdownTimeout parses and returns the shutdown timeout duration.
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// EngineConfig holds the analysis thresholds. The defaults mirror the
// historically observed values; all of them are tunable.
type EngineConfig struct {
	// MinValueCutoff excludes negligible schemes (current value below this)
	// from every aggregate and report row.
	MinValueCutoff float64 `toml:"min_value_cutoff"`

	// PartialValueRatio flags a scheme as partial-history when
	// current_value / invested_sum exceeds it (and cost exceeds invested_sum).
	PartialValueRatio float64 `toml:"partial_value_ratio"`

	// XIRRUpperBound / XIRRLowerBound bracket plausible annualized rates,
	// in percent. A converged rate outside them is reported as a data mismatch.
	XIRRUpperBound float64 `toml:"xirr_upper_bound"`
	XIRRLowerBound float64 `toml:"xirr_lower_bound"`

	// ConcentrationLimit is the maximum scheme count per sub-category before
	// the sub-category is flagged as a concentration risk.
	ConcentrationLimit int `toml:"concentration_limit"`

	// CommissionRate estimates the recurring annual distributor commission
	// embedded in regular plans, as a fraction of current value.
	CommissionRate float64 `toml:"commission_rate"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	CASParser CASParserConfig `toml:"casparser"`
}

// CASParserConfig holds the statement parser sidecar configuration
type CASParserConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *CASParserConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8084,
			MaxUploadSizeMB: 20,
			ShutdownTimeout: "10s",
		},
		Engine: EngineConfig{
			MinValueCutoff:     100,
			PartialValueRatio:  5.0,
			XIRRUpperBound:     100.0,
			XIRRLowerBound:     -90.0,
			ConcentrationLimit: 2,
			CommissionRate:     0.01,
		},
		Clients: ClientsConfig{
			CASParser: CASParserConfig{
				BaseURL:   "http://localhost:8085",
				RateLimit: 5,
				Timeout:   "60s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateEngineConfig(&config.Engine); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TEALSCAN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TEALSCAN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TEALSCAN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TEALSCAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("TEALSCAN_CASPARSER_URL"); url != "" {
		config.Clients.CASParser.BaseURL = url
	}
}

// validateEngineConfig rejects threshold combinations the engine cannot work with.
func validateEngineConfig(cfg *EngineConfig) error {
	if cfg.PartialValueRatio <= 0 {
		return fmt.Errorf("engine.partial_value_ratio must be positive, got %v", cfg.PartialValueRatio)
	}
	if cfg.XIRRLowerBound >= cfg.XIRRUpperBound {
		return fmt.Errorf("engine.xirr_lower_bound (%v) must be below engine.xirr_upper_bound (%v)",
			cfg.XIRRLowerBound, cfg.XIRRUpperBound)
	}
	if cfg.CommissionRate < 0 || cfg.CommissionRate > 1 {
		return fmt.Errorf("engine.commission_rate must be in [0, 1], got %v", cfg.CommissionRate)
	}
	if cfg.ConcentrationLimit < 1 {
		return fmt.Errorf("engine.concentration_limit must be at least 1, got %d", cfg.ConcentrationLimit)
	}
	return nil
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
