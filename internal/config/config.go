// Package config loads service configuration from defaults, an optional
// config file, and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/contactkeval/option-scan/internal/logging"
)

// Config holds all service configuration.
type Config struct {
	Server ServerConfig   `mapstructure:"server"`
	Quotes QuotesConfig   `mapstructure:"quotes"`
	Scan   ScanConfig     `mapstructure:"scan"`
	Log    logging.Config `mapstructure:"log"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// QuotesConfig holds quote-provider configuration. The API key is read from
// POLYGON_API_KEY; when empty, the service runs entirely on the fallback
// price table.
type QuotesConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ScanConfig holds the scan pipeline defaults applied when a request omits
// the corresponding field.
type ScanConfig struct {
	RiskFreeRate  float64 `mapstructure:"risk_free_rate"`
	MinDte        int     `mapstructure:"min_dte"`
	MaxDte        int     `mapstructure:"max_dte"`
	MaxStrategies int     `mapstructure:"max_strategies"`
}

// Load reads configuration from the given file path (optional; empty means
// defaults + environment only). Environment variables override file values
// using the OPTIONSCAN_ prefix, e.g. OPTIONSCAN_SERVER_ADDR.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("quotes.api_key", "")
	v.SetDefault("scan.risk_free_rate", 0.05)
	v.SetDefault("scan.min_dte", 30)
	v.SetDefault("scan.max_dte", 45)
	v.SetDefault("scan.max_strategies", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", false)
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)

	v.SetEnvPrefix("OPTIONSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// POLYGON_API_KEY is the conventional variable for Massive/Polygon keys
	// and wins over the prefixed form.
	_ = v.BindEnv("quotes.api_key", "POLYGON_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
