package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/cultiva/internal/common"
)

// Viper keys.
const (
	KeyDatabasePath  = "database.path"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyEstimatorSeed = "estimator.seed"
)

// Config holds the resolved application settings.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	// Seed pins the estimator's random source; 0 means unseeded.
	Seed uint64
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyEstimatorSeed, 0)
}

// Load reads the configuration from v. It follows this precedence:
// 1. Flags bound to v
// 2. Config file or CULTIVA_ env vars
// 3. CULTIVA_DB for the database path
// 4. Default values
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabasePath: v.GetString(KeyDatabasePath),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Seed:         v.GetUint64(KeyEstimatorSeed),
	}

	if !v.IsSet(KeyDatabasePath) || cfg.DatabasePath == DefaultDatabasePath() {
		if db := os.Getenv("CULTIVA_DB"); db != "" {
			cfg.DatabasePath = db
		}
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and well-formed.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json", "":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
