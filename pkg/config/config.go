package config

import (
	"fmt"
	"strings"
	"tripwire/pkg/logging"
	"tripwire/pkg/primitives"
	"tripwire/pkg/sentinel"

	"github.com/spf13/viper"
)

// Config is the process-wide settings surface, read once at startup.
type Config struct {
	Sentinel SentinelConfig `mapstructure:"sentinel"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SentinelConfig selects the monitored (relation, column) pair and the
// response mode. Leaving table_id or column_no at zero disables tampering;
// both must be set together for it to activate.
type SentinelConfig struct {
	TableID  uint64 `mapstructure:"table_id"`
	ColumnNo uint32 `mapstructure:"column_no"`
	Mode     string `mapstructure:"mode"` // corrupt | abort_statement | abort_session
}

// LoggingConfig shapes the global logger.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads the YAML configuration at configPath, applies environment
// overrides (SENTINEL_TABLE_ID and friends), and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Every key needs a default so AutomaticEnv can surface it even when
	// the file leaves it out.
	v.SetDefault("sentinel.table_id", 0)
	v.SetDefault("sentinel.column_no", 0)
	v.SetDefault("sentinel.mode", "corrupt")
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.output_path", "")
	v.SetDefault("logging.format", "console")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the loaded settings. A partially configured target is not
// an error; it leaves the feature disabled.
func (c *Config) Validate() error {
	if _, err := parseMode(c.Sentinel.Mode); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %s (valid options: console, json)", c.Logging.Format)
	}

	return nil
}

// BuildSentinel maps the loaded settings onto an immutable tamper
// configuration.
func (c *SentinelConfig) BuildSentinel() (*sentinel.Config, error) {
	mode, err := parseMode(c.Mode)
	if err != nil {
		return nil, err
	}

	return sentinel.NewConfig(
		primitives.TableID(c.TableID),
		primitives.ColumnID(c.ColumnNo),
		mode,
	)
}

// BuildLogging maps the loaded settings onto a logger configuration.
func (c *LoggingConfig) BuildLogging() logging.Config {
	return logging.Config{
		Level:      logging.LogLevel(strings.ToUpper(c.Level)),
		OutputPath: c.OutputPath,
		Format:     c.Format,
	}
}

func parseMode(mode string) (sentinel.ResponseMode, error) {
	switch strings.ToLower(mode) {
	case "", "corrupt":
		return sentinel.Corrupt, nil
	case "abort_statement":
		return sentinel.AbortStatement, nil
	case "abort_session":
		return sentinel.AbortSession, nil
	default:
		return 0, fmt.Errorf("invalid sentinel mode: %s (valid options: corrupt, abort_statement, abort_session)", mode)
	}
}
