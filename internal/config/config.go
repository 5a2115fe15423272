package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KartheekReddy100/PDF-Kompressor/internal/engine"
)

// Config represents the main configuration structure
type Config struct {
	InputPath    string `mapstructure:"input_path"`
	OutputPath   string `mapstructure:"output_path"`
	Engine       string `mapstructure:"engine"`
	Quality      string `mapstructure:"quality"`
	OutputSuffix string `mapstructure:"output_suffix"`

	Ghostscript GhostscriptConfig `mapstructure:"ghostscript"`
	Web         WebConfig         `mapstructure:"web"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// GhostscriptConfig contains settings for the external compressor
type GhostscriptConfig struct {
	Binary         string   `mapstructure:"binary"`          // explicit path, skips discovery
	ExtraDirs      []string `mapstructure:"extra_dirs"`      // additional search directories
	TimeoutSeconds int      `mapstructure:"timeout_seconds"` // 0 means no limit
	AutoInstall    bool     `mapstructure:"auto_install"`
}

// WebConfig contains settings for the web interface
type WebConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Engine:       string(engine.EngineAuto),
		Quality:      string(engine.QualityBalanced),
		OutputSuffix: "-compressed",
		Ghostscript: GhostscriptConfig{
			TimeoutSeconds: 0,
			AutoInstall:    false,
		},
		Web: WebConfig{
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:      "info",
			FilePath:   "pdf-kompressor.log",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Look for config file in current directory and home directory
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pdf-kompressor")
		viper.AddConfigPath("/etc/pdf-kompressor")
	}

	// Enable environment variable support
	viper.SetEnvPrefix("PDF_KOMPRESSOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Unmarshal config
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate and normalize config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := engine.ParseChoice(c.Engine); err != nil {
		return err
	}
	if _, err := engine.ParseQuality(c.Quality); err != nil {
		return err
	}

	if c.OutputSuffix == "" {
		c.OutputSuffix = "-compressed"
	}

	if c.Ghostscript.TimeoutSeconds < 0 {
		return fmt.Errorf("ghostscript.timeout_seconds must not be negative")
	}

	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port: %d", c.Web.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// GhostscriptTimeout returns the configured subprocess timeout, zero meaning
// no limit.
func (c *Config) GhostscriptTimeout() time.Duration {
	return time.Duration(c.Ghostscript.TimeoutSeconds) * time.Second
}
