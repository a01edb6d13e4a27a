// Package config loads uisoup settings from defaults, an optional YAML file,
// a .env file and UISOUP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// UISOUP_LOGGER_LEVEL=debug.
const EnvPrefix = "UISOUP"

// Config is the full uisoup configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Mouse  MouseConfig  `mapstructure:"mouse" yaml:"mouse"`
	Serve  ServeConfig  `mapstructure:"serve" yaml:"serve"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// MouseConfig tunes synthesized pointer motion.
type MouseConfig struct {
	SmoothSteps         int           `mapstructure:"smooth_steps" yaml:"smooth_steps"`
	StepDelay           time.Duration `mapstructure:"step_delay" yaml:"step_delay"`
	DoubleClickInterval time.Duration `mapstructure:"double_click_interval" yaml:"double_click_interval"`
}

// ServeConfig configures the MCP server.
type ServeConfig struct {
	Transport string        `mapstructure:"transport" yaml:"transport"`
	Port      int           `mapstructure:"port" yaml:"port"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "uisoup")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Mouse --
	v.SetDefault("mouse.smooth_steps", 100)
	v.SetDefault("mouse.step_delay", "10ms")
	v.SetDefault("mouse.double_click_interval", "500ms")

	// -- Serve --
	v.SetDefault("serve.transport", "stdio")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("serve.cache_ttl", "500ms")
}

// NewViper returns a viper instance with defaults and environment binding
// in place.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named) into the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("error loading env file: %w", err)
	}
	return nil
}

// Load reads the optional config file at path into v and builds a validated
// Config.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("error expanding config path %s: %w", path, err)
		}
		path = expanded
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Logger.LogFile != "" {
		logFile, err := homedir.Expand(cfg.Logger.LogFile)
		if err != nil {
			return nil, fmt.Errorf("error expanding logger.log_file: %w", err)
		}
		cfg.Logger.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewDefaultConfig returns the configuration made of defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Mouse.SmoothSteps <= 0 {
		return errors.New("mouse.smooth_steps must be a positive integer")
	}
	if c.Mouse.StepDelay < 0 {
		return errors.New("mouse.step_delay must not be negative")
	}
	if c.Mouse.DoubleClickInterval < 0 {
		return errors.New("mouse.double_click_interval must not be negative")
	}
	switch c.Serve.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("serve.transport must be stdio or streamable-http, got %q", c.Serve.Transport)
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be between 1 and 65535, got %d", c.Serve.Port)
	}
	if c.Serve.CacheTTL < 0 {
		return errors.New("serve.cache_ttl must not be negative")
	}
	return nil
}
