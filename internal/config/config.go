// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Layered configuration: flags, STACKSCAN_* env, config file, defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/sony-level/stackscan/internal/scanner"
)

// EnvPrefix prefixes every environment variable (STACKSCAN_MIN_CONFIDENCE, ...)
const EnvPrefix = "STACKSCAN"

// Configuration keys
const (
	KeyMinConfidence        = "min_confidence"
	KeyIncludeLowConfidence = "include_low_confidence"
	KeyLogLevel             = "log.level"
	KeyLogFormat            = "log.format"
	KeyOutputFormat         = "output.format"
	KeyOutputVerbose        = "output.verbose"
)

// LocalConfigFile is looked up in the working directory
const LocalConfigFile = ".stackscan.yaml"

// Config is the resolved configuration
type Config struct {
	MinConfidence        int     `mapstructure:"min_confidence"`
	IncludeLowConfidence bool    `mapstructure:"include_low_confidence"`
	Log                  Logging `mapstructure:"log"`
	Output               Output  `mapstructure:"output"`

	// File is the config file that was read, empty when none
	File string `mapstructure:"-"`
}

// Logging holds logger settings
type Logging struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// Output holds report settings
type Output struct {
	Format  string `mapstructure:"format"` // text or json
	Verbose bool   `mapstructure:"verbose"`
}

// New returns a viper instance with defaults and env binding applied
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMinConfidence, scanner.DefaultMinConfidence)
	v.SetDefault(KeyIncludeLowConfidence, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyOutputFormat, "text")
	v.SetDefault(KeyOutputVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SearchPaths returns the candidate config files in lookup order
func SearchPaths() []string {
	paths := []string{LocalConfigFile}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "stackscan", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "stackscan", "config.yaml"))
	}
	return paths
}

// Load reads the config file (explicit, or the first found on SearchPaths),
// merges env and bound flags, and validates the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file == "" {
		file = firstExisting(SearchPaths())
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var errs error
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be between 0 and 100, got %d", KeyMinConfidence, c.MinConfidence))
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "json":
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be text or json, got %q", KeyOutputFormat, c.Output.Format))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, c.Log.Format))
	}
	return errs
}

// ScanOptions converts the configuration into scanner options.
// min_confidence 0 keeps every result.
func (c *Config) ScanOptions() scanner.Options {
	return scanner.Options{
		IncludeLowConfidence: c.IncludeLowConfidence || c.MinConfidence == 0,
		MinConfidence:        c.MinConfidence,
	}
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
