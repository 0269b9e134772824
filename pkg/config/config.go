// Package config provides configuration loading and validation for uastkit.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("convert workers must be positive")
	ErrInvalidFormat      = errors.New("unknown output format")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidLogFormat   = errors.New("unknown log format")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
	ErrInvalidFileSize    = errors.New("max file size must be positive")
	ErrNoFrontend         = errors.New("at least one frontend must be enabled")
)

// Config holds all configuration for uastkit.
type Config struct {
	Frontends     FrontendsConfig     `mapstructure:"frontends"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Convert       ConvertConfig       `mapstructure:"convert"`
}

// FrontendsConfig selects the conversion frontends.
type FrontendsConfig struct {
	Java   FrontendConfig `mapstructure:"java"`
	Kotlin FrontendConfig `mapstructure:"kotlin"`
}

// FrontendConfig configures one frontend.
type FrontendConfig struct {
	Priority int  `mapstructure:"priority"`
	Enabled  bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConvertConfig configures batch conversion.
type ConvertConfig struct {
	Format      string   `mapstructure:"format"`
	Include     []string `mapstructure:"include"`
	Workers     int      `mapstructure:"workers"`
	MaxFileSize int64    `mapstructure:"max_file_size"`
}

// ObservabilityConfig configures tracing and metrics export.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	MetricsFile  string  `mapstructure:"metrics_file"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".uastkit")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/uastkit")
	}

	viperCfg.SetEnvPrefix("UASTKIT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Frontends: FrontendsConfig{
			Java:   FrontendConfig{Enabled: DefaultJavaEnabled, Priority: DefaultJavaPriority},
			Kotlin: FrontendConfig{Enabled: DefaultKotlinEnabled, Priority: DefaultKotlinPriority},
		},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Convert: ConvertConfig{
			Format:      DefaultConvertFormat,
			Include:     append([]string(nil), DefaultConvertInclude...),
			Workers:     DefaultConvertWorkers,
			MaxFileSize: DefaultConvertMaxFileSize,
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: DefaultOTLPEndpoint,
			OTLPInsecure: DefaultOTLPInsecure,
			SampleRatio:  DefaultSampleRatio,
			MetricsFile:  DefaultMetricsFile,
		},
	}
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("frontends.java.enabled", DefaultJavaEnabled)
	viperCfg.SetDefault("frontends.java.priority", DefaultJavaPriority)
	viperCfg.SetDefault("frontends.kotlin.enabled", DefaultKotlinEnabled)
	viperCfg.SetDefault("frontends.kotlin.priority", DefaultKotlinPriority)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("convert.workers", DefaultConvertWorkers)
	viperCfg.SetDefault("convert.format", DefaultConvertFormat)
	viperCfg.SetDefault("convert.include", DefaultConvertInclude)
	viperCfg.SetDefault("convert.max_file_size", DefaultConvertMaxFileSize)

	viperCfg.SetDefault("observability.otlp_endpoint", DefaultOTLPEndpoint)
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.sample_ratio", DefaultSampleRatio)
	viperCfg.SetDefault("observability.metrics_file", DefaultMetricsFile)
}

// Validate checks the configuration for values the tools cannot run with.
func (c *Config) Validate() error {
	if !c.Frontends.Java.Enabled && !c.Frontends.Kotlin.Enabled {
		return ErrNoFrontend
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Convert.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Convert.Workers)
	}

	switch strings.ToLower(c.Convert.Format) {
	case "json", "yaml", "tree":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Convert.Format)
	}

	if c.Convert.MaxFileSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFileSize, c.Convert.MaxFileSize)
	}

	if c.Observability.SampleRatio < 0 || c.Observability.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Observability.SampleRatio)
	}

	return nil
}
