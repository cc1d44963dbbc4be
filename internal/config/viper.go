// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Engine names accepted by the engine key.
const (
	EngineRules    = "rules"
	EngineLearning = "learning"
)

// Learning store backends accepted by the learning.backend key.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultLearningKey is the well-known key the learning examples are stored under.
const DefaultLearningKey = "bankCategorizerLearningData"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	// Engine selects the categorizer: "rules" or "learning".
	Engine string `mapstructure:"engine" yaml:"engine"`

	Learning struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
		Key     string `mapstructure:"key" yaml:"key"`
	} `mapstructure:"learning" yaml:"learning"`

	CSV struct {
		QuoteAll bool `mapstructure:"quote_all" yaml:"quote_all"`
	} `mapstructure:"csv" yaml:"csv"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// An empty configFile searches the default locations.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.stmt-categorizer")
		v.AddConfigPath(".stmt-categorizer")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("STMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("engine", EngineRules)

	v.SetDefault("learning.backend", BackendFile)
	v.SetDefault("learning.path", defaultLearningPath())
	v.SetDefault("learning.key", DefaultLearningKey)

	v.SetDefault("csv.quote_all", true)

	v.SetDefault("report.format", "json")
}

func defaultLearningPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".stmt-categorizer"
	}
	return filepath.Join(home, ".stmt-categorizer")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Engine != EngineRules && config.Engine != EngineLearning {
		return fmt.Errorf("invalid engine: %s (must be '%s' or '%s')", config.Engine, EngineRules, EngineLearning)
	}

	switch config.Learning.Backend {
	case BackendFile, BackendSQLite:
		if config.Learning.Path == "" {
			return fmt.Errorf("learning.path is required for the %s backend", config.Learning.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid learning backend: %s (must be 'file', 'sqlite' or 'memory')", config.Learning.Backend)
	}

	if strings.TrimSpace(config.Learning.Key) == "" {
		return fmt.Errorf("learning.key must not be empty")
	}

	if config.Report.Format != "json" && config.Report.Format != "yaml" {
		return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", config.Report.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
