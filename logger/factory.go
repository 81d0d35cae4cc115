package logger

import (
	"os"
	"strings"
)

// NewFromEnv creates a logger configured from STAMINA_* environment variables.
func NewFromEnv() (Logger, error) {
	return NewZapLogger(ConfigFromEnv())
}

// NewWithComponent creates an env-configured logger with a component field pre-set.
func NewWithComponent(component string) (Logger, error) {
	l, err := NewFromEnv()
	if err != nil {
		return nil, err
	}
	return l.With(Field{Key: "component", Value: component}), nil
}

// ConfigFromEnv starts from DevelopmentConfig unless STAMINA_ENV is
// "production", then applies the individual overrides.
func ConfigFromEnv() Config {
	return configFromLookup(os.Getenv)
}

func configFromLookup(getenv func(string) string) Config {
	cfg := DevelopmentConfig()
	if strings.ToLower(getenv("STAMINA_ENV")) == "production" {
		cfg = DefaultConfig()
	}

	if level := getenv("STAMINA_LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	if format := getenv("STAMINA_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if sampling := getenv("STAMINA_LOG_SAMPLING"); sampling != "" {
		cfg.EnableSampling = strings.ToLower(sampling) == "true"
	}
	if dev := getenv("STAMINA_LOG_DEVELOPMENT"); dev != "" {
		cfg.Development = strings.ToLower(dev) == "true"
	}
	return cfg
}
