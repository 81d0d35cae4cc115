package logger

// Config selects how NewZapLogger builds its zap logger.
type Config struct {
	Level            string `yaml:"level" env:"STAMINA_LOG_LEVEL"`
	Format           string `yaml:"format" env:"STAMINA_LOG_FORMAT"` // json or console
	EnableSampling   bool   `yaml:"enable_sampling" env:"STAMINA_LOG_SAMPLING"`
	SampleInitial    int    `yaml:"sample_initial"`
	SampleThereafter int    `yaml:"sample_thereafter"`
	Development      bool   `yaml:"development" env:"STAMINA_LOG_DEVELOPMENT"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Level:            "info",
		Format:           "json",
		EnableSampling:   true,
		SampleInitial:    100,
		SampleThereafter: 1000,
	}
}

// DevelopmentConfig returns a console configuration that keeps every
// debug line, which is what stamina diagnostics need.
func DevelopmentConfig() Config {
	return Config{
		Level:       "debug",
		Format:      "console",
		Development: true,
	}
}
