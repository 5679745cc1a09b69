package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "STUDYDESK"

// setDefaults registers the default value of every configuration key.
// Viper only maps environment variables onto keys it already knows about,
// so every key needs a default here.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.timezone", "")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*", "http://127.0.0.1:*"})

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "data/studydesk.db")
	v.SetDefault("storage.url", "")

	v.SetDefault("widget.default_theme", "horror")
	v.SetDefault("widget.session_minutes", 25)
	v.SetDefault("widget.tick_drain", 0.06)
	v.SetDefault("widget.hidden_drain", 8.0)
	v.SetDefault("widget.restore_steps", 20)
	v.SetDefault("widget.restore_amount", 0.6)
	v.SetDefault("widget.restore_interval_ms", 80)

	v.SetDefault("ambient.enabled", true)
	v.SetDefault("ambient.sample_rate", 44100)
	v.SetDefault("ambient.cutoff_hz", 400.0)
	v.SetDefault("ambient.level", 0.08)
	v.SetDefault("ambient.ramp_ms", 200)
	v.SetDefault("ambient.loop_seconds", 2)
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// configFile may be empty, in which case ./config.yaml is used if present.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every struct tag constraint of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
