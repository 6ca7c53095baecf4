// Package config manages application configuration from default values,
// an optional config.yaml file, and BOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g., BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	API      APIConfig      `mapstructure:"api"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// TelegramConfig holds chat transport settings.
type TelegramConfig struct {
	Token           string  `mapstructure:"token"            validate:"required"`
	AdminIDs        []int64 `mapstructure:"admin_ids"`
	DefaultLanguage string  `mapstructure:"default_language" validate:"required,len=2"`
}

// APIConfig holds remote backend settings, including the retry budgets
// used by call sites: existence checks use the check budget, registration
// and message submission use the submit budget.
type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"          validate:"required,url"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   validate:"required,min=1s,max=2m"`
	CheckAttempts   int           `mapstructure:"check_attempts"    validate:"required,min=1,max=10"`
	CheckBaseDelay  time.Duration `mapstructure:"check_base_delay"  validate:"required,min=100ms"`
	SubmitAttempts  int           `mapstructure:"submit_attempts"   validate:"required,min=1,max=10"`
	SubmitBaseDelay time.Duration `mapstructure:"submit_base_delay" validate:"required,min=100ms"`
}

// SyncConfig holds reconciliation loop settings.
type SyncConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"required,min=10s"`
}

// DatabaseConfig holds local durable store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// Load loads and validates configuration from:
// 1. Default values
// 2. config.yaml file (optional)
// 3. BOT_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow missing config file; env vars and defaults still apply
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Registering the key makes env-only values visible to Unmarshal
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_ids", []int64{})
	v.SetDefault("telegram.default_language", "uz")

	v.SetDefault("api.base_url", "https://usat-taklif-backend.onrender.com/api")
	v.SetDefault("api.request_timeout", 10*time.Second)
	v.SetDefault("api.check_attempts", 2)
	v.SetDefault("api.check_base_delay", time.Second)
	v.SetDefault("api.submit_attempts", 2)
	v.SetDefault("api.submit_base_delay", 2*time.Second)

	v.SetDefault("sync.interval", 5*time.Minute)

	v.SetDefault("database.path", "./data/taklifbot.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
