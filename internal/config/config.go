package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env            string        `mapstructure:"env"`             // current application environment (local, production)
	GeminiAPIKey   string        `mapstructure:"-"`               // Gemini API key loaded from environment
	QuranBaseURL   string        `mapstructure:"quran_base_url"`  // content API base URL
	GeminiBaseURL  string        `mapstructure:"gemini_base_url"` // insight API base URL
	GeminiModel    string        `mapstructure:"gemini_model"`    // generateContent model name
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // per-request timeout for both providers
	LogFile        string        `mapstructure:"log_file"`        // log destination; the terminal belongs to the UI
	Theme          string        `mapstructure:"theme"`           // default theme name
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("quran_base_url", "https://api.alquran.cloud/v1")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("request_timeout", "45s")
	v.SetDefault("log_file", "quran-tui.log")
	v.SetDefault("theme", "oasis")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.GeminiAPIKey = v.GetString("gemini_api_key")
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
