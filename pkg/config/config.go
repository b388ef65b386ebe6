package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	LandingURL string `mapstructure:"LANDING_URL"`
	DocHost    string `mapstructure:"DOC_HOST"`
	OutputPath string `mapstructure:"OUTPUT_PATH"`

	LandingSettleDelay  time.Duration `mapstructure:"LANDING_SETTLE_DELAY"`
	DocumentSettleDelay time.Duration `mapstructure:"DOCUMENT_SETTLE_DELAY"`
	HistorySettleDelay  time.Duration `mapstructure:"HISTORY_SETTLE_DELAY"`
	PageLoadTimeout     time.Duration `mapstructure:"PAGE_LOAD_TIMEOUT"`
	UserAgent           string        `mapstructure:"USER_AGENT"`
	AcceptLanguage      string        `mapstructure:"ACCEPT_LANGUAGE"`
	ChromePath          string        `mapstructure:"CHROME_PATH"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	MetricsAddr string `mapstructure:"METRICS_ADDR"`
}

var defaults = map[string]any{
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"LANDING_URL":           "https://docs.aws.amazon.com/index.html",
	"DOC_HOST":              "https://docs.aws.amazon.com",
	"OUTPUT_PATH":           "data/result.json",
	"LANDING_SETTLE_DELAY":  "1500ms",
	"DOCUMENT_SETTLE_DELAY": "1s",
	"HISTORY_SETTLE_DELAY":  "0s",
	"PAGE_LOAD_TIMEOUT":     "60s",
	"USER_AGENT":            "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36",
	"ACCEPT_LANGUAGE":       "en-US,en",
	"CHROME_PATH":           "",
	"POSTGRES_URL":          "",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"METRICS_ADDR":          "",
}

// Load reads configuration from a .env file in the working directory and the environment.
// Environment variables take precedence; the file is optional.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Production runs configure through the environment only.
	_ = v.ReadInConfig()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
