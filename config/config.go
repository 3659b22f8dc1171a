package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for both the member client and the
// sandbox API server.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Client configuration.
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	SessionFile    string        `mapstructure:"SESSION_FILE"`
	DeviceID       string        `mapstructure:"DEVICE_ID"`
	PaymentDelay   time.Duration `mapstructure:"PAYMENT_DELAY"`
	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// Sandbox server configuration.
	AppPort           string `mapstructure:"APP_PORT"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	StoreBackend      string `mapstructure:"STORE_BACKEND"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	StripeKey         string `mapstructure:"STRIPE_KEY"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB    int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`
	RedisRenewalQueue int    `mapstructure:"REDIS_RENEWAL_QUEUE_DB"`

	// OpenTelemetry collector endpoint; tracing is disabled when empty.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("SESSION_BACKEND", "file")
	v.SetDefault("SESSION_FILE", "")
	v.SetDefault("DEVICE_ID", "default")
	v.SetDefault("PAYMENT_DELAY", "2s")
	v.SetDefault("HTTP_TIMEOUT", "0s")

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("STORE_BACKEND", "memory")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "cedarclub")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("STRIPE_KEY", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_CACHE_DB", 1)
	v.SetDefault("REDIS_RENEWAL_QUEUE_DB", 2)

	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
}

// Load reads configuration from an optional YAML file, the environment and
// built-in defaults, in increasing order of precedence for the environment.
// When configFile is empty, "config.yaml" is searched in ".", "./config" and
// "$HOME/.cedarclub".
func Load(configFile string) (Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.cedarclub")
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the configured environment is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
