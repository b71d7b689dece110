// Package config provides configuration management for the application.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Messenger  MessengerConfig  `mapstructure:"messenger"`
	Ai         AiConfig         `mapstructure:"ai"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port" validate:"required"`
	ReadTimeout  int    `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout int    `mapstructure:"write_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"gt=0"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"gt=0"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type MessengerConfig struct {
	Provider        string               `mapstructure:"provider" validate:"required"`
	Token           string               `mapstructure:"token" validate:"required"`
	BaseURL         string               `mapstructure:"base_url" validate:"required,url"`
	WebhookURL      string               `mapstructure:"webhook_url" validate:"omitempty,url"`
	Timeout         int                  `mapstructure:"timeout" validate:"gt=0"`
	TypingTimeout   int                  `mapstructure:"typing_timeout" validate:"gt=0"`
	PlaceholderText string               `mapstructure:"placeholder_text" validate:"required"`
	CircuitBreaker  CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type AiConfig struct {
	Service       string  `mapstructure:"service" validate:"required"`
	BaseURL       string  `mapstructure:"base_url" validate:"required,url"`
	DefaultModel  string  `mapstructure:"default_model" validate:"required"`
	AppName       string  `mapstructure:"app_name"`
	AppURL        string  `mapstructure:"app_url" validate:"omitempty,url"`
	Temperature   float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens     int     `mapstructure:"max_tokens" validate:"gt=0"`
	Timeout       int     `mapstructure:"timeout" validate:"gt=0"`
	FallbackReply string  `mapstructure:"fallback_reply" validate:"required"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

type SchedulerConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes" validate:"gt=0"`
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("messenger.provider", "bale")
	viper.SetDefault("messenger.base_url", "https://tapi.bale.ai/bot")
	viper.SetDefault("messenger.timeout", 30)
	viper.SetDefault("messenger.typing_timeout", 10)
	viper.SetDefault("messenger.placeholder_text", "الان جواب می دم")
	viper.SetDefault("messenger.circuit_breaker.max_requests", 3)
	viper.SetDefault("messenger.circuit_breaker.interval", 60)
	viper.SetDefault("messenger.circuit_breaker.timeout", 60)
	viper.SetDefault("messenger.circuit_breaker.failure_ratio", 0.6)
	viper.SetDefault("messenger.circuit_breaker.consecutive_fails", 5)
	viper.SetDefault("ai.service", "openrouter")
	viper.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("ai.default_model", "openai/gpt-oss-20b:free")
	viper.SetDefault("ai.app_name", "IqJanBot")
	viper.SetDefault("ai.app_url", "https://iq-jan.salam-raya.ir")
	viper.SetDefault("ai.temperature", 0.7)
	viper.SetDefault("ai.max_tokens", 1000)
	viper.SetDefault("ai.timeout", 60)
	viper.SetDefault("ai.fallback_reply", "متأسفانه در حال حاضر نمی‌توانم پاسخ دهم. لطفاً بعداً دوباره تلاش کنید.")
	viper.SetDefault("scheduler.interval_minutes", 5)
	viper.SetDefault("middleware.rate_limit", 100)
	viper.SetDefault("middleware.rate_limit_burst", 1000)
	viper.SetDefault("middleware.enable_cors", true)
	viper.SetDefault("middleware.allowed_origins", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
