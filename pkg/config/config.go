package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	ModelURL         string `mapstructure:"MODEL_URL"`
	ModelMetadataURL string `mapstructure:"MODEL_METADATA_URL"`
	ModelDir         string `mapstructure:"MODEL_DIR"`
	ModelMaxBytes    int64  `mapstructure:"MODEL_MAX_BYTES"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// Load reads configuration from a .env file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables in
	// production.
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MODEL_URL", "")
	viper.SetDefault("MODEL_METADATA_URL", "")
	viper.SetDefault("MODEL_DIR", "models")
	viper.SetDefault("MODEL_MAX_BYTES", 250*1024*1024)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
