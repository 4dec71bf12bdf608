// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig holds the database connection settings.
type DBConfig struct {
	Url string `envconfig:"URL"`
}

// JwtConfig holds the settings for validating bearer tokens. The token
// issuer is external; this service only verifies and reads the subject.
type JwtConfig struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// RateLimitConfig bounds request rates per client IP.
type RateLimitConfig struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"sociomart"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// RewardsConfig sets how many points each social action is worth.
type RewardsConfig struct {
	Follow  int64 `envconfig:"FOLLOW" default:"10"`
	Like    int64 `envconfig:"LIKE" default:"5"`
	Comment int64 `envconfig:"COMMENT" default:"3"`
}

// AppConfig is the root configuration for the service.
type AppConfig struct {
	Env       string          `envconfig:"APP_ENV" default:"development"`
	Host      string          `envconfig:"APP_HOST" default:"localhost"`
	Port      int             `envconfig:"APP_PORT" default:"3000"`
	DB        DBConfig        `envconfig:"DATABASE"`
	Jwt       JwtConfig       `envconfig:"JWT"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Log       LogConfig       `envconfig:"LOG"`
	Rewards   RewardsConfig   `envconfig:"REWARDS"`
}

// LoadAppConfig reads configuration from the environment. When an env
// file path is given it is loaded first; a missing default .env is not
// an error.
func LoadAppConfig(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded",
		"env", cfg.Env,
		"host", cfg.Host,
		"port", cfg.Port,
		"reward_follow", cfg.Rewards.Follow,
		"reward_like", cfg.Rewards.Like,
		"reward_comment", cfg.Rewards.Comment,
	)
	return &cfg, nil
}
