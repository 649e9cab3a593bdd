package config

import (
	"fmt"

	"github.com/Netflix/go-env"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
)

type Config struct {
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	LogFormat      string `env:"LOG_FORMAT,default=console"`
	MaxAttempts    int    `env:"MAX_ATTEMPTS,default=3"`
	SMTPServer     string `env:"SMTP_SERVER,default=smtp.example.com"`
	ChatWebhookURL string `env:"CHAT_WEBHOOK_URL,default=https://hooks.slack.com/services/demo"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("failed to load config: %w: MAX_ATTEMPTS must be at least 1 (got %d)", domain.ErrValidation, cfg.MaxAttempts)
	}
	return &cfg, nil
}
