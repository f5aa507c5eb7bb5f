package logger

import (
	"go.uber.org/zap"

	"github.com/lingora/lingora-bot/internal/config"
)

// New builds a zap logger appropriate for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
