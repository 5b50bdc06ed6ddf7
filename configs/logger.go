package configs

import (
	"go.uber.org/zap"
)

// NewLogger builds a JSON logger in production and a console one otherwise.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
