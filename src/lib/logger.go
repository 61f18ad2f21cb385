package lib

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds a sugared zap logger; production mode emits JSON,
// anything else uses the human-readable development encoder.
func NewLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
