// Package logger builds the process-wide zap logger from the run mode.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
