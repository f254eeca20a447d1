package main

import (
	"testing"

	"github.com/medibook/medibook/internal/config"
)

func TestNewLoggerWithoutConfig(t *testing.T) {
	logger := newLogger(nil)
	logger.Info().Msg("bootstrap logger works before config is loaded")
}

func TestNewLoggerPerEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		cfg := &config.Config{Env: env}
		logger := newLogger(cfg)
		logger.Info().Str("env", env).Msg("logger initialized")
	}
}
