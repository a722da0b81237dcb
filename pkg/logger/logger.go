// Package logger constructs the application logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a sugared zap logger for the named service. Output is
// JSON to stdout with ISO-8601 timestamps. Falls back to a no-op logger
// if construction fails rather than aborting startup.
func New(service string) *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.InitialFields = map[string]any{
		"service": service,
		"pid":     os.Getpid(),
	}
	config.DisableStacktrace = true

	log, err := config.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}
