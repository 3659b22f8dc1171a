package utils

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// NewLogger builds a zap logger for the given environment. Production gets
// the JSON encoder; everything else gets colored console output.
func NewLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	return cfg.Build()
}

// InitializeLogger sets up the process-wide logger used by the API server.
func InitializeLogger(env, level string) {
	l, err := NewLogger(env, level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger = l
	zap.ReplaceGlobals(l)
}

// GetLogger retrieves the process-wide logger, falling back to a
// development logger when InitializeLogger was never called.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			InitializeLogger("development", "")
		}
	})
	return logger
}
