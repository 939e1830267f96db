package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the root logger. APP_ENV=development switches to the console encoder
// and LOG_LEVEL picks the minimum level (info when unset or invalid)
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := cfg.Get(KEY_LOG_LEVEL); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	config := zap.NewProductionConfig()
	if cfg.Development() {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build()
}
