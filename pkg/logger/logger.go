package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig controls logger construction
type LoggerConfig struct {
	Debug bool
}

// NewLogger creates a zap logger. Debug mode uses the human-readable
// development encoder; otherwise JSON production output with ISO8601 timestamps.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	if cfg != nil && cfg.Debug {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return devCfg.Build()
	}

	prodCfg := zap.NewProductionConfig()
	prodCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return prodCfg.Build()
}
