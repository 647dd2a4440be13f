// Package logging builds the zap loggers used by the command and pipeline.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDevLogger returns a console logger at debug level.
func NewDevLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	return build(cfg)
}

// NewProdLogger returns a JSON logger at info level.
func NewProdLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	return build(cfg)
}

// New picks the development logger when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return NewDevLogger()
	}
	return NewProdLogger()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

func build(cfg zap.Config) (*zap.Logger, error) {
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true
	// stdout carries log lines; diagnostics go to stderr.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
