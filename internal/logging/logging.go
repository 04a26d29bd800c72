// Package logging constructs the zap logger used across facet commands.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger suitable for CLI output on stderr.
// Verbose enables debug-level messages (per-pass token accounting and the like).
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.MessageKey = "message"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewNop returns a logger that discards everything. Used in tests and as the
// default when a component is constructed without an explicit logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
