// Package logging builds the structured logger. The console belongs to the
// operator, so log output only goes to a file when one is configured.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V()
const (
	DEFAULT = 0
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

// Options configures the logger
type Options struct {
	// File receives the log output; empty disables logging
	File string
	// Verbosity is the highest V-level that is written
	Verbosity int
	// Development switches to the human readable console encoder
	Development bool
}

// NewLogger creates a logr.Logger backed by zap. The returned sync function
// flushes buffered entries and must be called before exit.
func NewLogger(opts Options) (logr.Logger, func(), error) {
	if opts.File == "" {
		return logr.Discard(), func() {}, nil
	}

	config := uberzap.NewProductionConfig()
	if opts.Development {
		config = uberzap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{opts.File}
	config.ErrorOutputPaths = []string{opts.File}
	config.Level = uberzap.NewAtomicLevelAt(zapcore.Level(-1 * opts.Verbosity))
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build(uberzap.AddCaller())
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	return zapr.NewLogger(zapLogger), func() { _ = zapLogger.Sync() }, nil
}

// NewTestLogger creates a development logger that writes everything up to
// TRACE to stderr
func NewTestLogger() logr.Logger {
	config := uberzap.NewDevelopmentConfig()
	config.Level = uberzap.NewAtomicLevelAt(zapcore.Level(-1 * TRACE))
	zapLogger, err := config.Build(uberzap.AddCaller())
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zapLogger)
}
