// Package config holds the command-line configuration of roadlight.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/anggasct/roadlight/pkg/console"
	"github.com/anggasct/roadlight/pkg/logging"
)

// Options contains the command-line configuration.
type Options struct {
	//
	// Junction. Zero values are asked for at startup.
	//
	Roads    int // Queue capacity.
	Interval int // Seconds each road stays open.
	//
	// Console.
	//
	Color       string // auto, always or never.
	PrintStates bool   // Print the session machine as Graphviz DOT and exit.
	//
	// Diagnostics.
	//
	LogFile        string // Log destination; logging is off without it.
	LogVerbosity   int    // Number for the log level verbosity.
	LogDevelopment bool   // Human readable log encoding.

	// ColorMode is the parsed Color, set by Complete
	ColorMode console.ColorMode
}

// NewOptions returns a new Options struct initialized with default values.
func NewOptions() *Options {
	return &Options{
		Color:        string(console.ColorAuto),
		LogVerbosity: logging.DEFAULT,
	}
}

// AddFlags binds the Options fields to command-line flags on the given FlagSet.
func (opts *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}

	fs.IntVar(&opts.Roads, "roads", opts.Roads,
		"Number of roads the junction can hold. Prompted for when 0.")
	fs.IntVar(&opts.Interval, "interval", opts.Interval,
		"Seconds each road stays open. Prompted for when 0.")
	fs.StringVar(&opts.Color, "color", opts.Color,
		"When to color road status: auto, always or never.")
	fs.BoolVar(&opts.PrintStates, "print-states", opts.PrintStates,
		"Print the session state machine in Graphviz DOT format and exit.")
	fs.StringVar(&opts.LogFile, "log-file", opts.LogFile,
		"Write logs to this file. Logging is disabled when empty.")
	fs.IntVarP(&opts.LogVerbosity, "v", "v", opts.LogVerbosity,
		"Number for the log level verbosity.")
	fs.BoolVar(&opts.LogDevelopment, "log-development", opts.LogDevelopment,
		"Use the human readable log encoding.")
}

// Complete performs post-processing of parsed command-line arguments.
func (opts *Options) Complete() error {
	mode, err := console.ParseColorMode(opts.Color)
	if err != nil {
		return fmt.Errorf("invalid value %q for flag %q: %w", opts.Color, "color", err)
	}
	opts.ColorMode = mode
	return nil
}

// Validate checks the Options for invalid values. All problems are reported
// together.
func (opts *Options) Validate() error {
	var errs error
	for _, nc := range []struct {
		name  string
		value int
	}{
		{"roads", opts.Roads},
		{"interval", opts.Interval},
		{"v", opts.LogVerbosity},
	} {
		if nc.value < 0 {
			errs = multierr.Append(errs, fmt.Errorf("invalid value %d for flag %q: must be >= 0", nc.value, nc.name))
		}
	}
	if _, err := console.ParseColorMode(opts.Color); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("invalid value %q for flag %q: %w", opts.Color, "color", err))
	}
	return errs
}

// LoggingOptions returns the logger configuration
func (opts *Options) LoggingOptions() logging.Options {
	return logging.Options{
		File:        opts.LogFile,
		Verbosity:   opts.LogVerbosity,
		Development: opts.LogDevelopment,
	}
}
