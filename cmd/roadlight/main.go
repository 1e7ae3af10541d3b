package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	"github.com/spf13/pflag"

	"github.com/anggasct/roadlight/pkg/config"
	"github.com/anggasct/roadlight/pkg/console"
	"github.com/anggasct/roadlight/pkg/controller"
	"github.com/anggasct/roadlight/pkg/logging"
	"github.com/anggasct/roadlight/pkg/observers"
	"github.com/anggasct/roadlight/pkg/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts := config.NewOptions()
	opts.AddFlags(pflag.CommandLine)
	pflag.Parse()
	if err := opts.Complete(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	logger, syncLogs, err := logging.NewLogger(opts.LoggingOptions())
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer syncLogs()
	logger = logger.WithValues("run", uuid.NewString())
	setupLog := logger.WithName("setup")

	flags := make(map[string]any)
	pflag.VisitAll(func(f *pflag.Flag) {
		flags[f.Name] = f.Value
	})
	setupLog.Info("Flags processed", "flags", flags)

	display := console.NewDisplay(colorable.NewColorable(os.Stdout), console.NewPalette(opts.ColorMode, os.Stdout))
	input := console.NewInput(os.Stdin, display)

	metrics := observers.NewMetricsObserver()
	queueValidator := observers.NewValidationObserver()
	logObserver := observers.NewLoggingObserver(logger.WithName("junction"))
	sessionLog := observers.NewDefaultLoggingObserver(logger)

	ctrl := controller.New(input, display,
		controller.WithRoads(opts.Roads),
		controller.WithInterval(opts.Interval),
		controller.WithLogger(logger.WithName("controller")),
		controller.WithJunctionObserver(metrics),
		controller.WithJunctionObserver(queueValidator),
		controller.WithJunctionObserver(logObserver),
		controller.WithSessionObserver(metrics),
		controller.WithSessionObserver(sessionLog),
	)

	definition, err := ctrl.Definition()
	if err != nil {
		setupLog.Error(err, "Failed to build session machine")
		return err
	}
	if opts.PrintStates {
		dot, err := session.NewDOTGenerator(definition).Generate()
		if err != nil {
			return err
		}
		fmt.Print(dot)
		return nil
	}
	sessionValidator := observers.NewSessionValidationObserver(definition)
	ctrl.AddSessionObserver(sessionValidator)

	runErr := ctrl.Run(context.Background())
	if runErr != nil {
		setupLog.Error(runErr, "Session ended with error")
	}

	logSummary(setupLog, metrics)
	for _, validator := range []*observers.ValidationObserver{queueValidator, sessionValidator} {
		for _, violation := range validator.GetViolations() {
			setupLog.Info("Validation violation", "violation", violation)
		}
	}
	return runErr
}

func logSummary(logger logr.Logger, metrics *observers.MetricsObserver) {
	summary, err := metrics.Summary()
	if err != nil {
		logger.Error(err, "Failed to gather metrics")
		return
	}
	keys := make([]string, 0, len(summary))
	for key := range summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		logger.V(logging.VERBOSE).Info("Metric", "name", key, "value", summary[key])
	}
}
