package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/doorlink-analyzer/internal/config"
	"github.com/oshokin/doorlink-analyzer/internal/logger"
	"github.com/oshokin/doorlink-analyzer/internal/service/analyzer"
	"github.com/oshokin/doorlink-analyzer/internal/service/reference"
	"github.com/oshokin/doorlink-analyzer/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// captureDir overrides the capture directory from the configuration.
	captureDir string
	// catalogPath overrides the message catalog file.
	catalogPath string
	// manifestPath overrides the capture manifest file.
	manifestPath string
	// logLevel selects the logging verbosity.
	logLevel string

	// rootCmd analyzes captures and prints one report per capture.
	rootCmd = &cobra.Command{
		Use:   "doorlink [capture-file...]",
		Short: "Decode logic-analyzer captures of the opener/receiver protocol.",
		Long: `Offline analyzer for the two-wire PWM serial protocol between a garage
door opener and its plug-in wireless receiver module.

Reads logic-analyzer capture exports (timestamp + per-wire level tables),
splits each wire into message bursts, quantizes the pulse widths into
symbols and classifies every message against the known catalog. Status
messages additionally decode into door state, light state and the wrapping
position counter.

With no arguments every capture in the configured directory is analyzed;
explicit capture files restrict the run to those files.`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: setupLogging,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return analyzer.Run(ctx, analyzerOptions(args, false))
		},
	}

	// rawCmd prints the timeline with uninterpreted symbol sequences.
	rawCmd = &cobra.Command{
		Use:   "raw [capture-file...]",
		Short: "Print message timelines with raw symbol sequences.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return analyzer.Run(ctx, analyzerOptions(args, true))
		},
	}

	// initCmd writes a settings file populated with the measured defaults.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default analysis parameters.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Default()
			if captureDir != "" {
				cfg.CaptureDir = captureDir
			}

			if err := config.Save(configPath, cfg); err != nil {
				return err
			}

			fmt.Printf("Settings written to %s\n", configPath)

			return nil
		},
	}

	// referenceCmd compiles the protocol reference document.
	referenceCmd = &cobra.Command{
		Use:   "reference",
		Short: "Compile the protocol reference from the full capture set.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return reference.Run(ctx, &reference.Options{
				ConfigPath:   configPath,
				Dir:          captureDir,
				CatalogPath:  catalogPath,
				ManifestPath: manifestPath,
			})
		},
	}
)

// Execute runs the doorlink CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext returns a context canceled on SIGTERM or SIGINT.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// analyzerOptions assembles the analyzer service options from the flags
// and positional capture-file arguments.
func analyzerOptions(args []string, raw bool) *analyzer.Options {
	return &analyzer.Options{
		ConfigPath:   configPath,
		Dir:          captureDir,
		Files:        args,
		CatalogPath:  catalogPath,
		ManifestPath: manifestPath,
		Raw:          raw,
	}
}

// setupLogging applies the log level flag before any command runs.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("unknown log level: %s", logLevel)
	}

	logger.SetLevel(level)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&captureDir, "dir", "d", "", "capture directory (overrides configuration)")
	flags.StringVar(&catalogPath, "catalog", "", "message catalog file (overrides configuration)")
	flags.StringVar(&manifestPath, "manifest", "", "capture manifest file (overrides configuration)")
	flags.StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(rawCmd, referenceCmd, initCmd)
}
