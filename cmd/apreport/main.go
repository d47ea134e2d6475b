// apreport - Personalized AP Efficiency Report Generator
//
// apreport reads a spreadsheet of company leads, derives accounts-payable
// efficiency metrics per company, renders a chart set, assembles a two-page
// PDF report per row, and writes the input spreadsheet back out with a
// column of report paths.
//
// Components:
//   - metrics: deterministic metric derivation
//   - assets: logo download and brand colors
//   - chart: PNG chart rendering
//   - report: PDF assembly
//   - pipeline: batch orchestration
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/r3d91ll/apreport/pkg/config"
	apperrors "github.com/r3d91ll/apreport/pkg/errors"
	"github.com/r3d91ll/apreport/pkg/pipeline"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Config file path (default: ./apreport.yaml)")
	outputPath := flag.String("out", "", "Output spreadsheet path (overrides config)")
	initConfig := flag.Bool("init", false, "Initialize default config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("apreport %s\n", version)
		os.Exit(0)
	}

	// Determine config path
	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}

	// Initialize config if requested
	if *initConfig {
		if err := config.InitConfig(cfgPath); err != nil {
			fmt.Printf("Failed to initialize config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config initialized at: %s\n", cfgPath)
		fmt.Println("Edit this file to adjust paths, palette, and workers.")
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Println("Usage: apreport [flags] <input.xlsx|input.csv>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	// Load config
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		fail(err)
	}
	if *outputPath != "" {
		cfg.Paths.OutputFile = *outputPath
		if err := cfg.Validate(); err != nil {
			fail(err)
		}
	}

	logger, err := buildLogger(cfg.Log.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	logger.Info("starting batch run",
		zap.String("version", version),
		zap.String("input", inputPath),
		zap.String("config", cfgPath),
		zap.String("settings", cfg.String()))

	runner := pipeline.New(cfg, logger)
	summary, err := runner.Run(ctx, inputPath)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Generated %d report(s), %d row(s) failed.\n", summary.Succeeded, summary.Failed)
	fmt.Printf("Result spreadsheet: %s\n", summary.OutputPath)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// buildLogger constructs a production zap logger at the configured level.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// fail prints a structured error and exits with failure.
func fail(err error) {
	if pe, ok := apperrors.AsPipelineError(err); ok {
		fmt.Fprintln(os.Stderr, pe.Display())
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
