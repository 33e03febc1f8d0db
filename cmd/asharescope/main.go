package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/asharescope/internal/app"
	"github.com/bobmcallan/asharescope/internal/common"
)

var (
	// Command-line flags
	configPath  = flag.String("config", "", "Configuration file path")
	outputDir   = flag.String("output", "", "Output directory (overrides config)")
	topN        = flag.Int("top", 0, "Number of equities by market cap (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		common.LoadVersionFromFile()
		fmt.Printf("AShareScope version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	// Apply command-line flag overrides (highest priority)
	if *outputDir != "" {
		a.Config.Output.Dir = *outputDir
	}
	if *topN > 0 {
		a.Config.Universe.TopN = *topN
	}

	common.PrintBanner(a.Config, a.Logger)

	// Cancel the run on Ctrl+C; per-symbol failures never abort it.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runStart := time.Now()
	if err := a.Run(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}

	common.PrintCompletionBanner(a.Logger, time.Since(runStart), a.Config.Output.Dir)
}
