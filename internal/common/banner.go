package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()
	window := fmt.Sprintf("%d days", config.Market.WindowDays)
	universe := fmt.Sprintf("top %d by market cap", config.Universe.TopN)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`       d8888   .d8888b.  888    888       d8888  8888888b.  8888888888`,
		`      d88888  d88P  Y88b 888    888      d88888  888   Y88b 888`,
		`     d88P888  Y88b.      888    888     d88P888  888    888 888`,
		`    d88P 888   "Y888b.   8888888888    d88P 888  888   d88P 8888888`,
		`   d88P  888      "Y88b. 888    888   d88P  888  8888888P'  888`,
		`  d88P   888        "888 888    888  d88P   888  888 T88b   888`,
		` d8888888888  Y88b  d88P 888    888 d8888888888  888  T88b  888`,
		`d88P     888   "Y8888P"  888    888d88P     888  888   T88b 8888888888`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s  A-Share Annual Market Summary%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"Window", window},
		{"Universe", universe},
		{"Output", config.Output.Dir},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("commit", commit).
		Str("environment", config.Environment).
		Str("window", window).
		Str("universe", universe).
		Str("output", config.Output.Dir).
		Msg("Application started")
}

// PrintCompletionBanner displays the end-of-run banner to stderr.
func PrintCompletionBanner(logger *Logger, elapsed time.Duration, outputDir string) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 42
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "%s  ASHARESCOPE — RUN COMPLETE%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s  output: %s%s\n", textColor, outputDir, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().
		Dur("elapsed", elapsed).
		Str("output", outputDir).
		Msg("Run complete")
}
