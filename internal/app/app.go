// Package app wires configuration, the market-data client and the services
// into a single annual-analysis run. It is the shared core used by
// cmd/asharescope.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/asharescope/internal/analysis"
	"github.com/bobmcallan/asharescope/internal/clients/eastmoney"
	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/interfaces"
	"github.com/bobmcallan/asharescope/internal/models"
	"github.com/bobmcallan/asharescope/internal/services/export"
	"github.com/bobmcallan/asharescope/internal/services/market"
	"github.com/bobmcallan/asharescope/internal/services/report"
)

// App holds the initialized config, client and services for one run.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	Client        interfaces.MarketDataClient
	MarketService interfaces.MarketService
	ReportService interfaces.ReportService
	ExportService interfaces.ExportService
	StartupTime   time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes the client and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, ASHARESCOPE_CONFIG, then
	// binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("ASHARESCOPE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "asharescope.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/asharescope.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level, config.Logging.Pretty)

	em := config.Clients.EastMoney
	client := eastmoney.NewClient(
		eastmoney.WithLogger(logger),
		eastmoney.WithKlineBaseURL(em.KlineBaseURL),
		eastmoney.WithSpotBaseURL(em.SpotBaseURL),
		eastmoney.WithRateLimit(em.RatePerSecond, em.Burst),
		eastmoney.WithTimeout(em.GetTimeout()),
		eastmoney.WithPageSize(em.PageSize),
	)

	a := &App{
		Config:        config,
		Logger:        logger,
		Client:        client,
		MarketService: market.NewService(client, config, logger),
		ReportService: report.NewService(config, logger),
		ExportService: export.NewService(config, logger),
		StartupTime:   startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Run executes the collection, analysis and export pipeline. Per-symbol
// fetch failures are reported inside the run; only the listing snapshot
// and the export stage are fatal.
func (a *App) Run(ctx context.Context) error {
	// The listing snapshot selects the equity universe and feeds the
	// market overview, so nothing can proceed without it.
	listing, err := a.Client.GetSpotListing(ctx)
	if err != nil {
		return fmt.Errorf("fetch listing snapshot: %w", err)
	}
	a.Logger.Info().Int("rows", len(listing.Rows)).Msg("Listing snapshot retrieved")

	symbols := analysis.TopByMarketCap(listing, a.Config.Universe.TopN)
	a.Logger.Info().
		Int("selected", len(symbols)).
		Int("requested", a.Config.Universe.TopN).
		Msg("Universe selected by market cap")

	indexStats, indexFailures, indexSeries := a.MarketService.CollectIndices(ctx, models.DefaultIndices)
	universe := a.MarketService.CollectUniverse(ctx, symbols)

	failures := make([]models.FetchFailure, 0, len(indexFailures)+len(universe.Failures))
	failures = append(failures, indexFailures...)
	failures = append(failures, universe.Failures...)

	rep := a.ReportService.Build(indexStats, universe.Table, listing, failures)
	text := a.ReportService.Render(rep)

	// The rendered report goes to stdout as well as the output directory.
	fmt.Print(text)

	bundle := &interfaces.ExportBundle{
		Report:      rep,
		ReportText:  text,
		IndexSeries: indexSeries,
		StockSeries: universe.Series,
		Listing:     listing,
	}
	if err := a.ExportService.Export(ctx, bundle); err != nil {
		return fmt.Errorf("export artifacts: %w", err)
	}

	return nil
}
