// Package interfaces defines service contracts for AShareScope
package interfaces

import (
	"context"

	"github.com/bobmcallan/asharescope/internal/models"
)

// MarketService collects index and equity data for the analysis window
type MarketService interface {
	// CollectIndices fetches the benchmark indices in the caller's order.
	// Failed instruments are skipped and reported, never fatal.
	CollectIndices(ctx context.Context, indices []models.SymbolRef) ([]models.ReturnStats, []models.FetchFailure, []*models.KlineSeries)

	// CollectUniverse fetches the equity universe and derives per-stock stats
	CollectUniverse(ctx context.Context, symbols []models.SymbolRef) *models.UniverseResult
}

// ReportService assembles and renders the annual market summary
type ReportService interface {
	// Build assembles the report from collected statistics
	Build(indexStats []models.ReturnStats, equityTable []models.ReturnStats, listing *models.ListingSnapshot, failures []models.FetchFailure) *models.MarketReport

	// Render produces the report text
	Render(report *models.MarketReport) string
}

// ExportService persists the report and raw tables to the output directory
type ExportService interface {
	// Export writes the workbook, the text report and the index charts
	Export(ctx context.Context, bundle *ExportBundle) error
}

// ExportBundle carries everything the export stage writes
type ExportBundle struct {
	Report      *models.MarketReport
	ReportText  string
	IndexSeries []*models.KlineSeries // in report order
	StockSeries []*models.KlineSeries
	Listing     *models.ListingSnapshot
}
