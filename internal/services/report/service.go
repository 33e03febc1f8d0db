// Package report assembles the annual market summary
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/interfaces"
	"github.com/bobmcallan/asharescope/internal/models"
)

// Service implements ReportService
type Service struct {
	config *common.Config
	logger *common.Logger
}

// NewService creates a new report service
func NewService(config *common.Config, logger *common.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Build assembles the report from collected statistics. Empty inputs
// produce a report with zero counts, never an error.
func (s *Service) Build(indexStats []models.ReturnStats, equityTable []models.ReturnStats, listing *models.ListingSnapshot, failures []models.FetchFailure) *models.MarketReport {
	now := time.Now()
	start, end := s.config.Market.DateRange(now)

	gainers, losers := rankByChange(equityTable)

	report := &models.MarketReport{
		RunID:        uuid.NewString(),
		GeneratedAt:  now,
		StartDate:    start,
		EndDate:      end,
		EquityCount:  len(equityTable),
		IndexStats:   indexStats,
		TopGainers:   gainers,
		TopLosers:    losers,
		Equity:       summarizeEquity(equityTable),
		Totals:       summarizeTotals(listing),
		FailureCount: len(failures),
	}

	s.logger.Info().
		Str("run_id", report.RunID).
		Int("indices", len(report.IndexStats)).
		Int("equities", report.EquityCount).
		Int("failures", report.FailureCount).
		Msg("Report assembled")

	return report
}

// Render produces the report text
func (s *Service) Render(report *models.MarketReport) string {
	return formatReport(report)
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
