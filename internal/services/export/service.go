// Package export writes the run artifacts: the summary workbook, the
// plain-text report and the per-benchmark charts.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/interfaces"
)

const (
	reportTextName = "分析报告.txt"
	chartsDirName  = "charts"
)

// Service implements interfaces.ExportService
type Service struct {
	config *common.Config
	logger *common.Logger
}

// NewService creates a new export service
func NewService(config *common.Config, logger *common.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Export writes the bundle under the configured output directory. A workbook
// or text-report failure aborts the export; chart failures only log.
func (s *Service) Export(ctx context.Context, bundle *interfaces.ExportBundle) error {
	dir := s.config.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	wb, err := buildWorkbook(bundle.ReportText, bundle.IndexSeries, bundle.StockSeries, bundle.Listing)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	workbookPath := filepath.Join(dir, workbookName)
	if err := wb.SaveAs(workbookPath); err != nil {
		wb.Close()
		return fmt.Errorf("save workbook %s: %w", workbookPath, err)
	}
	if err := wb.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to close workbook")
	}
	s.logger.Info().
		Str("path", workbookPath).
		Int("index_sheets", len(bundle.IndexSeries)).
		Int("stock_series", len(bundle.StockSeries)).
		Msg("Workbook written")

	textPath := filepath.Join(dir, reportTextName)
	if err := os.WriteFile(textPath, []byte(bundle.ReportText), 0o644); err != nil {
		return fmt.Errorf("write report text %s: %w", textPath, err)
	}
	s.logger.Info().Str("path", textPath).Msg("Report text written")

	if s.config.Output.Charts {
		s.writeCharts(ctx, bundle)
	}

	return nil
}

// writeCharts renders a close-price chart per benchmark. Charts are
// decorative, so every failure is a warning rather than an error.
func (s *Service) writeCharts(ctx context.Context, bundle *interfaces.ExportBundle) {
	chartsDir := filepath.Join(s.config.Output.Dir, chartsDirName)
	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		s.logger.Warn().Err(err).Str("dir", chartsDir).Msg("Failed to create charts directory")
		return
	}

	for _, series := range bundle.IndexSeries {
		if ctx.Err() != nil {
			return
		}
		png, err := renderIndexChart(series)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", series.Code).Msg("Failed to render index chart")
			continue
		}
		path := filepath.Join(chartsDir, fmt.Sprintf("index_%s.png", series.Code))
		if err := os.WriteFile(path, png, 0o644); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to write index chart")
			continue
		}
		s.logger.Debug().Str("path", path).Int("size", len(png)).Msg("Chart written")
	}
}

// Ensure Service implements the interface
var _ interfaces.ExportService = (*Service)(nil)
