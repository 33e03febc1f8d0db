package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/models"
)

const (
	workbookName = "A股年度数据汇总.xlsx"
	reportSheet  = "分析报告"
	stockSheet   = "个股历史数据"
	listingSheet = "股票列表"

	// Sheet names cap at 31 characters, so benchmark names are truncated.
	indexNameRunes = 10
)

var klineHeader = []interface{}{
	"日期", "开盘", "收盘", "最高", "最低",
	"成交量", "成交额", "振幅", "涨跌幅", "涨跌额", "换手率",
}

// indexSheetName derives the per-benchmark sheet name from its display name.
func indexSheetName(name string) string {
	return "指数_" + common.TruncateRunes(name, indexNameRunes)
}

// buildWorkbook assembles the summary workbook: the report sheet, one sheet
// per benchmark, the concatenated equity history and the listing snapshot.
func buildWorkbook(reportText string, indexSeries, stockSeries []*models.KlineSeries, listing *models.ListingSnapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeReportSheet(f, reportText); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	for _, series := range indexSeries {
		if err := writeIndexSheet(f, series); err != nil {
			return nil, err
		}
	}
	if err := writeStockSheet(f, stockSeries); err != nil {
		return nil, err
	}
	if err := writeListingSheet(f, listing); err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("locate report sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	return f, nil
}

func writeReportSheet(f *excelize.File, reportText string) error {
	if _, err := f.NewSheet(reportSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", reportSheet, err)
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 80); err != nil {
		return fmt.Errorf("size report column: %w", err)
	}
	if err := f.SetCellValue(reportSheet, "A1", reportSheet); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for i, line := range strings.Split(strings.TrimRight(reportText, "\n"), "\n") {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetCellValue(reportSheet, cell, line); err != nil {
			return fmt.Errorf("write report line %d: %w", i+1, err)
		}
	}
	return nil
}

func writeIndexSheet(f *excelize.File, series *models.KlineSeries) error {
	sheet := indexSheetName(series.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &klineHeader); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, bar := range series.Bars {
		row := barRow(bar)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeStockSheet(f *excelize.File, stockSeries []*models.KlineSeries) error {
	if _, err := f.NewSheet(stockSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", stockSheet, err)
	}
	header := append([]interface{}{"股票代码", "股票名称"}, klineHeader...)
	if err := f.SetSheetRow(stockSheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", stockSheet, err)
	}

	rowNum := 2
	for _, series := range stockSeries {
		for _, bar := range series.Bars {
			row := append([]interface{}{series.Code, series.Name}, barRow(bar)...)
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(stockSheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", stockSheet, rowNum, err)
			}
			rowNum++
		}
	}
	return nil
}

func writeListingSheet(f *excelize.File, listing *models.ListingSnapshot) error {
	if _, err := f.NewSheet(listingSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", listingSheet, err)
	}
	header := []interface{}{"代码", "名称", "最新价", "涨跌幅", "总市值", "成交额"}
	if err := f.SetSheetRow(listingSheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", listingSheet, err)
	}
	if listing == nil {
		return nil
	}
	for i, r := range listing.Rows {
		row := []interface{}{r.Code, r.Name, r.LastPrice, r.ChangePct, r.TotalMarketCap, r.TurnoverAmount}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(listingSheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", listingSheet, i+1, err)
		}
	}
	return nil
}

func barRow(bar models.KlineBar) []interface{} {
	return []interface{}{
		bar.Date.Format("2006-01-02"),
		bar.Open, bar.Close, bar.High, bar.Low,
		bar.Volume, bar.Amount, bar.Amplitude,
		bar.ChangePct, bar.Change, bar.Turnover,
	}
}
