package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/interfaces"
	"github.com/bobmcallan/asharescope/internal/models"
)

func testService(dir string, charts bool) *Service {
	cfg := common.NewDefaultConfig()
	cfg.Output.Dir = dir
	cfg.Output.Charts = charts
	return NewService(cfg, common.NewSilentLogger())
}

func sampleSeries(code, name string, closes ...float64) *models.KlineSeries {
	bars := make([]models.KlineBar, len(closes))
	for i, c := range closes {
		bars[i] = models.KlineBar{
			Date:   time.Date(2024, 1, 2+i, 0, 0, 0, 0, time.UTC),
			Open:   c - 0.5,
			Close:  c,
			High:   c + 1,
			Low:    c - 1,
			Volume: 1000,
			Amount: 25000,
		}
	}
	return &models.KlineSeries{Code: code, Name: name, Bars: bars}
}

func sampleBundle() *interfaces.ExportBundle {
	return &interfaces.ExportBundle{
		ReportText:  "第一行\n第二行\n",
		IndexSeries: []*models.KlineSeries{sampleSeries("000001", "上证指数", 3000, 3010.5)},
		StockSeries: []*models.KlineSeries{sampleSeries("600000", "浦发银行", 10.5, 11.25)},
		Listing: &models.ListingSnapshot{Rows: []models.ListingRow{
			{Code: "600000", Name: "浦发银行", LastPrice: 11.25, ChangePct: 1.5, TotalMarketCap: 3.3e11, TurnoverAmount: 1.2e9},
		}},
	}
}

func TestExport_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	svc := testService(dir, true)

	if err := svc.Export(context.Background(), sampleBundle()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	wb, err := excelize.OpenFile(filepath.Join(dir, "A股年度数据汇总.xlsx"))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer wb.Close()

	wantSheets := []string{"分析报告", "指数_上证指数", "个股历史数据", "股票列表"}
	if got := wb.GetSheetList(); !reflect.DeepEqual(got, wantSheets) {
		t.Errorf("GetSheetList() = %v, want %v", got, wantSheets)
	}

	header, err := wb.GetCellValue("分析报告", "A1")
	if err != nil || header != "分析报告" {
		t.Errorf("report header = %q (err %v), want 分析报告", header, err)
	}
	firstLine, _ := wb.GetCellValue("分析报告", "A2")
	if firstLine != "第一行" {
		t.Errorf("report line 1 = %q, want 第一行", firstLine)
	}

	indexRows, err := wb.GetRows("指数_上证指数")
	if err != nil {
		t.Fatalf("GetRows(index) error = %v", err)
	}
	wantHeader := []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额", "振幅", "涨跌幅", "涨跌额", "换手率"}
	if len(indexRows) != 3 {
		t.Fatalf("index rows = %d, want 3", len(indexRows))
	}
	if !reflect.DeepEqual(indexRows[0], wantHeader) {
		t.Errorf("index header = %v, want %v", indexRows[0], wantHeader)
	}
	if indexRows[1][0] != "2024-01-02" || indexRows[1][2] != "3000" {
		t.Errorf("index row 1 = %v, want date 2024-01-02 close 3000", indexRows[1])
	}

	stockRows, err := wb.GetRows("个股历史数据")
	if err != nil {
		t.Fatalf("GetRows(stock) error = %v", err)
	}
	if len(stockRows) != 3 {
		t.Fatalf("stock rows = %d, want 3", len(stockRows))
	}
	if stockRows[0][0] != "股票代码" || stockRows[0][1] != "股票名称" || stockRows[0][2] != "日期" {
		t.Errorf("stock header = %v", stockRows[0])
	}
	if stockRows[1][0] != "600000" || stockRows[1][1] != "浦发银行" || stockRows[1][4] != "10.5" {
		t.Errorf("stock row 1 = %v, want code 600000 close 10.5", stockRows[1])
	}

	listingRows, err := wb.GetRows("股票列表")
	if err != nil {
		t.Fatalf("GetRows(listing) error = %v", err)
	}
	if len(listingRows) != 2 {
		t.Fatalf("listing rows = %d, want 2", len(listingRows))
	}
	if listingRows[1][0] != "600000" || listingRows[1][4] != "330000000000" {
		t.Errorf("listing row 1 = %v", listingRows[1])
	}

	text, err := os.ReadFile(filepath.Join(dir, "分析报告.txt"))
	if err != nil {
		t.Fatalf("ReadFile(report text) error = %v", err)
	}
	if string(text) != "第一行\n第二行\n" {
		t.Errorf("report text = %q", string(text))
	}

	png, err := os.ReadFile(filepath.Join(dir, "charts", "index_000001.png"))
	if err != nil {
		t.Fatalf("ReadFile(chart) error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("chart file is not a PNG, first bytes %v", png[:4])
	}
}

func TestExport_ChartsDisabled(t *testing.T) {
	dir := t.TempDir()
	svc := testService(dir, false)

	if err := svc.Export(context.Background(), sampleBundle()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "charts")); !os.IsNotExist(err) {
		t.Errorf("charts directory should not exist when disabled, stat err = %v", err)
	}
}

func TestExport_ChartFailureNonFatal(t *testing.T) {
	dir := t.TempDir()
	svc := testService(dir, true)

	bundle := sampleBundle()
	// A single bar cannot be charted but must not fail the export.
	bundle.IndexSeries = []*models.KlineSeries{sampleSeries("000016", "上证50", 2400)}

	if err := svc.Export(context.Background(), bundle); err != nil {
		t.Fatalf("Export() error = %v, want nil despite chart failure", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "A股年度数据汇总.xlsx")); err != nil {
		t.Errorf("workbook missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "charts", "index_000016.png")); !os.IsNotExist(err) {
		t.Errorf("unchartable series should leave no PNG, stat err = %v", err)
	}
}

func TestExport_NilListing(t *testing.T) {
	dir := t.TempDir()
	svc := testService(dir, false)

	bundle := sampleBundle()
	bundle.Listing = nil

	if err := svc.Export(context.Background(), bundle); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	wb, err := excelize.OpenFile(filepath.Join(dir, "A股年度数据汇总.xlsx"))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("股票列表")
	if err != nil {
		t.Fatalf("GetRows(listing) error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("listing rows = %d, want header only", len(rows))
	}
}

func TestIndexSheetName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"上证指数", "指数_上证指数"},
		{"很长的指数名称超过十个字符了", "指数_很长的指数名称超过十"},
	}
	for _, tt := range tests {
		if got := indexSheetName(tt.name); got != tt.want {
			t.Errorf("indexSheetName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderIndexChart(t *testing.T) {
	png, err := renderIndexChart(sampleSeries("000300", "沪深300", 3500, 3550, 3600))
	if err != nil {
		t.Fatalf("renderIndexChart() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("renderIndexChart() did not produce a PNG")
	}

	if _, err := renderIndexChart(sampleSeries("000300", "沪深300", 3500)); err == nil {
		t.Errorf("renderIndexChart() with one bar should fail")
	}
}
