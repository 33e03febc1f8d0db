package report

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/models"
)

// formatReport renders the full report text
func formatReport(report *models.MarketReport) string {
	var sb strings.Builder

	line := strings.Repeat("=", 60)
	sep := strings.Repeat("-", 40)

	sb.WriteString(line + "\n")
	sb.WriteString("A股市场年度分析报告\n")
	sb.WriteString(fmt.Sprintf("生成时间: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(line + "\n\n")

	sb.WriteString(fmt.Sprintf("分析时间范围: %s 至 %s\n", report.StartDate, report.EndDate))
	sb.WriteString(fmt.Sprintf("分析股票数量: %d 只\n\n", report.EquityCount))

	formatIndexSection(&sb, sep, report.IndexStats)
	formatEquitySection(&sb, sep, report)
	formatMarketSection(&sb, sep, report.Totals)

	if report.FailureCount > 0 {
		sb.WriteString(fmt.Sprintf("\n（数据获取失败: %d 条）\n", report.FailureCount))
	}

	return sb.String()
}

func formatIndexSection(sb *strings.Builder, sep string, indexStats []models.ReturnStats) {
	sb.WriteString("【一、主要指数表现】\n")
	sb.WriteString(sep + "\n")

	for _, idx := range indexStats {
		sb.WriteString(fmt.Sprintf("\n%s:\n", idx.Name))
		sb.WriteString(fmt.Sprintf("  期初收盘: %.2f\n", idx.StartClose))
		sb.WriteString(fmt.Sprintf("  期末收盘: %.2f\n", idx.EndClose))
		sb.WriteString(fmt.Sprintf("  涨跌幅: %s\n", common.SignedPct(idx.ChangePct)))
		sb.WriteString(fmt.Sprintf("  年内最高: %.2f\n", idx.PeriodHigh))
		sb.WriteString(fmt.Sprintf("  年内最低: %.2f\n", idx.PeriodLow))
		sb.WriteString(fmt.Sprintf("  波动幅度: %.2f%%\n", idx.VolatilityPct))
	}
}

func formatEquitySection(sb *strings.Builder, sep string, report *models.MarketReport) {
	sb.WriteString("\n【二、个股表现统计】\n")
	sb.WriteString(sep + "\n")

	sb.WriteString("\n涨幅榜 TOP10:\n")
	for _, row := range report.TopGainers {
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", row.Code, row.Name, common.SignedPct(row.ChangePct)))
	}

	sb.WriteString("\n跌幅榜 TOP10:\n")
	for _, row := range report.TopLosers {
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", row.Code, row.Name, common.SignedPct(row.ChangePct)))
	}

	sb.WriteString("\n整体统计:\n")
	sb.WriteString(fmt.Sprintf("  平均涨跌幅: %s\n", common.SignedPct(report.Equity.AvgChangePct)))
	sb.WriteString(fmt.Sprintf("  涨跌幅中位数: %s\n", common.SignedPct(report.Equity.MedianChangePct)))
	sb.WriteString(fmt.Sprintf("  上涨股票: %d 只\n", report.Equity.Gainers))
	sb.WriteString(fmt.Sprintf("  下跌股票: %d 只\n", report.Equity.Losers))
	sb.WriteString(fmt.Sprintf("  平盘股票: %d 只\n", report.Equity.Flat))

	sb.WriteString("\n波动率分析:\n")
	sb.WriteString(fmt.Sprintf("  平均波动率: %.2f%%\n", report.Equity.AvgVolatilityPct))
	sb.WriteString(fmt.Sprintf("  最大波动率: %.2f%%\n", report.Equity.MaxVolatilityPct))
	sb.WriteString(fmt.Sprintf("  最小波动率: %.2f%%\n", report.Equity.MinVolatilityPct))
}

func formatMarketSection(sb *strings.Builder, sep string, totals models.MarketTotals) {
	sb.WriteString("\n【三、市场概况】\n")
	sb.WriteString(sep + "\n")
	sb.WriteString(fmt.Sprintf("A股总市值: %s 亿元\n", common.GroupInt(totals.MarketCapYi)))
	sb.WriteString(fmt.Sprintf("上市公司数: %d 家\n", totals.ListedCount))
	sb.WriteString(fmt.Sprintf("总成交额: %s 亿元\n", common.GroupInt(totals.TurnoverYi)))
}
