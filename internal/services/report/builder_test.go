package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/models"
)

func statsRow(code string, changePct, volatilityPct float64) models.ReturnStats {
	return models.ReturnStats{
		Code:          code,
		Name:          "股票" + code,
		ChangePct:     changePct,
		VolatilityPct: volatilityPct,
	}
}

func TestRankByChange_Leaderboards(t *testing.T) {
	table := []models.ReturnStats{
		statsRow("600001", 12.5, 0), statsRow("600002", -8.0, 0),
		statsRow("600003", 3.2, 0), statsRow("600004", 45.0, 0),
		statsRow("600005", -22.1, 0), statsRow("600006", 0.0, 0),
		statsRow("600007", 7.7, 0), statsRow("600008", -1.3, 0),
		statsRow("600009", 19.9, 0), statsRow("600010", -15.5, 0),
		statsRow("600011", 2.0, 0), statsRow("600012", 30.1, 0),
	}

	gainers, losers := rankByChange(table)

	assert.Len(t, gainers, 10)
	assert.Len(t, losers, 10)

	for i := 1; i < len(gainers); i++ {
		assert.GreaterOrEqual(t, gainers[i-1].ChangePct, gainers[i].ChangePct,
			"gainers must be non-increasing")
	}
	for i := 1; i < len(losers); i++ {
		assert.LessOrEqual(t, losers[i-1].ChangePct, losers[i].ChangePct,
			"losers must be non-decreasing")
	}

	assert.Equal(t, "600004", gainers[0].Code)
	assert.Equal(t, "600005", losers[0].Code)
}

func TestRankByChange_TieBreakByCode(t *testing.T) {
	table := []models.ReturnStats{
		statsRow("000002", 5.0, 0),
		statsRow("000001", 5.0, 0),
	}

	gainers, losers := rankByChange(table)

	assert.Equal(t, "000001", gainers[0].Code, "equal change orders by code ascending")
	assert.Equal(t, "000002", gainers[1].Code)
	assert.Equal(t, "000001", losers[0].Code)
	assert.Equal(t, "000002", losers[1].Code)
}

func TestRankByChange_FewerThanTen(t *testing.T) {
	table := []models.ReturnStats{
		statsRow("600001", 1, 0),
		statsRow("600002", 2, 0),
		statsRow("600003", 3, 0),
	}

	gainers, losers := rankByChange(table)
	assert.Len(t, gainers, 3)
	assert.Len(t, losers, 3)
}

func TestRankByChange_DoesNotMutateInput(t *testing.T) {
	table := []models.ReturnStats{
		statsRow("600002", -1, 0),
		statsRow("600001", 9, 0),
	}

	rankByChange(table)

	assert.Equal(t, "600002", table[0].Code)
	assert.Equal(t, "600001", table[1].Code)
}

func TestSummarizeEquity(t *testing.T) {
	table := []models.ReturnStats{
		statsRow("600001", 10.0, 20.0),
		statsRow("600002", -5.0, 50.0),
		statsRow("600003", 0.0, 35.0),
		statsRow("600004", 7.0, 15.0),
	}

	summary := summarizeEquity(table)

	assert.Equal(t, 1, summary.Losers)
	assert.Equal(t, 2, summary.Gainers)
	assert.Equal(t, 1, summary.Flat)
	assert.Equal(t, len(table), summary.Gainers+summary.Losers+summary.Flat,
		"counts must partition the table")

	assert.InDelta(t, 3.0, summary.AvgChangePct, 0.0001)
	assert.InDelta(t, 3.5, summary.MedianChangePct, 0.0001) // (0+7)/2
	assert.InDelta(t, 30.0, summary.AvgVolatilityPct, 0.0001)
	assert.InDelta(t, 50.0, summary.MaxVolatilityPct, 0.0001)
	assert.InDelta(t, 15.0, summary.MinVolatilityPct, 0.0001)
}

func TestSummarizeEquity_Empty(t *testing.T) {
	summary := summarizeEquity(nil)

	assert.Zero(t, summary.Gainers)
	assert.Zero(t, summary.Losers)
	assert.Zero(t, summary.Flat)
	assert.Zero(t, summary.AvgChangePct)
	assert.Zero(t, summary.MaxVolatilityPct)
}

func TestSummarizeTotals(t *testing.T) {
	listing := &models.ListingSnapshot{Rows: []models.ListingRow{
		{Code: "000001", TotalMarketCap: 2.5e8, TurnoverAmount: 1.0e8},
		{Code: "000002", TotalMarketCap: 7.5e8, TurnoverAmount: 0.5e8},
	}}

	totals := summarizeTotals(listing)

	assert.InDelta(t, 10.0, totals.MarketCapYi, 0.0001)
	assert.InDelta(t, 1.5, totals.TurnoverYi, 0.0001)
	assert.Equal(t, 2, totals.ListedCount)
}

func TestSummarizeTotals_Nil(t *testing.T) {
	totals := summarizeTotals(nil)
	assert.Zero(t, totals.MarketCapYi)
	assert.Zero(t, totals.ListedCount)
}

func TestService_Build(t *testing.T) {
	svc := NewService(common.NewDefaultConfig(), common.NewSilentLogger())

	table := []models.ReturnStats{
		statsRow("600001", 4.0, 12.0),
		statsRow("600002", -2.0, 9.0),
	}
	listing := &models.ListingSnapshot{Rows: []models.ListingRow{
		{Code: "600001", TotalMarketCap: 1e8},
		{Code: "600002", TotalMarketCap: 3e8},
	}}
	failures := []models.FetchFailure{{Code: "600003", Reason: "timeout"}}

	report := svc.Build(nil, table, listing, failures)

	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.StartDate, 8)
	assert.Len(t, report.EndDate, 8)
	assert.Equal(t, 2, report.EquityCount)
	assert.Equal(t, 1, report.FailureCount)
	assert.Equal(t, report.EquityCount, report.Equity.Gainers+report.Equity.Losers+report.Equity.Flat)
	assert.Len(t, report.TopGainers, 2)
	assert.Equal(t, "600001", report.TopGainers[0].Code)
	assert.Equal(t, "600002", report.TopLosers[0].Code)
}

func TestService_Build_EmptyInputs(t *testing.T) {
	svc := NewService(common.NewDefaultConfig(), common.NewSilentLogger())

	report := svc.Build(nil, nil, nil, nil)

	assert.Equal(t, 0, report.EquityCount)
	assert.Empty(t, report.TopGainers)
	assert.Empty(t, report.TopLosers)
	assert.Zero(t, report.Equity.Gainers)
	assert.Zero(t, report.Totals.ListedCount)
	assert.Equal(t, 0, report.FailureCount)
}
