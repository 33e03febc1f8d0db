// Package models defines data structures for AShareScope
package models

import (
	"time"
)

// EquitySummary aggregates change and volatility across the equity table
type EquitySummary struct {
	AvgChangePct     float64 `json:"avg_change_pct"`
	MedianChangePct  float64 `json:"median_change_pct"`
	Gainers          int     `json:"gainers"`
	Losers           int     `json:"losers"`
	Flat             int     `json:"flat"`
	AvgVolatilityPct float64 `json:"avg_volatility_pct"`
	MaxVolatilityPct float64 `json:"max_volatility_pct"`
	MinVolatilityPct float64 `json:"min_volatility_pct"`
}

// MarketTotals holds whole-market figures from the listing snapshot
type MarketTotals struct {
	MarketCapYi float64 `json:"market_cap_yi"` // total market cap in 亿元
	TurnoverYi  float64 `json:"turnover_yi"`   // total turnover in 亿元
	ListedCount int     `json:"listed_count"`
}

// MarketReport is the assembled annual market summary
type MarketReport struct {
	RunID        string        `json:"run_id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	StartDate    string        `json:"start_date"` // YYYYMMDD
	EndDate      string        `json:"end_date"`   // YYYYMMDD
	EquityCount  int           `json:"equity_count"`
	IndexStats   []ReturnStats `json:"index_stats"` // in DefaultIndices order, successes only
	TopGainers   []ReturnStats `json:"top_gainers"`
	TopLosers    []ReturnStats `json:"top_losers"`
	Equity       EquitySummary `json:"equity"`
	Totals       MarketTotals  `json:"totals"`
	FailureCount int           `json:"failure_count"`
}
