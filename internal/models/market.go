// Package models defines data structures for AShareScope
package models

import (
	"time"
)

// KlineBar represents a single day's price data for a stock or index
type KlineBar struct {
	Date      time.Time `json:"date"`
	Open      float64   `json:"open"`
	Close     float64   `json:"close"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Volume    float64   `json:"volume"`    // lots (手)
	Amount    float64   `json:"amount"`    // turnover in CNY
	Amplitude float64   `json:"amplitude"` // percent
	ChangePct float64   `json:"change_pct"`
	Change    float64   `json:"change"`
	Turnover  float64   `json:"turnover"` // turnover rate, percent
}

// KlineSeries holds one entity's daily bars over the analysis window.
// Bars are date-ascending as delivered by the source; an empty Bars
// slice is a valid series and means the fetch returned no data.
type KlineSeries struct {
	Code string     `json:"code"`
	Name string     `json:"name"`
	Bars []KlineBar `json:"bars"`
}

// SymbolRef identifies one instrument to collect
type SymbolRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DefaultIndices lists the six benchmark indices in report order.
// Order matters: the report and the workbook render indices in this order.
var DefaultIndices = []SymbolRef{
	{Code: "000001", Name: "上证指数"},
	{Code: "399001", Name: "深证成指"},
	{Code: "399006", Name: "创业板指"},
	{Code: "000688", Name: "科创50"},
	{Code: "000300", Name: "沪深300"},
	{Code: "000016", Name: "上证50"},
}

// ListingRow is one equity from the A-share spot listing
type ListingRow struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	LastPrice      float64 `json:"last_price"`
	ChangePct      float64 `json:"change_pct"`
	TotalMarketCap float64 `json:"total_market_cap"` // CNY
	TurnoverAmount float64 `json:"turnover_amount"`  // CNY
}

// ListingSnapshot is the full spot listing taken once at the start of a run
type ListingSnapshot struct {
	Rows        []ListingRow `json:"rows"`
	RetrievedAt time.Time    `json:"retrieved_at"`
}

// ReturnStats holds the derived statistics for one entity over the window
type ReturnStats struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	StartClose    float64 `json:"start_close"`
	EndClose      float64 `json:"end_close"`
	ChangePct     float64 `json:"change_pct"`
	PeriodHigh    float64 `json:"period_high"`
	PeriodLow     float64 `json:"period_low"`
	VolatilityPct float64 `json:"volatility_pct"`
	AvgVolume     float64 `json:"avg_volume"`
}

// FetchFailure records one entity that was skipped during collection
type FetchFailure struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UniverseResult is the outcome of collecting the equity universe.
// Series keeps the raw bars of successful rows for spreadsheet export;
// nothing else retains raw series after stats are derived.
type UniverseResult struct {
	Table    []ReturnStats  `json:"table"`
	Failures []FetchFailure `json:"failures"`
	Series   []*KlineSeries `json:"-"`
}
