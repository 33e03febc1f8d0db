// Package interfaces defines service contracts for AShareScope
package interfaces

import (
	"context"

	"github.com/bobmcallan/asharescope/internal/models"
)

// MarketDataClient provides access to the EastMoney quote API
type MarketDataClient interface {
	// GetIndexKline retrieves daily bars for a benchmark index
	GetIndexKline(ctx context.Context, code string, opts ...KlineOption) (*models.KlineSeries, error)

	// GetStockKline retrieves daily bars for an equity
	GetStockKline(ctx context.Context, code string, opts ...KlineOption) (*models.KlineSeries, error)

	// GetSpotListing retrieves the full A-share spot listing
	GetSpotListing(ctx context.Context) (*models.ListingSnapshot, error)
}

// KlineOption configures kline requests
type KlineOption func(*KlineParams)

// KlineParams holds kline query parameters
type KlineParams struct {
	StartDate string // YYYYMMDD
	EndDate   string // YYYYMMDD
	Adjust    string // "none" for raw prices, "qfq" for forward-adjusted
}

// WithDateRange sets the date range for a kline query
func WithDateRange(start, end string) KlineOption {
	return func(p *KlineParams) {
		p.StartDate = start
		p.EndDate = end
	}
}

// WithAdjust sets the price adjustment mode for a kline query
func WithAdjust(adjust string) KlineOption {
	return func(p *KlineParams) {
		p.Adjust = adjust
	}
}
