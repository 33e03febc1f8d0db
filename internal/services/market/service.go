// Package market provides index and equity collection services
package market

import (
	"time"

	"github.com/bobmcallan/asharescope/internal/common"
	"github.com/bobmcallan/asharescope/internal/interfaces"
)

// Service implements MarketService
type Service struct {
	client    interfaces.MarketDataClient
	config    *common.Config
	logger    *common.Logger
	startDate string
	endDate   string
}

// NewService creates a new market service. The analysis window is fixed
// at construction so every fetch in the run shares the same range.
func NewService(client interfaces.MarketDataClient, config *common.Config, logger *common.Logger) *Service {
	start, end := config.Market.DateRange(time.Now())
	return &Service{
		client:    client,
		config:    config,
		logger:    logger,
		startDate: start,
		endDate:   end,
	}
}

// Window returns the analysis window endpoints formatted YYYYMMDD
func (s *Service) Window() (string, string) {
	return s.startDate, s.endDate
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
