package eastmoney

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bobmcallan/asharescope/internal/models"
)

// GetSpotListing retrieves the full A-share spot listing, paging until
// the reported total is reached.
func (c *Client) GetSpotListing(ctx context.Context) (*models.ListingSnapshot, error) {
	snapshot := &models.ListingSnapshot{RetrievedAt: time.Now()}

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("pn", strconv.Itoa(page))
		params.Set("pz", strconv.Itoa(c.pageSize))
		params.Set("po", "0")
		params.Set("np", "1")
		params.Set("fltt", "2")
		params.Set("invt", "2")
		params.Set("fid", "f12") // page by code for a stable order
		params.Set("fs", spotMarketFilter)
		params.Set("fields", spotFields)

		var resp spotResponse
		if err := c.get(ctx, c.spotBaseURL, "/api/qt/clist/get", params, &resp); err != nil {
			return nil, fmt.Errorf("spot listing page %d: %w", page, err)
		}

		if resp.Data == nil || len(resp.Data.Diff) == 0 {
			break
		}

		for _, row := range resp.Data.Diff {
			snapshot.Rows = append(snapshot.Rows, models.ListingRow{
				Code:           row.Code,
				Name:           row.Name,
				LastPrice:      float64(row.LastPrice),
				ChangePct:      float64(row.ChangePct),
				TotalMarketCap: float64(row.TotalMarketCap),
				TurnoverAmount: float64(row.TurnoverAmount),
			})
		}

		if len(snapshot.Rows) >= resp.Data.Total || len(resp.Data.Diff) < c.pageSize {
			break
		}
	}

	c.logger.Debug().Int("rows", len(snapshot.Rows)).Msg("EastMoney spot listing fetched")

	return snapshot, nil
}

// spotResponse represents the API response for the spot listing
type spotResponse struct {
	Data *spotData `json:"data"`
}

type spotData struct {
	Total int       `json:"total"`
	Diff  []spotRow `json:"diff"`
}

// spotRow carries the listing fields requested via spotFields
type spotRow struct {
	LastPrice      flexFloat64 `json:"f2"`
	ChangePct      flexFloat64 `json:"f3"`
	TurnoverAmount flexFloat64 `json:"f6"`
	Code           string      `json:"f12"`
	Name           string      `json:"f14"`
	TotalMarketCap flexFloat64 `json:"f20"`
}
