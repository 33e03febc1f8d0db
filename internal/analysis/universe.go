package analysis

import (
	"sort"

	"github.com/bobmcallan/asharescope/internal/models"
)

// TopByMarketCap selects the n largest listing rows by total market cap,
// descending. Equal caps order by code ascending so repeated runs pick
// the same universe.
func TopByMarketCap(listing *models.ListingSnapshot, n int) []models.SymbolRef {
	if listing == nil || n <= 0 {
		return nil
	}

	rows := make([]models.ListingRow, len(listing.Rows))
	copy(rows, listing.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMarketCap != rows[j].TotalMarketCap {
			return rows[i].TotalMarketCap > rows[j].TotalMarketCap
		}
		return rows[i].Code < rows[j].Code
	})

	if n > len(rows) {
		n = len(rows)
	}

	refs := make([]models.SymbolRef, 0, n)
	for _, row := range rows[:n] {
		refs = append(refs, models.SymbolRef{Code: row.Code, Name: row.Name})
	}
	return refs
}
