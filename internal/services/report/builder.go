package report

import (
	"sort"

	"github.com/bobmcallan/asharescope/internal/analysis"
	"github.com/bobmcallan/asharescope/internal/models"
)

// leaderboardSize caps each leaderboard
const leaderboardSize = 10

// yi is the reporting unit for market totals (亿, hundred million)
const yi = 1e8

// rankByChange sorts the equity table into the two leaderboards.
// Gainers order by change descending, losers ascending; equal changes
// order by code ascending so ranking is deterministic.
func rankByChange(table []models.ReturnStats) ([]models.ReturnStats, []models.ReturnStats) {
	gainers := make([]models.ReturnStats, len(table))
	copy(gainers, table)
	sort.SliceStable(gainers, func(i, j int) bool {
		if gainers[i].ChangePct != gainers[j].ChangePct {
			return gainers[i].ChangePct > gainers[j].ChangePct
		}
		return gainers[i].Code < gainers[j].Code
	})

	losers := make([]models.ReturnStats, len(table))
	copy(losers, table)
	sort.SliceStable(losers, func(i, j int) bool {
		if losers[i].ChangePct != losers[j].ChangePct {
			return losers[i].ChangePct < losers[j].ChangePct
		}
		return losers[i].Code < losers[j].Code
	})

	n := len(table)
	if n > leaderboardSize {
		n = leaderboardSize
	}
	return gainers[:n], losers[:n]
}

// summarizeEquity aggregates change and volatility across the table
func summarizeEquity(table []models.ReturnStats) models.EquitySummary {
	summary := models.EquitySummary{}
	if len(table) == 0 {
		return summary
	}

	changes := make([]float64, len(table))
	vols := make([]float64, len(table))
	for i, row := range table {
		changes[i] = row.ChangePct
		vols[i] = row.VolatilityPct
	}

	summary.AvgChangePct = analysis.Mean(changes)
	summary.MedianChangePct = analysis.Median(changes)

	for _, c := range changes {
		switch {
		case c > 0:
			summary.Gainers++
		case c < 0:
			summary.Losers++
		default:
			// Flat means the derived change is exactly zero; no epsilon.
			summary.Flat++
		}
	}

	summary.AvgVolatilityPct = analysis.Mean(vols)
	summary.MaxVolatilityPct = vols[0]
	summary.MinVolatilityPct = vols[0]
	for _, v := range vols[1:] {
		if v > summary.MaxVolatilityPct {
			summary.MaxVolatilityPct = v
		}
		if v < summary.MinVolatilityPct {
			summary.MinVolatilityPct = v
		}
	}

	return summary
}

// summarizeTotals sums the listing snapshot into 亿-scaled market figures
func summarizeTotals(listing *models.ListingSnapshot) models.MarketTotals {
	totals := models.MarketTotals{}
	if listing == nil {
		return totals
	}

	for _, row := range listing.Rows {
		totals.MarketCapYi += row.TotalMarketCap
		totals.TurnoverYi += row.TurnoverAmount
	}
	totals.MarketCapYi /= yi
	totals.TurnoverYi /= yi
	totals.ListedCount = len(listing.Rows)

	return totals
}
