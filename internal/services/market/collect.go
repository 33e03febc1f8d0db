package market

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bobmcallan/asharescope/internal/analysis"
	"github.com/bobmcallan/asharescope/internal/interfaces"
	"github.com/bobmcallan/asharescope/internal/models"
)

// CollectIndices fetches the benchmark indices sequentially in the
// caller's order. A failed instrument is skipped and reported; the
// result keeps the input order for the survivors.
func (s *Service) CollectIndices(ctx context.Context, indices []models.SymbolRef) ([]models.ReturnStats, []models.FetchFailure, []*models.KlineSeries) {
	stats := make([]models.ReturnStats, 0, len(indices))
	failures := make([]models.FetchFailure, 0)
	series := make([]*models.KlineSeries, 0, len(indices))

	for _, ref := range indices {
		s.logger.Info().Str("code", ref.Code).Str("name", ref.Name).Msg("Fetching index history")

		ks, err := s.client.GetIndexKline(ctx, ref.Code, interfaces.WithDateRange(s.startDate, s.endDate))
		if err != nil {
			s.logger.Warn().Err(err).Str("code", ref.Code).Msg("Index fetch failed, skipping")
			failures = append(failures, models.FetchFailure{Code: ref.Code, Name: ref.Name, Reason: err.Error()})
			continue
		}

		// Report under the benchmark's display name
		ks.Name = ref.Name

		st, err := analysis.ComputeReturnStats(ks)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", ref.Code).Msg("Index stats failed, skipping")
			failures = append(failures, models.FetchFailure{Code: ref.Code, Name: ref.Name, Reason: err.Error()})
			continue
		}

		stats = append(stats, st)
		series = append(series, ks)
	}

	s.logger.Info().
		Int("collected", len(stats)).
		Int("failed", len(failures)).
		Msg("Index collection finished")

	return stats, failures, series
}

// fetchResult carries one symbol's outcome with its input position
type fetchResult struct {
	idx    int
	ref    models.SymbolRef
	stats  models.ReturnStats
	series *models.KlineSeries
	err    error
}

// CollectUniverse fetches the equity universe with a bounded worker
// pool and derives per-stock stats. Per-symbol failures are collected,
// never fatal. Results are committed in input order, so a duplicated
// code resolves to the later input entry.
func (s *Service) CollectUniverse(ctx context.Context, symbols []models.SymbolRef) *models.UniverseResult {
	result := &models.UniverseResult{
		Table:    make([]models.ReturnStats, 0, len(symbols)),
		Failures: make([]models.FetchFailure, 0),
	}
	if len(symbols) == 0 {
		return result
	}

	workers := s.config.Universe.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}

	jobs := make(chan int)
	results := make(chan fetchResult, len(symbols))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- s.fetchEquity(ctx, idx, symbols[idx])
			}
		}()
	}

	go func() {
		for idx := range symbols {
			jobs <- idx
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	collected := make([]fetchResult, 0, len(symbols))
	for res := range results {
		collected = append(collected, res)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].idx < collected[j].idx })

	// Commit in input order; later duplicates overwrite earlier rows
	position := make(map[string]int, len(collected))
	for _, res := range collected {
		if res.err != nil {
			result.Failures = append(result.Failures, models.FetchFailure{
				Code:   res.ref.Code,
				Name:   res.ref.Name,
				Reason: res.err.Error(),
			})
			continue
		}
		if pos, seen := position[res.ref.Code]; seen {
			result.Table[pos] = res.stats
			result.Series[pos] = res.series
			continue
		}
		position[res.ref.Code] = len(result.Table)
		result.Table = append(result.Table, res.stats)
		result.Series = append(result.Series, res.series)
	}

	s.logger.Info().
		Int("collected", len(result.Table)).
		Int("failed", len(result.Failures)).
		Msg("Universe collection finished")

	return result
}

// fetchEquity retrieves one stock's history and derives its stats
func (s *Service) fetchEquity(ctx context.Context, idx int, ref models.SymbolRef) fetchResult {
	res := fetchResult{idx: idx, ref: ref}

	series, err := s.client.GetStockKline(ctx, ref.Code,
		interfaces.WithDateRange(s.startDate, s.endDate),
		interfaces.WithAdjust(s.config.Market.Adjust))
	if err != nil {
		s.logger.Warn().Err(err).Str("code", ref.Code).Str("name", ref.Name).Msg("Equity fetch failed, skipping")
		res.err = fmt.Errorf("fetch %s: %w", ref.Code, err)
		return res
	}

	// Listing names are authoritative for display
	if ref.Name != "" {
		series.Name = ref.Name
	}

	stats, err := analysis.ComputeReturnStats(series)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", ref.Code).Str("name", ref.Name).Msg("Equity stats failed, skipping")
		res.err = err
		return res
	}

	s.logger.Info().
		Str("code", ref.Code).
		Str("name", ref.Name).
		Int("bars", len(series.Bars)).
		Msg("Collected equity history")

	res.stats = stats
	res.series = series
	return res
}
