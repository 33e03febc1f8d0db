// Package analysis provides return and volatility statistics
package analysis

import (
	"errors"
	"sort"

	"github.com/bobmcallan/asharescope/internal/models"
)

// Per-series computation failures. Callers skip the entity and record
// the failure; they never abort the run.
var (
	ErrInsufficientData   = errors.New("series has no bars")
	ErrDegenerateBaseline = errors.New("first close is not positive")
	ErrInvertedRange      = errors.New("period high is below period low")
)

// ComputeReturnStats derives window statistics from one entity's series.
// Pure: the same series always yields the same stats.
func ComputeReturnStats(series *models.KlineSeries) (models.ReturnStats, error) {
	if series == nil || len(series.Bars) == 0 {
		return models.ReturnStats{}, ErrInsufficientData
	}

	first := series.Bars[0]
	last := series.Bars[len(series.Bars)-1]
	if first.Close <= 0 {
		return models.ReturnStats{}, ErrDegenerateBaseline
	}

	high := first.High
	low := first.Low
	volume := 0.0
	for _, bar := range series.Bars {
		if bar.High > high {
			high = bar.High
		}
		if bar.Low < low {
			low = bar.Low
		}
		volume += bar.Volume
	}
	if high < low {
		return models.ReturnStats{}, ErrInvertedRange
	}

	return models.ReturnStats{
		Code:          series.Code,
		Name:          series.Name,
		StartClose:    first.Close,
		EndClose:      last.Close,
		ChangePct:     (last.Close - first.Close) / first.Close * 100,
		PeriodHigh:    high,
		PeriodLow:     low,
		VolatilityPct: (high - low) / first.Close * 100,
		AvgVolume:     volume / float64(len(series.Bars)),
	}, nil
}

// Mean returns the arithmetic mean, 0 for empty input
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, averaging the two middle values for
// even-length input; 0 for empty input
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
