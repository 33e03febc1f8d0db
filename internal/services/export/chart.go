package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/asharescope/internal/models"
)

// renderIndexChart renders a close-price PNG line chart for one benchmark.
// The title uses the instrument code; the embedded chart font has no CJK
// glyphs. Returns raw PNG bytes.
func renderIndexChart(series *models.KlineSeries) ([]byte, error) {
	if len(series.Bars) < 2 {
		return nil, fmt.Errorf("need at least 2 bars, got %d", len(series.Bars))
	}

	xValues := make([]time.Time, len(series.Bars))
	closeY := make([]float64, len(series.Bars))
	for i, bar := range series.Bars {
		xValues[i] = bar.Date
		closeY[i] = bar.Close
	}

	closeSeries := chart.TimeSeries{
		Name: series.Code,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: closeY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Index %s Close", series.Code),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
