package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/akarlsen/connwatch/internal/domain"
)

// Chart renders the hourly success-rate series to a PNG. go-chart needs
// at least two points to span an axis, so a shorter series is an error.
func Chart(path string, buckets []domain.HourlyBucket) error {
	if len(buckets) < 2 {
		return errors.New("need at least two hourly buckets to chart")
	}

	xs := make([]time.Time, len(buckets))
	ys := make([]float64, len(buckets))
	for i, b := range buckets {
		xs[i] = b.BucketStart
		ys[i] = b.SuccessRate
	}

	graph := chart.Chart{
		Title:  "Connectivity success rate per hour",
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{
			Name:  "Success rate (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "success rate",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(40),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
