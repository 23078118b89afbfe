package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kamal-hamza/secam/internal/core/domain"
)

// RenderCaptures writes an HTML bar chart of captures per day
func RenderCaptures(w io.Writer, days []domain.DayCount, subtitle string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "secam captures"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Captures per day",
			Subtitle: subtitle,
		}),
	)

	labels := make([]string, len(days))
	items := make([]opts.BarData, len(days))
	for i, d := range days {
		labels[i] = d.Label()
		items[i] = opts.BarData{Value: d.Count}
	}

	bar.SetXAxis(labels).AddSeries("Captures", items)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteCapturesFile renders the chart into path, creating parent directories
func WriteCapturesFile(path string, days []domain.DayCount, subtitle string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return RenderCaptures(f, days, subtitle)
}
