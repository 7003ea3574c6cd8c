package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/gridevents/grid"
)

// WriteHTML renders a 1-D reduced array as a standalone HTML bar chart.
func WriteHTML(w io.Writer, reduced *grid.DataArray, title string) error {
	labels, values, err := flatten(reduced)
	if err != nil {
		return err
	}

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("variable=%s groups=%d", reduced.Name(), len(values))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries(reduced.Name(), data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// SaveHTML writes the chart produced by WriteHTML to a file.
func SaveHTML(reduced *grid.DataArray, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteHTML(f, reduced, title); err != nil {
		return err
	}
	return f.Close()
}
