// Package report renders per-event aggregation results: a PNG chart
// via gonum/plot for offline inspection and an HTML chart via
// go-echarts for sharing in a browser.
package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/gridevents/grid"
)

// SavePNG renders a 1-D reduced array (one value per event identity)
// as a bar chart and writes it to path. NaN entries plot as zero-height
// bars.
func SavePNG(reduced *grid.DataArray, title, path string) error {
	labels, values, err := flatten(reduced)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = reduced.Dims()[0]
	p.Y.Label.Text = reduced.Name()

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(18))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

func flatten(reduced *grid.DataArray) ([]string, []float64, error) {
	if len(reduced.Dims()) != 1 {
		return nil, nil, fmt.Errorf("array %q has dims %v, want exactly one", reduced.Name(), reduced.Dims())
	}
	coord, _ := reduced.Coord(reduced.Dims()[0])

	labels := make([]string, reduced.Len())
	values := make([]float64, reduced.Len())
	for i, v := range reduced.Data() {
		labels[i] = fmt.Sprint(coord.Label(i))
		if math.IsNaN(v) {
			v = 0
		}
		values[i] = v
	}
	return labels, values, nil
}
