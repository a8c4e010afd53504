// Package vizdot renders a diagnostic profile of an assembly tree after
// factorization: a pair of bars per front, one for its row count and one
// for its delayed-pivot count. Adapted from the teacher's app/draw
// plotting concern (a live grid renderer for circuit state), re-pointed at
// gonum.org/v1/plot's static PNG output since there is no GUI here -
// useful offline when tuning upstream amalgamation thresholds.
package vizdot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"multifrontal/front"
)

// FrontProfile renders t's per-front row count and delay count as a PNG
// bar chart at path, one bar pair per node in post-order.
func FrontProfile(t *front.Tree, path string) error {
	order := t.PostOrder()

	rows := make(plotter.Values, len(order))
	delays := make(plotter.Values, len(order))
	for i, id := range order {
		f := &t.Fronts[id]
		rows[i] = float64(f.Nrow)
		delays[i] = float64(f.NdelayOut)
	}

	p := plot.New()
	p.Title.Text = "Front size / delay profile"
	p.Y.Label.Text = "count"
	p.X.Label.Text = "front (post-order)"

	rowBars, err := plotter.NewBarChart(rows, vg.Points(10))
	if err != nil {
		return fmt.Errorf("vizdot: row bar chart: %w", err)
	}
	rowBars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}

	delayBars, err := plotter.NewBarChart(delays, vg.Points(6))
	if err != nil {
		return fmt.Errorf("vizdot: delay bar chart: %w", err)
	}
	delayBars.Color = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	delayBars.Offset = vg.Points(5)

	p.Add(rowBars, delayBars)
	p.Legend.Add("nrow", rowBars)
	p.Legend.Add("ndelay_out", delayBars)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("vizdot: saving %s: %w", path, err)
	}
	return nil
}
