package report

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"Radiant/internal/calc/dashboard"
)

var (
	orange = color.RGBA{R: 255, G: 165, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
)

// ChartPNG draws the contributions chart the dashboard describes.
func ChartPNG(c dashboard.Chart, width, height vg.Length) ([]byte, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XTitle
	p.Y.Label.Text = c.YTitle
	p.Legend.Top = true

	names := make([]string, 0, len(c.Bars))
	for i, b := range c.Bars {
		bars, err := plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(40))
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		bars.Color = barColor(b.Color)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(b.Name, bars)
		names = append(names, b.Name)
	}
	p.Add(plotter.NewGrid())
	p.NominalX(names...)
	p.Y.Min, p.Y.Max = c.YRange[0], c.YRange[1]

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barColor(name string) color.Color {
	switch name {
	case "orange":
		return orange
	case "blue":
		return blue
	}
	return color.Gray{Y: 128}
}
