package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette follows the default plotly colour cycle.
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
	drawing.ColorFromHex("ff97ff"),
	drawing.ColorFromHex("fecb52"),
}

func colorAt(i int) drawing.Color { return palette[i%len(palette)] }

const maxLabel = 22

// shorten truncates long category labels so bar captions stay legible.
func shorten(s string) string {
	r := []rune(s)
	if len(r) <= maxLabel {
		return s
	}
	return string(r[:maxLabel-1]) + "…"
}

// yRange returns a zero-based range covering peak. go-chart rejects a zero
// delta, so an all-zero chart still gets [0, 1].
func yRange(peak float64) *gochart.ContinuousRange {
	if peak <= 0 {
		peak = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: peak * 1.05}
}

func renderBar(w io.Writer, spec Spec, rp gochart.RendererProvider) error {
	pts := spec.Series[0].Points
	if len(pts) == 0 {
		return ErrNoData
	}
	width, height := spec.size()

	bars := make([]gochart.Value, len(pts))
	peak := 0.0
	for i, p := range pts {
		bars[i] = gochart.Value{
			Label: shorten(p.Label),
			Value: p.Value,
			Style: gochart.Style{FillColor: colorAt(0), StrokeColor: colorAt(0), StrokeWidth: 1},
		}
		peak = math.Max(peak, p.Value)
	}

	// Leave some canvas for spacing; go-chart lays bars out left to right.
	slot := (width - 120) / len(pts)
	barWidth := slot * 3 / 5
	if barWidth < 4 {
		barWidth = 4
	}

	bc := gochart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: slot - barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: yRange(peak),
		},
		Bars: bars,
	}
	if len(pts) > 6 {
		bc.XAxis = gochart.Style{TextRotationDegrees: 45}
		bc.Background.Padding.Bottom = 120
	}
	if err := bc.Render(rp, w); err != nil {
		return fmt.Errorf("render bar chart %q: %w", spec.Title, err)
	}
	return nil
}

func renderPie(w io.Writer, spec Spec, rp gochart.RendererProvider) error {
	var values []gochart.Value
	for i, p := range spec.Series[0].Points {
		// Zero slices have no area and would skew the label layout.
		if p.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%.0f)", p.Label, p.Value),
			Value: p.Value,
			Style: gochart.Style{FillColor: colorAt(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}
	width, height := spec.size()

	pc := gochart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	if err := pc.Render(rp, w); err != nil {
		return fmt.Errorf("render pie chart %q: %w", spec.Title, err)
	}
	return nil
}

func renderArea(w io.Writer, spec Spec, rp gochart.RendererProvider) error {
	// Every series shares one categorical x axis: the union of labels in
	// first-seen order.
	var labels []string
	index := make(map[string]int)
	for _, s := range spec.Series {
		for _, p := range s.Points {
			if _, ok := index[p.Label]; !ok {
				index[p.Label] = len(labels)
				labels = append(labels, p.Label)
			}
		}
	}
	if len(labels) < 2 {
		return fmt.Errorf("%w: area chart needs at least two x values", ErrNoData)
	}

	xs := make([]float64, len(labels))
	ticks := make([]gochart.Tick, len(labels))
	for i, l := range labels {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: shorten(l)}
	}

	peak := 0.0
	series := make([]gochart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		ys := make([]float64, len(labels))
		for _, p := range s.Points {
			ys[index[p.Label]] += p.Value
		}
		for _, y := range ys {
			peak = math.Max(peak, y)
		}
		c := colorAt(i)
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				FillColor:   c.WithAlpha(64),
			},
		})
	}

	width, height := spec.size()
	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  spec.XLabel,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(len(labels) - 1)},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: yRange(peak),
		},
		Series: series,
	}
	if len(series) > 1 {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render area chart %q: %w", spec.Title, err)
	}
	return nil
}
