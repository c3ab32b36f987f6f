// Package chart renders windowed win-rate series to PNG with go-chart.
package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pable/go-dota-metrics/internal/axis"
	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/report"
)

// Palette is cycled through for per-player lines.
var Palette = []drawing.Color{
	drawing.ColorFromHex("7aa2ff"), // blue
	drawing.ColorFromHex("2bd576"), // green
	drawing.ColorFromHex("ffb45a"), // orange
	drawing.ColorFromHex("ff6b6b"), // red
	drawing.ColorFromHex("ba68c8"), // purple
	drawing.ColorFromHex("4cc9f0"), // cyan
	drawing.ColorFromHex("ffd166"), // yellow
	drawing.ColorFromHex("adb5bd"), // gray
}

// ColorAt returns the palette color of the i-th player.
func ColorAt(i int) drawing.Color {
	return Palette[i%len(Palette)]
}

// Line is one series on a chart.
type Line struct {
	Name   string
	Points []model.WindowedPoint
	Color  drawing.Color
}

// Spec describes one chart.
type Spec struct {
	Title     string
	Lines     []Line
	DayLabels map[int]string // x tick labels
	Width     int
	Height    int
}

// Default chart size in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 500
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    3,
		DotColor:    col,
	}
}

// XMax is the right edge of the x axis: the longest line's length, at least 1.
func XMax(lines []Line) int {
	n := 1
	for _, l := range lines {
		n = max(n, len(l.Points))
	}
	return n
}

// Bounds returns the y-axis bounds across all lines.
func Bounds(lines []Line) model.AxisBounds {
	sets := make([][]model.WindowedPoint, 0, len(lines))
	for _, l := range lines {
		sets = append(sets, l.Points)
	}
	return axis.DynamicBounds(sets...)
}

// Build assembles the go-chart value for spec without rendering it.
func Build(spec Spec) chart.Chart {
	if spec.Width <= 0 {
		spec.Width = DefaultWidth
	}
	if spec.Height <= 0 {
		spec.Height = DefaultHeight
	}
	bounds := Bounds(spec.Lines)

	series := []chart.Series{}
	for _, l := range spec.Lines {
		if len(l.Points) == 0 {
			continue
		}
		xs := make([]float64, len(l.Points))
		ys := make([]float64, len(l.Points))
		for i, p := range l.Points {
			xs[i] = float64(p.X)
			ys[i] = p.WinRate
		}
		// go-chart needs two values to draw a series.
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{Name: l.Name, XValues: xs, YValues: ys, Style: lineStyle(l.Color)})
	}
	title := spec.Title
	if len(series) == 0 {
		title += " (no data)"
		series = append(series, chart.ContinuousSeries{
			Name:    "no data",
			XValues: []float64{0, 1},
			YValues: []float64{bounds.Min, bounds.Min},
			Style:   chart.Style{StrokeWidth: 0, StrokeColor: chart.ColorTransparent},
		})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      spec.Width,
		Height:     spec.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:  "match # in window",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(XMax(spec.Lines))},
			Ticks: dayTicks(spec.DayLabels),
		},
		YAxis: chart.YAxis{
			Name:  "all-time winrate",
			Range: &chart.ContinuousRange{Min: bounds.Min, Max: bounds.Max},
			Ticks: yTicks(bounds),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// RenderWinrate writes spec as a PNG to w.
func RenderWinrate(w io.Writer, spec Spec) error {
	ch := Build(spec)
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart %q: %w", spec.Title, err)
	}
	return nil
}

func dayTicks(labels map[int]string) []chart.Tick {
	if len(labels) == 0 {
		return nil
	}
	xs := make([]int, 0, len(labels))
	for x := range labels {
		xs = append(xs, x)
	}
	sort.Ints(xs)
	ticks := make([]chart.Tick, 0, len(xs))
	for _, x := range xs {
		ticks = append(ticks, chart.Tick{Value: float64(x), Label: labels[x]})
	}
	return ticks
}

func yTicks(b model.AxisBounds) []chart.Tick {
	vals := axis.Ticks(b)
	ticks := make([]chart.Tick, 0, len(vals))
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: report.PercentSmart(v)})
	}
	return ticks
}
