// Package axis picks y-axis bounds for win-rate charts.
package axis

import (
	"math"

	"github.com/pable/go-dota-metrics/internal/model"
)

const (
	domainMin   = 0.0
	domainMax   = 100.0
	targetTicks = 6
	padRatio    = 0.18
	minPad      = 0.02
	flatSpan    = 0.1
)

// DynamicBounds zooms the 0–100 axis onto the win rates present in sets. The
// result always satisfies 0 <= Min < Max <= 100 and Step > 0. With no finite
// values it returns model.DefaultAxisBounds.
func DynamicBounds(sets ...[]model.WindowedPoint) model.AxisBounds {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, pts := range sets {
		for _, p := range pts {
			y := p.WinRate
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
			n++
		}
	}
	if n == 0 {
		return model.DefaultAxisBounds
	}
	return Bounds(lo, hi)
}

// Bounds computes padded, step-aligned bounds around [lo, hi].
func Bounds(lo, hi float64) model.AxisBounds {
	span := hi - lo
	if span < 1e-6 {
		span = flatSpan
	}
	pad := math.Max(span*padRatio, minPad)

	yMin := math.Max(domainMin, lo-pad)
	yMax := math.Min(domainMax, hi+pad)

	step := NiceStep((yMax - yMin) / targetTicks)

	yMin = math.Max(domainMin, math.Floor(yMin/step)*step)
	yMax = math.Min(domainMax, math.Ceil(yMax/step)*step)

	// Clamping at the domain edges can leave less than one step.
	if yMax-yMin < step {
		yMax = math.Min(domainMax, yMin+2*step)
	}
	return model.AxisBounds{Min: round4(yMin), Max: round4(yMax), Step: step}
}

// NiceStep rounds a raw tick increment up to 1, 2, 2.5, 5 or 10 times a power
// of ten. Non-positive or non-finite input yields 10.
func NiceStep(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw <= 0 {
		return 10
	}
	exp := math.Floor(math.Log10(raw))
	scale := math.Pow(10, exp)
	mantissa := raw / scale

	var nice float64
	switch {
	case mantissa <= 1:
		nice = 1
	case mantissa <= 2:
		nice = 2
	case mantissa <= 2.5:
		nice = 2.5
	case mantissa <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * scale
}

// Ticks lists the tick values from b.Min to b.Max inclusive.
func Ticks(b model.AxisBounds) []float64 {
	if b.Step <= 0 || b.Max <= b.Min {
		return []float64{b.Min, b.Max}
	}
	var out []float64
	for i := 0; ; i++ {
		v := round4(b.Min + float64(i)*b.Step)
		if v > b.Max+1e-9 {
			break
		}
		out = append(out, v)
	}
	if last := out[len(out)-1]; last < b.Max-1e-9 {
		out = append(out, b.Max)
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
