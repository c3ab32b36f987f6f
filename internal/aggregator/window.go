package aggregator

import (
	"sort"
	"time"

	"github.com/pable/go-dota-metrics/internal/model"
)

// SliceWindow keeps the points whose time falls in [w.From, w.To). Relative
// order is preserved.
func SliceWindow(points []model.OutcomePoint, w model.Window) []model.OutcomePoint {
	out := make([]model.OutcomePoint, 0)
	for _, p := range points {
		if w.ContainsMs(p.TimeMs) {
			out = append(out, p)
		}
	}
	return out
}

// Reindex assigns dense x positions 0..n-1 in time order and records a day
// label at the first point of every calendar day, as seen in loc.
func Reindex(points []model.OutcomePoint, loc *time.Location) model.Windowed {
	if loc == nil {
		loc = time.Local
	}
	sorted := make([]model.OutcomePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimeMs < sorted[j].TimeMs
	})

	out := model.Windowed{
		Points:    make([]model.WindowedPoint, len(sorted)),
		DayLabels: make(map[int]string),
	}
	prevDay := ""
	for i, p := range sorted {
		out.Points[i] = model.WindowedPoint{OutcomePoint: p, X: i}
		day := DayKey(p.TimeMs/1000, loc)
		if day != prevDay {
			out.DayLabels[i] = day
			prevDay = day
		}
	}
	return out
}

// DayKey returns the YYYY-MM-DD date of an epoch-second timestamp in loc.
func DayKey(sec int64, loc *time.Location) string {
	return time.Unix(sec, 0).In(loc).Format(time.DateOnly)
}
