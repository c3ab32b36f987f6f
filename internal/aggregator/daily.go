package aggregator

import (
	"sort"
	"time"

	"github.com/pable/go-dota-metrics/internal/model"
)

// InWindow returns the records whose start time falls in w, newest first.
func InWindow(records []model.MatchRecord, w model.Window) []model.MatchRecord {
	out := make([]model.MatchRecord, 0)
	for _, r := range records {
		if w.Contains(r.StartTime) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime > out[j].StartTime
	})
	return out
}

// DailyBuckets counts matches and wins per calendar day for the records in w.
func DailyBuckets(records []model.MatchRecord, w model.Window) map[string]model.DailyBucket {
	loc := w.Loc
	if loc == nil {
		loc = time.Local
	}
	out := make(map[string]model.DailyBucket)
	for _, r := range records {
		if !w.Contains(r.StartTime) {
			continue
		}
		day := DayKey(r.StartTime, loc)
		b := out[day]
		b.Date = day
		b.Count++
		if r.Win() {
			b.Wins++
		}
		out[day] = b
	}
	return out
}

// MergeBuckets sums several bucket maps into a new one.
func MergeBuckets(maps ...map[string]model.DailyBucket) map[string]model.DailyBucket {
	out := make(map[string]model.DailyBucket)
	for _, m := range maps {
		for day, b := range m {
			cur := out[day]
			cur.Date = day
			cur.Count += b.Count
			cur.Wins += b.Wins
			out[day] = cur
		}
	}
	return out
}

// HeatmapGrid lays out the window's days in Monday-start weeks. Days before
// w.FromDate or after w.ToDate pad the first and last week and are marked
// out of range.
func HeatmapGrid(w model.Window, buckets map[string]model.DailyBucket) model.Heatmap {
	var hm model.Heatmap
	if w.FromDate.IsZero() || w.ToDate.Before(w.FromDate) {
		return hm
	}
	first := civil(w.FromDate)
	last := civil(w.ToDate)

	start := first.AddDate(0, 0, -mondayOffset(first.Weekday()))
	end := last.AddDate(0, 0, 6-mondayOffset(last.Weekday()))

	for _, b := range buckets {
		d, err := time.Parse(time.DateOnly, b.Date)
		if err != nil || d.Before(first) || d.After(last) {
			continue
		}
		hm.Total += b.Count
		if b.Count > hm.Max {
			hm.Max = b.Count
		}
	}

	var week []model.HeatCell
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		cell := model.HeatCell{
			Date:    key,
			Weekday: d.Weekday(),
			InRange: !d.Before(first) && !d.After(last),
		}
		if cell.InRange {
			b := buckets[key]
			cell.Count = b.Count
			cell.Wins = b.Wins
			if hm.Max > 0 {
				cell.Intensity = float64(b.Count) / float64(hm.Max)
			}
		}
		week = append(week, cell)
		if len(week) == 7 {
			hm.Weeks = append(hm.Weeks, week)
			week = nil
		}
	}
	return hm
}

// civil drops the zone so calendar arithmetic is unaffected by DST.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOffset is the number of days since the most recent Monday.
func mondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
