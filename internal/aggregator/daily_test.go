package aggregator

import (
	"testing"
	"time"

	"github.com/pable/go-dota-metrics/internal/model"
)

func calendarWindow(from, to time.Time) model.Window {
	return model.Window{
		From:     from.Unix(),
		To:       to.AddDate(0, 0, 1).Unix(),
		FromDate: from,
		ToDate:   to,
		Loc:      time.UTC,
	}
}

func TestDailyBuckets(t *testing.T) {
	w := window(base, base+2*day)
	w.Loc = time.UTC
	records := []model.MatchRecord{
		rec(1, base+10, true),
		rec(2, base+20, false),
		rec(3, base+day+5, true),
		rec(4, base+2*day, true), // excluded upper bound
		rec(5, base-1, true),     // before window
	}
	got := DailyBuckets(records, w)
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2: %v", len(got), got)
	}
	if b := got["2024-03-04"]; b.Count != 2 || b.Wins != 1 {
		t.Errorf("2024-03-04 = %+v", b)
	}
	if b := got["2024-03-05"]; b.Count != 1 || b.Wins != 1 {
		t.Errorf("2024-03-05 = %+v", b)
	}
}

func TestMergeBuckets(t *testing.T) {
	a := map[string]model.DailyBucket{"2024-03-04": {Date: "2024-03-04", Count: 2, Wins: 1}}
	b := map[string]model.DailyBucket{
		"2024-03-04": {Date: "2024-03-04", Count: 1, Wins: 1},
		"2024-03-05": {Date: "2024-03-05", Count: 3},
	}
	got := MergeBuckets(a, b)
	if got["2024-03-04"].Count != 3 || got["2024-03-04"].Wins != 2 || got["2024-03-05"].Count != 3 {
		t.Errorf("unexpected merge %v", got)
	}
}

func TestInWindow_NewestFirst(t *testing.T) {
	records := []model.MatchRecord{rec(1, base+1, true), rec(2, base+3, true), rec(3, base+2*day, true)}
	got := InWindow(records, window(base, base+day))
	if len(got) != 2 || got[0].MatchID != 2 || got[1].MatchID != 1 {
		t.Errorf("unexpected %+v", got)
	}
}

func TestHeatmapGrid_MondayAlignedWeeks(t *testing.T) {
	// Wednesday 2024-03-06 .. Tuesday 2024-03-12.
	from := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	buckets := map[string]model.DailyBucket{
		"2024-03-06": {Date: "2024-03-06", Count: 2, Wins: 1},
		"2024-03-10": {Date: "2024-03-10", Count: 4, Wins: 4},
		"2024-03-20": {Date: "2024-03-20", Count: 9}, // outside, ignored
	}

	hm := HeatmapGrid(calendarWindow(from, to), buckets)
	if len(hm.Weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(hm.Weeks))
	}
	if hm.Max != 4 || hm.Total != 6 {
		t.Errorf("Max = %d, Total = %d", hm.Max, hm.Total)
	}

	first := hm.Weeks[0]
	if first[0].Date != "2024-03-04" || first[0].Weekday != time.Monday || first[0].InRange {
		t.Errorf("first cell = %+v, want out-of-range Monday 2024-03-04", first[0])
	}
	if !first[2].InRange || first[2].Count != 2 || first[2].Intensity != 0.5 {
		t.Errorf("2024-03-06 cell = %+v", first[2])
	}
	if first[6].Date != "2024-03-10" || first[6].Intensity != 1 {
		t.Errorf("Sunday cell = %+v", first[6])
	}

	second := hm.Weeks[1]
	if !second[1].InRange || second[1].Date != "2024-03-12" {
		t.Errorf("last in-range cell = %+v", second[1])
	}
	if second[2].InRange || second[6].Date != "2024-03-17" {
		t.Errorf("padding cells wrong: %+v %+v", second[2], second[6])
	}
}

func TestHeatmapGrid_NoMatches(t *testing.T) {
	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	hm := HeatmapGrid(calendarWindow(d, d), nil)
	if len(hm.Weeks) != 1 || hm.Max != 0 {
		t.Fatalf("unexpected %+v", hm)
	}
	for _, c := range hm.Weeks[0] {
		if c.Intensity != 0 {
			t.Errorf("cell %s has intensity %v", c.Date, c.Intensity)
		}
	}
}
