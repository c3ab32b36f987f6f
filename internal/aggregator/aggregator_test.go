package aggregator

import (
	"testing"
	"time"

	"github.com/pable/go-dota-metrics/internal/model"
)

// base is 2024-03-04 00:00:00 UTC, a Monday.
const base int64 = 1709510400

const day int64 = 86400

// rec builds a Radiant-side record that is a win when win is true.
func rec(id, start int64, win bool) model.MatchRecord {
	return model.MatchRecord{MatchID: id, StartTime: start, PlayerSlot: 1, RadiantWin: win, LobbyType: 0}
}

func assertRates(t *testing.T, points []model.OutcomePoint, want []float64) {
	t.Helper()
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i, p := range points {
		if p.WinRate != want[i] {
			t.Errorf("point %d: WinRate = %v, want %v", i, p.WinRate, want[i])
		}
		if p.Index != i+1 {
			t.Errorf("point %d: Index = %d, want %d", i, p.Index, i+1)
		}
	}
}

// ---- Cumulative series ----

func TestBuildCumulative_RunningAverage(t *testing.T) {
	// Shuffled on purpose; wins at chronological positions 1, 3, 5.
	records := []model.MatchRecord{
		rec(4, base+400, false),
		rec(1, base+100, true),
		rec(5, base+500, true),
		rec(2, base+200, false),
		rec(3, base+300, true),
	}
	s := BuildCumulative(records)
	assertRates(t, s.Points, []float64{100, 50, 66.6667, 50, 60})

	if s.Totals.Matches != 5 || s.Totals.Wins != 3 {
		t.Errorf("Totals = %+v, want 5 matches / 3 wins", s.Totals)
	}
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].TimeMs < s.Points[i-1].TimeMs {
			t.Fatalf("points not time ordered at %d", i)
		}
	}
	if s.Points[0].TimeMs != (base+100)*1000 {
		t.Errorf("TimeMs = %d, want seconds*1000", s.Points[0].TimeMs)
	}
}

func TestBuildCumulative_StableOnTies(t *testing.T) {
	records := []model.MatchRecord{
		rec(10, base, true),
		rec(11, base, false),
		rec(12, base, true),
	}
	s := BuildCumulative(records)
	for i, want := range []int64{10, 11, 12} {
		if s.Points[i].Match.MatchID != want {
			t.Errorf("point %d: MatchID = %d, want %d", i, s.Points[i].Match.MatchID, want)
		}
	}
}

func TestBuildCumulative_Empty(t *testing.T) {
	s := BuildCumulative(nil)
	if len(s.Points) != 0 || s.Totals != (model.Totals{}) {
		t.Errorf("expected empty series, got %+v", s)
	}
}

func TestBuildCumulative_DoesNotMutateInput(t *testing.T) {
	records := []model.MatchRecord{rec(2, base+2, true), rec(1, base+1, true)}
	BuildCumulative(records)
	if records[0].MatchID != 2 {
		t.Errorf("input was reordered")
	}
}

func TestFilterByType(t *testing.T) {
	ranked := rec(1, base, true)
	ranked.LobbyType = model.RankedLobbyType
	normal := rec(2, base, true)
	records := []model.MatchRecord{ranked, normal}

	if got := FilterByType(records, model.FilterAll); len(got) != 2 {
		t.Errorf("all: got %d, want 2", len(got))
	}
	got := FilterByType(records, model.FilterRanked)
	if len(got) != 1 || got[0].MatchID != 1 {
		t.Errorf("ranked: got %+v", got)
	}
}

// ---- Party series ----

func TestBuildParty_Disjoint(t *testing.T) {
	a := []model.MatchRecord{rec(1, base, true), rec(2, base+1, true)}
	b := []model.MatchRecord{rec(3, base, true), rec(4, base+1, true)}
	p := BuildParty(a, b)
	if len(p.Points) != 0 || p.Totals != (model.Totals{}) {
		t.Errorf("expected empty party, got %+v", p)
	}
}

func TestBuildParty_Identical(t *testing.T) {
	a := []model.MatchRecord{rec(1, base, true), rec(2, base+1, false), rec(3, base+2, true)}
	p := BuildParty(a, a)
	assertRates(t, p.Points, []float64{100, 50, 66.6667})
	if len(p.Shared) != len(a) {
		t.Errorf("Shared = %d, want %d", len(p.Shared), len(a))
	}
}

func TestBuildParty_UsesAOutcome(t *testing.T) {
	// B sits on the other side for match 2, so its own outcome differs.
	a := []model.MatchRecord{rec(1, base, true), rec(2, base+10, true)}
	bDire := rec(2, base+10, true)
	bDire.PlayerSlot = 130
	bDire.HeroID = 26
	b := []model.MatchRecord{bDire}

	p := BuildParty(a, b)
	if len(p.Points) != 1 {
		t.Fatalf("got %d points, want 1", len(p.Points))
	}
	pt := p.Points[0]
	if !pt.Win || pt.WinRate != 100 {
		t.Errorf("expected A's win, got %+v", pt)
	}
	if pt.Partner == nil || pt.Partner.HeroID != 26 {
		t.Errorf("partner record not attached: %+v", pt.Partner)
	}
	if pt.Index != 1 {
		t.Errorf("Index = %d, want 1", pt.Index)
	}
}

func TestBuildParty_OrderAndDuplicates(t *testing.T) {
	a := []model.MatchRecord{rec(3, base+300, false), rec(1, base+100, true), rec(0, base+50, true)}
	first := rec(1, base+100, true)
	first.HeroID = 1
	second := rec(1, base+100, true)
	second.HeroID = 2
	b := []model.MatchRecord{first, second, rec(3, base+300, true), rec(0, base+50, true)}

	p := BuildParty(a, b)
	if len(p.Points) != 2 {
		t.Fatalf("got %d points, want 2 (zero ids never pair)", len(p.Points))
	}
	if p.Points[0].Match.MatchID != 1 || p.Points[1].Match.MatchID != 3 {
		t.Errorf("not sorted by A's start time: %d, %d", p.Points[0].Match.MatchID, p.Points[1].Match.MatchID)
	}
	if p.Points[0].Partner.HeroID != 2 {
		t.Errorf("duplicate B ids: want last record, got hero %d", p.Points[0].Partner.HeroID)
	}
	assertRates(t, p.Points, []float64{100, 50})
}

func TestBuildParty_EmptySide(t *testing.T) {
	a := []model.MatchRecord{rec(1, base, true)}
	if p := BuildParty(a, nil); len(p.Points) != 0 {
		t.Errorf("expected empty party")
	}
	if p := BuildParty(nil, a); len(p.Points) != 0 {
		t.Errorf("expected empty party")
	}
}

// ---- Window + reindex ----

func window(from, to int64) model.Window {
	return model.Window{From: from, To: to, Loc: time.UTC}
}

func TestSliceWindow_Boundaries(t *testing.T) {
	s := BuildCumulative([]model.MatchRecord{
		rec(1, base-1, true),
		rec(2, base, true),
		rec(3, base+day-1, false),
		rec(4, base+day, true),
	})
	w := window(base, base+day)

	got := SliceWindow(s.Points, w)
	if len(got) != 2 || got[0].Match.MatchID != 2 || got[1].Match.MatchID != 3 {
		t.Fatalf("unexpected slice %+v", got)
	}
	// All-time values survive slicing.
	if got[1].WinRate != 66.6667 || got[1].Index != 3 {
		t.Errorf("window point lost all-time values: %+v", got[1])
	}

	again := SliceWindow(got, w)
	if len(again) != len(got) {
		t.Errorf("slicing is not idempotent")
	}
}

func TestReindex_DenseAndOneLabelPerDay(t *testing.T) {
	s := BuildCumulative([]model.MatchRecord{
		rec(1, base+3600, true),
		rec(2, base+7200, false),
		rec(3, base+7300, true),
		rec(4, base+9*day, true), // a long gap
		rec(5, base+9*day+60, false),
	})
	// Hand the re-indexer an out-of-order slice.
	pts := []model.OutcomePoint{s.Points[3], s.Points[0], s.Points[4], s.Points[1], s.Points[2]}

	w := Reindex(pts, time.UTC)
	for i, p := range w.Points {
		if p.X != i {
			t.Errorf("point %d: X = %d", i, p.X)
		}
		if i > 0 && p.TimeMs < w.Points[i-1].TimeMs {
			t.Errorf("point %d out of order", i)
		}
	}
	want := map[int]string{0: "2024-03-04", 3: "2024-03-13"}
	if len(w.DayLabels) != len(want) {
		t.Fatalf("DayLabels = %v, want %v", w.DayLabels, want)
	}
	for x, d := range want {
		if w.DayLabels[x] != d {
			t.Errorf("DayLabels[%d] = %q, want %q", x, w.DayLabels[x], d)
		}
	}
	if w.XMax() != 5 {
		t.Errorf("XMax = %d, want 5", w.XMax())
	}
}

func TestReindex_UsesLocation(t *testing.T) {
	// 23:30 UTC is already the next day in UTC+2.
	s := BuildCumulative([]model.MatchRecord{rec(1, base+day-1800, true)})
	east := time.FixedZone("UTC+2", 2*3600)
	if got := Reindex(s.Points, east).DayLabels[0]; got != "2024-03-05" {
		t.Errorf("label = %q, want 2024-03-05", got)
	}
	if got := Reindex(s.Points, time.UTC).DayLabels[0]; got != "2024-03-04" {
		t.Errorf("label = %q, want 2024-03-04", got)
	}
}

func TestReindex_Empty(t *testing.T) {
	w := Reindex(nil, time.UTC)
	if len(w.Points) != 0 || len(w.DayLabels) != 0 || w.XMax() != 1 {
		t.Errorf("unexpected %+v", w)
	}
}
