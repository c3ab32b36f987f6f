// Package aggregator derives win-rate series from validated match records.
// Every function here is pure: inputs are never modified and nothing is
// cached between calls.
package aggregator

import (
	"math"
	"sort"

	"github.com/pable/go-dota-metrics/internal/model"
)

// FilterByType returns the records accepted by f, in input order.
func FilterByType(records []model.MatchRecord, f model.MatchFilter) []model.MatchRecord {
	out := make([]model.MatchRecord, 0, len(records))
	for _, r := range records {
		if f.Accepts(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByStart returns a copy of records stably sorted by start time, so
// matches sharing a timestamp keep their input order.
func SortByStart(records []model.MatchRecord) []model.MatchRecord {
	out := make([]model.MatchRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// BuildCumulative produces the all-time running win rate of records. The
// result has one point per record, ordered by start time.
func BuildCumulative(records []model.MatchRecord) model.Series {
	sorted := SortByStart(records)
	points := make([]model.OutcomePoint, 0, len(sorted))
	var acc cumulative
	for _, r := range sorted {
		points = append(points, acc.next(r, nil, r.Win()))
	}
	return model.Series{Points: points, Totals: acc.totals}
}

// cumulative is the running-average state shared by the single-player and
// party builders.
type cumulative struct {
	totals model.Totals
}

func (c *cumulative) next(m model.MatchRecord, partner *model.MatchRecord, win bool) model.OutcomePoint {
	c.totals.Matches++
	if win {
		c.totals.Wins++
	}
	return model.OutcomePoint{
		TimeMs:  m.StartMs(),
		WinRate: round4(c.totals.WinRate()),
		Win:     win,
		Index:   c.totals.Matches,
		Match:   m,
		Partner: partner,
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
