package aggregator

import (
	"sort"

	"github.com/pable/go-dota-metrics/internal/model"
)

// BuildParty computes the cumulative win rate over matches present in both
// histories, keyed by match id. The pair is treated as one unit whose outcome
// is A's outcome. When b holds several records with the same id, the last one
// wins. Records without a match id never pair.
func BuildParty(a, b []model.MatchRecord) model.PartySeries {
	if len(a) == 0 || len(b) == 0 {
		return model.PartySeries{}
	}

	byID := make(map[int64]model.MatchRecord, len(b))
	for _, r := range b {
		if r.MatchID == 0 {
			continue
		}
		byID[r.MatchID] = r
	}

	shared := make([]model.PartyMatch, 0)
	for _, r := range a {
		if r.MatchID == 0 {
			continue
		}
		if other, ok := byID[r.MatchID]; ok {
			shared = append(shared, model.PartyMatch{A: r, B: other})
		}
	}
	sort.SliceStable(shared, func(i, j int) bool {
		return shared[i].A.StartTime < shared[j].A.StartTime
	})

	var acc cumulative
	points := make([]model.OutcomePoint, 0, len(shared))
	for i := range shared {
		pm := shared[i]
		partner := pm.B
		points = append(points, acc.next(pm.A, &partner, pm.A.Win()))
	}
	return model.PartySeries{
		Series: model.Series{Points: points, Totals: acc.totals},
		Shared: shared,
	}
}
