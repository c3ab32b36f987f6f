// Package pipeline runs one win-rate query end to end: it loads the hero
// catalog, fetches every player's profile and history concurrently, then
// derives the per-player and party series for the requested window.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-dota-metrics/internal/aggregator"
	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/opendota"
	"github.com/pable/go-dota-metrics/internal/parser"
	"github.com/pable/go-dota-metrics/internal/window"
)

// ErrRunInProgress is returned when Run is called while another run on the
// same Runner has not finished.
var ErrRunInProgress = errors.New("a run is already in progress")

// API is the subset of the OpenDota client a run needs.
type API interface {
	Player(ctx context.Context, accountID string) (*opendota.PlayerResponse, error)
	Matches(ctx context.Context, accountID string) ([]opendota.Match, error)
}

// HeroLoader resolves the hero catalog, typically an *opendota.HeroCache.
type HeroLoader interface {
	EnsureLoaded(ctx context.Context) (model.HeroNames, error)
}

// Runner executes runs. It is safe to share, but runs never overlap.
type Runner struct {
	api        API
	heroes     HeroLoader
	loc        *time.Location
	matchLimit int
	log        zerolog.Logger

	running atomic.Bool
}

// NewRunner returns a Runner that buckets days in loc. matchLimit is only
// reported back in results.
func NewRunner(api API, heroes HeroLoader, loc *time.Location, matchLimit int, log zerolog.Logger) *Runner {
	if loc == nil {
		loc = time.Local
	}
	return &Runner{api: api, heroes: heroes, loc: loc, matchLimit: matchLimit, log: log}
}

// Request describes one run.
type Request struct {
	Players []string
	PartyA  string
	PartyB  string
	Filter  model.MatchFilter
	Window  model.Window
}

// PlayerResult is everything derived for one player.
type PlayerResult struct {
	AccountID     string
	Profile       model.Profile
	Records       []model.MatchRecord // valid records passing the filter, input order
	Excluded      parser.Exclusions
	AllTime       model.Series
	Series        model.Windowed
	WindowMatches []model.MatchRecord // newest first
	WindowTotals  model.Totals
	Daily         map[string]model.DailyBucket
}

// PartyResult is the shared-match series of two players.
type PartyResult struct {
	A, B         string
	NameA, NameB string
	AllTime      model.Totals
	Series       model.Windowed
	WindowTotals model.Totals
}

// Result is the output of a run.
type Result struct {
	RunID      string
	StartedAt  time.Time
	Window     model.Window
	Filter     model.MatchFilter
	MatchLimit int
	Heroes     model.HeroNames
	Players    []PlayerResult
	Party      *PartyResult // nil unless two distinct party players were resolved
	Combined   model.Totals
	Heatmap    model.Heatmap
}

// Run validates req, fetches all data and computes the result. Any fetch
// failure aborts the run with no partial result.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	players := window.Players(req.Players)
	if len(players) == 0 {
		return nil, window.ErrNoPlayers
	}
	if req.Window.To <= req.Window.From {
		return nil, window.ErrInvalidRange
	}
	if req.Filter == "" {
		req.Filter = model.FilterAll
	}
	if req.Window.Loc == nil {
		req.Window.Loc = r.loc
	}

	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	res := &Result{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		Window:     req.Window,
		Filter:     req.Filter,
		MatchLimit: r.matchLimit,
	}
	log := r.log.With().Str("run_id", res.RunID).Logger()
	log.Info().
		Strs("players", players).
		Str("window", req.Window.Label()).
		Str("filter", string(req.Filter)).
		Msg("run started")

	heroes, err := r.heroes.EnsureLoaded(ctx)
	if err != nil {
		log.Error().Err(err).Msg("hero catalog unavailable")
		return nil, err
	}
	res.Heroes = heroes
	log.Debug().Str("stage", "heroes").Int("count", len(heroes)).Msg("hero catalog ready")

	profiles, histories, err := r.fetchAll(ctx, players)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		return nil, err
	}

	res.Players = make([]PlayerResult, len(players))
	buckets := make([]map[string]model.DailyBucket, len(players))
	for i, id := range players {
		pr := r.playerResult(id, profiles[i], histories[i], req)
		log.Debug().
			Str("stage", "series").
			Str("account_id", id).
			Int("count", len(pr.Records)).
			Int("window", pr.WindowTotals.Matches).
			Int("excluded", pr.Excluded.Total()).
			Msg("player series built")
		res.Players[i] = pr
		res.Combined = res.Combined.Add(pr.WindowTotals)
		buckets[i] = pr.Daily
	}

	res.Heatmap = aggregator.HeatmapGrid(req.Window, aggregator.MergeBuckets(buckets...))

	a, b := ResolveParty(players, req.PartyA, req.PartyB)
	if a != "" && b != "" && a != b {
		res.Party = buildParty(res.Players, a, b, req.Window)
		log.Debug().
			Str("stage", "party").
			Str("a", a).
			Str("b", b).
			Int("count", res.Party.AllTime.Matches).
			Msg("party series built")
	}

	log.Info().
		Int("matches", res.Combined.Matches).
		Int("wins", res.Combined.Wins).
		Dur("took", time.Since(res.StartedAt)).
		Msg("run finished")
	return res, nil
}

// fetchAll loads every profile and history concurrently and waits for all
// requests to settle.
func (r *Runner) fetchAll(ctx context.Context, players []string) ([]*opendota.PlayerResponse, [][]opendota.Match, error) {
	profiles := make([]*opendota.PlayerResponse, len(players))
	histories := make([][]opendota.Match, len(players))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range players {
		g.Go(func() error {
			p, err := r.api.Player(gctx, id)
			if err != nil {
				return err
			}
			profiles[i] = p
			return nil
		})
		g.Go(func() error {
			m, err := r.api.Matches(gctx, id)
			if err != nil {
				return err
			}
			histories[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profiles, histories, nil
}

func (r *Runner) playerResult(id string, profile *opendota.PlayerResponse, raw []opendota.Match, req Request) PlayerResult {
	records, excluded := parser.ParseMatches(raw)
	filtered := aggregator.FilterByType(records, req.Filter)

	allTime := aggregator.BuildCumulative(filtered)
	series := aggregator.Reindex(aggregator.SliceWindow(allTime.Points, req.Window), req.Window.Loc)

	return PlayerResult{
		AccountID:     id,
		Profile:       parser.ParseProfile(id, profile),
		Records:       filtered,
		Excluded:      excluded,
		AllTime:       allTime,
		Series:        series,
		WindowMatches: aggregator.InWindow(filtered, req.Window),
		WindowTotals:  series.Totals(),
		Daily:         aggregator.DailyBuckets(filtered, req.Window),
	}
}

func buildParty(players []PlayerResult, a, b string, w model.Window) *PartyResult {
	pa, pb := find(players, a), find(players, b)
	if pa == nil || pb == nil {
		return nil
	}
	ps := aggregator.BuildParty(pa.Records, pb.Records)
	series := aggregator.Reindex(aggregator.SliceWindow(ps.Points, w), w.Loc)
	return &PartyResult{
		A:            a,
		B:            b,
		NameA:        pa.Profile.PersonaName,
		NameB:        pb.Profile.PersonaName,
		AllTime:      ps.Totals,
		Series:       series,
		WindowTotals: series.Totals(),
	}
}

func find(players []PlayerResult, id string) *PlayerResult {
	for i := range players {
		if players[i].AccountID == id {
			return &players[i]
		}
	}
	return nil
}

// ResolveParty applies the party selection defaults: A falls back to the
// first player and B to the second (or the first when alone). Ids not in
// players are replaced. If both end up equal while other players exist, B
// moves to the first different id.
func ResolveParty(players []string, a, b string) (string, string) {
	if len(players) == 0 {
		return "", ""
	}
	if !contains(players, a) {
		a = players[0]
	}
	if !contains(players, b) {
		if len(players) > 1 {
			b = players[1]
		} else {
			b = players[0]
		}
	}
	if len(players) > 1 && a == b {
		for _, id := range players {
			if id != a {
				b = id
				break
			}
		}
	}
	return a, b
}

func contains(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// String summarizes the result for logs.
func (res *Result) String() string {
	return fmt.Sprintf("run %s: %d players, %d matches in %s", res.RunID, len(res.Players), res.Combined.Matches, res.Window.Label())
}
