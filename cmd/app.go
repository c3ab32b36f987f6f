package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/opendota"
	"github.com/pable/go-dota-metrics/internal/pipeline"
	"github.com/pable/go-dota-metrics/internal/window"
)

// app holds the long-lived collaborators of one process. The hero cache
// lives as long as the app, so the shell fetches the catalog once.
type app struct {
	client *opendota.Client
	heroes *opendota.HeroCache
	runner *pipeline.Runner
	loc    *time.Location
}

func newApp() (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	client := opendota.NewClient(opendota.Options{
		BaseURL:    cfg.API.BaseURL,
		APIKey:     cfg.API.Key,
		Timeout:    cfg.API.Timeout,
		MatchLimit: cfg.API.MatchLimit,
	})
	heroes := opendota.NewHeroCache(client)
	return &app{
		client: client,
		heroes: heroes,
		runner: pipeline.NewRunner(client, heroes, loc, client.MatchLimit(), log),
		loc:    loc,
	}, nil
}

// query is the user-facing description of a run before validation.
type query struct {
	players []string
	from    string
	to      string
	preset  string
	filter  string
	partyA  string
	partyB  string
}

// configQuery returns the run described by the loaded configuration.
func configQuery() query {
	return query{
		players: append([]string(nil), cfg.Players...),
		from:    cfg.Range.From,
		to:      cfg.Range.To,
		preset:  cfg.Range.Preset,
		filter:  cfg.Filter,
		partyA:  cfg.Party.A,
		partyB:  cfg.Party.B,
	}
}

// queryFlags binds the run-selection flags shared by several commands.
type queryFlags struct {
	from, to, preset, filter string
	partyA, partyB           string
}

func (q *queryFlags) bind(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&q.from, "from", "", "first day of the window (YYYY-MM-DD, inclusive)")
	f.StringVar(&q.to, "to", "", "last day of the window (YYYY-MM-DD, inclusive)")
	f.StringVar(&q.preset, "preset", "", "range preset: 7d, 30d, 90d, ytd, prev_month")
	f.StringVar(&q.filter, "filter", "", "match filter: all or ranked")
	f.StringVar(&q.partyA, "party-a", "", "party player A (defaults to the first player)")
	f.StringVar(&q.partyB, "party-b", "", "party player B (defaults to the second player)")
}

// resolve merges flags over config values. Players given as arguments
// replace the configured list.
func (q *queryFlags) resolve(c *cobra.Command, args []string) query {
	out := configQuery()
	if len(args) > 0 {
		out.players = args
	}
	f := c.Flags()
	if f.Changed("from") || f.Changed("to") || f.Changed("preset") {
		out.from, out.to, out.preset = q.from, q.to, q.preset
	}
	if f.Changed("filter") {
		out.filter = q.filter
	}
	if f.Changed("party-a") {
		out.partyA = q.partyA
	}
	if f.Changed("party-b") {
		out.partyB = q.partyB
	}
	return out
}

// request validates q and turns it into a pipeline request. Nothing touches
// the network before this succeeds.
func (a *app) request(q query) (pipeline.Request, error) {
	filter, err := model.ParseMatchFilter(q.filter)
	if err != nil {
		return pipeline.Request{}, err
	}
	players, w, err := window.Validate(q.players, q.from, q.to, q.preset, time.Now(), a.loc)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{
		Players: players,
		PartyA:  q.partyA,
		PartyB:  q.partyB,
		Filter:  filter,
		Window:  w,
	}, nil
}

func (q query) String() string {
	return fmt.Sprintf("players=%v from=%q to=%q preset=%q filter=%q party=%q/%q",
		q.players, q.from, q.to, q.preset, q.filter, q.partyA, q.partyB)
}
