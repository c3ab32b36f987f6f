package cmd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-dota-metrics/internal/config"
	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/pipeline"
	"github.com/pable/go-dota-metrics/internal/window"
)

func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func newQueryCommand() (*cobra.Command, *queryFlags) {
	var q queryFlags
	c := &cobra.Command{Use: "test"}
	q.bind(c)
	return c, &q
}

func TestQueryResolve_ConfigDefaults(t *testing.T) {
	withConfig(t, &config.Config{
		Players: []string{"111", "222"},
		Filter:  "ranked",
		Range:   config.RangeConfig{Preset: "7d"},
		Party:   config.PartyConfig{A: "222", B: "111"},
	})
	c, q := newQueryCommand()

	got := q.resolve(c, nil)
	assert.Equal(t, []string{"111", "222"}, got.players)
	assert.Equal(t, "7d", got.preset)
	assert.Equal(t, "ranked", got.filter)
	assert.Equal(t, "222", got.partyA)
	assert.Equal(t, "111", got.partyB)
}

func TestQueryResolve_FlagsOverrideConfig(t *testing.T) {
	withConfig(t, &config.Config{
		Players: []string{"111"},
		Filter:  "ranked",
		Range:   config.RangeConfig{Preset: "30d"},
	})
	c, q := newQueryCommand()
	require.NoError(t, c.Flags().Set("from", "2024-03-01"))
	require.NoError(t, c.Flags().Set("filter", "all"))

	got := q.resolve(c, []string{"333", "444"})
	assert.Equal(t, []string{"333", "444"}, got.players)
	assert.Equal(t, "2024-03-01", got.from)
	assert.Empty(t, got.preset, "an explicit range flag replaces the configured preset")
	assert.Equal(t, "all", got.filter)
}

func TestAppRequest_Validates(t *testing.T) {
	a := &app{loc: time.UTC}

	_, err := a.request(query{players: []string{"1"}, filter: "turbo", preset: "7d"})
	assert.Error(t, err)

	_, err = a.request(query{preset: "7d"})
	assert.ErrorIs(t, err, window.ErrNoPlayers)

	_, err = a.request(query{players: []string{"1"}, from: "2024-03-10", to: "2024-03-01"})
	assert.ErrorIs(t, err, window.ErrInvalidRange)

	req, err := a.request(query{players: []string{" 1 ", "2"}, from: "2024-03-01", to: "2024-03-01", partyA: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, req.Players)
	assert.Equal(t, model.FilterAll, req.Filter)
	assert.Equal(t, int64(86400), req.Window.To-req.Window.From)
	assert.Equal(t, "2", req.PartyA)
}

func TestBuildRunContext(t *testing.T) {
	rec := model.MatchRecord{MatchID: 9, StartTime: 1709251200 + 3600, RadiantWin: true, HeroID: 2, LobbyType: 7, Duration: 1800}
	pt := model.WindowedPoint{OutcomePoint: model.OutcomePoint{TimeMs: rec.StartMs(), WinRate: 100, Win: true, Index: 1, Match: rec}}
	res := &pipeline.Result{
		Window: model.Window{
			From:     1709251200,
			To:       1709251200 + 86400,
			FromDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Loc:      time.UTC,
		},
		Filter: model.FilterAll,
		Heroes: model.HeroNames{2: "Axe"},
		Players: []pipeline.PlayerResult{{
			AccountID:     "111",
			Profile:       model.Profile{PersonaName: "Alice"},
			AllTime:       model.Series{Totals: model.Totals{Matches: 4, Wins: 3}},
			Series:        model.Windowed{Points: []model.WindowedPoint{pt}},
			WindowMatches: []model.MatchRecord{rec, rec},
			WindowTotals:  model.Totals{Matches: 1, Wins: 1},
			Daily:         map[string]model.DailyBucket{"2024-03-01": {Date: "2024-03-01", Count: 1, Wins: 1}},
		}},
		Heatmap: model.Heatmap{Weeks: [][]model.HeatCell{{{Date: "2024-03-01", InRange: true, Count: 1}}}},
	}

	data, err := buildRunContext(res, 1)
	require.NoError(t, err)

	var got runContext
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, "2024-03-01 → 2024-03-01", got.Window)
	assert.Nil(t, got.Party)
	assert.Equal(t, map[string]int{"2024-03-01": 1}, got.Daily)
	require.Len(t, got.Players, 1)

	p := got.Players[0]
	assert.Equal(t, "P1", p.Tag)
	assert.Equal(t, "3/4 (75.00%)", p.AllTime)
	assert.Equal(t, []float64{100}, p.WinrateCurve)
	require.Len(t, p.Recent, 1, "recent matches are capped")
	assert.Equal(t, "Axe", p.Recent[0].Hero)
	assert.True(t, p.Recent[0].Ranked)
	assert.Equal(t, [2]int{1, 1}, p.Daily["2024-03-01"])
}
