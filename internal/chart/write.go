package chart

import (
	"fmt"
	"io"

	"github.com/pable/go-dota-metrics/internal/pipeline"
	"github.com/pable/go-dota-metrics/internal/report"
)

// Chart ids.
const (
	OverlayID    = "overlay"
	PlayerPrefix = "player-"
	PartyID      = "party"
)

// PlayerLabel is the legend name of the i-th player.
func PlayerLabel(i int, name string) string {
	return fmt.Sprintf("%s · %s", report.PlayerTag(i), name)
}

// Specs builds the overlay, per-player and party charts of a run. The
// overlay uses the first player's day labels.
func Specs(res *pipeline.Result, width, height int) map[string]Spec {
	specs := make(map[string]Spec)
	overlay := Spec{
		Title:  fmt.Sprintf("All players • %s • %s", res.Filter.Label(), res.Window.Label()),
		Width:  width,
		Height: height,
	}
	for i, p := range res.Players {
		line := Line{Name: PlayerLabel(i, p.Profile.PersonaName), Points: p.Series.Points, Color: ColorAt(i)}
		overlay.Lines = append(overlay.Lines, line)
		if i == 0 {
			overlay.DayLabels = p.Series.DayLabels
		}
		specs[fmt.Sprintf("%s%d", PlayerPrefix, i+1)] = Spec{
			Title:     fmt.Sprintf("%s • %d matches in range", line.Name, p.WindowTotals.Matches),
			Lines:     []Line{line},
			DayLabels: p.Series.DayLabels,
			Width:     width,
			Height:    height,
		}
	}
	specs[OverlayID] = overlay

	party := Spec{Title: "Party (shared matches)", Width: width, Height: height}
	if p := res.Party; p != nil {
		party.Title = fmt.Sprintf("Party: %s + %s • %d shared in range", p.NameA, p.NameB, p.WindowTotals.Matches)
		party.Lines = []Line{{Name: "Party", Points: p.Series.Points, Color: ColorAt(len(res.Players))}}
		party.DayLabels = p.Series.DayLabels
	}
	specs[PartyID] = party
	return specs
}

// WriteAll replaces every chart of the previous run in reg with the charts
// of res and returns the written paths by id.
func WriteAll(reg *Registry, res *pipeline.Result, width, height int) (map[string]string, error) {
	reg.DisposePrefix(PlayerPrefix)
	out := make(map[string]string)
	for id, spec := range Specs(res, width, height) {
		path, err := reg.Replace(id, func(w io.Writer) error {
			return RenderWinrate(w, spec)
		})
		if err != nil {
			return nil, err
		}
		out[id] = path
	}
	return out, nil
}
