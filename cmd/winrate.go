package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/chart"
	"github.com/pable/go-dota-metrics/internal/pipeline"
	"github.com/pable/go-dota-metrics/internal/report"
)

var (
	winrateQuery     queryFlags
	winrateChartsDir string
	winratePoints    bool
	winrateHeatmap   bool
)

var winrateCmd = &cobra.Command{
	Use:   "winrate [account_id...]",
	Short: "Cumulative win-rate series for one or more players",
	Long: `Fetch each player's match history (one request each), compute the all-time
cumulative win rate, slice it to the window and print the summary, the party
(shared-match) series and an activity heatmap. Optionally writes PNG charts.

Examples:
  dotametrics winrate 86745912 111620041 --preset 30d
  dotametrics winrate 86745912 --from 2024-03-01 --to 2024-03-31 --filter ranked --charts-dir ./charts`,
	RunE: runWinrate,
}

func init() {
	winrateQuery.bind(winrateCmd)
	winrateCmd.Flags().StringVar(&winrateChartsDir, "charts-dir", "", "write overlay, per-player and party PNG charts to this directory")
	winrateCmd.Flags().BoolVar(&winratePoints, "points", false, "print every point of each windowed series")
	winrateCmd.Flags().BoolVar(&winrateHeatmap, "heatmap", true, "print the activity heatmap")
}

func runWinrate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	req, err := a.request(winrateQuery.resolve(cmd, args))
	if err != nil {
		return err
	}
	res, err := a.runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := runOutput{points: winratePoints, heatmap: winrateHeatmap}
	dir := winrateChartsDir
	if dir == "" {
		dir = cfg.Charts.Dir
	}
	if dir != "" {
		if out.charts, err = chart.NewRegistry(dir); err != nil {
			return err
		}
	}
	return printRun(res, out)
}

type runOutput struct {
	points  bool
	heatmap bool
	charts  *chart.Registry // nil disables chart output
}

// printRun writes the full report of a run to stdout.
func printRun(res *pipeline.Result, out runOutput) error {
	w := os.Stdout
	report.PrintSummary(w, res)
	report.PrintPlayers(w, res)
	fmt.Fprintln(w)
	report.PrintParty(w, res)

	if out.heatmap {
		fmt.Fprintln(w)
		report.PrintHeatmap(w, res.Heatmap)
	}
	if out.points {
		for i, p := range res.Players {
			report.PrintSeries(w, chart.PlayerLabel(i, p.Profile.PersonaName), p.Series, res.Heroes)
		}
		if res.Party != nil {
			report.PrintSeries(w, "Party", res.Party.Series, res.Heroes)
		}
	}

	if out.charts != nil {
		paths, err := chart.WriteAll(out.charts, res, cfg.Charts.Width, cfg.Charts.Height)
		if err != nil {
			return fmt.Errorf("write charts: %w", err)
		}
		fmt.Fprintln(w)
		for _, id := range out.charts.IDs() {
			fmt.Fprintf(w, "chart %-9s %s\n", id, paths[id])
		}
	}

	fmt.Fprintln(w)
	report.PrintCaveat(w, res.MatchLimit)
	return nil
}
