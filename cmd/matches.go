package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/report"
)

var (
	matchesQuery    queryFlags
	matchesPage     int
	matchesPageSize int
)

var matchesCmd = &cobra.Command{
	Use:   "matches [account_id...]",
	Short: "List in-window matches per player, newest first",
	RunE:  runMatches,
}

func init() {
	matchesQuery.bind(matchesCmd)
	matchesCmd.Flags().IntVar(&matchesPage, "page", 1, "page number (1-based)")
	matchesCmd.Flags().IntVar(&matchesPageSize, "page-size", 20, "matches per page")
}

func runMatches(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	req, err := a.request(matchesQuery.resolve(cmd, args))
	if err != nil {
		return err
	}
	res, err := a.runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	for _, p := range res.Players {
		report.PrintMatches(os.Stdout, p, res.Heroes, a.loc, matchesPage, matchesPageSize)
	}
	return nil
}
