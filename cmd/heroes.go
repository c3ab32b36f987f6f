package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/report"
)

var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "Print the hero catalog (id → localized name)",
	Args:  cobra.NoArgs,
	RunE:  runHeroes,
}

func runHeroes(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	names, err := a.heroes.EnsureLoaded(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintHeroes(os.Stdout, names)
	return nil
}
