package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/config"
	"github.com/pable/go-dota-metrics/internal/logger"
)

var (
	cfgPath  string
	logLevel string
	apiURL   string
	apiKey   string
	timezone string
	matchCap int

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dotametrics",
	Short: "Dota 2 win-rate time series from OpenDota",
	Long: "Fetch OpenDota match histories and compute cumulative win-rate series,\n" +
		"party (shared-match) series, activity heatmaps and charts for a date window.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&apiURL, "api-url", "", "OpenDota API base URL")
	pf.StringVar(&apiKey, "api-key", "", "OpenDota API key (optional)")
	pf.StringVar(&timezone, "tz", "", "IANA timezone used for calendar days (default Local)")
	pf.IntVar(&matchCap, "match-limit", 0, "match history limit per player (single request)")

	rootCmd.AddCommand(winrateCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(heroesCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(shellCmd)
}

// loadConfig reads .env and the config file, then applies persistent flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	c, err := config.LoadWithDefaults(cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("api-url") {
		c.API.BaseURL = apiURL
	}
	if flags.Changed("api-key") {
		c.API.Key = apiKey
	}
	if flags.Changed("tz") {
		c.Timezone = timezone
	}
	if flags.Changed("match-limit") {
		c.API.MatchLimit = matchCap
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	cfg = c
	log = logger.New(cfg.LogLevel, os.Stderr)
	log.Debug().Str("config", cfgPath).Str("api", cfg.API.BaseURL).Str("tz", cfg.Timezone).Msg("configuration loaded")
	return nil
}
