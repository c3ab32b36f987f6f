package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/chart"
	"github.com/pable/go-dota-metrics/internal/pipeline"
	"github.com/pable/go-dota-metrics/internal/report"
	"github.com/pable/go-dota-metrics/internal/window"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Open a persistent session. The selection (players, range, filter, party)
is kept between runs and the hero catalog is fetched once. Type 'help' for
available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// session is the mutable state of one shell.
type session struct {
	app    *app
	q      query
	charts *chart.Registry
	last   *pipeline.Result
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	s := &session{app: a, q: configQuery()}
	if cfg.Charts.Dir != "" {
		if s.charts, err = chart.NewRegistry(cfg.Charts.Dir); err != nil {
			return err
		}
	}

	cGreeting.Println("dotametrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("dotametrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "status":
			s.status()
		case "players":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: players <account_id> [<account_id>...]")
				continue
			}
			s.q.players = window.Players(args)
			s.status()
		case "range":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: range <YYYY-MM-DD> <YYYY-MM-DD>")
				continue
			}
			s.q.from, s.q.to, s.q.preset = args[0], args[1], ""
			s.status()
		case "preset":
			if len(args) != 1 {
				cError.Fprintf(os.Stderr, "usage: preset <%s>\n", strings.Join(window.Presets, "|"))
				continue
			}
			s.q.from, s.q.to, s.q.preset = "", "", args[0]
			s.status()
		case "filter":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: filter <all|ranked>")
				continue
			}
			s.q.filter = args[0]
			s.status()
		case "party":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: party <account_id_a> <account_id_b>")
				continue
			}
			s.q.partyA, s.q.partyB = args[0], args[1]
			s.status()
		case "charts":
			if len(args) == 0 {
				s.charts = nil
				cMuted.Println("chart output disabled")
				continue
			}
			reg, err := chart.NewRegistry(args[0])
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			s.charts = reg
			cMuted.Printf("charts will be written to %s\n", args[0])
		case "run":
			points := len(args) > 0 && args[0] == "points"
			s.run(cmd.Context(), points)
		case "matches":
			s.matches(args)
		case "heroes":
			names, err := a.heroes.EnsureLoaded(cmd.Context())
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			report.PrintHeroes(os.Stdout, names)
		case "ask":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: ask <question>")
				continue
			}
			s.ask(cmd.Context(), strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"status", "show the current selection"},
		{"players <id> [...]", "set the players to compare"},
		{"range <from> <to>", "set an explicit window (YYYY-MM-DD, inclusive)"},
		{"preset <" + strings.Join(window.Presets, "|") + ">", "set a preset window"},
		{"filter <all|ranked>", "set the match filter"},
		{"party <a> <b>", "choose the two party players"},
		{"charts [dir]", "write PNG charts on each run (no dir disables)"},
		{"run [points]", "fetch and compute; 'points' lists every point"},
		{"matches <P#|id> [page]", "page through a player's in-range matches"},
		{"heroes", "print the hero catalog"},
		{"ask <question>", "AI analysis of the last run"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *session) status() {
	cHeader.Println("selection")
	fmt.Printf("  players  %s\n", strings.Join(s.q.players, ", "))
	switch {
	case s.q.from != "" || s.q.to != "":
		fmt.Printf("  range    %s → %s\n", s.q.from, s.q.to)
	default:
		fmt.Printf("  preset   %s\n", s.q.preset)
	}
	filter := s.q.filter
	if filter == "" {
		filter = "all"
	}
	fmt.Printf("  filter   %s\n", filter)
	a, b := pipeline.ResolveParty(window.Players(s.q.players), s.q.partyA, s.q.partyB)
	fmt.Printf("  party    %s / %s\n", a, b)
}

func (s *session) run(ctx context.Context, points bool) {
	req, err := s.app.request(s.q)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	log.Debug().Stringer("query", s.q).Msg("shell run")
	res, err := s.app.runner.Run(ctx, req)
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			cWarn.Fprintln(os.Stderr, "a run is already in progress")
			return
		}
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	s.last = res
	if err := printRun(res, runOutput{points: points, heatmap: true, charts: s.charts}); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func (s *session) matches(args []string) {
	if s.last == nil {
		cMuted.Println("nothing to show yet, type 'run' first")
		return
	}
	if len(args) == 0 {
		cError.Fprintln(os.Stderr, "usage: matches <P#|account_id> [page]")
		return
	}
	idx := s.playerIndex(args[0])
	if idx < 0 {
		cError.Fprintf(os.Stderr, "no player %q in the last run\n", args[0])
		return
	}
	page := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			cError.Fprintf(os.Stderr, "invalid page %q\n", args[1])
			return
		}
		page = n
	}
	report.PrintMatches(os.Stdout, s.last.Players[idx], s.last.Heroes, s.last.Window.Loc, page, 20)
}

// playerIndex resolves a player tag ("P2") or account id against the last run.
func (s *session) playerIndex(ref string) int {
	for i, p := range s.last.Players {
		if strings.EqualFold(ref, report.PlayerTag(i)) || ref == p.AccountID {
			return i
		}
	}
	return -1
}

func (s *session) ask(ctx context.Context, question string) {
	if s.last == nil {
		cMuted.Println("nothing to analyze yet, type 'run' first")
		return
	}
	data, err := buildRunContext(s.last, 20)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if err := callAnthropic(ctx, os.Stdout, "", cfg.Analyze.Model, cfg.Analyze.MaxTokens, data, question); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
