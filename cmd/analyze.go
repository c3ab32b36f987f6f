package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-dota-metrics/internal/pipeline"
	"github.com/pable/go-dota-metrics/internal/report"
)

const analyzeSystemPrompt = `You are a Dota 2 performance analyst. You are given structured win-rate data
computed from OpenDota match histories and a question from the user.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Match histories come from a single capped request; very old matches may be missing.

Glossary:
- all_time: cumulative over every fetched match passing the filter.
- window: the selected calendar range, both ends inclusive.
- winrate_curve: all-time cumulative win rate after each match in the window, in match order.
- party: matches both party players played together; the outcome is player A's.
- daily: matches and wins per calendar day inside the window.`

var (
	analyzeQuery  queryFlags
	analyzeModel  string
	analyzeAPIKey string
	analyzeRecent int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question> [account_id...]",
	Short: "AI-powered grounded analysis of a run (requires ANTHROPIC_API_KEY)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeQuery.bind(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "anthropic-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeRecent, "recent", 20, "number of most recent in-window matches per player to include")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := args[0]
	a, err := newApp()
	if err != nil {
		return err
	}
	req, err := a.request(analyzeQuery.resolve(cmd, args[1:]))
	if err != nil {
		return err
	}
	res, err := a.runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	contextJSON, err := buildRunContext(res, analyzeRecent)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	model := analyzeModel
	if model == "" {
		model = cfg.Analyze.Model
	}
	return callAnthropic(cmd.Context(), os.Stdout, analyzeAPIKey, model, cfg.Analyze.MaxTokens, contextJSON, question)
}

type runContext struct {
	Window  string          `json:"window"`
	Filter  string          `json:"filter"`
	Players []playerContext `json:"players"`
	Party   *partyContext   `json:"party,omitempty"`
	Daily   map[string]int  `json:"daily_combined"`
}

type playerContext struct {
	Tag          string            `json:"tag"`
	Name         string            `json:"name"`
	AccountID    string            `json:"account_id"`
	Rank         string            `json:"rank"`
	AllTime      string            `json:"all_time"`
	Window       string            `json:"window"`
	WinrateCurve []float64         `json:"winrate_curve"`
	Recent       []matchContext    `json:"recent_matches"`
	Daily        map[string][2]int `json:"daily"`
}

type matchContext struct {
	Date   string `json:"date"`
	Hero   string `json:"hero"`
	Result string `json:"result"`
	KDA    string `json:"kda"`
	Length string `json:"duration"`
	Ranked bool   `json:"ranked"`
}

type partyContext struct {
	A            string    `json:"a"`
	B            string    `json:"b"`
	AllTime      string    `json:"all_time"`
	Window       string    `json:"window"`
	WinrateCurve []float64 `json:"winrate_curve"`
}

// buildRunContext serializes the parts of a run the model needs.
func buildRunContext(res *pipeline.Result, recent int) (string, error) {
	ctx := runContext{
		Window: res.Window.Label(),
		Filter: res.Filter.Label(),
		Daily:  make(map[string]int),
	}
	for _, week := range res.Heatmap.Weeks {
		for _, c := range week {
			if c.InRange && c.Count > 0 {
				ctx.Daily[c.Date] = c.Count
			}
		}
	}
	for i, p := range res.Players {
		pc := playerContext{
			Tag:       report.PlayerTag(i),
			Name:      p.Profile.PersonaName,
			AccountID: p.AccountID,
			Rank:      report.RankTierText(p.Profile.RankTier),
			AllTime:   totalsText(p.AllTime.Totals.Wins, p.AllTime.Totals.Matches),
			Window:    totalsText(p.WindowTotals.Wins, p.WindowTotals.Matches),
			Daily:     make(map[string][2]int),
		}
		for _, pt := range p.Series.Points {
			pc.WinrateCurve = append(pc.WinrateCurve, pt.WinRate)
		}
		for j, m := range p.WindowMatches {
			if j >= recent {
				break
			}
			pc.Recent = append(pc.Recent, matchContext{
				Date:   report.StartTime(m, res.Window.Loc),
				Hero:   res.Heroes.Name(m.HeroID),
				Result: report.Outcome(m.Win()),
				KDA:    report.KDA(m),
				Length: report.Minutes(m.Duration),
				Ranked: m.Ranked(),
			})
		}
		for day, b := range p.Daily {
			pc.Daily[day] = [2]int{b.Count, b.Wins}
		}
		ctx.Players = append(ctx.Players, pc)
	}
	if p := res.Party; p != nil {
		pc := &partyContext{
			A:       p.NameA,
			B:       p.NameB,
			AllTime: totalsText(p.AllTime.Wins, p.AllTime.Matches),
			Window:  totalsText(p.WindowTotals.Wins, p.WindowTotals.Matches),
		}
		for _, pt := range p.Series.Points {
			pc.WinrateCurve = append(pc.WinrateCurve, pt.WinRate)
		}
		ctx.Party = pc
	}

	b, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func totalsText(wins, matches int) string {
	return fmt.Sprintf("%d/%d (%s)", wins, matches, report.Pct(wins, matches))
}

// callAnthropic streams a response from the Anthropic API to w.
func callAnthropic(ctx context.Context, w io.Writer, apiKey, modelID string, maxTokens int, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --anthropic-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(w, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(w, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(w, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
