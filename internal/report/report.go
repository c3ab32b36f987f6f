// Package report renders run results as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/pipeline"
)

var (
	winColor  = color.New(color.FgGreen)
	lossColor = color.New(color.FgRed)
	dimColor  = color.New(color.Faint)
	headColor = color.New(color.FgCyan, color.Bold)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PlayerTag is the short label of the i-th player (0-based).
func PlayerTag(i int) string { return "P" + strconv.Itoa(i+1) }

// PrintSummary prints the window, filter, combined and party key figures.
func PrintSummary(w io.Writer, res *pipeline.Result) {
	headColor.Fprintf(w, "\nWindow: %s\n", res.Window.Label())
	fmt.Fprintf(w, "Filter: %s • Players: %d\n", res.Filter.Label(), len(res.Players))
	fmt.Fprintf(w, "Combined matches in range: %d • Range winrate (sum): %s • Total wins (sum): %d\n",
		res.Combined.Matches, Pct(res.Combined.Wins, res.Combined.Matches), res.Combined.Wins)
	if p := res.Party; p != nil {
		fmt.Fprintf(w, "Party matches in range: %d • Range party WR: %s • All-time party: %s\n",
			p.WindowTotals.Matches, Pct(p.WindowTotals.Wins, p.WindowTotals.Matches),
			Pct(p.AllTime.Wins, p.AllTime.Matches))
	} else {
		fmt.Fprintf(w, "Party matches in range: %s • Select two players for party mode.\n", Missing)
	}
	fmt.Fprintln(w)
}

// PrintPlayers prints one row per player with rank and win rates.
func PrintPlayers(w io.Writer, res *pipeline.Result) {
	table := newTable(w)
	table.Header(" ", "NAME", "ACCOUNT", "RANK", "ALL-TIME WR", "RANGE W/L", "EXCLUDED", "STEAM")
	for i, p := range res.Players {
		steam := Missing
		if p.Profile.ProfileURL != "" {
			steam = p.Profile.ProfileURL
		}
		all := p.AllTime.Totals
		rng := p.WindowTotals
		table.Append(
			PlayerTag(i),
			p.Profile.PersonaName,
			p.AccountID,
			RankTierText(p.Profile.RankTier),
			fmt.Sprintf("%s (%d/%d)", Pct(all.Wins, all.Matches), all.Wins, all.Matches),
			fmt.Sprintf("%d/%d (%s)", rng.Wins, rng.Matches, Pct(rng.Wins, rng.Matches)),
			strconv.Itoa(p.Excluded.Total()),
			steam,
		)
	}
	table.Render()
}

// PrintParty prints the party header line, or a hint when no party exists.
func PrintParty(w io.Writer, res *pipeline.Result) {
	p := res.Party
	if p == nil {
		fmt.Fprintln(w, "Select two distinct players for party mode.")
		return
	}
	fmt.Fprintf(w, "A: %s • B: %s • Range shared: %d • Range WR: %s\n",
		p.NameA, p.NameB, p.WindowTotals.Matches, Pct(p.WindowTotals.Wins, p.WindowTotals.Matches))
	if len(p.Series.Points) == 0 {
		dimColor.Fprintln(w, "No shared matches in range.")
	}
}

// PrintSeries prints every point of a windowed series. The DAY column is
// only filled at the first match of each day.
func PrintSeries(w io.Writer, title string, s model.Windowed, heroes model.HeroNames) {
	headColor.Fprintf(w, "\n%s\n", title)
	if len(s.Points) == 0 {
		fmt.Fprintln(w, "no data")
		return
	}
	table := newTable(w)
	table.Header("X", "DAY", "#", "WINRATE", "RESULT", "DETAIL")
	for _, p := range s.Points {
		day := s.DayLabels[p.X]
		table.Append(
			strconv.Itoa(p.X),
			day,
			strconv.Itoa(p.Index),
			PercentSmart(p.WinRate),
			outcomeColored(p.Win),
			DescribePoint(p.OutcomePoint, heroes),
		)
	}
	table.Render()
}

func outcomeColored(win bool) string {
	if win {
		return winColor.Sprint(Outcome(true))
	}
	return lossColor.Sprint(Outcome(false))
}

// Page is one page of a match list.
type Page struct {
	Number int // 1-based
	Size   int
	Total  int
	Pages  int
}

// Paginate clamps page into range and returns the slice bounds for it.
func Paginate(total, page, size int) (Page, int, int) {
	if size <= 0 {
		size = 20
	}
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	lo := (page - 1) * size
	hi := min(lo+size, total)
	return Page{Number: page, Size: size, Total: total, Pages: pages}, lo, hi
}

// PrintMatches prints one page of matches, as ordered by the caller.
func PrintMatches(w io.Writer, pr pipeline.PlayerResult, heroes model.HeroNames, loc *time.Location, page, size int) Page {
	pg, lo, hi := Paginate(len(pr.WindowMatches), page, size)
	headColor.Fprintf(w, "\n%s (%s) • %d matches in range\n", pr.Profile.PersonaName, pr.AccountID, pg.Total)

	table := newTable(w)
	table.Header("DATE", "MATCH", "HERO", "SIDE", "RESULT", "K/D/A", "DUR", "LOBBY")
	for _, m := range pr.WindowMatches[lo:hi] {
		lobby := "normal"
		if m.Ranked() {
			lobby = "ranked"
		}
		table.Append(
			StartTime(m, loc),
			strconv.FormatInt(m.MatchID, 10),
			heroes.Name(m.HeroID),
			m.Side().String(),
			outcomeColored(m.Win()),
			KDA(m),
			Minutes(m.Duration),
			lobby,
		)
	}
	table.Render()
	fmt.Fprintf(w, "page %d/%d\n", pg.Number, pg.Pages)
	return pg
}

// PrintHeroes prints the hero catalog ordered by id.
func PrintHeroes(w io.Writer, heroes model.HeroNames) {
	ids := make([]int, 0, len(heroes))
	for id := range heroes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	table := newTable(w)
	table.Header("ID", "HERO")
	for _, id := range ids {
		table.Append(strconv.Itoa(id), heroes[id])
	}
	table.Render()
}

// PrintCaveat reminds that history comes from one capped request.
func PrintCaveat(w io.Writer, matchLimit int) {
	dimColor.Fprintf(w, "X-axis: per-match sequence (same-day games are spaced)\n")
	dimColor.Fprintf(w, "Y-axis: all-time cumulative winrate (auto-zoom within window)\n")
	dimColor.Fprintf(w, "Note: no pagination; single request per player (limit=%d), OpenDota may cap returned history.\n", matchLimit)
}
