package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pable/go-dota-metrics/internal/model"
)

// heatLevels go from an idle day to the busiest day of the window.
var heatLevels = []*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgYellow),
	color.New(color.FgHiYellow),
	color.New(color.FgHiYellow, color.Bold),
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// HeatGlyph picks the character and color level for one cell.
func HeatGlyph(c model.HeatCell) (string, int) {
	switch {
	case !c.InRange:
		return " ", 0
	case c.Count == 0:
		return "·", 0
	case c.Intensity <= 1.0/3:
		return "▪", 1
	case c.Intensity <= 2.0/3:
		return "■", 2
	default:
		return "█", 3
	}
}

// PrintHeatmap draws the week grid with weekdays as rows.
func PrintHeatmap(w io.Writer, hm model.Heatmap) {
	if len(hm.Weeks) == 0 {
		fmt.Fprintln(w, "no data")
		return
	}
	for row := 0; row < 7; row++ {
		var b strings.Builder
		b.WriteString(weekdayLabels[row])
		b.WriteString(" ")
		for _, week := range hm.Weeks {
			glyph, lvl := HeatGlyph(week[row])
			b.WriteString(heatLevels[lvl].Sprint(glyph))
			b.WriteString(" ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
	fmt.Fprintf(w, "Total in window: %d • busiest day: %d match%s\n", hm.Total, hm.Max, plural(hm.Max))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "es"
}
