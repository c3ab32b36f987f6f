package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-dota-metrics/internal/model"
)

// Missing is shown wherever a value is unknown or undefined.
const Missing = "—"

var medals = map[int]string{
	1: "Herald", 2: "Guardian", 3: "Crusader", 4: "Archon",
	5: "Legend", 6: "Ancient", 7: "Divine", 8: "Immortal",
}

// RankTierText renders an OpenDota rank_tier (medal*10 + stars) as text.
// Immortal has no star count; a zero star renders as 1.
func RankTierText(tier *int) string {
	if tier == nil || *tier <= 0 {
		return Missing
	}
	m, ok := medals[*tier/10]
	if !ok {
		return Missing
	}
	if m == "Immortal" {
		return m
	}
	star := *tier % 10
	if star == 0 {
		star = 1
	}
	return fmt.Sprintf("%s %d", m, star)
}

// Pct renders n/d as a two-decimal percentage, or Missing when d is zero.
func Pct(n, d int) string {
	if d == 0 {
		return Missing
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(d)*100)
}

// PercentSmart renders an axis value with more decimals the closer it is
// to zero.
func PercentSmart(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs < 1:
		return fmt.Sprintf("%.3f%%", v)
	case abs < 10:
		return fmt.Sprintf("%.2f%%", v)
	default:
		return fmt.Sprintf("%.1f%%", v)
	}
}

// Outcome is "WIN" or "LOSS".
func Outcome(win bool) string {
	if win {
		return "WIN"
	}
	return "LOSS"
}

// KDA renders kills/deaths/assists with "?" for unknown parts.
func KDA(m model.MatchRecord) string {
	return optInt(m.Kills) + "/" + optInt(m.Deaths) + "/" + optInt(m.Assists)
}

func optInt(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}

// Minutes renders a duration in seconds as whole minutes, "?" when unknown.
func Minutes(sec int) string {
	if sec <= 0 {
		return "?"
	}
	return strconv.Itoa(int(math.Round(float64(sec)/60))) + "m"
}

// DescribePoint is the one-line detail of a chart point. Party points name
// both players' heroes and use player A's outcome.
func DescribePoint(p model.OutcomePoint, heroes model.HeroNames) string {
	m := p.Match
	parts := []string{
		fmt.Sprintf("%.3f%%", p.WinRate),
		Outcome(p.Win),
	}
	if p.Partner != nil {
		pm := model.PartyMatch{A: m, B: *p.Partner}
		parts = append(parts,
			fmt.Sprintf("P1 %s (%s)", heroes.Name(m.HeroID), KDA(m)),
			fmt.Sprintf("P2 %s (%s)", heroes.Name(p.Partner.HeroID), KDA(*p.Partner)),
			Minutes(pm.Duration()),
		)
	} else {
		parts = append(parts,
			heroes.Name(m.HeroID),
			"KDA "+KDA(m),
			Minutes(m.Duration),
		)
	}
	parts = append(parts, fmt.Sprintf("match %d", m.MatchID))
	return strings.Join(parts, " • ")
}

// StartTime renders a match start in loc.
func StartTime(m model.MatchRecord, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(m.StartTime, 0).In(loc).Format("2006-01-02 15:04")
}
