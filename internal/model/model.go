package model

import (
	"fmt"
	"time"
)

// Side represents which of the two teams a player was on.
type Side int

const (
	SideRadiant Side = 0
	SideDire    Side = 1
)

// DireSlotThreshold splits player_slot values: slots below it are Radiant,
// slots at or above it are Dire.
const DireSlotThreshold = 128

// MaxPlayerSlot is the largest player_slot value the API can encode (one byte).
const MaxPlayerSlot = 255

// RankedLobbyType is the lobby_type code of ranked matchmaking.
const RankedLobbyType = 7

func (s Side) String() string {
	switch s {
	case SideRadiant:
		return "Radiant"
	case SideDire:
		return "Dire"
	default:
		return "?"
	}
}

// SideOf returns the side encoded by a player_slot value.
func SideOf(slot int) Side {
	if slot < DireSlotThreshold {
		return SideRadiant
	}
	return SideDire
}

// ValidSlot reports whether slot is inside the one-byte range the API uses.
func ValidSlot(slot int) bool {
	return slot >= 0 && slot <= MaxPlayerSlot
}

// IsWin reports whether the player in slot won a match with the given outcome.
func IsWin(slot int, radiantWin bool) bool {
	if SideOf(slot) == SideRadiant {
		return radiantWin
	}
	return !radiantWin
}

// ---- Match records ----

// MatchRecord is one validated entry of a player's match history.
type MatchRecord struct {
	MatchID    int64 // 0 when the API omitted it; such records never pair in party mode
	StartTime  int64 // epoch seconds
	PlayerSlot int
	RadiantWin bool
	LobbyType  int
	GameMode   int

	// Display-only fields, carried through unmodified.
	HeroID   int
	Kills    *int
	Deaths   *int
	Assists  *int
	Duration int // seconds, 0 when unknown
}

// Side returns the team the subject played on.
func (m MatchRecord) Side() Side { return SideOf(m.PlayerSlot) }

// Win reports whether the subject won this match.
func (m MatchRecord) Win() bool { return IsWin(m.PlayerSlot, m.RadiantWin) }

// StartMs returns the start time in epoch milliseconds.
func (m MatchRecord) StartMs() int64 { return m.StartTime * 1000 }

// Ranked reports whether the match was played in the ranked lobby.
func (m MatchRecord) Ranked() bool { return m.LobbyType == RankedLobbyType }

// MatchFilter restricts which match types enter a computation.
type MatchFilter string

const (
	FilterAll    MatchFilter = "all"
	FilterRanked MatchFilter = "ranked"
)

// ParseMatchFilter accepts "all" or "ranked"; the empty string means all.
func ParseMatchFilter(s string) (MatchFilter, error) {
	switch MatchFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterRanked:
		return FilterRanked, nil
	default:
		return "", fmt.Errorf("unknown match filter %q (want all or ranked)", s)
	}
}

// Label is the human-readable name of the filter.
func (f MatchFilter) Label() string {
	if f == FilterRanked {
		return fmt.Sprintf("Ranked only (lobby_type=%d)", RankedLobbyType)
	}
	return "All matches"
}

// Accepts reports whether m passes the filter.
func (f MatchFilter) Accepts(m MatchRecord) bool {
	if f == FilterRanked {
		return m.Ranked()
	}
	return true
}

// ---- Derived series ----

// Totals is a matches/wins pair.
type Totals struct {
	Matches int
	Wins    int
}

// Losses returns Matches - Wins.
func (t Totals) Losses() int { return t.Matches - t.Wins }

// WinRate returns the win percentage, or 0 when there are no matches.
func (t Totals) WinRate() float64 {
	if t.Matches == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Matches) * 100
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{Matches: t.Matches + o.Matches, Wins: t.Wins + o.Wins}
}

// OutcomePoint is the all-time cumulative win rate right after one match.
type OutcomePoint struct {
	TimeMs  int64
	WinRate float64 // 0–100, rounded to 4 decimals
	Win     bool    // canonical outcome of this match
	Index   int     // 1-based position in the all-time series
	Match   MatchRecord
	Partner *MatchRecord // player B's record in party mode, nil otherwise
}

// Series is an all-time cumulative curve with its totals.
type Series struct {
	Points []OutcomePoint
	Totals Totals
}

// PartyMatch pairs two players' records of the same match.
type PartyMatch struct {
	A MatchRecord
	B MatchRecord
}

// MatchID returns the shared match identifier.
func (p PartyMatch) MatchID() int64 { return p.A.MatchID }

// Duration prefers A's duration and falls back to B's.
func (p PartyMatch) Duration() int {
	if p.A.Duration > 0 {
		return p.A.Duration
	}
	return p.B.Duration
}

// PartySeries is the cumulative curve over matches two players shared.
type PartySeries struct {
	Series
	Shared []PartyMatch
}

// WindowedPoint is an OutcomePoint inside the display window, re-indexed by
// match order.
type WindowedPoint struct {
	OutcomePoint
	X int // 0-based position inside the window
}

// Windowed is a re-indexed window of a series plus its sparse day labels.
type Windowed struct {
	Points    []WindowedPoint
	DayLabels map[int]string // X -> YYYY-MM-DD, set at each day's first point
}

// Totals counts matches and wins inside the window.
func (w Windowed) Totals() Totals {
	t := Totals{Matches: len(w.Points)}
	for _, p := range w.Points {
		if p.Win {
			t.Wins++
		}
	}
	return t
}

// XMax is the right edge of the x axis, leaving one empty column after the
// last point.
func (w Windowed) XMax() int {
	if len(w.Points) == 0 {
		return 1
	}
	return len(w.Points)
}

// AxisBounds is a [Min, Max] range on the 0–100 percentage axis with tick Step.
type AxisBounds struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultAxisBounds is used when there is nothing to plot.
var DefaultAxisBounds = AxisBounds{Min: 0, Max: 100, Step: 10}

// DailyBucket aggregates one calendar day of matches.
type DailyBucket struct {
	Date  string // YYYY-MM-DD
	Count int
	Wins  int
}

// HeatCell is one day in the week-aligned activity grid.
type HeatCell struct {
	Date      string
	Weekday   time.Weekday
	InRange   bool
	Count     int
	Wins      int
	Intensity float64 // Count / max count in range, 0 when out of range
}

// Heatmap is a Monday-start grid of weeks (columns) of seven days each.
type Heatmap struct {
	Weeks [][]HeatCell
	Max   int
	Total int
}

// ---- Window ----

// Window is a half-open [From, To) interval in epoch seconds together with
// the inclusive calendar dates it was derived from.
type Window struct {
	From     int64
	To       int64
	FromDate time.Time // midnight of the first day, in Loc
	ToDate   time.Time // midnight of the last (inclusive) day, in Loc
	Loc      *time.Location
}

// Contains reports whether an epoch-second timestamp falls in the window.
func (w Window) Contains(sec int64) bool {
	return sec >= w.From && sec < w.To
}

// ContainsMs reports whether an epoch-millisecond timestamp falls in the window.
func (w Window) ContainsMs(ms int64) bool {
	return ms >= w.From*1000 && ms < w.To*1000
}

// Label renders the window as "from → to" using inclusive dates.
func (w Window) Label() string {
	return fmt.Sprintf("%s → %s", w.FromDate.Format(time.DateOnly), w.ToDate.Format(time.DateOnly))
}

// ---- Player metadata ----

// Profile is the display metadata of one account.
type Profile struct {
	AccountID       string
	PersonaName     string
	Avatar          string
	ProfileURL      string
	SteamID         string
	RankTier        *int
	LeaderboardRank *int
}

// HeroNames maps hero id to localized name. It is shared read-only.
type HeroNames map[int]string

// Name returns the hero's name or a "Hero #id" placeholder.
func (h HeroNames) Name(id int) string {
	if n, ok := h[id]; ok && n != "" {
		return n
	}
	return fmt.Sprintf("Hero #%d", id)
}
