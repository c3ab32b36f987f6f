// Package window resolves user-facing date ranges into half-open epoch
// intervals and validates run inputs before any network activity.
package window

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/steam"
)

var (
	ErrNoPlayers     = errors.New("please add at least one player account_id")
	ErrMissingDates  = errors.New("please choose from and to dates (or use a preset)")
	ErrInvalidRange  = errors.New("invalid date range: 'to' must be same as or after 'from'")
	ErrUnknownPreset = errors.New("unknown range preset")
)

// Preset names.
const (
	Preset7d        = "7d"
	Preset30d       = "30d"
	Preset90d       = "90d"
	PresetYTD       = "ytd"
	PresetPrevMonth = "prev_month"
)

// Presets lists the accepted preset names in display order.
var Presets = []string{Preset7d, Preset30d, Preset90d, PresetYTD, PresetPrevMonth}

// PresetDates returns the inclusive calendar dates a preset covers, as seen
// from now in loc.
func PresetDates(preset string, now time.Time, loc *time.Location) (from, to time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch preset {
	case Preset7d:
		return today.AddDate(0, 0, -7), today, nil
	case Preset30d:
		return today.AddDate(0, 0, -30), today, nil
	case Preset90d:
		return today.AddDate(0, 0, -90), today, nil
	case PresetYTD:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc), today, nil
	case PresetPrevMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, loc)
		last := time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, loc)
		return first, last, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownPreset, preset, strings.Join(Presets, ", "))
	}
}

// Resolve builds the window for inclusive dates fromISO..toISO (YYYY-MM-DD).
// An empty date is taken from preset when one is given. The upper bound is
// the start of the day after toISO.
func Resolve(fromISO, toISO, preset string, now time.Time, loc *time.Location) (model.Window, error) {
	if loc == nil {
		loc = time.Local
	}
	var from, to time.Time
	if preset != "" && (fromISO == "" || toISO == "") {
		pf, pt, err := PresetDates(preset, now, loc)
		if err != nil {
			return model.Window{}, err
		}
		from, to = pf, pt
	}
	if fromISO != "" {
		d, err := time.ParseInLocation(time.DateOnly, fromISO, loc)
		if err != nil {
			return model.Window{}, fmt.Errorf("parse from date: %w", err)
		}
		from = d
	}
	if toISO != "" {
		d, err := time.ParseInLocation(time.DateOnly, toISO, loc)
		if err != nil {
			return model.Window{}, fmt.Errorf("parse to date: %w", err)
		}
		to = d
	}
	if from.IsZero() || to.IsZero() {
		return model.Window{}, ErrMissingDates
	}
	return FromDates(from, to, loc)
}

// FromDates converts inclusive calendar dates into a half-open window.
func FromDates(from, to time.Time, loc *time.Location) (model.Window, error) {
	if loc == nil {
		loc = time.Local
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)
	// AddDate keeps wall-clock midnight across DST changes.
	exclusive := to.AddDate(0, 0, 1)

	w := model.Window{
		From:     from.Unix(),
		To:       exclusive.Unix(),
		FromDate: from,
		ToDate:   to,
		Loc:      loc,
	}
	if w.To <= w.From {
		return model.Window{}, ErrInvalidRange
	}
	return w, nil
}

// Players normalizes ids to account ids and drops empty entries.
func Players(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = steam.Normalize(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Validate checks the run inputs in the order a user would fix them.
func Validate(players []string, fromISO, toISO, preset string, now time.Time, loc *time.Location) ([]string, model.Window, error) {
	ids := Players(players)
	if len(ids) == 0 {
		return nil, model.Window{}, ErrNoPlayers
	}
	w, err := Resolve(fromISO, toISO, preset, now, loc)
	if err != nil {
		return nil, model.Window{}, err
	}
	return ids, w, nil
}
