package window

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_HalfOpen(t *testing.T) {
	w, err := Resolve("2024-03-01", "2024-03-10", "", now, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if w.From != date(2024, 3, 1).Unix() {
		t.Errorf("From = %d", w.From)
	}
	if w.To != date(2024, 3, 11).Unix() {
		t.Errorf("To = %d, want start of 2024-03-11", w.To)
	}
	if !w.Contains(w.From) || w.Contains(w.To) || !w.Contains(w.To-1) {
		t.Errorf("window is not [from, to)")
	}
	if w.Label() != "2024-03-01 → 2024-03-10" {
		t.Errorf("Label = %q", w.Label())
	}
}

func TestResolve_SameDay(t *testing.T) {
	w, err := Resolve("2024-03-05", "2024-03-05", "", now, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if w.To-w.From != 86400 {
		t.Errorf("single day window spans %d seconds", w.To-w.From)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		preset   string
		want     error
	}{
		{"missing both", "", "", "", ErrMissingDates},
		{"missing to", "2024-03-01", "", "", ErrMissingDates},
		{"reversed", "2024-03-10", "2024-03-01", "", ErrInvalidRange},
		{"unknown preset", "", "", "2w", ErrUnknownPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.from, tt.to, tt.preset, now, time.UTC)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Resolve("03/01/2024", "2024-03-02", "", now, time.UTC); err == nil {
		t.Error("expected parse error")
	}
}

func TestPresetDates(t *testing.T) {
	tests := []struct {
		preset   string
		from, to time.Time
	}{
		{Preset7d, date(2024, 3, 8), date(2024, 3, 15)},
		{Preset30d, date(2024, 2, 14), date(2024, 3, 15)},
		{Preset90d, date(2023, 12, 16), date(2024, 3, 15)},
		{PresetYTD, date(2024, 1, 1), date(2024, 3, 15)},
		{PresetPrevMonth, date(2024, 2, 1), date(2024, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			from, to, err := PresetDates(tt.preset, now, time.UTC)
			if err != nil {
				t.Fatal(err)
			}
			if !from.Equal(tt.from) || !to.Equal(tt.to) {
				t.Errorf("got %s..%s, want %s..%s", from.Format(time.DateOnly), to.Format(time.DateOnly),
					tt.from.Format(time.DateOnly), tt.to.Format(time.DateOnly))
			}
		})
	}
}

func TestPresetDates_PrevMonthInJanuary(t *testing.T) {
	from, to, err := PresetDates(PresetPrevMonth, date(2024, 1, 20), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !from.Equal(date(2023, 12, 1)) || !to.Equal(date(2023, 12, 31)) {
		t.Errorf("got %s..%s", from, to)
	}
}

func TestResolve_ExplicitDateOverridesPreset(t *testing.T) {
	w, err := Resolve("2024-03-01", "", Preset7d, now, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if w.From != date(2024, 3, 1).Unix() || w.To != date(2024, 3, 16).Unix() {
		t.Errorf("got %s", w.Label())
	}
}

func TestResolve_Location(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	w, err := Resolve("2024-03-01", "2024-03-01", "", now, loc)
	if err != nil {
		t.Fatal(err)
	}
	if w.From != date(2024, 3, 1).Unix()+5*3600 {
		t.Errorf("From = %d, want local midnight", w.From)
	}
}

func TestValidate(t *testing.T) {
	if _, _, err := Validate([]string{" ", ""}, "2024-03-01", "2024-03-02", "", now, time.UTC); !errors.Is(err, ErrNoPlayers) {
		t.Errorf("err = %v, want ErrNoPlayers", err)
	}
	// Players are checked before dates.
	if _, _, err := Validate(nil, "", "", "", now, time.UTC); !errors.Is(err, ErrNoPlayers) {
		t.Errorf("err = %v, want ErrNoPlayers", err)
	}
	ids, _, err := Validate([]string{" 123 ", "", "456"}, "", "", Preset30d, now, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "123" || ids[1] != "456" {
		t.Errorf("ids = %v", ids)
	}
}

func TestPlayersNormalizesSteamIDs(t *testing.T) {
	got := Players([]string{"76561198047544485", " [U:1:111620041] ", "", "86745912"})
	want := []string{"87278757", "111620041", "86745912"}
	if len(got) != len(want) {
		t.Fatalf("Players = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Players[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
