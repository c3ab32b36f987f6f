// Package parser turns loosely-typed OpenDota responses into validated model
// records. It is the only place where malformed records are detected; every
// later stage works on model.MatchRecord and may assume its fields are sane.
package parser

import (
	"strconv"

	"github.com/pable/go-dota-metrics/internal/model"
	"github.com/pable/go-dota-metrics/internal/opendota"
	"github.com/pable/go-dota-metrics/internal/steam"
)

// Exclusions counts records dropped by ParseMatches, by reason.
type Exclusions struct {
	MissingStartTime int // absent, non-numeric or negative start_time
	InvalidSlot      int // player_slot outside 0..255
	MissingOutcome   int // player_slot or radiant_win absent
}

// Total returns the number of excluded records.
func (e Exclusions) Total() int {
	return e.MissingStartTime + e.InvalidSlot + e.MissingOutcome
}

// ParseMatches validates raw match history entries. Records that cannot be
// placed on the time axis or classified as win/loss are dropped and counted.
// Input order is preserved.
func ParseMatches(raw []opendota.Match) ([]model.MatchRecord, Exclusions) {
	var ex Exclusions
	out := make([]model.MatchRecord, 0, len(raw))
	for _, m := range raw {
		if !m.StartTime.Valid || m.StartTime.Value < 0 {
			ex.MissingStartTime++
			continue
		}
		if !m.PlayerSlot.Valid || !m.RadiantWin.Valid {
			ex.MissingOutcome++
			continue
		}
		slot := int(m.PlayerSlot.Value)
		if !model.ValidSlot(slot) {
			ex.InvalidSlot++
			continue
		}
		out = append(out, toRecord(m, slot))
	}
	return out, ex
}

func toRecord(m opendota.Match, slot int) model.MatchRecord {
	rec := model.MatchRecord{
		StartTime:  m.StartTime.Value,
		PlayerSlot: slot,
		RadiantWin: m.RadiantWin.Value,
		Kills:      m.Kills.IntPtr(),
		Deaths:     m.Deaths.IntPtr(),
		Assists:    m.Assists.IntPtr(),
	}
	if m.MatchID.Valid && m.MatchID.Value > 0 {
		rec.MatchID = m.MatchID.Value
	}
	if m.LobbyType.Valid {
		rec.LobbyType = int(m.LobbyType.Value)
	} else {
		rec.LobbyType = -1
	}
	if m.GameMode.Valid {
		rec.GameMode = int(m.GameMode.Value)
	}
	if m.HeroID.Valid {
		rec.HeroID = int(m.HeroID.Value)
	}
	if m.Duration.Valid && m.Duration.Value > 0 {
		rec.Duration = int(m.Duration.Value)
	}
	return rec
}

// ParseProfile applies display defaults to a player response. A nil response
// yields a profile with only the defaults filled in.
func ParseProfile(accountID string, resp *opendota.PlayerResponse) model.Profile {
	p := model.Profile{
		AccountID:   accountID,
		PersonaName: "Player " + accountID,
	}
	if resp == nil {
		return p
	}
	if pr := resp.Profile; pr != nil {
		if pr.PersonaName != "" {
			p.PersonaName = pr.PersonaName
		}
		p.Avatar = firstNonEmpty(pr.AvatarFull, pr.AvatarMedium, pr.Avatar)
		p.ProfileURL = pr.ProfileURL
		p.SteamID = pr.SteamID
		if p.SteamID == "" && pr.AccountID.Valid {
			p.SteamID = strconv.FormatUint(steam.SteamID64(uint32(pr.AccountID.Value)), 10)
		}
	}
	p.RankTier = resp.RankTier.IntPtr()
	p.LeaderboardRank = resp.LeaderboardRank.IntPtr()
	return p
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
