package opendota

import (
	"bytes"
	"encoding/json"
	"math"
)

// OptInt is a leniently decoded JSON number. Anything that is not a finite
// number (null, strings, booleans, objects) decodes to an invalid value
// instead of failing the whole response.
type OptInt struct {
	Value int64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptInt) UnmarshalJSON(b []byte) error {
	*o = OptInt{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	o.Value = int64(f)
	o.Valid = true
	return nil
}

// IntPtr returns a pointer to the value as int, or nil when invalid.
func (o OptInt) IntPtr() *int {
	if !o.Valid {
		return nil
	}
	v := int(o.Value)
	return &v
}

// OptBool is a leniently decoded JSON boolean.
type OptBool struct {
	Value bool
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptBool) UnmarshalJSON(b []byte) error {
	*o = OptBool{}
	switch string(bytes.TrimSpace(b)) {
	case "true":
		o.Value, o.Valid = true, true
	case "false":
		o.Value, o.Valid = false, true
	}
	return nil
}

// Hero is one entry of GET /heroes.
type Hero struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name"`
}

// PlayerResponse holds the fields we need from GET /players/{account_id}.
type PlayerResponse struct {
	Profile *struct {
		AccountID    OptInt `json:"account_id"`
		PersonaName  string `json:"personaname"`
		AvatarFull   string `json:"avatarfull"`
		AvatarMedium string `json:"avatarmedium"`
		Avatar       string `json:"avatar"`
		ProfileURL   string `json:"profileurl"`
		SteamID      string `json:"steamid"`
	} `json:"profile"`
	RankTier        OptInt `json:"rank_tier"`
	LeaderboardRank OptInt `json:"leaderboard_rank"`
}

// Match is one entry from GET /players/{account_id}/matches. Every field is
// optional; validation happens in the parser package.
type Match struct {
	MatchID    OptInt  `json:"match_id"`
	PlayerSlot OptInt  `json:"player_slot"`
	RadiantWin OptBool `json:"radiant_win"`
	StartTime  OptInt  `json:"start_time"`
	Duration   OptInt  `json:"duration"`
	GameMode   OptInt  `json:"game_mode"`
	LobbyType  OptInt  `json:"lobby_type"`
	HeroID     OptInt  `json:"hero_id"`
	Kills      OptInt  `json:"kills"`
	Deaths     OptInt  `json:"deaths"`
	Assists    OptInt  `json:"assists"`
	PartySize  OptInt  `json:"party_size"`
}
