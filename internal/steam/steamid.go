// Package steam converts between the Steam identifier formats players paste
// and the 32-bit account ids OpenDota is keyed on.
package steam

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// IDBase is the SteamID64 of account 0 in the public individual universe.
// The account id is the low 32 bits of a SteamID64.
const IDBase uint64 = 76561197960265728

var (
	steam3Re = regexp.MustCompile(`^\[U:1:(\d+)\]$`)
	steam2Re = regexp.MustCompile(`^STEAM_[0-5]:([01]):(\d+)$`)
)

// SteamID64 returns the SteamID64 of an account id.
func SteamID64(accountID uint32) uint64 {
	return IDBase + uint64(accountID)
}

// AccountID extracts the account id from a SteamID64. It fails for values
// outside the individual-account range.
func AccountID(steamID64 uint64) (uint32, error) {
	if steamID64 < IDBase || steamID64-IDBase > 0xFFFFFFFF {
		return 0, fmt.Errorf("steamid64 %d out of range", steamID64)
	}
	return uint32(steamID64 - IDBase), nil
}

// Normalize turns a SteamID64, SteamID3 ("[U:1:N]") or legacy SteamID
// ("STEAM_0:Y:Z") into a decimal account id. Anything else, including a
// plain account id, is returned trimmed and unchanged.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if m := steam3Re.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	if m := steam2Re.FindStringSubmatch(id); m != nil {
		y, _ := strconv.ParseUint(m[1], 10, 32)
		z, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return id
		}
		return strconv.FormatUint(z*2+y, 10)
	}
	if n, err := strconv.ParseUint(id, 10, 64); err == nil && n >= IDBase {
		if acc, err := AccountID(n); err == nil {
			return strconv.FormatUint(uint64(acc), 10)
		}
	}
	return id
}
