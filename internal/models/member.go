package models

import "time"

type Tier string

const (
	TierBronze      Tier = "bronze"
	TierSilver      Tier = "silver"
	TierGold        Tier = "gold"
	TierPlatinum    Tier = "platinum"
	TierDiamond     Tier = "diamond"
	TierMaster      Tier = "master"
	TierGrandmaster Tier = "grandmaster"
)

// TierOrder lists tiers from lowest to highest. Range checks and the
// balancer both rely on this ordering.
var TierOrder = []Tier{
	TierBronze, TierSilver, TierGold, TierPlatinum,
	TierDiamond, TierMaster, TierGrandmaster,
}

var tierNames = map[Tier]string{
	TierBronze:      "브론즈",
	TierSilver:      "실버",
	TierGold:        "골드",
	TierPlatinum:    "플래티넘",
	TierDiamond:     "다이아",
	TierMaster:      "마스터",
	TierGrandmaster: "그랜드마스터",
}

func (t Tier) DisplayName() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return string(t)
}

// Rank returns the tier's position in TierOrder, or -1 for an unknown tier.
func (t Tier) Rank() int {
	for i, tier := range TierOrder {
		if tier == t {
			return i
		}
	}
	return -1
}

func ParseTier(s string) (Tier, bool) {
	t := Tier(s)
	if _, ok := tierNames[t]; ok {
		return t, true
	}
	for tier, name := range tierNames {
		if name == s {
			return tier, true
		}
	}
	return "", false
}

// TierInRange reports whether t falls inside [min, max] inclusive.
func TierInRange(t, min, max Tier) bool {
	r := t.Rank()
	return r >= 0 && r >= min.Rank() && r <= max.Rank()
}

type Member struct {
	GuildID   string    `json:"guild_id" db:"guild_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	BattleTag string    `json:"battle_tag" db:"battle_tag"`
	Tier      Tier      `json:"tier" db:"tier"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`
}

type GuildSettings struct {
	GuildID  string `json:"guild_id" db:"guild_id"`
	ClanName string `json:"clan_name" db:"clan_name"`
}
