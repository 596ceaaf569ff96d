package snapshot

import (
	"strings"

	"clan-points-tracker/internal/core/domain"
)

// realSkills is the full skill list of the game; a player with every entry at
// 99 holds the max cape even when no provider reports the flag.
var realSkills = []string{
	"attack", "defence", "strength", "hitpoints", "ranged", "prayer", "magic",
	"cooking", "woodcutting", "fletching", "fishing", "firemaking", "crafting",
	"smithing", "mining", "herblore", "agility", "thieving", "slayer",
	"farming", "runecraft", "hunter", "construction",
}

// bossAliases maps normalized raw keys onto the canonical vocabulary. Several
// raw keys pointing at one boss are summed into a single entry.
var bossAliases = map[string]domain.Boss{
	"barrows":        domain.BossBarrows,
	"barrows_chests": domain.BossBarrows,

	"zulrah":  domain.BossZulrah,
	"vorkath": domain.BossVorkath,

	"gwd":               domain.BossGodWars,
	"general_graardor":  domain.BossGodWars,
	"kreearra":          domain.BossGodWars,
	"kree_arra":         domain.BossGodWars,
	"commander_zilyana": domain.BossGodWars,
	"kril_tsutsaroth":   domain.BossGodWars,

	"wildy":     domain.BossWilderness,
	"callisto":  domain.BossWilderness,
	"artio":     domain.BossWilderness,
	"venenatis": domain.BossWilderness,
	"spindel":   domain.BossWilderness,
	"vetion":    domain.BossWilderness,
	"calvarion": domain.BossWilderness,

	"jad":       domain.BossJad,
	"tztok_jad": domain.BossJad,
	"zuk":       domain.BossZuk,
	"tzkal_zuk": domain.BossZuk,

	"cox":                              domain.BossChambersOfXeric,
	"chambers_of_xeric":                domain.BossChambersOfXeric,
	"chambers_of_xeric_challenge_mode": domain.BossChambersOfXeric,
	"tob":                              domain.BossTheatreOfBlood,
	"theatre_of_blood":                 domain.BossTheatreOfBlood,
	"theatre_of_blood_hard_mode":       domain.BossTheatreOfBlood,
	"toa":                              domain.BossTombsOfAmascut,
	"tombs_of_amascut":                 domain.BossTombsOfAmascut,
	"tombs_of_amascut_expert":          domain.BossTombsOfAmascut,
	"tombs_of_amascut_expert_mode":     domain.BossTombsOfAmascut,

	"grotesque_guardians": domain.BossGrotesqueGuardians,
	"dusk":                domain.BossGrotesqueGuardians,
	"dawn":                domain.BossGrotesqueGuardians,
}

var keyReplacer = strings.NewReplacer(" ", "_", "-", "_", "'", "", ".", "", ":", "")

// normalizeKey lower-cases a raw key and folds separators so that
// "Kree'Arra", "kree-arra" and "kreearra" meet in the alias table. Runs of
// separators collapse to one underscore, so hiscores labels such as
// "Theatre of Blood: Hard Mode" match their API spelling.
func normalizeKey(raw string) string {
	key := keyReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	return strings.Trim(key, "_")
}

func canonicalBoss(raw string) domain.Boss {
	key := normalizeKey(raw)
	if boss, ok := bossAliases[key]; ok {
		return boss
	}
	return domain.Boss(key)
}
