package domain

// Boss is a canonical boss identifier. Raw keys from progress providers are
// mapped onto this vocabulary by the snapshot normalizer.
type Boss string

const (
	BossBarrows            Boss = "barrows"
	BossZulrah             Boss = "zulrah"
	BossVorkath            Boss = "vorkath"
	BossGodWars            Boss = "gwd"
	BossWilderness         Boss = "wildy"
	BossJad                Boss = "jad"
	BossZuk                Boss = "zuk"
	BossChambersOfXeric    Boss = "cox"
	BossTheatreOfBlood     Boss = "tob"
	BossTombsOfAmascut     Boss = "toa"
	BossGrotesqueGuardians Boss = "grotesque_guardians"
)

var knownBosses = map[Boss]bool{
	BossBarrows:            true,
	BossZulrah:             true,
	BossVorkath:            true,
	BossGodWars:            true,
	BossWilderness:         true,
	BossJad:                true,
	BossZuk:                true,
	BossChambersOfXeric:    true,
	BossTheatreOfBlood:     true,
	BossTombsOfAmascut:     true,
	BossGrotesqueGuardians: true,
}

// Known reports whether b belongs to the canonical vocabulary. Unknown keys
// survive normalization but are never scored.
func (b Boss) Known() bool {
	return knownBosses[b]
}

// KnownBosses returns the canonical vocabulary in a stable order.
func KnownBosses() []Boss {
	return []Boss{
		BossBarrows, BossZulrah, BossVorkath, BossGodWars, BossWilderness,
		BossJad, BossZuk, BossChambersOfXeric, BossTheatreOfBlood,
		BossTombsOfAmascut, BossGrotesqueGuardians,
	}
}
