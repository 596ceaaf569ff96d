// Package snapshot turns loosely structured progress documents into the
// canonical domain.StatsSnapshot. Normalization is total: missing, unknown or
// malformed sections default to zero values instead of failing.
package snapshot

import (
	"strconv"
	"strings"

	"clan-points-tracker/internal/core/domain"

	"github.com/tidwall/gjson"
)

var (
	skillPaths   = []string{"latestSnapshot.data.skills", "snapshot.data.skills", "data.skills", "skills"}
	bossPaths    = []string{"latestSnapshot.data.bosses", "snapshot.data.bosses", "data.bosses", "bosses", "boss_kills"}
	diaryPaths   = []string{"diaries", "achievement_diaries", "data.diaries"}
	petPaths     = []string{"pets", "data.pets"}
	combatPaths  = []string{"combatLevel", "combat_level", "skills.combat_level", "data.combat_level"}
	levelFields  = []string{"level", "lvl"}
	killFields   = []string{"kills", "kc", "score"}
	countFields  = []string{"completed", "count", "value"}
	overallSkill = "overall"
)

// achievementFlag lists every raw spelling that counts as the same milestone.
type achievementFlag struct {
	keys  []string
	names []string
	set   func(*domain.Achievements)
}

var achievementFlags = []achievementFlag{
	{
		keys:  []string{"quest_cape", "questCape", "capes.quest"},
		names: []string{"quest cape", "quest point cape"},
		set:   func(a *domain.Achievements) { a.QuestCape = true },
	},
	{
		keys:  []string{"music_cape", "musicCape", "capes.music"},
		names: []string{"music cape"},
		set:   func(a *domain.Achievements) { a.MusicCape = true },
	},
	{
		keys:  []string{"diary_cape", "diaryCape", "achievement_diary_cape", "capes.diary"},
		names: []string{"diary cape", "achievement diary cape"},
		set:   func(a *domain.Achievements) { a.DiaryCape = true },
	},
	{
		keys:  []string{"max_cape", "maxCape", "capes.max"},
		names: []string{"max cape", "maxed overall"},
		set:   func(a *domain.Achievements) { a.MaxCape = true },
	},
	{
		keys:  []string{"infernal_cape", "infernalCape", "capes.infernal"},
		names: []string{"infernal cape"},
		set:   func(a *domain.Achievements) { a.InfernalCape = true },
	},
}

// Normalize never fails; an unparsable document yields the zero snapshot
// with empty maps.
func Normalize(raw []byte) domain.StatsSnapshot {
	doc := gjson.Result{}
	if gjson.ValidBytes(raw) {
		doc = gjson.ParseBytes(raw)
	}
	if !doc.IsObject() {
		doc = gjson.Result{}
	}

	snap := domain.StatsSnapshot{
		Skills: extractSkills(doc),
		Bosses: extractBosses(doc),
		Pets:   extractPets(doc),
	}
	snap.Achievements = extractAchievements(doc, snap.Skills)
	snap.Diaries = extractDiaries(doc, snap.Achievements)
	return snap
}

func extractSkills(doc gjson.Result) map[string]int {
	skills := map[string]int{
		domain.SkillTotalLevel:  0,
		domain.SkillCombatLevel: 0,
	}

	section := firstObject(doc, skillPaths...)
	section.ForEach(func(key, value gjson.Result) bool {
		name := normalizeKey(key.String())
		level, ok := intValue(value, levelFields...)
		if !ok {
			return true
		}
		switch {
		case name == overallSkill:
			skills[domain.SkillTotalLevel] = level
		case domain.IsSyntheticSkill(name):
			// Synthetic keys are derived below, never copied from the source.
		default:
			skills[name] = level
		}
		return true
	})

	skills[domain.SkillCombatLevel] = combatLevel(doc, skills)
	return skills
}

func combatLevel(doc gjson.Result, skills map[string]int) int {
	for _, path := range combatPaths {
		if level, ok := intValue(doc.Get(path), levelFields...); ok && level > 0 {
			return level
		}
	}

	combatSkills := []string{"attack", "strength", "defence", "hitpoints", "ranged", "magic", "prayer"}
	present := false
	for _, name := range combatSkills {
		if _, ok := skills[name]; ok {
			present = true
			break
		}
	}
	if !present {
		return 0
	}

	level := func(name string, fallback int) int {
		if v, ok := skills[name]; ok && v > 0 {
			return v
		}
		return fallback
	}

	base := 0.25 * float64(level("defence", 1)+level("hitpoints", 10)+level("prayer", 1)/2)
	melee := 0.325 * float64(level("attack", 1)+level("strength", 1))
	ranged := 0.325 * float64(level("ranged", 1)*3/2)
	magic := 0.325 * float64(level("magic", 1)*3/2)
	return int(base + max(melee, ranged, magic))
}

func extractBosses(doc gjson.Result) map[domain.Boss]int {
	bosses := make(map[domain.Boss]int)

	section := firstObject(doc, bossPaths...)
	section.ForEach(func(key, value gjson.Result) bool {
		boss := canonicalBoss(key.String())
		if boss == "" {
			return true
		}
		kills, ok := intValue(value, killFields...)
		if !ok {
			return true
		}
		bosses[boss] += kills
		return true
	})

	return bosses
}

func extractDiaries(doc gjson.Result, achievements domain.Achievements) domain.Diaries {
	section := firstObject(doc, diaryPaths...)

	count := func(tier string) int {
		n, _ := intValue(section.Get(tier), countFields...)
		return n
	}

	diaries := domain.Diaries{
		Easy:   count("easy"),
		Medium: count("medium"),
		Hard:   count("hard"),
		Elite:  count("elite"),
	}

	diaries.AllCompleted = achievements.DiaryCape ||
		anyTrue(section, "all_completed", "allCompleted", "all")

	if diaries.AllCompleted {
		diaries.Easy = max(diaries.Easy, 1)
		diaries.Medium = max(diaries.Medium, 1)
		diaries.Hard = max(diaries.Hard, 1)
		diaries.Elite = max(diaries.Elite, 1)
	}

	return diaries
}

func extractAchievements(doc gjson.Result, skills map[string]int) domain.Achievements {
	var achievements domain.Achievements

	section := doc.Get("achievements")
	listed := achievementNames(section)

	for _, flag := range achievementFlags {
		if flagged(doc, section, listed, flag) {
			flag.set(&achievements)
		}
	}

	if allSkillsMaxed(skills) {
		achievements.MaxCape = true
	}

	return achievements
}

func flagged(doc, section gjson.Result, listed map[string]bool, flag achievementFlag) bool {
	if section.IsObject() && anyTrue(section, flag.keys...) {
		return true
	}
	if anyTrue(doc, flag.keys...) {
		return true
	}
	for _, name := range flag.names {
		if listed[name] {
			return true
		}
	}
	return false
}

// achievementNames collects milestone names from list-shaped achievement
// sections, e.g. ["Quest cape"] or [{"name": "Maxed Overall"}].
func achievementNames(section gjson.Result) map[string]bool {
	names := make(map[string]bool)
	if !section.IsArray() {
		return names
	}
	section.ForEach(func(_, value gjson.Result) bool {
		name := value.String()
		if value.IsObject() {
			name = value.Get("name").String()
		}
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			names[name] = true
		}
		return true
	})
	return names
}

func allSkillsMaxed(skills map[string]int) bool {
	for _, name := range realSkills {
		if skills[name] < domain.MaxSkillLevel {
			return false
		}
	}
	return true
}

func extractPets(doc gjson.Result) domain.Pets {
	section := firstObject(doc, petPaths...)

	count := func(keys ...string) int {
		for _, key := range keys {
			if n, ok := intValue(section.Get(key), countFields...); ok {
				return n
			}
		}
		return 0
	}

	return domain.Pets{
		Skilling: count("skilling"),
		Boss:     count("boss", "bosses"),
		Raid:     count("raid", "raids"),
	}
}

// firstObject returns the first path that resolves to a JSON object, or an
// empty result that iterates over nothing.
func firstObject(doc gjson.Result, paths ...string) gjson.Result {
	for _, path := range paths {
		if r := doc.Get(path); r.IsObject() {
			return r
		}
	}
	return gjson.Result{}
}

// intValue reads a non-negative integer from a bare scalar or from the first
// matching field of an object.
func intValue(v gjson.Result, fields ...string) (int, bool) {
	if v.IsObject() {
		for _, field := range fields {
			if f := v.Get(field); f.Exists() {
				return scalarInt(f)
			}
		}
		return 0, false
	}
	return scalarInt(v)
}

func scalarInt(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return max(int(v.Int()), 0), true
	case gjson.String:
		n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(v.Str), ",", ""))
		if err != nil {
			return 0, false
		}
		return max(n, 0), true
	}
	return 0, false
}

func anyTrue(section gjson.Result, keys ...string) bool {
	for _, key := range keys {
		if truthy(section.Get(key)) {
			return true
		}
	}
	return false
}

func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Int() != 0
	case gjson.String:
		b, err := strconv.ParseBool(strings.TrimSpace(v.Str))
		return err == nil && b
	}
	return false
}
