package domain

// Synthetic skill keys stored next to the real skills.
const (
	SkillTotalLevel  = "total_level"
	SkillCombatLevel = "combat_level"
)

const MaxSkillLevel = 99

type Diaries struct {
	Easy         int  `json:"easy"`
	Medium       int  `json:"medium"`
	Hard         int  `json:"hard"`
	Elite        int  `json:"elite"`
	AllCompleted bool `json:"all_completed"`
}

type Achievements struct {
	QuestCape    bool `json:"quest_cape"`
	MusicCape    bool `json:"music_cape"`
	DiaryCape    bool `json:"diary_cape"`
	MaxCape      bool `json:"max_cape"`
	InfernalCape bool `json:"infernal_cape"`
}

type Pets struct {
	Skilling int `json:"skilling"`
	Boss     int `json:"boss"`
	Raid     int `json:"raid"`
}

func (p Pets) Total() int {
	return p.Skilling + p.Boss + p.Raid
}

// StatsSnapshot is the canonical, point-in-time view of a player's progress.
// Values are produced by the snapshot normalizer and treated as read-only
// afterwards; all counts are non-negative.
type StatsSnapshot struct {
	Skills        map[string]int `json:"skills"`
	Bosses        map[Boss]int   `json:"bosses"`
	Diaries       Diaries        `json:"diaries"`
	Achievements  Achievements   `json:"achievements"`
	Pets          Pets           `json:"pets"`
	DonationTotal int            `json:"donation_total"`
}

func IsSyntheticSkill(name string) bool {
	return name == SkillTotalLevel || name == SkillCombatLevel
}

func (s StatsSnapshot) Level(skill string) int {
	return s.Skills[skill]
}

func (s StatsSnapshot) TotalLevel() int {
	return s.Skills[SkillTotalLevel]
}

func (s StatsSnapshot) CombatLevel() int {
	return s.Skills[SkillCombatLevel]
}

func (s StatsSnapshot) Kills(b Boss) int {
	return s.Bosses[b]
}

// Count99s counts real skills at or above level 99.
func (s StatsSnapshot) Count99s() int {
	count := 0
	for name, level := range s.Skills {
		if IsSyntheticSkill(name) {
			continue
		}
		if level >= MaxSkillLevel {
			count++
		}
	}
	return count
}

func (s StatsSnapshot) Has99() bool {
	return s.Count99s() > 0
}

// Extra99s is the number of 99s beyond the first.
func (s StatsSnapshot) Extra99s() int {
	return max(s.Count99s()-1, 0)
}

// MinSkillLevel returns the lowest real skill level and false when the
// snapshot carries no real skills.
func (s StatsSnapshot) MinSkillLevel() (int, bool) {
	lowest, found := 0, false
	for name, level := range s.Skills {
		if IsSyntheticSkill(name) {
			continue
		}
		if !found || level < lowest {
			lowest, found = level, true
		}
	}
	return lowest, found
}

// WithDonationTotal returns a copy carrying the administrator-entered
// donation total. The maps are shared since snapshots are never mutated.
func (s StatsSnapshot) WithDonationTotal(total int) StatsSnapshot {
	s.DonationTotal = max(total, 0)
	return s
}
