package scoring

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"clan-points-tracker/internal/core/domain"
)

// Bracket pays Points once a value reaches Min.
type Bracket struct {
	Min    int `yaml:"min"`
	Points int `yaml:"points"`
}

// BossWeight pays Points for every complete group of PerKills kills gained.
type BossWeight struct {
	Boss     domain.Boss `yaml:"boss"`
	PerKills int         `yaml:"per_kills"`
	Points   int         `yaml:"points"`
}

type DiaryPoints struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
	Elite  int `yaml:"elite"`
	All    int `yaml:"all"`
}

type AchievementPoints struct {
	QuestCape    int `yaml:"quest_cape"`
	MusicCape    int `yaml:"music_cape"`
	DiaryCape    int `yaml:"diary_cape"`
	MaxCape      int `yaml:"max_cape"`
	InfernalCape int `yaml:"infernal_cape"`
}

type PetPoints struct {
	Skilling int `yaml:"skilling"`
	Boss     int `yaml:"boss"`
	Raid     int `yaml:"raid"`
}

// Rules holds every weight used by Score. Rules are plain data and are never
// mutated after loading.
type Rules struct {
	TotalLevelBrackets []Bracket         `yaml:"total_level_brackets"`
	First99            int               `yaml:"first_99"`
	Extra99            int               `yaml:"extra_99"`
	MaxTotalLevel      int               `yaml:"max_total_level"`
	MaxTotalBonus      int               `yaml:"max_total_bonus"`
	Bosses             []BossWeight      `yaml:"bosses"`
	FirstKill          int               `yaml:"first_kill"`
	Diaries            DiaryPoints       `yaml:"diaries"`
	Achievements       AchievementPoints `yaml:"achievements"`
	Pets               PetPoints         `yaml:"pets"`
	DonationBrackets   []Bracket         `yaml:"donation_brackets"`
}

func DefaultRules() Rules {
	return Rules{
		TotalLevelBrackets: []Bracket{
			{Min: 0, Points: 25},
			{Min: 1000, Points: 30},
			{Min: 1500, Points: 35},
			{Min: 1750, Points: 40},
			{Min: 2000, Points: 45},
			{Min: 2200, Points: 50},
		},
		First99:       50,
		Extra99:       25,
		MaxTotalLevel: 2277,
		MaxTotalBonus: 200,
		Bosses: []BossWeight{
			{Boss: domain.BossBarrows, PerKills: 100, Points: 10},
			{Boss: domain.BossZulrah, PerKills: 100, Points: 25},
			{Boss: domain.BossVorkath, PerKills: 100, Points: 30},
			{Boss: domain.BossGodWars, PerKills: 100, Points: 40},
			{Boss: domain.BossWilderness, PerKills: 100, Points: 50},
			{Boss: domain.BossJad, PerKills: 1, Points: 25},
			{Boss: domain.BossZuk, PerKills: 1, Points: 150},
			{Boss: domain.BossChambersOfXeric, PerKills: 10, Points: 75},
			{Boss: domain.BossTheatreOfBlood, PerKills: 10, Points: 75},
			{Boss: domain.BossTombsOfAmascut, PerKills: 10, Points: 75},
		},
		FirstKill: 10,
		Diaries:   DiaryPoints{Easy: 5, Medium: 10, Hard: 20, Elite: 40, All: 50},
		Achievements: AchievementPoints{
			QuestCape:    75,
			MusicCape:    25,
			DiaryCape:    100,
			MaxCape:      300,
			InfernalCape: 150,
		},
		Pets: PetPoints{Skilling: 25, Boss: 50, Raid: 75},
		DonationBrackets: []Bracket{
			{Min: 1, Points: 10},
			{Min: 25, Points: 20},
			{Min: 50, Points: 40},
			{Min: 100, Points: 80},
			{Min: 200, Points: 150},
		},
	}
}

// Validate reports every problem in r at once.
func (r Rules) Validate() error {
	var errs []error

	errs = append(errs, validateBrackets("total_level_brackets", r.TotalLevelBrackets)...)
	errs = append(errs, validateBrackets("donation_brackets", r.DonationBrackets)...)

	if len(r.TotalLevelBrackets) > 0 && r.TotalLevelBrackets[0].Min != 0 {
		errs = append(errs, fmt.Errorf("total_level_brackets must start at 0, got %d", r.TotalLevelBrackets[0].Min))
	}

	seen := make(map[domain.Boss]bool, len(r.Bosses))
	for _, w := range r.Bosses {
		if !w.Boss.Known() {
			errs = append(errs, fmt.Errorf("bosses: unknown boss %q", w.Boss))
		}
		if seen[w.Boss] {
			errs = append(errs, fmt.Errorf("bosses: duplicate weight for %q", w.Boss))
		}
		seen[w.Boss] = true
		if w.PerKills < 1 {
			errs = append(errs, fmt.Errorf("bosses: %q per_kills must be at least 1, got %d", w.Boss, w.PerKills))
		}
		if w.Points < 0 {
			errs = append(errs, fmt.Errorf("bosses: %q points must not be negative", w.Boss))
		}
	}

	if r.MaxTotalLevel < 1 {
		errs = append(errs, fmt.Errorf("max_total_level must be positive, got %d", r.MaxTotalLevel))
	}

	fixed := map[string]int{
		"first_99":                   r.First99,
		"extra_99":                   r.Extra99,
		"max_total_bonus":            r.MaxTotalBonus,
		"first_kill":                 r.FirstKill,
		"diaries.easy":               r.Diaries.Easy,
		"diaries.medium":             r.Diaries.Medium,
		"diaries.hard":               r.Diaries.Hard,
		"diaries.elite":              r.Diaries.Elite,
		"diaries.all":                r.Diaries.All,
		"achievements.quest_cape":    r.Achievements.QuestCape,
		"achievements.music_cape":    r.Achievements.MusicCape,
		"achievements.diary_cape":    r.Achievements.DiaryCape,
		"achievements.max_cape":      r.Achievements.MaxCape,
		"achievements.infernal_cape": r.Achievements.InfernalCape,
		"pets.skilling":              r.Pets.Skilling,
		"pets.boss":                  r.Pets.Boss,
		"pets.raid":                  r.Pets.Raid,
	}
	for _, name := range slices.Sorted(maps.Keys(fixed)) {
		if fixed[name] < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, fixed[name]))
		}
	}

	return errors.Join(errs...)
}

// validateBrackets requires strictly increasing bounds and non-decreasing,
// non-negative points so that a higher value never pays less.
func validateBrackets(name string, brackets []Bracket) []error {
	var errs []error
	for i, b := range brackets {
		if b.Min < 0 {
			errs = append(errs, fmt.Errorf("%s[%d]: min must not be negative, got %d", name, i, b.Min))
		}
		if b.Points < 0 {
			errs = append(errs, fmt.Errorf("%s[%d]: points must not be negative, got %d", name, i, b.Points))
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if b.Min <= prev.Min {
			errs = append(errs, fmt.Errorf("%s[%d]: min %d must be greater than %d", name, i, b.Min, prev.Min))
		}
		if b.Points < prev.Points {
			errs = append(errs, fmt.Errorf("%s[%d]: points %d must not be lower than %d", name, i, b.Points, prev.Points))
		}
	}
	return errs
}
