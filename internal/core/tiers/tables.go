package tiers

import (
	"errors"
	"fmt"

	"clan-points-tracker/internal/core/domain"
)

type RankTier struct {
	ID  string `yaml:"id"`
	Tag string `yaml:"tag"`
	Min int    `yaml:"min"`
}

// DonatorTier covers donation totals in [Min, Max). Max 0 leaves the interval
// open.
type DonatorTier struct {
	ID  string `yaml:"id"`
	Tag string `yaml:"tag"`
	Min int    `yaml:"min"`
	Max int    `yaml:"max"`
}

func (d DonatorTier) Contains(amount int) bool {
	return amount >= d.Min && (d.Max == 0 || amount < d.Max)
}

type BadgeKind string

const (
	BadgeAchievement BadgeKind = "achievement"
	BadgeSkill       BadgeKind = "skill"
	BadgeAnySkill    BadgeKind = "any_skill"
	BadgeAllSkills   BadgeKind = "all_skills"
	BadgeBoss        BadgeKind = "boss"
	BadgePets        BadgeKind = "pets"
	BadgeDiary       BadgeKind = "diary"
)

// BadgeRule is a named predicate over a snapshot. Target names the
// achievement flag, skill, boss or diary tier the rule reads; it is empty for
// kinds that look at the whole snapshot.
type BadgeRule struct {
	ID     string    `yaml:"id"`
	Tag    string    `yaml:"tag"`
	Kind   BadgeKind `yaml:"kind"`
	Target string    `yaml:"target"`
	Min    int       `yaml:"min"`
}

// Tables is immutable configuration passed to the resolver functions.
type Tables struct {
	Ranks    []RankTier    `yaml:"ranks"`
	Donators []DonatorTier `yaml:"donators"`
	Badges   []BadgeRule   `yaml:"badges"`
}

func DefaultTables() Tables {
	return Tables{
		Ranks: []RankTier{
			{ID: "bronze", Tag: "Bronze", Min: 0},
			{ID: "iron", Tag: "Iron", Min: 1000},
			{ID: "rune", Tag: "Rune", Min: 2500},
			{ID: "dragon", Tag: "Dragon", Min: 5000},
			{ID: "grandmaster", Tag: "Grandmaster", Min: 10000},
			{ID: "legend", Tag: "Legend", Min: 20000},
		},
		Donators: []DonatorTier{
			{ID: "supporter", Tag: "Supporter", Min: 1, Max: 50},
			{ID: "patron", Tag: "Patron", Min: 50, Max: 100},
			{ID: "benefactor", Tag: "Benefactor", Min: 100, Max: 200},
			{ID: "philanthropist", Tag: "Philanthropist", Min: 200},
		},
		Badges: []BadgeRule{
			{ID: "quester", Tag: "Quester", Kind: BadgeAchievement, Target: "quest_cape"},
			{ID: "musician", Tag: "Musician", Kind: BadgeAchievement, Target: "music_cape"},
			{ID: "achiever", Tag: "Achiever", Kind: BadgeAchievement, Target: "diary_cape"},
			{ID: "maxed", Tag: "Maxed", Kind: BadgeAchievement, Target: "max_cape"},
			{ID: "tzkal", Tag: "TzKal", Kind: BadgeAchievement, Target: "infernal_cape"},
			{ID: "elite", Tag: "Elite", Kind: BadgeDiary, Target: "elite", Min: 1},
			{ID: "maxed_combat", Tag: "126", Kind: BadgeSkill, Target: domain.SkillCombatLevel, Min: 126},
			{ID: "master", Tag: "Master", Kind: BadgeSkill, Target: domain.SkillTotalLevel, Min: 2277},
			{ID: "skillcape", Tag: "Skillcape", Kind: BadgeAnySkill, Min: 99},
			{ID: "braindead", Tag: "Braindead", Kind: BadgeAllSkills, Min: 90},
			{ID: "enforcer", Tag: "Barrows/Enforcer", Kind: BadgeBoss, Target: string(domain.BossBarrows), Min: 1},
			{ID: "tztok", Tag: "TzTok", Kind: BadgeBoss, Target: string(domain.BossJad), Min: 1},
			{ID: "pet_hunter", Tag: "Pet Hunter", Kind: BadgePets, Min: 30},
		},
	}
}

var achievementTargets = map[string]func(domain.Achievements) bool{
	"quest_cape":    func(a domain.Achievements) bool { return a.QuestCape },
	"music_cape":    func(a domain.Achievements) bool { return a.MusicCape },
	"diary_cape":    func(a domain.Achievements) bool { return a.DiaryCape },
	"max_cape":      func(a domain.Achievements) bool { return a.MaxCape },
	"infernal_cape": func(a domain.Achievements) bool { return a.InfernalCape },
}

var diaryTargets = map[string]func(domain.Diaries) int{
	"easy":   func(d domain.Diaries) int { return d.Easy },
	"medium": func(d domain.Diaries) int { return d.Medium },
	"hard":   func(d domain.Diaries) int { return d.Hard },
	"elite":  func(d domain.Diaries) int { return d.Elite },
}

// Validate checks that the rank and donator tables are total, that tags are
// unique across every group and that each badge rule can be evaluated.
func (t Tables) Validate() error {
	var errs []error

	if len(t.Ranks) == 0 {
		errs = append(errs, errors.New("ranks: at least one tier is required"))
	} else if t.Ranks[0].Min != 0 {
		errs = append(errs, fmt.Errorf("ranks: first tier must start at 0, got %d", t.Ranks[0].Min))
	}
	for i := 1; i < len(t.Ranks); i++ {
		if t.Ranks[i].Min <= t.Ranks[i-1].Min {
			errs = append(errs, fmt.Errorf("ranks: %q must start above %q", t.Ranks[i].ID, t.Ranks[i-1].ID))
		}
	}

	for i, d := range t.Donators {
		if i == 0 && d.Min < 1 {
			errs = append(errs, fmt.Errorf("donators: first tier must start at 1 or more, got %d", d.Min))
		}
		last := i == len(t.Donators)-1
		switch {
		case last && d.Max != 0:
			errs = append(errs, fmt.Errorf("donators: last tier %q must be open ended", d.ID))
		case !last && d.Max <= d.Min:
			errs = append(errs, fmt.Errorf("donators: %q must end above %d", d.ID, d.Min))
		}
		if i > 0 && d.Min != t.Donators[i-1].Max {
			errs = append(errs, fmt.Errorf("donators: %q must start where %q ends", d.ID, t.Donators[i-1].ID))
		}
	}

	for _, b := range t.Badges {
		if err := b.validate(); err != nil {
			errs = append(errs, err)
		}
	}

	seen := make(map[string]bool)
	for _, tag := range t.AllTags() {
		if tag == "" {
			errs = append(errs, errors.New("tags must not be empty"))
			continue
		}
		if seen[tag] {
			errs = append(errs, fmt.Errorf("tag %q is used more than once", tag))
		}
		seen[tag] = true
	}

	return errors.Join(errs...)
}

func (b BadgeRule) validate() error {
	if b.Min < 0 {
		return fmt.Errorf("badges: %q min must not be negative", b.ID)
	}
	switch b.Kind {
	case BadgeAchievement:
		if _, ok := achievementTargets[b.Target]; !ok {
			return fmt.Errorf("badges: %q has unknown achievement %q", b.ID, b.Target)
		}
	case BadgeDiary:
		if _, ok := diaryTargets[b.Target]; !ok {
			return fmt.Errorf("badges: %q has unknown diary tier %q", b.ID, b.Target)
		}
	case BadgeSkill, BadgeBoss:
		if b.Target == "" {
			return fmt.Errorf("badges: %q needs a target", b.ID)
		}
	case BadgeAnySkill, BadgeAllSkills, BadgePets:
	default:
		return fmt.Errorf("badges: %q has unknown kind %q", b.ID, b.Kind)
	}
	return nil
}

// AllTags lists every tag the tables can assign, ranks first.
func (t Tables) AllTags() []string {
	tags := make([]string, 0, len(t.Ranks)+len(t.Donators)+len(t.Badges))
	for _, r := range t.Ranks {
		tags = append(tags, r.Tag)
	}
	for _, d := range t.Donators {
		tags = append(tags, d.Tag)
	}
	for _, b := range t.Badges {
		tags = append(tags, b.Tag)
	}
	return tags
}
