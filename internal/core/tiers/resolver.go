// Package tiers resolves rank, donator and badge classifications and
// reconciles them against the tags a member currently holds.
package tiers

import "clan-points-tracker/internal/core/domain"

// Classification is the derived tier set for one player. It is recomputed on
// every scoring pass and never persisted.
type Classification struct {
	Rank    RankTier
	Badges  []BadgeRule
	Donator *DonatorTier
}

func (t Tables) Resolve(score int, snap domain.StatsSnapshot, donationTotal int) Classification {
	c := Classification{
		Rank:   t.RankTier(score),
		Badges: t.PrestigeBadges(snap),
	}
	if d, ok := t.DonatorTier(donationTotal); ok {
		c.Donator = &d
	}
	return c
}

// RankTier returns the last tier whose threshold score reaches. Negative
// scores resolve to the first tier.
func (t Tables) RankTier(score int) RankTier {
	if len(t.Ranks) == 0 {
		return RankTier{}
	}
	tier := t.Ranks[0]
	for _, r := range t.Ranks[1:] {
		if score >= r.Min {
			tier = r
		}
	}
	return tier
}

func (t Tables) DonatorTier(amount int) (DonatorTier, bool) {
	for _, d := range t.Donators {
		if d.Contains(amount) {
			return d, true
		}
	}
	return DonatorTier{}, false
}

// PrestigeBadges returns every badge whose predicate holds, in table order.
func (t Tables) PrestigeBadges(snap domain.StatsSnapshot) []BadgeRule {
	var earned []BadgeRule
	for _, b := range t.Badges {
		if b.Holds(snap) {
			earned = append(earned, b)
		}
	}
	return earned
}

func (b BadgeRule) Holds(snap domain.StatsSnapshot) bool {
	switch b.Kind {
	case BadgeAchievement:
		if flag, ok := achievementTargets[b.Target]; ok {
			return flag(snap.Achievements)
		}
	case BadgeDiary:
		if count, ok := diaryTargets[b.Target]; ok {
			return count(snap.Diaries) >= b.Min
		}
	case BadgeSkill:
		return snap.Level(b.Target) >= b.Min
	case BadgeAnySkill:
		for name, level := range snap.Skills {
			if !domain.IsSyntheticSkill(name) && level >= b.Min {
				return true
			}
		}
	case BadgeAllSkills:
		lowest, ok := snap.MinSkillLevel()
		return ok && lowest >= b.Min
	case BadgeBoss:
		return snap.Kills(domain.Boss(b.Target)) >= b.Min
	case BadgePets:
		return snap.Pets.Total() >= b.Min
	}
	return false
}
