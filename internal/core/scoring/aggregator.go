// Package scoring computes clan points from normalized snapshots. Every axis
// is measured as a clamped delta against the enrollment baseline, except
// donations which are scored on the absolute total.
package scoring

import "clan-points-tracker/internal/core/domain"

// Breakdown is the contribution of each scoring axis.
type Breakdown struct {
	TotalLevel   int
	Skill99s     int
	MaxTotal     int
	Bosses       int
	FirstKills   int
	Diaries      int
	Achievements int
	Pets         int
	Donation     int
}

func (b Breakdown) Total() int {
	return b.Progress() + b.Donation
}

// Progress is the total without the donation contribution.
func (b Breakdown) Progress() int {
	return b.TotalLevel + b.Skill99s + b.MaxTotal + b.Bosses + b.FirstKills +
		b.Diaries + b.Achievements + b.Pets
}

// Score evaluates current against baseline. A nil baseline scores current
// absolutely, as if every milestone had just been reached.
func Score(rules Rules, current domain.StatsSnapshot, baseline *domain.StatsSnapshot) Breakdown {
	base := domain.StatsSnapshot{}
	if baseline != nil {
		base = *baseline
	}

	return Breakdown{
		TotalLevel:   totalLevelPoints(rules.TotalLevelBrackets, current.TotalLevel(), baseline),
		Skill99s:     skill99Points(rules, current, base),
		MaxTotal:     once(reached(current.TotalLevel(), rules.MaxTotalLevel), reached(base.TotalLevel(), rules.MaxTotalLevel), rules.MaxTotalBonus),
		Bosses:       bossPoints(rules.Bosses, current, base),
		FirstKills:   firstKillPoints(rules.FirstKill, current, base),
		Diaries:      diaryPoints(rules.Diaries, current.Diaries, base.Diaries),
		Achievements: achievementPoints(rules.Achievements, current.Achievements, base.Achievements),
		Pets:         petPoints(rules.Pets, current.Pets, base.Pets),
		Donation:     DonationPoints(rules.DonationBrackets, current.DonationTotal),
	}
}

// DonationPoints returns the bracket payout for a cumulative donation total.
func DonationPoints(brackets []Bracket, total int) int {
	if i := bracketIndex(brackets, total); i >= 0 {
		return brackets[i].Points
	}
	return 0
}

// totalLevelPoints pays each bracket above the baseline's bracket exactly
// once, so crossing one boundary never pays two brackets.
func totalLevelPoints(brackets []Bracket, level int, baseline *domain.StatsSnapshot) int {
	cur := bracketIndex(brackets, level)
	if baseline == nil {
		if cur < 0 {
			return 0
		}
		return brackets[cur].Points
	}

	points := 0
	for i := bracketIndex(brackets, baseline.TotalLevel()) + 1; i <= cur; i++ {
		points += brackets[i].Points
	}
	return points
}

func skill99Points(rules Rules, current, base domain.StatsSnapshot) int {
	points := once(current.Has99(), base.Has99(), rules.First99)
	points += delta(current.Extra99s(), base.Extra99s()) * rules.Extra99
	return points
}

func bossPoints(weights []BossWeight, current, base domain.StatsSnapshot) int {
	points := 0
	for _, w := range weights {
		if w.PerKills < 1 {
			continue
		}
		gained := delta(current.Kills(w.Boss), base.Kills(w.Boss))
		points += gained / w.PerKills * w.Points
	}
	return points
}

func firstKillPoints(bonus int, current, base domain.StatsSnapshot) int {
	points := 0
	for _, boss := range domain.KnownBosses() {
		points += once(current.Kills(boss) > 0, base.Kills(boss) > 0, bonus)
	}
	return points
}

func diaryPoints(p DiaryPoints, current, base domain.Diaries) int {
	return once(current.Easy > 0, base.Easy > 0, p.Easy) +
		once(current.Medium > 0, base.Medium > 0, p.Medium) +
		once(current.Hard > 0, base.Hard > 0, p.Hard) +
		once(current.Elite > 0, base.Elite > 0, p.Elite) +
		once(current.AllCompleted, base.AllCompleted, p.All)
}

func achievementPoints(p AchievementPoints, current, base domain.Achievements) int {
	return once(current.QuestCape, base.QuestCape, p.QuestCape) +
		once(current.MusicCape, base.MusicCape, p.MusicCape) +
		once(current.DiaryCape, base.DiaryCape, p.DiaryCape) +
		once(current.MaxCape, base.MaxCape, p.MaxCape) +
		once(current.InfernalCape, base.InfernalCape, p.InfernalCape)
}

func petPoints(p PetPoints, current, base domain.Pets) int {
	return delta(current.Skilling, base.Skilling)*p.Skilling +
		delta(current.Boss, base.Boss)*p.Boss +
		delta(current.Raid, base.Raid)*p.Raid
}

// bracketIndex returns the last bracket whose Min is reached, or -1.
func bracketIndex(brackets []Bracket, value int) int {
	idx := -1
	for i, b := range brackets {
		if value >= b.Min {
			idx = i
		}
	}
	return idx
}

func delta(current, base int) int {
	return max(current-base, 0)
}

// once pays bonus only on a false to true transition.
func once(now, before bool, bonus int) int {
	if now && !before {
		return bonus
	}
	return 0
}

func reached(value, threshold int) bool {
	return threshold > 0 && value >= threshold
}
