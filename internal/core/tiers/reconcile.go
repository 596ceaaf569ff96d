package tiers

// Plan is the membership change needed to match a classification.
type Plan struct {
	Add    []string
	Remove []string
}

func (p Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0
}

// Reconcile compares the tags a member holds with the target classification.
// Rank and donator tags form exclusive groups: any held tag from those groups
// other than the target is removed. Badges are additive and never removed.
// Tags outside the tables are left alone.
func (t Tables) Reconcile(current []string, target Classification) Plan {
	held := make(map[string]bool, len(current))
	for _, tag := range current {
		held[tag] = true
	}

	var plan Plan

	for _, r := range t.Ranks {
		if r.Tag != target.Rank.Tag && held[r.Tag] {
			plan.Remove = append(plan.Remove, r.Tag)
		}
	}
	donatorTag := ""
	if target.Donator != nil {
		donatorTag = target.Donator.Tag
	}
	for _, d := range t.Donators {
		if d.Tag != donatorTag && held[d.Tag] {
			plan.Remove = append(plan.Remove, d.Tag)
		}
	}

	if target.Rank.Tag != "" && !held[target.Rank.Tag] {
		plan.Add = append(plan.Add, target.Rank.Tag)
	}
	if donatorTag != "" && !held[donatorTag] {
		plan.Add = append(plan.Add, donatorTag)
	}
	for _, b := range target.Badges {
		if !held[b.Tag] {
			plan.Add = append(plan.Add, b.Tag)
			held[b.Tag] = true
		}
	}

	return plan
}

// Apply returns the tag set after plan has been carried out.
func (p Plan) Apply(current []string) []string {
	removed := make(map[string]bool, len(p.Remove))
	for _, tag := range p.Remove {
		removed[tag] = true
	}

	var next []string
	for _, tag := range current {
		if !removed[tag] {
			next = append(next, tag)
		}
	}
	return append(next, p.Add...)
}
