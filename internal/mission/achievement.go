package mission

import "github.com/vovakirdan/bizsim/internal/econ"

// Achievement is a one-shot badge with no ordering between badges.
type Achievement struct {
	ID        string
	Title     string
	Predicate Predicate
	Earned    bool
}

// Achievements is an unordered set of badges evaluated after every period.
type Achievements struct {
	items []Achievement
}

// NewAchievements copies the definitions with every badge unearned.
func NewAchievements(defs []Achievement) *Achievements {
	a := &Achievements{items: make([]Achievement, len(defs))}
	copy(a.items, defs)
	for i := range a.items {
		a.items[i].Earned = false
	}
	return a
}

// DefaultAchievements is the built-in badge set used when the catalog
// defines none.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: "first_sale", Title: "First Sale", Predicate: Threshold{Metric: MetricCustomers, Op: OpGT, Value: 0}},
		{ID: "profitable_day", Title: "Profitable Day", Predicate: Threshold{Metric: MetricNetProfit, Op: OpGT, Value: 0}},
		{ID: "market_leader", Title: "Market Leader", Predicate: Threshold{Metric: MetricPeakCustomers, Op: OpGE, Value: 150}},
		{ID: "growth_expert", Title: "Growth Expert", Predicate: Threshold{Metric: MetricProfitableStreak, Op: OpGE, Value: 5}},
	}
}

// Evaluate earns every badge whose predicate now holds and returns the
// newly earned ids.
func (a *Achievements) Evaluate(s econ.State, r *econ.PeriodResult) []string {
	if a == nil {
		return nil
	}
	var earned []string
	for i := range a.items {
		it := &a.items[i]
		if it.Earned || it.Predicate == nil || !it.Predicate.Met(s, r) {
			continue
		}
		it.Earned = true
		earned = append(earned, it.ID)
	}
	return earned
}

// List returns a copy of every badge.
func (a *Achievements) List() []Achievement {
	if a == nil {
		return nil
	}
	out := make([]Achievement, len(a.items))
	copy(out, a.items)
	return out
}

// Flags exports earned state keyed by id.
func (a *Achievements) Flags() map[string]bool {
	flags := make(map[string]bool, len(a.items))
	for _, it := range a.items {
		flags[it.ID] = it.Earned
	}
	return flags
}

// Restore re-applies saved flags; unknown ids are ignored.
func (a *Achievements) Restore(flags map[string]bool) {
	for i := range a.items {
		a.items[i].Earned = flags[a.items[i].ID]
	}
}
