package config

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCatalog wraps every catalog validation failure.
var ErrInvalidCatalog = errors.New("config: invalid catalog")

// Validate reports every problem in the catalog at once.
func (c Catalog) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	if len(c.Businesses) == 0 {
		add("no businesses defined")
	}
	businesses := make(map[string]bool, len(c.Businesses))
	for _, b := range c.Businesses {
		if b.ID == "" {
			add("business without id")
			continue
		}
		if businesses[b.ID] {
			add("duplicate business %q", b.ID)
		}
		businesses[b.ID] = true
		if b.BasePrice <= 0 {
			add("business %q: base_price must be positive", b.ID)
		}
		// Zero falls back to a default or disables the term; negative values
		// would flip the sign of demand or costs.
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"base_cogs", b.BaseCOGS},
			{"base_demand", b.BaseDemand},
			{"price_sensitivity", b.PriceSensitivity},
			{"marketing_effectiveness", b.MarketingEffectiveness},
			{"per_employee_cost", b.PerEmployeeCost},
			{"fixed_overhead", b.FixedOverhead},
			{"starting_cash", b.StartingCash},
			{"lifetime_periods", float64(b.LifetimePeriods)},
			{"inventory_batch", float64(b.InventoryBatch)},
			{"max_price", b.MaxPrice},
		} {
			if f.value < 0 {
				add("business %q: %s must not be negative", b.ID, f.name)
			}
		}
	}

	events := make(map[string]bool, len(c.Events))
	for _, ev := range c.Events {
		if ev.ID == "" {
			add("event without id")
			continue
		}
		events[ev.ID] = true
		if !ev.Kind.Valid() {
			add("event %q: unknown kind %q", ev.ID, ev.Kind)
		}
		if ev.Probability < 0 || ev.Probability > 1 {
			add("event %q: probability %v outside [0, 1]", ev.ID, ev.Probability)
		}
		if ev.Duration <= 0 {
			add("event %q: duration must be positive", ev.ID)
		}
		if ev.Magnitude <= 0 {
			add("event %q: magnitude must be positive", ev.ID)
		}
	}

	known := MetricKeys()
	for _, p := range c.Profiles {
		if p.ID == "" {
			add("profile without id")
			continue
		}
		if p.Business != "" && !businesses[p.Business] {
			add("profile %q: unknown business %q", p.ID, p.Business)
		}
		for _, id := range p.Events {
			if !events[id] {
				add("profile %q: unknown event %q", p.ID, id)
			}
		}
		for _, m := range p.Metrics {
			if !slices.Contains(known, m) {
				add("profile %q: unknown metric %q", p.ID, m)
			}
		}
	}

	missions := make(map[string]bool, len(c.Missions))
	for _, m := range c.Missions {
		if m.ID == "" {
			add("mission without id")
			continue
		}
		if missions[m.ID] {
			add("duplicate mission %q", m.ID)
		}
		missions[m.ID] = true
		if m.Business != "" && !businesses[m.Business] {
			add("mission %q: unknown business %q", m.ID, m.Business)
		}
		if len(m.Goals) == 0 {
			add("mission %q: no goals", m.ID)
		}
		for _, g := range m.Goals {
			if err := g.Validate(); err != nil {
				add("mission %q: %v", m.ID, err)
			}
		}
	}

	for _, a := range c.Achievements {
		if err := a.Goal.Validate(); err != nil {
			add("achievement %q: %v", a.ID, err)
		}
	}

	return errors.Join(errs...)
}
