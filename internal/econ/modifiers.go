package econ

// AdvanceModifiers ticks every modifier down by one period and drops the
// expired ones. The input slice is left untouched.
func AdvanceModifiers(mods []Modifier) []Modifier {
	active := make([]Modifier, 0, len(mods))
	for _, mod := range mods {
		mod.Remaining--
		if mod.Remaining > 0 {
			active = append(active, mod)
		}
	}
	return active
}

// RollEvents draws once per catalog entry, in catalog order, and returns a
// fresh modifier for every entry whose draw falls under its probability.
// Several events may fire in the same period.
func RollEvents(catalog []EventSpec, rng Source) []Modifier {
	var fired []Modifier
	for _, ev := range catalog {
		if rng.Float64() < ev.Probability {
			fired = append(fired, ev.Modifier())
		}
	}
	return fired
}

// Modifier instantiates the event's effect with its full duration.
func (e EventSpec) Modifier() Modifier {
	return Modifier{
		Kind:      e.Kind,
		Magnitude: e.Magnitude,
		Remaining: e.Duration,
		Source:    e.ID,
	}
}

// ScaleProbability returns a copy of the catalog with every probability
// multiplied by factor and capped at 1.
func ScaleProbability(catalog []EventSpec, factor float64) []EventSpec {
	out := make([]EventSpec, len(catalog))
	for i, ev := range catalog {
		ev.Probability = min(ev.Probability*factor, 1)
		out[i] = ev
	}
	return out
}
