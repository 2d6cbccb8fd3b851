package econ

import "math"

// DemandMultiplier scales base demand by price, marketing, headcount, R&D
// and every active demand modifier, in slice order.
// For any price > 0 the result is strictly positive.
func DemandMultiplier(cfg BusinessConfig, s State, mods []Modifier) float64 {
	m := 1.0

	priceRatio := s.Price / cfg.BasePrice
	m *= math.Max(PriceEffectFloor, 1-(priceRatio-1)*cfg.PriceSensitivity)

	// No saturation: demand grows linearly with spend.
	m *= 1 + (s.MarketingSpend/MarketingUnit)*cfg.MarketingEffectiveness

	m *= 1 + float64(s.EmployeeCount)*EmployeeDemandBoost
	m *= 1 + float64(s.RDLevel)*RDDemandBoost

	for _, mod := range mods {
		if mod.Kind == ModifierDemand {
			m *= mod.Magnitude
		}
	}
	return m
}

// Customers converts a demand multiplier into a head count with a bounded
// random perturbation. Never negative.
func Customers(cfg BusinessConfig, multiplier float64, rng Source) int {
	n := int(math.Floor(cfg.BaseDemand * multiplier))
	n += rng.IntRange(-PerturbationRange, PerturbationRange)
	return max(n, 0)
}
