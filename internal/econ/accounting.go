package econ

import "math"

// ComputePeriodResult runs the period's books for a given customer count.
// It returns the updated state (cash, inventory, marketing spend) and the
// derived result. Price must already be validated by the caller.
func ComputePeriodResult(cfg BusinessConfig, s State, mods []Modifier, customers int) (State, PeriodResult) {
	cfg = cfg.WithDefaults()

	cogsPerUnit := cfg.BaseCOGS
	if s.InventoryUnits > 0 {
		cogsPerUnit *= BulkDiscount
		// Draw is flat per period, independent of units sold.
		s.InventoryUnits = max(s.InventoryUnits-InventoryDrawPerTick, 0)
	}
	for _, mod := range mods {
		if mod.Kind == ModifierCOGS {
			cogsPerUnit *= mod.Magnitude
		}
	}

	units := float64(customers)
	revenue := units * s.Price
	cogs := units * cogsPerUnit
	grossMargin := revenue - cogs

	expenses := float64(s.EmployeeCount)*cfg.PerEmployeeCost + cfg.FixedOverhead
	netProfit := grossMargin - expenses
	s.Cash += netProfit

	burn := expenses - grossMargin
	runway := RunwayInfinite
	if burn > 0 {
		runway = runwayPeriods(s.Cash, burn)
	}

	r := PeriodResult{
		Customers:   customers,
		Revenue:     revenue,
		COGSPerUnit: cogsPerUnit,
		COGS:        cogs,
		GrossMargin: grossMargin,
		Expenses:    expenses,
		NetProfit:   netProfit,
		CAC:         s.MarketingSpend / float64(max(1, customers)),
		LTV:         s.Price * float64(cfg.LifetimePeriods),
		BurnRate:    burn,
		Runway:      runway,
	}

	s.MarketingSpend = 0
	return s, r
}

// runwayPeriods is floor(cash/burn), kept inside [0, MaxRunway].
func runwayPeriods(cash, burn float64) Runway {
	q := math.Floor(cash / burn)
	switch {
	case math.IsNaN(q) || q <= 0:
		return 0
	case q >= float64(MaxRunway):
		return MaxRunway
	}
	return Runway(q)
}
