package econ

import "fmt"

// AdvancePeriod simulates one period:
//
//  1. roll random events into the active set
//  2. compute the demand multiplier and customer count
//  3. run the books
//  4. update counters, streaks and terminal flags
//  5. age the modifiers
//
// The returned modifier slice is a fresh copy; mods is not modified.
func AdvancePeriod(cfg BusinessConfig, s State, mods []Modifier, catalog []EventSpec, rng Source, rules Rules) (State, []Modifier, PeriodResult, error) {
	if s.GameOver {
		return s, mods, PeriodResult{}, ErrGameOver
	}
	if s.Price <= 0 {
		return s, mods, PeriodResult{}, fmt.Errorf("%w: %v", ErrInvalidPrice, s.Price)
	}
	if rules.VictoryStreak <= 0 {
		rules.VictoryStreak = DefaultVictoryStreak
	}

	active := make([]Modifier, 0, len(mods)+len(catalog))
	active = append(active, mods...)
	fired := RollEvents(catalog, rng)
	active = append(active, fired...)

	mult := DemandMultiplier(cfg, s, active)
	customers := Customers(cfg, mult, rng)

	next, r := ComputePeriodResult(cfg, s, active, customers)
	r.DemandMultiplier = mult
	for _, m := range fired {
		r.Events = append(r.Events, m.Source)
	}

	next.Period++
	r.Period = next.Period
	next.CumulativeRevenue += r.Revenue
	next.TotalSales += customers
	next.TotalProfit += r.NetProfit
	next.PeakCustomers = max(next.PeakCustomers, customers)

	next.XP += xpPerPeriod
	if r.Profitable() {
		next.ConsecutiveProfitable++
		next.XP += xpProfitBonus
	} else {
		next.ConsecutiveProfitable = 0
	}
	if next.Period%periodsPerLevel == 0 {
		next.Level++
	}

	if next.ConsecutiveProfitable >= rules.VictoryStreak {
		next.Victory = true
	}
	if next.Cash <= 0 {
		next.GameOver = true
	}

	return next, AdvanceModifiers(active), r, nil
}

// Insight returns a one-line coaching message for a period.
func Insight(r PeriodResult) string {
	switch {
	case r.NetProfit > 0:
		return fmt.Sprintf("Great job! You made a profit of %.2f. Your pricing strategy is working!", r.NetProfit)
	case r.NetProfit < 0:
		return fmt.Sprintf("You lost %.2f this period. Consider adjusting your price or reducing costs.", -r.NetProfit)
	default:
		return "You broke even. Try to optimize your pricing for better profits."
	}
}

// Score is the leaderboard value of a state: experience plus any positive
// cash, rounded down.
func Score(s State) int {
	return s.XP + int(max(s.Cash, 0))
}
