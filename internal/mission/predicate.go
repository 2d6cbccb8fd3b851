// Package mission tracks the linear mission chain and the one-shot
// achievements that unlock from simulation results.
package mission

import (
	"fmt"

	"github.com/vovakirdan/bizsim/internal/econ"
)

// Predicate decides whether a goal is met. Implementations must be total:
// result is nil before the first period and that must evaluate to false
// for anything that depends on it.
type Predicate interface {
	Met(s econ.State, r *econ.PeriodResult) bool
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(s econ.State, r *econ.PeriodResult) bool

// Met calls f.
func (f PredicateFunc) Met(s econ.State, r *econ.PeriodResult) bool {
	if f == nil {
		return false
	}
	return f(s, r)
}

// Metric names a value readable from the state or the last result.
type Metric string

const (
	MetricCash              Metric = "cash"
	MetricPeriod            Metric = "period"
	MetricCustomers         Metric = "customers"
	MetricRevenue           Metric = "revenue"
	MetricNetProfit         Metric = "net_profit"
	MetricGrossMargin       Metric = "gross_margin"
	MetricCumulativeRevenue Metric = "cumulative_revenue"
	MetricPeakCustomers     Metric = "peak_customers"
	MetricProfitableStreak  Metric = "profitable_streak"
	MetricEmployees         Metric = "employees"
	MetricRDLevel           Metric = "rd_level"
	MetricInventory         Metric = "inventory"
	MetricRunway            Metric = "runway"
)

// Value reads a metric. ok is false for unknown metrics and for
// result-derived metrics when no period has run.
func Value(m Metric, s econ.State, r *econ.PeriodResult) (v float64, ok bool) {
	switch m {
	case MetricCash:
		return s.Cash, true
	case MetricPeriod:
		return float64(s.Period), true
	case MetricCumulativeRevenue:
		return s.CumulativeRevenue, true
	case MetricPeakCustomers:
		return float64(s.PeakCustomers), true
	case MetricProfitableStreak:
		return float64(s.ConsecutiveProfitable), true
	case MetricEmployees:
		return float64(s.EmployeeCount), true
	case MetricRDLevel:
		return float64(s.RDLevel), true
	case MetricInventory:
		return float64(s.InventoryUnits), true
	}

	if r == nil {
		return 0, false
	}
	switch m {
	case MetricCustomers:
		return float64(r.Customers), true
	case MetricRevenue:
		return r.Revenue, true
	case MetricNetProfit:
		return r.NetProfit, true
	case MetricGrossMargin:
		return r.GrossMargin, true
	case MetricRunway:
		if r.Runway.Infinite() {
			return 0, false
		}
		return float64(r.Runway), true
	}
	return 0, false
}

// Op is a comparison operator.
type Op string

const (
	OpGT Op = ">"
	OpGE Op = ">="
	OpLT Op = "<"
	OpLE Op = "<="
	OpEQ Op = "=="
)

// Threshold compares one metric against a constant. It is the form used by
// YAML mission definitions.
type Threshold struct {
	Metric Metric  `yaml:"metric" json:"metric"`
	Op     Op      `yaml:"op" json:"op"`
	Value  float64 `yaml:"value" json:"value"`
}

// Met implements Predicate.
func (t Threshold) Met(s econ.State, r *econ.PeriodResult) bool {
	v, ok := Value(t.Metric, s, r)
	if !ok {
		return false
	}
	switch t.Op {
	case OpGT:
		return v > t.Value
	case OpGE:
		return v >= t.Value
	case OpLT:
		return v < t.Value
	case OpLE:
		return v <= t.Value
	case OpEQ:
		return v == t.Value
	}
	return false
}

// Validate checks that the metric and operator are known.
func (t Threshold) Validate() error {
	if _, ok := Value(t.Metric, econ.State{}, &econ.PeriodResult{}); !ok {
		return fmt.Errorf("mission: unknown metric %q", t.Metric)
	}
	switch t.Op {
	case OpGT, OpGE, OpLT, OpLE, OpEQ:
		return nil
	}
	return fmt.Errorf("mission: unknown operator %q", t.Op)
}

func (t Threshold) String() string {
	return fmt.Sprintf("%s %s %g", t.Metric, t.Op, t.Value)
}

// All is met when every predicate is met. An empty All is never met.
type All []Predicate

// Met implements Predicate.
func (a All) Met(s econ.State, r *econ.PeriodResult) bool {
	if len(a) == 0 {
		return false
	}
	for _, p := range a {
		if p == nil || !p.Met(s, r) {
			return false
		}
	}
	return true
}
