package game

import (
	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/econ"
)

// MetricValue is one derived metric as exposed to the player.
type MetricValue struct {
	Key      string
	Label    string
	Value    float64
	Infinite bool // runway only
}

var metricLabels = map[string]string{
	config.MetricDemand:      "Demand x",
	config.MetricCustomers:   "Customers",
	config.MetricRevenue:     "Revenue",
	config.MetricCOGSPerUnit: "COGS / unit",
	config.MetricCOGS:        "COGS",
	config.MetricGrossMargin: "Gross margin",
	config.MetricExpenses:    "Expenses",
	config.MetricNetProfit:   "Net profit",
	config.MetricCAC:         "CAC",
	config.MetricLTV:         "LTV",
	config.MetricBurnRate:    "Burn rate",
	config.MetricRunway:      "Runway",
}

// MetricLabel returns the display label of a metric key.
func MetricLabel(key string) string {
	if l, ok := metricLabels[key]; ok {
		return l
	}
	return key
}

// VisibleMetrics returns the last result's metrics the profile exposes, in
// display order. It is empty before the first period.
func (g *Game) VisibleMetrics() []MetricValue {
	if g.last == nil {
		return nil
	}
	var out []MetricValue
	for _, key := range config.MetricKeys() {
		if !g.profile.Shows(key) {
			continue
		}
		out = append(out, metricValue(key, *g.last))
	}
	return out
}

// AllMetrics returns every metric of r regardless of profile.
func AllMetrics(r econ.PeriodResult) []MetricValue {
	keys := config.MetricKeys()
	out := make([]MetricValue, 0, len(keys))
	for _, key := range keys {
		out = append(out, metricValue(key, r))
	}
	return out
}

func metricValue(key string, r econ.PeriodResult) MetricValue {
	mv := MetricValue{Key: key, Label: MetricLabel(key)}
	switch key {
	case config.MetricDemand:
		mv.Value = r.DemandMultiplier
	case config.MetricCustomers:
		mv.Value = float64(r.Customers)
	case config.MetricRevenue:
		mv.Value = r.Revenue
	case config.MetricCOGSPerUnit:
		mv.Value = r.COGSPerUnit
	case config.MetricCOGS:
		mv.Value = r.COGS
	case config.MetricGrossMargin:
		mv.Value = r.GrossMargin
	case config.MetricExpenses:
		mv.Value = r.Expenses
	case config.MetricNetProfit:
		mv.Value = r.NetProfit
	case config.MetricCAC:
		mv.Value = r.CAC
	case config.MetricLTV:
		mv.Value = r.LTV
	case config.MetricBurnRate:
		mv.Value = r.BurnRate
	case config.MetricRunway:
		mv.Infinite = r.Runway.Infinite()
		if !mv.Infinite {
			mv.Value = float64(r.Runway)
		}
	}
	return mv
}
