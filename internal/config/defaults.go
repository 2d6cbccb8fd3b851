package config

import (
	_ "embed"

	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/mission"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// DefaultCatalog returns the hardcoded catalog used when the embedded YAML
// cannot be parsed.
func DefaultCatalog() Catalog {
	allMetrics := MetricKeys()
	return Catalog{
		Businesses: []econ.BusinessConfig{
			{
				ID:                     "lemonade",
				Name:                   "Lemonade Stand",
				BasePrice:              5,
				BaseCOGS:               2,
				BaseDemand:             80,
				PriceSensitivity:       0.4,
				MarketingEffectiveness: 0.5,
				PerEmployeeCost:        40,
				FixedOverhead:          50,
				LifetimePeriods:        12,
				StartingCash:           500,
				InventoryBatch:         100,
				MaxPrice:               50,
				ActionCosts:            econ.ActionCosts{Inventory: 150, Employee: 200, RD: 300},
			},
			{
				ID:                     "coffee_shop",
				Name:                   "Coffee Shop",
				BasePrice:              80,
				BaseCOGS:               30,
				BaseDemand:             60,
				PriceSensitivity:       0.8,
				MarketingEffectiveness: 0.8,
				PerEmployeeCost:        300,
				FixedOverhead:          1500,
				LifetimePeriods:        24,
				StartingCash:           10000,
				InventoryBatch:         100,
				MaxPrice:               300,
				ActionCosts:            econ.ActionCosts{Inventory: 2000, Employee: 1500, RD: 3000},
			},
			{
				ID:                     "tech_startup",
				Name:                   "Tech Startup",
				BasePrice:              500,
				BaseCOGS:               100,
				BaseDemand:             20,
				PriceSensitivity:       1.2,
				MarketingEffectiveness: 1.5,
				PerEmployeeCost:        5000,
				FixedOverhead:          20000,
				LifetimePeriods:        36,
				StartingCash:           300000,
				InventoryBatch:         100,
				MaxPrice:               5000,
				ActionCosts:            econ.ActionCosts{Inventory: 10000, Employee: 8000, RD: 25000},
			},
		},
		Events: []econ.EventSpec{
			{ID: "sunny_day", Name: "Sunny day", Kind: econ.ModifierDemand, Magnitude: 1.3, Duration: 1, Probability: 0.15},
			{ID: "rainy_day", Name: "Rainy day", Kind: econ.ModifierDemand, Magnitude: 0.7, Duration: 1, Probability: 0.15},
			{ID: "supply_shortage", Name: "Supply shortage", Kind: econ.ModifierCOGS, Magnitude: 1.25, Duration: 2, Probability: 0.08},
		},
		Profiles: []DifficultyProfile{
			{
				ID:            "beginner",
				Name:          "Beginner",
				Business:      "lemonade",
				Metrics:       []string{MetricCustomers, MetricRevenue, MetricCOGS, MetricNetProfit},
				Events:        []string{"sunny_day", "rainy_day"},
				VictoryStreak: 3,
				Difficulty: DifficultyConfig{
					Enabled:     true,
					Progression: ProgressionConfig{Type: "period", MaxAt: 30},
					Scaling:     ScalingConfig{EventMultiplier: 0.5},
				},
			},
			{
				ID:            "intermediate",
				Name:          "Intermediate",
				Business:      "coffee_shop",
				Metrics:       []string{MetricCustomers, MetricRevenue, MetricCOGS, MetricGrossMargin, MetricExpenses, MetricNetProfit, MetricCAC, MetricLTV},
				Events:        []string{"sunny_day", "rainy_day", "supply_shortage"},
				VictoryStreak: 3,
				Difficulty: DifficultyConfig{
					Enabled:      true,
					InitialLevel: 0.3,
					Progression:  ProgressionConfig{Type: "period", MaxAt: 24},
					Scaling:      ScalingConfig{EventMultiplier: 1.0},
				},
			},
			{
				ID:            "advanced",
				Name:          "Advanced",
				Business:      "tech_startup",
				Metrics:       allMetrics,
				Events:        []string{"supply_shortage"},
				VictoryStreak: 5,
				Difficulty: DifficultyConfig{
					Enabled:      true,
					InitialLevel: 0.7,
					Progression:  ProgressionConfig{Type: "period", MaxAt: 18},
					Scaling:      ScalingConfig{EventMultiplier: 1.5},
				},
			},
			{
				ID:            "fixed",
				Name:          "Fixed",
				Metrics:       allMetrics,
				VictoryStreak: 3,
				Difficulty:    DifficultyConfig{Progression: ProgressionConfig{Type: "none"}},
			},
		},
		Missions: []MissionDef{
			{ID: "open", Title: "Open for business", Goals: []mission.Threshold{{Metric: mission.MetricPeriod, Op: mission.OpGE, Value: 1}}},
			{ID: "profit", Title: "Close a period in profit", Goals: []mission.Threshold{{Metric: mission.MetricNetProfit, Op: mission.OpGT, Value: 0}}},
			{ID: "streak", Title: "Three profitable periods in a row", Goals: []mission.Threshold{{Metric: mission.MetricProfitableStreak, Op: mission.OpGE, Value: 3}}},
		},
	}
}

// DefaultYAML returns the embedded default catalog.
func DefaultYAML() []byte {
	return defaultCatalogYAML
}
