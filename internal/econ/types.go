// Package econ implements the economic simulation engine: demand, cost
// accounting, event modifiers and the per-period state transition.
//
// Every function here takes values and returns values. Callers own the
// single live State and are responsible for invoking AdvancePeriod at most
// once per logical period.
package econ

import (
	"errors"
	"math"
)

// Errors returned for rejected player input. State is never modified when
// one of these is returned.
var (
	ErrInvalidPrice     = errors.New("econ: price must be positive")
	ErrInvalidAmount    = errors.New("econ: amount must be positive")
	ErrInsufficientCash = errors.New("econ: insufficient cash")
	ErrUnknownAction    = errors.New("econ: unknown action")
	ErrGameOver         = errors.New("econ: business is bankrupt")
)

// Tuning constants shared by every business type.
const (
	PriceEffectFloor     = 0.3
	MarketingUnit        = 1000.0
	EmployeeDemandBoost  = 0.1
	RDDemandBoost        = 0.15
	BulkDiscount         = 0.8
	InventoryDrawPerTick = 100
	PerturbationRange    = 10

	DefaultLifetimePeriods = 12
	DefaultInventoryBatch  = 100
	DefaultVictoryStreak   = 3

	xpPerPeriod     = 10
	xpProfitBonus   = 5
	periodsPerLevel = 3
)

// ActionCosts holds the catalog price of fixed-cost player actions.
type ActionCosts struct {
	Inventory float64 `yaml:"inventory" json:"inventory"`
	Employee  float64 `yaml:"employee" json:"employee"`
	RD        float64 `yaml:"rd" json:"rd"`
}

// BusinessConfig is chosen at setup and never changes during a game.
type BusinessConfig struct {
	ID                     string      `yaml:"id" json:"id"`
	Name                   string      `yaml:"name" json:"name"`
	BasePrice              float64     `yaml:"base_price" json:"base_price"`
	BaseCOGS               float64     `yaml:"base_cogs" json:"base_cogs"`
	BaseDemand             float64     `yaml:"base_demand" json:"base_demand"`
	PriceSensitivity       float64     `yaml:"price_sensitivity" json:"price_sensitivity"`
	MarketingEffectiveness float64     `yaml:"marketing_effectiveness" json:"marketing_effectiveness"`
	PerEmployeeCost        float64     `yaml:"per_employee_cost" json:"per_employee_cost"`
	FixedOverhead          float64     `yaml:"fixed_overhead" json:"fixed_overhead"`
	LifetimePeriods        int         `yaml:"lifetime_periods" json:"lifetime_periods"`
	StartingCash           float64     `yaml:"starting_cash" json:"starting_cash"`
	InventoryBatch         int         `yaml:"inventory_batch" json:"inventory_batch"`
	MaxPrice               float64     `yaml:"max_price" json:"max_price"` // 0 = uncapped
	ActionCosts            ActionCosts `yaml:"action_costs" json:"action_costs"`
}

// WithDefaults fills zero-valued optional fields.
func (c BusinessConfig) WithDefaults() BusinessConfig {
	if c.LifetimePeriods <= 0 {
		c.LifetimePeriods = DefaultLifetimePeriods
	}
	if c.InventoryBatch <= 0 {
		c.InventoryBatch = DefaultInventoryBatch
	}
	return c
}

// ActionCost returns the catalog price for a fixed-cost action.
// Marketing has no fixed price and reports 0.
func (c BusinessConfig) ActionCost(kind ActionKind) float64 {
	switch kind {
	case ActionInventory:
		return c.ActionCosts.Inventory
	case ActionEmployee:
		return c.ActionCosts.Employee
	case ActionRD:
		return c.ActionCosts.RD
	default:
		return 0
	}
}

// State is the mutable simulation state of one game.
// Cash may go negative only until the bankruptcy check at the end of a period.
type State struct {
	Cash                  float64
	Period                int
	Price                 float64
	InventoryUnits        int
	EmployeeCount         int
	RDLevel               int
	MarketingSpend        float64
	CumulativeRevenue     float64
	PeakCustomers         int
	ConsecutiveProfitable int

	TotalSales  int
	TotalProfit float64
	XP          int
	Level       int

	GameOver bool
	Victory  bool
}

// NewState returns the initial state for a business: starting cash,
// base price, level 1.
func NewState(cfg BusinessConfig) State {
	return State{
		Cash:  cfg.StartingCash,
		Price: cfg.BasePrice,
		Level: 1,
	}
}

// ModifierKind selects what a modifier scales.
type ModifierKind string

const (
	ModifierDemand ModifierKind = "demand"
	ModifierCOGS   ModifierKind = "cogs"
)

// Valid reports whether k is a known kind.
func (k ModifierKind) Valid() bool {
	return k == ModifierDemand || k == ModifierCOGS
}

// Modifier is a temporary multiplicative adjustment with a countdown.
// A modifier belongs to exactly one game's active set.
type Modifier struct {
	Kind      ModifierKind
	Magnitude float64
	Remaining int
	Source    string // catalog event id
}

// EventSpec is one entry of a random-event catalog.
type EventSpec struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Kind        ModifierKind `yaml:"kind" json:"kind"`
	Magnitude   float64      `yaml:"magnitude" json:"magnitude"`
	Duration    int          `yaml:"duration" json:"duration"`
	Probability float64      `yaml:"probability" json:"probability"`
}

// Runway counts periods of cash left at the current burn rate.
type Runway int

// RunwayInfinite is reported when the business is not burning cash.
const RunwayInfinite Runway = -1

// MaxRunway caps the runway of a business burning a negligible amount.
const MaxRunway Runway = math.MaxInt32

// Infinite reports whether the runway is unbounded.
func (r Runway) Infinite() bool { return r == RunwayInfinite }

// PeriodResult is derived every period and not persisted.
type PeriodResult struct {
	Period           int
	Customers        int
	DemandMultiplier float64
	Revenue          float64
	COGSPerUnit      float64
	COGS             float64
	GrossMargin      float64
	Expenses         float64
	NetProfit        float64
	CAC              float64
	LTV              float64
	BurnRate         float64
	Runway           Runway
	Events           []string
}

// Profitable reports whether the period made money.
func (r PeriodResult) Profitable() bool {
	return r.NetProfit > 0
}

// Rules are the per-difficulty knobs of the period transition.
type Rules struct {
	VictoryStreak int
}

// DefaultRules returns the standard three-period victory streak.
func DefaultRules() Rules {
	return Rules{VictoryStreak: DefaultVictoryStreak}
}
