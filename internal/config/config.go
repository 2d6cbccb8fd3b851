// Package config provides YAML-based business catalogs, difficulty
// profiles and event-pressure management for the simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/mission"
)

// Catalog is everything loaded from a catalog file.
type Catalog struct {
	Businesses   []econ.BusinessConfig `yaml:"businesses"`
	Events       []econ.EventSpec      `yaml:"events"`
	Profiles     []DifficultyProfile   `yaml:"profiles"`
	Missions     []MissionDef          `yaml:"missions"`
	Achievements []AchievementDef      `yaml:"achievements"`
}

// MissionDef is a mission as written in YAML. Every goal must hold at once.
type MissionDef struct {
	ID       string              `yaml:"id"`
	Title    string              `yaml:"title"`
	Business string              `yaml:"business"` // empty = every business
	Goals    []mission.Threshold `yaml:"goals"`
}

// AchievementDef is a badge as written in YAML.
type AchievementDef struct {
	ID    string            `yaml:"id"`
	Title string            `yaml:"title"`
	Goal  mission.Threshold `yaml:"goal"`
}

// DifficultyProfile selects which derived metrics a player sees and which
// random events can fire.
type DifficultyProfile struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	Business      string           `yaml:"business"` // suggested business
	Metrics       []string         `yaml:"metrics"`
	Events        []string         `yaml:"events"`
	VictoryStreak int              `yaml:"victory_streak"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// Rules converts the profile into engine rules.
func (p DifficultyProfile) Rules() econ.Rules {
	r := econ.DefaultRules()
	if p.VictoryStreak > 0 {
		r.VictoryStreak = p.VictoryStreak
	}
	return r
}

// Shows reports whether metric is exposed by the profile.
func (p DifficultyProfile) Shows(metric string) bool {
	for _, m := range p.Metrics {
		if m == metric {
			return true
		}
	}
	return false
}

// DifficultyConfig defines the event pressure progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = calm, 1.0 = turbulent
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how pressure increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "period" or "none"
	MaxAt int    `yaml:"max_at"` // period at which max pressure is reached
}

// ScalingConfig defines the magnitude of pressure changes.
type ScalingConfig struct {
	EventMultiplier float64 `yaml:"event_multiplier"` // added to event probability factor at max level
}

// Metric keys a profile may expose.
const (
	MetricDemand      = "demand"
	MetricCustomers   = "customers"
	MetricRevenue     = "revenue"
	MetricCOGSPerUnit = "cogs_per_unit"
	MetricCOGS        = "cogs"
	MetricGrossMargin = "gross_margin"
	MetricExpenses    = "expenses"
	MetricNetProfit   = "net_profit"
	MetricCAC         = "cac"
	MetricLTV         = "ltv"
	MetricBurnRate    = "burn_rate"
	MetricRunway      = "runway"
)

// MetricKeys lists every metric key in display order.
func MetricKeys() []string {
	return []string{
		MetricDemand, MetricCustomers, MetricRevenue, MetricCOGSPerUnit, MetricCOGS,
		MetricGrossMargin, MetricExpenses, MetricNetProfit, MetricCAC, MetricLTV,
		MetricBurnRate, MetricRunway,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
}

// ProfileIDForPreset maps a preset to its profile id.
func ProfileIDForPreset(preset DifficultyPreset) string {
	switch preset {
	case DifficultyEasy:
		return "beginner"
	case DifficultyNormal:
		return "intermediate"
	case DifficultyHard:
		return "advanced"
	case DifficultyFixed:
		return "fixed"
	default:
		return "beginner"
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Business returns the business with the given id.
func (c Catalog) Business(id string) (econ.BusinessConfig, bool) {
	for _, b := range c.Businesses {
		if b.ID == id {
			return b.WithDefaults(), true
		}
	}
	return econ.BusinessConfig{}, false
}

// Profile returns the profile with the given id.
func (c Catalog) Profile(id string) (DifficultyProfile, bool) {
	for _, p := range c.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return DifficultyProfile{}, false
}

// ProfileForPreset resolves a preset through the catalog.
func (c Catalog) ProfileForPreset(preset DifficultyPreset) (DifficultyProfile, bool) {
	return c.Profile(ProfileIDForPreset(preset))
}

// DefaultProfileFor returns the profile that suggests the business, or the
// first profile when none does.
func (c Catalog) DefaultProfileFor(businessID string) (DifficultyProfile, bool) {
	for _, p := range c.Profiles {
		if p.Business == businessID {
			return p, true
		}
	}
	if len(c.Profiles) == 0 {
		return DifficultyProfile{}, false
	}
	return c.Profiles[0], true
}

// EventsFor returns the catalog entries the profile enables, in catalog order.
func (c Catalog) EventsFor(p DifficultyProfile) []econ.EventSpec {
	if len(p.Events) == 0 {
		return nil
	}
	enabled := make(map[string]bool, len(p.Events))
	for _, id := range p.Events {
		enabled[id] = true
	}
	var out []econ.EventSpec
	for _, ev := range c.Events {
		if enabled[ev.ID] {
			out = append(out, ev)
		}
	}
	return out
}

// MissionsFor builds the mission chain for a business: shared missions and
// the business's own, in file order.
func (c Catalog) MissionsFor(businessID string) []mission.Mission {
	var out []mission.Mission
	for _, def := range c.Missions {
		if def.Business != "" && def.Business != businessID {
			continue
		}
		out = append(out, def.Mission())
	}
	return out
}

// Mission converts the definition.
func (d MissionDef) Mission() mission.Mission {
	m := mission.Mission{ID: d.ID, Title: d.Title}
	switch len(d.Goals) {
	case 0:
	case 1:
		m.Predicate = d.Goals[0]
	default:
		all := make(mission.All, len(d.Goals))
		for i, g := range d.Goals {
			all[i] = g
		}
		m.Predicate = all
	}
	return m
}

// AchievementList converts the definitions, falling back to the built-in
// badges when the catalog has none.
func (c Catalog) AchievementList() []mission.Achievement {
	if len(c.Achievements) == 0 {
		return mission.DefaultAchievements()
	}
	out := make([]mission.Achievement, len(c.Achievements))
	for i, a := range c.Achievements {
		out[i] = mission.Achievement{ID: a.ID, Title: a.Title, Predicate: a.Goal}
	}
	return out
}
