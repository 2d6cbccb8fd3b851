// Package game composes the engine, the mission chain and a difficulty
// profile into the single aggregate a player session owns.
//
// A Game is not safe for concurrent use. Exactly one owner mutates it.
package game

import (
	"fmt"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/mission"
)

// historyLimit bounds the per-game result history.
const historyLimit = 30

// Setup holds everything needed to start a game.
type Setup struct {
	Business     econ.BusinessConfig
	Profile      config.DifficultyProfile
	Events       []econ.EventSpec // already filtered by profile
	Missions     []mission.Mission
	Achievements []mission.Achievement
	Seed         int64
	Source       econ.Source // overrides Seed when set
}

// Game is one running simulation.
type Game struct {
	cfg      econ.BusinessConfig
	profile  config.DifficultyProfile
	events   []econ.EventSpec
	pressure *config.DifficultyManager
	seed     int64
	rng      econ.Source

	state   econ.State
	mods    []econ.Modifier
	chain   *mission.Chain
	badges  *mission.Achievements
	last    *econ.PeriodResult
	history []econ.PeriodResult
}

// Outcome reports what one Advance call changed.
type Outcome struct {
	Result       econ.PeriodResult
	Missions     []string // completed this period
	Achievements []string // earned this period
	Insight      string
	Victory      bool // became true this period
	GameOver     bool
}

// New starts a game in its initial state.
func New(s Setup) *Game {
	cfg := s.Business.WithDefaults()
	rng := s.Source
	if rng == nil {
		rng = econ.NewSource(s.Seed)
	}
	return &Game{
		cfg:      cfg,
		profile:  s.Profile,
		events:   s.Events,
		pressure: config.NewDifficultyManager(s.Profile.Difficulty),
		seed:     s.Seed,
		rng:      rng,
		state:    econ.NewState(cfg),
		chain:    mission.NewChain(s.Missions),
		badges:   mission.NewAchievements(s.Achievements),
	}
}

// FromCatalog resolves a business and profile from the catalog. An empty
// profileID selects the business's default profile.
func FromCatalog(cat config.Catalog, businessID, profileID string, seed int64) (*Game, error) {
	biz, ok := cat.Business(businessID)
	if !ok {
		return nil, fmt.Errorf("game: unknown business %q", businessID)
	}

	var profile config.DifficultyProfile
	if profileID == "" {
		profile, ok = cat.DefaultProfileFor(businessID)
	} else {
		profile, ok = cat.Profile(profileID)
	}
	if !ok {
		return nil, fmt.Errorf("game: unknown profile %q", profileID)
	}

	return New(Setup{
		Business:     biz,
		Profile:      profile,
		Events:       cat.EventsFor(profile),
		Missions:     cat.MissionsFor(businessID),
		Achievements: cat.AchievementList(),
		Seed:         seed,
	}), nil
}

// Business returns the immutable business configuration.
func (g *Game) Business() econ.BusinessConfig { return g.cfg }

// Profile returns the difficulty profile.
func (g *Game) Profile() config.DifficultyProfile { return g.profile }

// State returns a copy of the current state.
func (g *Game) State() econ.State { return g.state }

// Over reports whether the business is bankrupt.
func (g *Game) Over() bool { return g.state.GameOver }

// Score is the current leaderboard value.
func (g *Game) Score() int { return econ.Score(g.state) }

// LastResult returns the most recent period result, nil before the first period.
func (g *Game) LastResult() *econ.PeriodResult {
	if g.last == nil {
		return nil
	}
	r := *g.last
	return &r
}

// History returns up to the last 30 results, oldest first.
func (g *Game) History() []econ.PeriodResult {
	out := make([]econ.PeriodResult, len(g.history))
	copy(out, g.history)
	return out
}

// Modifiers returns a copy of the active modifiers.
func (g *Game) Modifiers() []econ.Modifier {
	out := make([]econ.Modifier, len(g.mods))
	copy(out, g.mods)
	return out
}

// SetPrice changes the selling price.
func (g *Game) SetPrice(price float64) error {
	next, err := econ.SetPrice(g.cfg, g.state, price)
	if err != nil {
		return err
	}
	g.state = next
	return nil
}

// Apply spends amount on an action.
func (g *Game) Apply(kind econ.ActionKind, amount float64) error {
	if g.state.GameOver {
		return econ.ErrGameOver
	}
	next, err := econ.ApplyAction(g.cfg, g.state, kind, amount)
	if err != nil {
		return err
	}
	g.state = next
	return nil
}

// Buy applies a fixed-cost action at its catalog price.
func (g *Game) Buy(kind econ.ActionKind) error {
	return g.Apply(kind, g.cfg.ActionCost(kind))
}

// Advance simulates one period and evaluates missions and achievements
// against the new state.
func (g *Game) Advance() (Outcome, error) {
	wasVictory := g.state.Victory
	events := g.pressure.Events(g.events, g.state.Period)

	next, mods, r, err := econ.AdvancePeriod(g.cfg, g.state, g.mods, events, g.rng, g.profile.Rules())
	if err != nil {
		return Outcome{}, err
	}

	g.state = next
	g.mods = mods
	g.last = &r
	g.history = append(g.history, r)
	if len(g.history) > historyLimit {
		g.history = g.history[len(g.history)-historyLimit:]
	}

	return Outcome{
		Result:       r,
		Missions:     g.chain.Evaluate(g.state, g.last),
		Achievements: g.badges.Evaluate(g.state, g.last),
		Insight:      econ.Insight(r),
		Victory:      g.state.Victory && !wasVictory,
		GameOver:     g.state.GameOver,
	}, nil
}

// Missions returns the chain in order.
func (g *Game) Missions() []mission.Mission { return g.chain.Missions() }

// MissionsDone reports whether the whole chain is complete.
func (g *Game) MissionsDone() bool { return g.chain.Done() }

// Achievements returns every badge.
func (g *Game) Achievements() []mission.Achievement { return g.badges.List() }

// EventPressure is the probability factor applied to the next period's events.
func (g *Game) EventPressure() float64 {
	return g.pressure.EventFactor(g.state.Period)
}

// Snapshot is a read-only view for renderers.
type Snapshot struct {
	Business      econ.BusinessConfig
	ProfileID     string
	ProfileName   string
	VictoryStreak int
	State         econ.State
	Modifiers     []econ.Modifier
	Last          *econ.PeriodResult
	Metrics       []MetricValue
	Missions      []mission.Mission
	Achievements  []mission.Achievement
	Score         int
	Pressure      float64
}

// Snapshot captures the current game for display.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Business:      g.cfg,
		ProfileID:     g.profile.ID,
		ProfileName:   g.profile.Name,
		VictoryStreak: g.profile.Rules().VictoryStreak,
		State:         g.state,
		Modifiers:     g.Modifiers(),
		Last:          g.LastResult(),
		Metrics:       g.VisibleMetrics(),
		Missions:      g.Missions(),
		Achievements:  g.Achievements(),
		Score:         g.Score(),
		Pressure:      g.EventPressure(),
	}
}
