package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/mission"
)

// Record is the flat key-value form of a saved game.
type Record map[string]string

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Record keys.
const (
	KeyBusiness = "business"
	KeyProfile  = "profile"
	KeySeed     = "seed"
	KeyPeriod   = "state.period"

	keyCash              = "state.cash"
	keyPrice             = "state.price"
	keyInventory         = "state.inventory"
	keyEmployees         = "state.employees"
	keyRDLevel           = "state.rd_level"
	keyMarketing         = "state.marketing"
	keyCumulativeRevenue = "state.cumulative_revenue"
	keyPeakCustomers     = "state.peak_customers"
	keyStreak            = "state.streak"
	keyTotalSales        = "state.total_sales"
	keyTotalProfit       = "state.total_profit"
	keyXP                = "state.xp"
	keyLevel             = "state.level"
	keyGameOver          = "state.game_over"
	keyVictory           = "state.victory"

	keyModifierCount = "modifier.count"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Encode flattens the game into a Record. Floats use the shortest
// representation that parses back to the identical value.
func (g *Game) Encode() Record {
	s := g.state
	rec := Record{
		KeyBusiness: g.cfg.ID,
		KeyProfile:  g.profile.ID,
		KeySeed:     strconv.FormatInt(g.seed, 10),
		KeyPeriod:   strconv.Itoa(s.Period),

		keyCash:              formatFloat(s.Cash),
		keyPrice:             formatFloat(s.Price),
		keyInventory:         strconv.Itoa(s.InventoryUnits),
		keyEmployees:         strconv.Itoa(s.EmployeeCount),
		keyRDLevel:           strconv.Itoa(s.RDLevel),
		keyMarketing:         formatFloat(s.MarketingSpend),
		keyCumulativeRevenue: formatFloat(s.CumulativeRevenue),
		keyPeakCustomers:     strconv.Itoa(s.PeakCustomers),
		keyStreak:            strconv.Itoa(s.ConsecutiveProfitable),
		keyTotalSales:        strconv.Itoa(s.TotalSales),
		keyTotalProfit:       formatFloat(s.TotalProfit),
		keyXP:                strconv.Itoa(s.XP),
		keyLevel:             strconv.Itoa(s.Level),
		keyGameOver:          strconv.FormatBool(s.GameOver),
		keyVictory:           strconv.FormatBool(s.Victory),

		keyModifierCount: strconv.Itoa(len(g.mods)),
	}

	for i, m := range g.mods {
		p := fmt.Sprintf("modifier.%d.", i)
		rec[p+"kind"] = string(m.Kind)
		rec[p+"magnitude"] = formatFloat(m.Magnitude)
		rec[p+"remaining"] = strconv.Itoa(m.Remaining)
		rec[p+"source"] = m.Source
	}

	for _, m := range g.chain.Missions() {
		p := "mission." + m.ID + "."
		rec[p+"unlocked"] = strconv.FormatBool(m.Unlocked)
		rec[p+"completed"] = strconv.FormatBool(m.Completed)
	}

	for _, a := range g.badges.List() {
		rec["achievement."+a.ID+".earned"] = strconv.FormatBool(a.Earned)
	}

	return rec
}

// Decode overwrites the game from a Record. Missing or malformed fields
// keep their initial-state value; malformed modifiers are dropped.
// Decode never fails.
func (g *Game) Decode(rec Record) {
	s := econ.NewState(g.cfg)

	decodeFloat(rec, keyCash, &s.Cash)
	decodeInt(rec, KeyPeriod, &s.Period)
	decodeFloat(rec, keyPrice, &s.Price)
	decodeInt(rec, keyInventory, &s.InventoryUnits)
	decodeInt(rec, keyEmployees, &s.EmployeeCount)
	decodeInt(rec, keyRDLevel, &s.RDLevel)
	decodeFloat(rec, keyMarketing, &s.MarketingSpend)
	decodeFloat(rec, keyCumulativeRevenue, &s.CumulativeRevenue)
	decodeInt(rec, keyPeakCustomers, &s.PeakCustomers)
	decodeInt(rec, keyStreak, &s.ConsecutiveProfitable)
	decodeInt(rec, keyTotalSales, &s.TotalSales)
	decodeFloat(rec, keyTotalProfit, &s.TotalProfit)
	decodeInt(rec, keyXP, &s.XP)
	decodeInt(rec, keyLevel, &s.Level)
	decodeBool(rec, keyGameOver, &s.GameOver)
	decodeBool(rec, keyVictory, &s.Victory)

	// A saved price of zero or less would make the next period fail.
	if s.Price <= 0 {
		s.Price = g.cfg.BasePrice
	}

	g.state = s
	g.mods = decodeModifiers(rec)
	g.last = nil
	g.history = nil

	flags := make(map[string]mission.Status)
	for _, m := range g.chain.Missions() {
		var done bool
		decodeBool(rec, "mission."+m.ID+".completed", &done)
		if done {
			flags[m.ID] = mission.StatusCompleted
		}
	}
	g.chain.Restore(flags)

	earned := make(map[string]bool)
	for _, a := range g.badges.List() {
		var ok bool
		decodeBool(rec, "achievement."+a.ID+".earned", &ok)
		earned[a.ID] = ok
	}
	g.badges.Restore(earned)

	var seed int64
	if v, ok := rec[KeySeed]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = n
		}
	}
	// Replays after a load stay deterministic for seeded games, though they
	// do not continue the pre-save random stream.
	if seed != 0 {
		g.seed = seed
		g.rng = econ.NewSource(seed + int64(s.Period))
	}
}

// Load builds a game for the record's business and profile, then decodes it.
func Load(cat config.Catalog, rec Record) (*Game, error) {
	biz := rec[KeyBusiness]
	if biz == "" {
		return nil, fmt.Errorf("game: record has no %q", KeyBusiness)
	}
	g, err := FromCatalog(cat, biz, rec[KeyProfile], 0)
	if err != nil {
		return nil, err
	}
	g.Decode(rec)
	return g, nil
}

func decodeModifiers(rec Record) []econ.Modifier {
	var count int
	decodeInt(rec, keyModifierCount, &count)
	if count < 0 {
		count = 0
	}

	mods := make([]econ.Modifier, 0, count)
	for i := 0; i < count; i++ {
		p := fmt.Sprintf("modifier.%d.", i)
		m := econ.Modifier{
			Kind:   econ.ModifierKind(strings.TrimSpace(rec[p+"kind"])),
			Source: rec[p+"source"],
		}
		if !m.Kind.Valid() {
			continue
		}
		if !decodeFloat(rec, p+"magnitude", &m.Magnitude) || !decodeInt(rec, p+"remaining", &m.Remaining) {
			continue
		}
		if m.Remaining <= 0 {
			continue
		}
		mods = append(mods, m)
	}
	return mods
}

func decodeFloat(rec Record, key string, dst *float64) bool {
	v, ok := rec[key]
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return false
	}
	*dst = f
	return true
}

func decodeInt(rec Record, key string, dst *int) bool {
	v, ok := rec[key]
	if !ok {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	*dst = n
	return true
}

func decodeBool(rec Record, key string, dst *bool) bool {
	v, ok := rec[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	*dst = b
	return true
}
