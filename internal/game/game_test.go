package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/mission"
)

func lemonade() econ.BusinessConfig {
	return econ.BusinessConfig{
		ID:                     "lemonade",
		Name:                   "Lemonade Stand",
		BasePrice:              5,
		BaseCOGS:               2,
		BaseDemand:             80,
		PriceSensitivity:       0.4,
		MarketingEffectiveness: 0.5,
		PerEmployeeCost:        40,
		FixedOverhead:          50,
		StartingCash:           100,
		ActionCosts:            econ.ActionCosts{Inventory: 200, Employee: 150, RD: 300},
	}
}

func testMissions() []mission.Mission {
	return []mission.Mission{
		{ID: "open", Title: "Open", Predicate: mission.Threshold{Metric: mission.MetricPeriod, Op: mission.OpGE, Value: 1}},
		{ID: "profit", Title: "Profit", Predicate: mission.Threshold{Metric: mission.MetricNetProfit, Op: mission.OpGT, Value: 0}},
	}
}

func newTestGame(events []econ.EventSpec) *Game {
	return New(Setup{
		Business:     lemonade(),
		Profile:      config.DifficultyProfile{ID: "test", Metrics: []string{config.MetricCustomers, config.MetricNetProfit, config.MetricRunway}},
		Events:       events,
		Missions:     testMissions(),
		Achievements: mission.DefaultAchievements(),
		Source:       &econ.Sequence{Ints: []int{0}},
	})
}

func TestAdvanceEvaluatesMissions(t *testing.T) {
	g := newTestGame(nil)

	out, err := g.Advance()
	if err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if out.Result.Customers != 80 || out.Result.NetProfit != 190 {
		t.Errorf("result = %d customers / %v profit, expected 80 / 190", out.Result.Customers, out.Result.NetProfit)
	}
	if !reflect.DeepEqual(out.Missions, []string{"open"}) {
		t.Errorf("Missions = %v, expected [open]", out.Missions)
	}
	if !reflect.DeepEqual(out.Achievements, []string{"first_sale", "profitable_day"}) {
		t.Errorf("Achievements = %v", out.Achievements)
	}
	if out.Insight == "" {
		t.Error("expected an insight")
	}
	if g.State().Cash != 290 {
		t.Errorf("cash = %v, expected 290", g.State().Cash)
	}

	out, _ = g.Advance()
	if !reflect.DeepEqual(out.Missions, []string{"profit"}) {
		t.Errorf("second Missions = %v, expected [profit]", out.Missions)
	}
	if !g.MissionsDone() {
		t.Error("chain should be done")
	}
	if len(g.History()) != 2 {
		t.Errorf("history length = %d, expected 2", len(g.History()))
	}
}

func TestVictoryReportedOnce(t *testing.T) {
	g := newTestGame(nil)

	var victories int
	for i := 0; i < 5; i++ {
		out, err := g.Advance()
		if err != nil {
			t.Fatalf("Advance() error: %v", err)
		}
		if out.Victory {
			victories++
			if g.State().Period != 3 {
				t.Errorf("victory at period %d, expected 3", g.State().Period)
			}
		}
	}
	if victories != 1 {
		t.Errorf("victory reported %d times, expected 1", victories)
	}
	if !g.State().Victory {
		t.Error("victory flag should stay set")
	}
}

func TestGameOverBlocksPlay(t *testing.T) {
	g := newTestGame(nil)
	g.state.Cash = 5
	g.state.Price = 1
	g.state.EmployeeCount = 10

	out, err := g.Advance()
	if err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if !out.GameOver || !g.Over() {
		t.Fatal("expected bankruptcy")
	}
	if _, err := g.Advance(); !errors.Is(err, econ.ErrGameOver) {
		t.Errorf("Advance() after game over = %v, expected ErrGameOver", err)
	}
	if err := g.Apply(econ.ActionMarketing, 1); !errors.Is(err, econ.ErrGameOver) {
		t.Errorf("Apply() after game over = %v, expected ErrGameOver", err)
	}
	if g.Score() != g.State().XP {
		t.Errorf("Score() = %d, expected XP only when cash is negative", g.Score())
	}
}

func TestBuyUsesCatalogCost(t *testing.T) {
	g := newTestGame(nil)

	if err := g.Buy(econ.ActionInventory); !errors.Is(err, econ.ErrInsufficientCash) {
		t.Errorf("Buy(inventory) with 100 cash = %v, expected ErrInsufficientCash", err)
	}
	if g.State().Cash != 100 {
		t.Errorf("rejected Buy changed cash to %v", g.State().Cash)
	}
	if err := g.Buy(econ.ActionMarketing); !errors.Is(err, econ.ErrInvalidAmount) {
		t.Errorf("Buy(marketing) = %v, expected ErrInvalidAmount", err)
	}

	g.state.Cash = 500
	if err := g.Buy(econ.ActionEmployee); err != nil {
		t.Fatalf("Buy(employee) error: %v", err)
	}
	if s := g.State(); s.Cash != 350 || s.EmployeeCount != 1 {
		t.Errorf("after Buy(employee): cash %v employees %d", s.Cash, s.EmployeeCount)
	}
	if err := g.SetPrice(-1); !errors.Is(err, econ.ErrInvalidPrice) {
		t.Errorf("SetPrice(-1) = %v", err)
	}
}

func TestVisibleMetricsHonorsProfile(t *testing.T) {
	g := newTestGame(nil)
	if g.VisibleMetrics() != nil {
		t.Error("no metrics expected before the first period")
	}
	if _, err := g.Advance(); err != nil {
		t.Fatal(err)
	}

	got := g.VisibleMetrics()
	want := []string{config.MetricCustomers, config.MetricNetProfit, config.MetricRunway}
	if len(got) != len(want) {
		t.Fatalf("VisibleMetrics() = %v", got)
	}
	for i, mv := range got {
		if mv.Key != want[i] {
			t.Errorf("metric %d = %q, expected %q", i, mv.Key, want[i])
		}
	}
	if !got[2].Infinite {
		t.Error("profitable period should report infinite runway")
	}
	if len(AllMetrics(*g.LastResult())) != len(config.MetricKeys()) {
		t.Error("AllMetrics should report every key")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	events := []econ.EventSpec{
		{ID: "sunny", Kind: econ.ModifierDemand, Magnitude: 1.3, Duration: 3, Probability: 1},
		{ID: "shortage", Kind: econ.ModifierCOGS, Magnitude: 1.1, Duration: 2, Probability: 1},
	}
	g := newTestGame(events)
	if err := g.SetPrice(5.55); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Apply(econ.ActionMarketing, 12.34); err != nil {
		t.Fatal(err)
	}
	if len(g.Modifiers()) == 0 {
		t.Fatal("expected active modifiers")
	}

	rec := g.Encode()
	restored := newTestGame(events)
	restored.Decode(rec)

	if restored.State() != g.State() {
		t.Errorf("state mismatch:\n got %+v\nwant %+v", restored.State(), g.State())
	}
	if !reflect.DeepEqual(restored.Modifiers(), g.Modifiers()) {
		t.Errorf("modifiers mismatch: %v vs %v", restored.Modifiers(), g.Modifiers())
	}
	for i, m := range restored.Missions() {
		if m.Status() != g.Missions()[i].Status() {
			t.Errorf("mission %s = %s, expected %s", m.ID, m.Status(), g.Missions()[i].Status())
		}
	}
	if !reflect.DeepEqual(restored.Encode(), rec) {
		t.Error("re-encoding a decoded record changed it")
	}
}

func TestDecodePartialRecord(t *testing.T) {
	g := newTestGame(nil)
	g.Decode(Record{
		"state.cash":             "250.5",
		"state.period":           "abc",
		"modifier.count":         "3",
		"modifier.0.kind":        "demand",
		"modifier.0.magnitude":   "1.2",
		"modifier.0.remaining":   "2",
		"modifier.1.kind":        "bogus",
		"modifier.2.kind":        "cogs",
		"mission.open.completed": "true",
	})

	s := g.State()
	if s.Cash != 250.5 {
		t.Errorf("cash = %v, expected 250.5", s.Cash)
	}
	if s.Period != 0 || s.Price != 5 || s.Level != 1 {
		t.Errorf("missing fields should keep initial values, got %+v", s)
	}
	mods := g.Modifiers()
	if len(mods) != 1 || mods[0].Magnitude != 1.2 || mods[0].Remaining != 2 {
		t.Errorf("modifiers = %+v, expected one demand modifier", mods)
	}
	if st, _ := g.chain.Status("open"); st != mission.StatusCompleted {
		t.Errorf("open = %s, expected completed", st)
	}
	if st, _ := g.chain.Status("profit"); st != mission.StatusUnlocked {
		t.Errorf("profit = %s, expected unlocked", st)
	}

	empty := newTestGame(nil)
	empty.Decode(Record{})
	if empty.State() != econ.NewState(lemonade().WithDefaults()) {
		t.Errorf("empty record should decode to the initial state, got %+v", empty.State())
	}
}

func TestFromCatalogAndLoad(t *testing.T) {
	cat := config.DefaultCatalog()

	g, err := FromCatalog(cat, "lemonade", "", 7)
	if err != nil {
		t.Fatalf("FromCatalog() error: %v", err)
	}
	if g.Profile().ID != "beginner" {
		t.Errorf("default profile = %q, expected beginner", g.Profile().ID)
	}
	if _, err := FromCatalog(cat, "bakery", "", 7); err == nil {
		t.Error("expected error for unknown business")
	}
	if _, err := FromCatalog(cat, "lemonade", "nightmare", 7); err == nil {
		t.Error("expected error for unknown profile")
	}

	if _, err := g.Advance(); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(cat, g.Encode())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.State() != g.State() || loaded.Profile().ID != "beginner" {
		t.Errorf("Load() = %+v, expected %+v", loaded.State(), g.State())
	}
	if _, err := Load(cat, Record{}); err == nil {
		t.Error("expected error for record without business")
	}
}
