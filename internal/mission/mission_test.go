package mission

import (
	"testing"

	"github.com/vovakirdan/bizsim/internal/econ"
)

func testChain() *Chain {
	return NewChain([]Mission{
		{ID: "open", Title: "Open for business", Predicate: Threshold{Metric: MetricPeriod, Op: OpGE, Value: 1}},
		{ID: "crowd", Title: "Serve 50 customers", Predicate: Threshold{Metric: MetricCustomers, Op: OpGE, Value: 50}},
		{ID: "profit", Title: "Turn a profit", Predicate: Threshold{Metric: MetricNetProfit, Op: OpGT, Value: 0}},
	})
}

func TestNewChainUnlocksFirstOnly(t *testing.T) {
	c := testChain()
	want := []Status{StatusUnlocked, StatusLocked, StatusLocked}
	for i, m := range c.Missions() {
		if m.Status() != want[i] {
			t.Errorf("mission %s status = %s, expected %s", m.ID, m.Status(), want[i])
		}
	}
}

func TestPredicatesFalseBeforeFirstPeriod(t *testing.T) {
	for _, m := range []Metric{MetricCustomers, MetricRevenue, MetricNetProfit, MetricGrossMargin, MetricRunway} {
		p := Threshold{Metric: m, Op: OpGE, Value: 0}
		if p.Met(econ.State{}, nil) {
			t.Errorf("%s predicate should be false with no result", m)
		}
	}
	if (Threshold{Metric: "nonsense", Op: OpGE, Value: 0}).Met(econ.State{}, &econ.PeriodResult{}) {
		t.Error("unknown metric should evaluate to false")
	}
	if (Threshold{Metric: MetricCash, Op: "~", Value: 0}).Met(econ.State{}, nil) {
		t.Error("unknown operator should evaluate to false")
	}
	var f PredicateFunc
	if f.Met(econ.State{}, nil) {
		t.Error("nil PredicateFunc should be false")
	}
	if (All{}).Met(econ.State{}, nil) {
		t.Error("empty All should be false")
	}
}

func TestChainNeverSkips(t *testing.T) {
	c := testChain()

	// A single result that satisfies every predicate completes only the
	// first mission; the second becomes eligible on the next call.
	s := econ.State{Period: 1}
	r := &econ.PeriodResult{Customers: 80, NetProfit: 100}

	got := c.Evaluate(s, r)
	if len(got) != 1 || got[0] != "open" {
		t.Fatalf("first Evaluate() = %v, expected [open]", got)
	}
	if st, _ := c.Status("crowd"); st != StatusUnlocked {
		t.Fatalf("crowd status = %s, expected unlocked", st)
	}
	if st, _ := c.Status("profit"); st != StatusLocked {
		t.Fatalf("profit status = %s, expected locked", st)
	}

	got = c.Evaluate(s, r)
	if len(got) != 1 || got[0] != "crowd" {
		t.Fatalf("second Evaluate() = %v, expected [crowd]", got)
	}

	got = c.Evaluate(s, r)
	if len(got) != 1 || got[0] != "profit" {
		t.Fatalf("third Evaluate() = %v, expected [profit]", got)
	}
	if !c.Done() {
		t.Error("chain should be done")
	}
	if got := c.Evaluate(s, r); got != nil {
		t.Errorf("Evaluate() on a done chain = %v, expected nil", got)
	}
}

func TestChainUnlockOrderProperty(t *testing.T) {
	c := testChain()
	results := []*econ.PeriodResult{
		nil,
		{Customers: 10, NetProfit: -5},
		{Customers: 60, NetProfit: -5},
		{Customers: 10, NetProfit: 5},
		{Customers: 60, NetProfit: 5},
	}

	for period, r := range results {
		before := c.Missions()
		c.Evaluate(econ.State{Period: period}, r)
		after := c.Missions()
		for i := 1; i < len(after); i++ {
			if after[i].Unlocked && !before[i].Unlocked && !after[i-1].Completed {
				t.Fatalf("period %d: %s unlocked before %s completed", period, after[i].ID, after[i-1].ID)
			}
			if before[i].Completed && !after[i].Completed {
				t.Fatalf("period %d: %s went backwards", period, after[i].ID)
			}
		}
	}
}

func TestChainFlagsRoundTrip(t *testing.T) {
	c := testChain()
	c.Evaluate(econ.State{Period: 1}, &econ.PeriodResult{Customers: 60})
	c.Evaluate(econ.State{Period: 2}, &econ.PeriodResult{Customers: 60})

	restored := testChain()
	restored.Restore(c.Flags())
	for i, m := range restored.Missions() {
		if m.Status() != c.Missions()[i].Status() {
			t.Errorf("mission %s restored as %s, expected %s", m.ID, m.Status(), c.Missions()[i].Status())
		}
	}
}

func TestNilChainIsDone(t *testing.T) {
	var c *Chain
	if !c.Done() {
		t.Error("nil chain should be done")
	}
	if flags := c.Flags(); len(flags) != 0 {
		t.Errorf("Flags() on nil chain = %v, expected empty", flags)
	}
	c.Restore(map[string]Status{"open": StatusCompleted})
	if got := c.Evaluate(econ.State{Period: 1}, nil); got != nil {
		t.Errorf("Evaluate() on nil chain = %v, expected nil", got)
	}
}

func TestChainRestoreClosesGaps(t *testing.T) {
	c := testChain()
	c.Restore(map[string]Status{"open": StatusCompleted, "profit": StatusCompleted})

	want := map[string]Status{"open": StatusCompleted, "crowd": StatusUnlocked, "profit": StatusLocked}
	for id, st := range want {
		if got, _ := c.Status(id); got != st {
			t.Errorf("%s = %s, expected %s", id, got, st)
		}
	}
}

func TestChainCurrentAndProgress(t *testing.T) {
	c := testChain()
	if m, ok := c.Current(); !ok || m.ID != "open" {
		t.Fatalf("Current() = %v, %v", m.ID, ok)
	}
	c.Evaluate(econ.State{Period: 1}, nil)
	if done, total := c.Progress(); done != 1 || total != 3 {
		t.Errorf("Progress() = %d/%d, expected 1/3", done, total)
	}
	if NewChain(nil).Done() != true {
		t.Error("empty chain should be done")
	}
}

func TestAchievements(t *testing.T) {
	a := NewAchievements(DefaultAchievements())

	if got := a.Evaluate(econ.State{}, nil); len(got) != 0 {
		t.Fatalf("no achievements expected before the first period, got %v", got)
	}

	got := a.Evaluate(econ.State{Period: 1}, &econ.PeriodResult{Customers: 3, NetProfit: -1})
	if len(got) != 1 || got[0] != "first_sale" {
		t.Fatalf("Evaluate() = %v, expected [first_sale]", got)
	}
	// Already earned badges are not reported again.
	got = a.Evaluate(econ.State{Period: 2, ConsecutiveProfitable: 5, PeakCustomers: 200}, &econ.PeriodResult{Customers: 3, NetProfit: 10})
	if len(got) != 3 {
		t.Fatalf("Evaluate() = %v, expected profitable_day, market_leader, growth_expert", got)
	}

	b := NewAchievements(DefaultAchievements())
	b.Restore(a.Flags())
	for _, it := range b.List() {
		if !it.Earned {
			t.Errorf("%s not restored", it.ID)
		}
	}
}

func TestThresholdValidate(t *testing.T) {
	if err := (Threshold{Metric: MetricRunway, Op: OpLT, Value: 3}).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (Threshold{Metric: "bogus", Op: OpLT}).Validate(); err == nil {
		t.Error("expected error for unknown metric")
	}
	if err := (Threshold{Metric: MetricCash, Op: "=>"}).Validate(); err == nil {
		t.Error("expected error for unknown operator")
	}
}
