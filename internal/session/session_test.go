package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/econ"
)

type recordingSaver struct {
	mu      sync.Mutex
	results []RunResult
}

func (r *recordingSaver) SaveRunResult(result RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

func (r *recordingSaver) all() []RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RunResult(nil), r.results...)
}

func newTestManager(t *testing.T) (*Manager, *recordingSaver) {
	t.Helper()
	m := NewManager(config.DefaultCatalog(), DefaultConfig(), nil)
	saver := &recordingSaver{}
	m.SetResultSaver(saver)
	t.Cleanup(m.Stop)
	return m, saver
}

func drain(s *Session) []Event {
	var out []Event
	for {
		select {
		case evt := <-s.Events():
			out = append(out, evt)
		default:
			return out
		}
	}
}

func TestCreateAndAdvance(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Create("alice", "lemonade", "fixed", 42)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", m.Count())
	}
	if got, ok := m.Get(s.ID()); !ok || got != s {
		t.Error("Get() did not return the session")
	}

	if _, err := s.Advance(); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}

	events := drain(s)
	if len(events) == 0 {
		t.Fatal("expected events after Advance")
	}
	adv, ok := events[0].(PeriodAdvancedEvent)
	if !ok || adv.Period != 1 {
		t.Errorf("first event = %#v, expected PeriodAdvancedEvent for period 1", events[0])
	}
	var missions int
	for _, evt := range events {
		if _, ok := evt.(MissionCompletedEvent); ok {
			missions++
		}
	}
	if missions != 1 {
		t.Errorf("got %d mission events, expected 1", missions)
	}
}

func TestCreateUnknownBusiness(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.Create("bob", "bakery", "", 1); err == nil {
		t.Error("expected error for unknown business")
	}
}

func TestAdvanceRefusesOverlap(t *testing.T) {
	m, _ := newTestManager(t)
	s, _ := m.Create("alice", "lemonade", "fixed", 1)

	s.advancing.Store(true)
	_, err := s.Advance()
	s.advancing.Store(false)

	if !errors.Is(err, ErrBusy) {
		t.Fatalf("Advance() while another is in flight = %v, expected ErrBusy", err)
	}
	if s.Snapshot().State.Period != 0 {
		t.Error("refused Advance must not change the period")
	}
}

func TestAdvanceWaitsForOtherCallers(t *testing.T) {
	m, _ := newTestManager(t)
	s, _ := m.Create("alice", "lemonade", "fixed", 1)

	// A snapshot or save holding the session is not a period in flight.
	s.mu.Lock()
	done := make(chan error, 1)
	go func() {
		_, err := s.Advance()
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	s.mu.Unlock()

	if err := <-done; err != nil {
		t.Fatalf("Advance() behind another caller = %v, expected success", err)
	}
	if got := s.Snapshot().State.Period; got != 1 {
		t.Errorf("period = %d, expected 1", got)
	}
}

func TestConcurrentAdvanceNeverDoubleCounts(t *testing.T) {
	m, _ := newTestManager(t)
	s, _ := m.Create("alice", "lemonade", "fixed", 1)

	const callers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Advance()
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, ErrBusy) && !errors.Is(err, econ.ErrGameOver) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := s.Snapshot().State.Period; got != succeeded {
		t.Errorf("period = %d, successful advances = %d", got, succeeded)
	}
}

func TestCloseRecordsResultOnce(t *testing.T) {
	m, saver := newTestManager(t)
	s, _ := m.Create("alice", "lemonade", "fixed", 1)

	for i := 0; i < 3; i++ {
		if _, err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Close(s.ID()); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := m.Close(s.ID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Close() = %v, expected ErrNotFound", err)
	}

	results := saver.all()
	if len(results) != 1 {
		t.Fatalf("saved %d results, expected 1", len(results))
	}
	r := results[0]
	if r.Player != "alice" || r.BusinessID != "lemonade" || r.Periods != 3 {
		t.Errorf("result = %+v", r)
	}
	if r.Outcome != OutcomeVictory {
		t.Errorf("outcome = %q, expected victory after three profitable periods", r.Outcome)
	}

	if _, err := s.Advance(); !errors.Is(err, ErrClosed) {
		t.Errorf("Advance() after close = %v, expected ErrClosed", err)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestCloseWithoutPlaySavesNothing(t *testing.T) {
	m, saver := newTestManager(t)
	s, _ := m.Create("alice", "lemonade", "fixed", 1)
	_ = m.Close(s.ID())
	if len(saver.all()) != 0 {
		t.Error("a session with no periods should not be recorded")
	}
}

func TestBankruptcyRecordsImmediately(t *testing.T) {
	m, saver := newTestManager(t)
	s, _ := m.Create("carol", "lemonade", "fixed", 1)

	if err := s.SetPrice(0.5); err != nil {
		t.Fatal(err)
	}
	// Lose money every period until cash runs out.
	var over bool
	for i := 0; i < 100 && !over; i++ {
		out, err := s.Advance()
		if err != nil {
			t.Fatal(err)
		}
		over = out.GameOver
	}
	if !over {
		t.Fatal("expected bankruptcy")
	}

	results := saver.all()
	if len(results) != 1 || results[0].Outcome != OutcomeBankrupt {
		t.Fatalf("results = %+v, expected one bankrupt run", results)
	}
	_ = m.Close(s.ID())
	if len(saver.all()) != 1 {
		t.Error("Close() after bankruptcy recorded a second result")
	}
}

func TestCleanupIdle(t *testing.T) {
	m, _ := newTestManager(t)
	s, _ := m.Create("dave", "lemonade", "fixed", 1)

	m.cleanupIdle(time.Now())
	if m.Count() != 1 {
		t.Fatal("fresh session should survive cleanup")
	}

	m.cleanupIdle(s.IdleSince().Add(m.config.IdleTimeout + time.Second))
	if m.Count() != 0 {
		t.Error("idle session should be closed")
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	ch := NewChannelSession(2)
	ch.Send(VictoryEvent{Period: 1})
	ch.Send(VictoryEvent{Period: 2})
	ch.Send(VictoryEvent{Period: 3})

	first := (<-ch.Events()).(VictoryEvent)
	second := (<-ch.Events()).(VictoryEvent)
	if first.Period != 2 || second.Period != 3 {
		t.Errorf("got periods %d, %d; expected 2, 3", first.Period, second.Period)
	}

	ch.Close()
	ch.Close()
	ch.Send(VictoryEvent{Period: 4})
	select {
	case evt := <-ch.Events():
		t.Errorf("event %v delivered after close", evt)
	default:
	}
}
