package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/game"
	"github.com/vovakirdan/bizsim/internal/registry"
	"github.com/vovakirdan/bizsim/internal/session"
	"github.com/vovakirdan/bizsim/internal/storage"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func setupCatalog(t *testing.T) config.Catalog {
	t.Helper()
	cat := config.DefaultCatalog()
	if err := registry.Load(cat.Businesses); err != nil {
		t.Fatalf("registry.Load() failed: %v", err)
	}
	t.Cleanup(registry.Reset)
	return cat
}

func newTestSession(t *testing.T, cat config.Catalog) (*session.Manager, *session.Session) {
	t.Helper()
	mgr := session.NewManager(cat, session.DefaultConfig(), nil)
	sess, err := mgr.Create("tester", "lemonade", "beginner", 7)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return mgr, sess
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{-20, "-$20.00"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMetricRunway(t *testing.T) {
	got := FormatMetric(game.MetricValue{Key: config.MetricRunway, Infinite: true})
	if got != "unlimited" {
		t.Errorf("infinite runway = %q", got)
	}
	got = FormatMetric(game.MetricValue{Key: config.MetricRunway, Value: 3})
	if got != "3 periods" {
		t.Errorf("runway = %q", got)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{keyRunes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{keyRunes("q"), MenuActionQuit},
		{keyRunes("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMenuSelectsBusinessThenProfile(t *testing.T) {
	cat := setupCatalog(t)
	m := NewMenuModel(cat, 100, 30)

	// Businesses are sorted by id: coffee_shop, lemonade, tech_startup.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() != nil {
		t.Fatal("selection made before choosing a profile")
	}
	if !strings.Contains(m.View(), "choose a difficulty") {
		t.Error("profile stage not shown")
	}

	// Back returns to the business list with the cursor kept.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.BusinessID != "lemonade" || sel.ProfileID != "beginner" {
		t.Errorf("selection = %+v, expected lemonade/beginner", *sel)
	}
}

func TestPlayAdvanceIgnoredWhileInFlight(t *testing.T) {
	cat := setupCatalog(t)
	_, sess := newTestSession(t, cat)
	m := NewPlayModel(sess, nil, "", 120, 40)

	next, cmd := m.Update(keyRunes(" "))
	m = next.(PlayModel)
	if cmd == nil || !m.advancing {
		t.Fatal("first advance should start a period")
	}

	next, second := m.Update(keyRunes(" "))
	m = next.(PlayModel)
	if second != nil {
		t.Error("second advance while in flight should be ignored")
	}

	next, _ = m.Update(cmd())
	m = next.(PlayModel)
	if m.advancing {
		t.Error("advancing flag not cleared")
	}
	if m.snap.State.Period != 1 {
		t.Errorf("period = %d, expected 1", m.snap.State.Period)
	}
	if m.snap.Last == nil || len(m.snap.Metrics) == 0 {
		t.Error("metrics not shown after first period")
	}
}

func TestPlayPriceEntry(t *testing.T) {
	cat := setupCatalog(t)
	_, sess := newTestSession(t, cat)
	m := NewPlayModel(sess, nil, "", 120, 40)

	next, _ := m.Update(keyRunes("p"))
	m = next.(PlayModel)
	if m.inputMode != inputPrice {
		t.Fatal("price prompt not opened")
	}
	for _, r := range "2.5" {
		next, _ = m.Update(keyRunes(string(r)))
		m = next.(PlayModel)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PlayModel)

	if m.inputMode != inputNone {
		t.Error("prompt still open after enter")
	}
	if got := sess.Snapshot().State.Price; got != 2.5 {
		t.Errorf("price = %v, expected 2.5", got)
	}

	// Rejected input leaves the price alone.
	next, _ = m.Update(keyRunes("p"))
	m = next.(PlayModel)
	next, _ = m.Update(keyRunes("-3"))
	m = next.(PlayModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PlayModel)
	if got := sess.Snapshot().State.Price; got != 2.5 {
		t.Errorf("price changed to %v by invalid input", got)
	}
	if !strings.Contains(m.status, "Price must be") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPlayBuyReportsInsufficientCash(t *testing.T) {
	cat := setupCatalog(t)
	_, sess := newTestSession(t, cat)
	m := NewPlayModel(sess, nil, "", 120, 40)

	// Lemonade starts with $500 and R&D costs $300: the second buy fails.
	next, _ := m.Update(keyRunes("r"))
	m = next.(PlayModel)
	if m.snap.State.RDLevel != 1 {
		t.Fatalf("rd level = %d, expected 1", m.snap.State.RDLevel)
	}
	next, _ = m.Update(keyRunes("r"))
	m = next.(PlayModel)
	if m.snap.State.RDLevel != 1 || m.status != "Not enough cash for that." {
		t.Errorf("rd level = %d, status = %q", m.snap.State.RDLevel, m.status)
	}
}

func TestSaveSession(t *testing.T) {
	cat := setupCatalog(t)
	store := openStore(t)
	_, sess := newTestSession(t, cat)

	if err := SaveSession(store, sess, "slot"); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if rec, _ := store.LoadGame("slot"); rec != nil {
		t.Error("unplayed game should not be saved")
	}

	if _, err := sess.Advance(); err != nil {
		t.Fatal(err)
	}
	if err := SaveSession(store, sess, "slot"); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	rec, err := store.LoadGame("slot")
	if err != nil || rec == nil {
		t.Fatalf("LoadGame() = %v, %v", rec, err)
	}
	if rec[game.KeyPeriod] != "1" {
		t.Errorf("saved period = %q", rec[game.KeyPeriod])
	}

	if err := SaveSession(nil, sess, "slot"); err != nil {
		t.Errorf("SaveSession without store = %v", err)
	}
}

func TestAppResumesSaveAndClosesOnBack(t *testing.T) {
	cat := setupCatalog(t)
	store := openStore(t)

	g, err := game.FromCatalog(cat, "lemonade", "beginner", 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.SaveGame(SlotName("alice", "lemonade"), g.Encode()); err != nil {
		t.Fatal(err)
	}

	mgr := session.NewManager(cat, session.DefaultConfig(), nil)
	mgr.SetResultSaver(store)
	m := NewAppModel(AppOptions{
		Manager:  mgr,
		Store:    store,
		Player:   "alice",
		Width:    120,
		Height:   40,
		Business: "lemonade",
		Profile:  "beginner",
	})
	if m.Screen() != "play" {
		t.Fatalf("screen = %s, expected play", m.Screen())
	}
	if m.play.snap.State.Period != 2 {
		t.Errorf("resumed period = %d, expected 2", m.play.snap.State.Period)
	}
	if mgr.Count() != 1 {
		t.Errorf("sessions = %d, expected 1", mgr.Count())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(AppModel)
	if m.Screen() != "menu" {
		t.Errorf("screen = %s, expected menu", m.Screen())
	}
	if mgr.Count() != 0 {
		t.Errorf("session not closed, %d live", mgr.Count())
	}

	scores, err := store.TopScores("lemonade", 10)
	if err != nil || len(scores) != 1 {
		t.Fatalf("TopScores() = %v, %v; expected one recorded run", scores, err)
	}
	if scores[0].Player != "alice" || scores[0].Periods != 2 {
		t.Errorf("recorded run = %+v", scores[0])
	}
}

func TestAppUnknownBusinessFallsBackToMenu(t *testing.T) {
	cat := setupCatalog(t)
	mgr := session.NewManager(cat, session.DefaultConfig(), nil)

	m := NewAppModel(AppOptions{Manager: mgr, Business: "lemonad", Width: 80, Height: 24})
	if m.Screen() != "menu" {
		t.Errorf("screen = %s, expected menu", m.Screen())
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("error not shown")
	}
}
