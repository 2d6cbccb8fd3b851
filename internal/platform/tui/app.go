package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bizsim/internal/game"
	"github.com/vovakirdan/bizsim/internal/session"
	"github.com/vovakirdan/bizsim/internal/storage"
)

// AppOptions configures one interactive run, local or over SSH.
type AppOptions struct {
	Manager *session.Manager
	Store   *storage.Store // Optional, can be nil
	Player  string
	Seed    int64 // 0 = time based
	Width   int
	Height  int

	// Business and Profile skip the menu when Business is set.
	Business string
	Profile  string
	// Slot overrides the save slot derived from player and business.
	Slot string
}

// SlotName returns the default save slot for a player's business.
func SlotName(player, businessID string) string {
	if player == "" {
		player = "local"
	}
	return player + "/" + businessID
}

// activeSession tracks the session a model is playing so that whoever runs
// the program can save and close it when the program ends.
type activeSession struct {
	mu   sync.Mutex
	sess *session.Session
	slot string
}

func (a *activeSession) set(s *session.Session, slot string) {
	a.mu.Lock()
	a.sess, a.slot = s, slot
	a.mu.Unlock()
}

func (a *activeSession) take() (*session.Session, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, slot := a.sess, a.slot
	a.sess, a.slot = nil, ""
	return s, slot
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenPlay
	screenScores
)

// AppModel manages the full flow: menu -> play -> menu, plus the scoreboard.
// This is the top-level model for both local and SSH play.
type AppModel struct {
	opts     AppOptions
	active   *activeSession
	screen   appScreen
	menu     MenuModel
	play     PlayModel
	scores   ScoreboardModel
	width    int
	height   int
	err      string
	quitting bool
}

// NewAppModel creates the top-level model.
func NewAppModel(opts AppOptions) AppModel {
	m := AppModel{
		opts:   opts,
		active: &activeSession{},
		width:  opts.Width,
		height: opts.Height,
	}
	m.menu = NewMenuModel(opts.Manager.Catalog(), m.width, m.height)

	if opts.Business != "" {
		if err := m.start(opts.Business, opts.Profile); err != nil {
			m.err = err.Error()
		}
	}
	return m
}

// start creates or resumes a session and switches to the play screen.
// A save in the slot is resumed when it was made with the same profile.
func (m *AppModel) start(businessID, profileID string) error {
	cat := m.opts.Manager.Catalog()
	if profileID == "" {
		if p, ok := cat.DefaultProfileFor(businessID); ok {
			profileID = p.ID
		}
	}

	slot := m.opts.Slot
	if slot == "" {
		slot = SlotName(m.opts.Player, businessID)
	}

	var sess *session.Session
	var resumed bool
	if m.opts.Store != nil {
		rec, err := m.opts.Store.LoadGame(slot)
		if err != nil {
			return err
		}
		if rec != nil && rec[game.KeyBusiness] == businessID && rec[game.KeyProfile] == profileID {
			g, err := game.Load(cat, rec)
			if err != nil {
				return err
			}
			sess = m.opts.Manager.Attach(m.opts.Player, g)
			resumed = true
		}
	}

	if sess == nil {
		seed := m.opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		var err error
		sess, err = m.opts.Manager.Create(m.opts.Player, businessID, profileID, seed)
		if err != nil {
			return err
		}
	}

	m.active.set(sess, slot)
	m.play = NewPlayModel(sess, m.opts.Store, slot, m.width, m.height)
	if resumed {
		m.play.notify(fmt.Sprintf("Resumed saved game at period %d", m.play.snap.State.Period))
	}
	m.screen = screenPlay
	m.err = ""
	return nil
}

// finish saves and closes the active session, recording its result.
func (m *AppModel) finish() {
	//nolint:errcheck // Best-effort save, the player is leaving anyway
	release(m.opts.Manager, m.opts.Store, m.active)
}

// release saves and closes whatever session a is holding. It is safe to
// call more than once.
func release(mgr *session.Manager, store *storage.Store, a *activeSession) error {
	sess, slot := a.take()
	if sess == nil {
		return nil
	}
	err := SaveSession(store, sess, slot)
	_ = mgr.Close(sess.ID())
	return err
}

// Init initializes the active screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenPlay {
		return m.play.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	if sel := m.menu.Selected(); sel != nil {
		if err := m.start(sel.BusinessID, sel.ProfileID); err != nil {
			m.err = err.Error()
			m.menu = NewMenuModel(m.opts.Manager.Catalog(), m.width, m.height)
			return m, nil
		}
		return m, m.play.Init()
	}

	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.play = pm
	}

	if m.play.IsQuitting() {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.finish()
		m.menu = NewMenuModel(m.opts.Manager.Catalog(), m.width, m.height)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.menu = NewMenuModel(m.opts.Manager.Catalog(), m.width, m.height)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	var view string
	switch m.screen {
	case screenPlay:
		view = m.play.View()
	case screenScores:
		view = m.scores.View()
	default:
		view = m.menu.View()
	}
	if m.err != "" {
		view += "\n" + badStyle.Render("Error: "+m.err)
	}
	return view
}

// Screen reports which screen is showing.
func (m AppModel) Screen() string {
	switch m.screen {
	case screenPlay:
		return "play"
	case screenScores:
		return "scores"
	}
	return "menu"
}

// Run starts the Bubble Tea program for a local player and saves the
// running game on exit.
func Run(opts AppOptions) error {
	model := NewAppModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if relErr := release(opts.Manager, opts.Store, model.active); err == nil {
		err = relErr
	}
	return err
}
