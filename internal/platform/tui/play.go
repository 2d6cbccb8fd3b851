package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/game"
	"github.com/vovakirdan/bizsim/internal/mission"
	"github.com/vovakirdan/bizsim/internal/session"
	"github.com/vovakirdan/bizsim/internal/storage"
)

const maxNotices = 4

type inputMode int

const (
	inputNone inputMode = iota
	inputPrice
	inputMarketing
)

// PlayModel is the Bubble Tea model for one running business.
type PlayModel struct {
	sess       *session.Session
	store      *storage.Store // Optional, can be nil
	slot       string
	keys       PlayKeyMap
	help       help.Model
	input      textinput.Model
	inputMode  inputMode
	snap       game.Snapshot
	insight    string
	notices    []string
	status     string
	advancing  bool // a period is being simulated
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewPlayModel creates a play screen for sess. Progress is saved to slot
// when store is set.
func NewPlayModel(sess *session.Session, store *storage.Store, slot string, width, height int) PlayModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 16

	h := help.New()
	h.Width = width

	return PlayModel{
		sess:   sess,
		store:  store,
		slot:   slot,
		keys:   DefaultPlayKeyMap(),
		help:   h,
		input:  ti,
		snap:   sess.Snapshot(),
		width:  width,
		height: height,
	}
}

// Init starts listening for session events.
func (m PlayModel) Init() tea.Cmd {
	return waitForEvent(m.sess)
}

// Update handles messages for the play screen.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case advanceDoneMsg:
		m.advancing = false
		if msg.err != nil {
			m.status = describeError(msg.err, m.snap.Business)
			return m, nil
		}
		m.insight = msg.outcome.Insight
		m.status = ""
		m.refresh()
		return m, nil

	case session.MissionCompletedEvent:
		m.notify("Mission complete: " + m.missionTitle(msg.MissionID))
		return m, waitForEvent(m.sess)

	case session.AchievementEarnedEvent:
		m.notify("Achievement earned: " + m.achievementTitle(msg.AchievementID))
		return m, waitForEvent(m.sess)

	case session.VictoryEvent:
		m.notify(fmt.Sprintf("Victory in period %d! Score %s", msg.Period, humanize.Comma(int64(msg.Score))))
		return m, waitForEvent(m.sess)

	case session.GameOverEvent:
		m.notify(fmt.Sprintf("Bankrupt in period %d. Final score %s", msg.Period, humanize.Comma(int64(msg.Score))))
		return m, waitForEvent(m.sess)

	case session.PeriodAdvancedEvent:
		return m, waitForEvent(m.sess)
	}

	return m, nil
}

// handleKey processes keyboard input outside of the entry prompt.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.save()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.save()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		// One period at a time; repeated presses while simulating are dropped.
		if m.advancing || m.snap.State.GameOver {
			return m, nil
		}
		m.advancing = true
		m.status = "Simulating..."
		return m, advanceCmd(m.sess)

	case key.Matches(msg, m.keys.Price):
		return m.openInput(inputPrice)

	case key.Matches(msg, m.keys.Marketing):
		return m.openInput(inputMarketing)

	case key.Matches(msg, m.keys.Inventory):
		m.buy(econ.ActionInventory, "Bought a stock batch")

	case key.Matches(msg, m.keys.Employee):
		m.buy(econ.ActionEmployee, "Hired an employee")

	case key.Matches(msg, m.keys.RD):
		m.buy(econ.ActionRD, "Invested in R&D")
	}

	return m, nil
}

func (m PlayModel) openInput(mode inputMode) (tea.Model, tea.Cmd) {
	if m.snap.State.GameOver {
		m.status = describeError(econ.ErrGameOver, m.snap.Business)
		return m, nil
	}
	m.inputMode = mode
	m.input.SetValue("")
	switch mode {
	case inputPrice:
		m.input.Placeholder = strconv.FormatFloat(m.snap.State.Price, 'f', 2, 64)
	case inputMarketing:
		m.input.Placeholder = "amount to spend"
	}
	cmd := m.input.Focus()
	return m, cmd
}

// handleInputKey feeds the entry prompt.
func (m PlayModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.save()
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		m.submit(m.input.Value())
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PlayModel) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

// submit applies the entered value for the open prompt.
func (m *PlayModel) submit(raw string) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.status = fmt.Sprintf("%q is not a number.", raw)
		return
	}

	switch m.inputMode {
	case inputPrice:
		if err := m.sess.SetPrice(v); err != nil {
			m.status = describeError(err, m.snap.Business)
			return
		}
		m.status = "Price set to " + Money(v)
	case inputMarketing:
		if err := m.sess.Apply(econ.ActionMarketing, v); err != nil {
			m.status = describeError(err, m.snap.Business)
			return
		}
		m.status = "Spent " + Money(v) + " on marketing"
	}
	m.refresh()
}

func (m *PlayModel) buy(kind econ.ActionKind, done string) {
	if err := m.sess.Buy(kind); err != nil {
		m.status = describeError(err, m.snap.Business)
		return
	}
	m.status = fmt.Sprintf("%s for %s", done, Money(m.snap.Business.ActionCost(kind)))
	m.refresh()
}

func (m *PlayModel) refresh() {
	m.snap = m.sess.Snapshot()
}

func (m *PlayModel) notify(line string) {
	m.notices = append(m.notices, line)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

// save writes progress, reporting failures in the status line.
func (m *PlayModel) save() {
	if err := SaveSession(m.store, m.sess, m.slot); err != nil {
		m.status = "Could not save: " + err.Error()
	}
}

func (m PlayModel) missionTitle(id string) string {
	for _, ms := range m.snap.Missions {
		if ms.ID == id {
			return ms.Title
		}
	}
	return id
}

func (m PlayModel) achievementTitle(id string) string {
	for _, a := range m.snap.Achievements {
		if a.ID == id {
			return a.Title
		}
	}
	return id
}

// SaveSession writes the session to slot. A bankrupt run clears the slot
// instead so it cannot be resumed; an unplayed one is not written.
func SaveSession(store *storage.Store, s *session.Session, slot string) error {
	if store == nil || s == nil || slot == "" {
		return nil
	}
	snap := s.Snapshot()
	if snap.State.GameOver {
		return store.DeleteSave(slot)
	}
	if snap.State.Period == 0 {
		return nil
	}
	return store.SaveGame(slot, s.Encode())
}

func describeError(err error, cfg econ.BusinessConfig) string {
	switch {
	case errors.Is(err, econ.ErrInvalidPrice):
		if cfg.MaxPrice > 0 {
			return "Price must be above $0 and at most " + Money(cfg.MaxPrice) + "."
		}
		return "Price must be above $0."
	case errors.Is(err, econ.ErrInvalidAmount):
		return "Amount must be positive."
	case errors.Is(err, econ.ErrInsufficientCash):
		return "Not enough cash for that."
	case errors.Is(err, econ.ErrGameOver):
		return "The business is bankrupt."
	case errors.Is(err, session.ErrBusy):
		return "Still simulating the last period."
	case errors.Is(err, session.ErrClosed):
		return "This session has ended."
	}
	return err.Error()
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.snap.State
	var b strings.Builder

	name := m.snap.Business.Name
	if name == "" {
		name = m.snap.Business.ID
	}
	header := titleStyle.Render(name) + dimStyle.Render("  "+m.snap.ProfileName) +
		fmt.Sprintf("   Period %d   Level %d (%d XP)   Score %s",
			s.Period, s.Level, s.XP, humanize.Comma(int64(m.snap.Score)))
	b.WriteString(header)
	b.WriteString("\n")

	switch {
	case s.GameOver:
		b.WriteString(badStyle.Bold(true).Render("BANKRUPT. Esc returns to the menu."))
		b.WriteString("\n")
	case s.Victory:
		b.WriteString(goodStyle.Bold(true).Render("VICTORY! Keep growing or press Esc for the menu."))
		b.WriteString("\n")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.viewBusiness(), " ", m.viewMetrics())
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, m.viewMissions(), " ", m.viewAchievements(), " ", m.viewEvents())
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(bottom)
	b.WriteString("\n")

	if m.insight != "" {
		b.WriteString(labelStyle.Render("Insight: ") + m.insight)
		b.WriteString("\n")
	}
	for _, n := range m.notices {
		b.WriteString(noticeStyle.Render("* " + n))
		b.WriteString("\n")
	}

	switch m.inputMode {
	case inputPrice:
		b.WriteString("New price " + m.input.View())
		b.WriteString("\n")
	case inputMarketing:
		b.WriteString("Marketing spend " + m.input.View())
		b.WriteString("\n")
	default:
		if m.status != "" {
			b.WriteString(m.status)
			b.WriteString("\n")
		}
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func kv(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-13s", label)) + value
}

func (m PlayModel) viewBusiness() string {
	s := m.snap.State
	cfg := m.snap.Business
	lines := []string{
		titleStyle.Render("Business"),
		kv("Cash", SignedMoney(s.Cash)),
		kv("Price", Money(s.Price)),
		kv("Inventory", humanize.Comma(int64(s.InventoryUnits))+" units"),
		kv("Employees", strconv.Itoa(s.EmployeeCount)),
		kv("R&D level", strconv.Itoa(s.RDLevel)),
		kv("Marketing", Money(s.MarketingSpend)+" this period"),
		kv("Streak", fmt.Sprintf("%d / %d profitable", s.ConsecutiveProfitable, m.snap.VictoryStreak)),
		kv("Costs", fmt.Sprintf("stock %s  hire %s  r&d %s",
			Money(cfg.ActionCosts.Inventory), Money(cfg.ActionCosts.Employee), Money(cfg.ActionCosts.RD))),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m PlayModel) viewMetrics() string {
	lines := []string{titleStyle.Render("Last period")}
	if m.snap.Last == nil {
		lines = append(lines, dimStyle.Render("Press space to run the first period."))
	}
	for _, mv := range m.snap.Metrics {
		lines = append(lines, kv(mv.Label, FormatMetric(mv)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m PlayModel) viewEvents() string {
	lines := []string{titleStyle.Render("Market")}
	if len(m.snap.Modifiers) == 0 {
		lines = append(lines, dimStyle.Render("Quiet market."))
	}
	for _, mod := range m.snap.Modifiers {
		lines = append(lines, FormatModifier(mod))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m PlayModel) viewMissions() string {
	lines := []string{titleStyle.Render("Missions")}
	for _, ms := range m.snap.Missions {
		switch ms.Status() {
		case mission.StatusCompleted:
			lines = append(lines, goodStyle.Render("[x] "+ms.Title))
		case mission.StatusUnlocked:
			lines = append(lines, "[>] "+ms.Title)
		default:
			lines = append(lines, dimStyle.Render("[ ] "+ms.Title))
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m PlayModel) viewAchievements() string {
	lines := []string{titleStyle.Render("Achievements")}
	for _, a := range m.snap.Achievements {
		if a.Earned {
			lines = append(lines, goodStyle.Render("* "+a.Title))
		} else {
			lines = append(lines, dimStyle.Render("- "+a.Title))
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the session being played.
func (m PlayModel) Session() *session.Session {
	return m.sess
}
