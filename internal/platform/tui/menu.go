package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/registry"
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	ID     string
	Title  string
	Detail string
}

// Selection is what the player picked: a business and a difficulty profile.
type Selection struct {
	BusinessID string
	ProfileID  string
}

type menuStage int

const (
	stageBusiness menuStage = iota
	stageProfile
)

// MenuModel is the Bubble Tea model for the business and difficulty picker.
type MenuModel struct {
	catalog        config.Catalog
	stage          menuStage
	businesses     []MenuItem
	profiles       []MenuItem
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	business       string
	quitting       bool
	selected       *Selection // Set when the player confirms a profile
	openScoreboard bool       // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing the registered businesses.
func NewMenuModel(cat config.Catalog, width, height int) MenuModel {
	infos := registry.List()
	businesses := make([]MenuItem, 0, len(infos))
	for _, info := range infos {
		item := MenuItem{ID: info.ID, Title: info.Title}
		if cfg, ok := cat.Business(info.ID); ok {
			item.Detail = "starts with " + Money(cfg.StartingCash)
		}
		businesses = append(businesses, item)
	}

	profiles := make([]MenuItem, 0, len(cat.Profiles))
	for _, p := range cat.Profiles {
		profiles = append(profiles, MenuItem{
			ID:     p.ID,
			Title:  p.Name,
			Detail: fmt.Sprintf("%d metrics, %d events, win after %d profitable periods", len(p.Metrics), len(p.Events), p.Rules().VictoryStreak),
		})
	}

	return MenuModel{
		catalog:    cat,
		businesses: businesses,
		profiles:   profiles,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) items() []MenuItem {
	if m.stage == stageProfile {
		return m.profiles
	}
	return m.businesses
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(items) == 0 {
			return m, nil
		}
		if m.stage == stageBusiness {
			m.business = items[m.cursor].ID
			m.stage = stageProfile
			m.cursor = m.defaultProfileIndex()
			return m, nil
		}
		m.selected = &Selection{BusinessID: m.business, ProfileID: items[m.cursor].ID}

	case MenuActionBack:
		if m.stage == stageProfile {
			m.stage = stageBusiness
			m.cursor = indexOf(m.businesses, m.business)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

func (m MenuModel) defaultProfileIndex() int {
	p, ok := m.catalog.DefaultProfileFor(m.business)
	if !ok {
		return 0
	}
	return indexOf(m.profiles, p.ID)
}

func indexOf(items []MenuItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return 0
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  B I Z S I M  ", m.width)))
	b.WriteString("\n\n")

	subtitle := "Choose a business"
	if m.stage == stageProfile {
		title := m.business
		if cfg, ok := m.catalog.Business(m.business); ok && cfg.Name != "" {
			title = cfg.Name
		}
		subtitle = fmt.Sprintf("%s: choose a difficulty", title)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(centerText(dimStyle.Render("Nothing to choose from. Check the catalog."), m.width))
		b.WriteString("\n")
	}
	for i, item := range items {
		cursor := "  "
		title := item.Title
		if i == m.cursor {
			cursor = "> "
			title = titleStyle.Render(title)
		}
		line := cursor + title
		if item.Detail != "" {
			line += dimStyle.Render("  " + item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	if m.stage == stageProfile {
		controls = "Up/Down: Navigate  |  Enter: Start  |  Esc: Back  |  Q: Quit"
	}
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the confirmed selection, or nil if none yet.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
