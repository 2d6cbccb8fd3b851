package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/platform/tui"
	"github.com/vovakirdan/bizsim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List businesses and difficulty profiles",
	Long:  `Shows every business type in the catalog and the difficulty profiles they can be played with.`,
	RunE:  runList,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// newTable returns a table in the CLI's house style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func runList(_ *cobra.Command, _ []string) error {
	businesses := registry.List()
	if len(businesses) == 0 {
		fmt.Println("No businesses available.")
		return nil
	}

	t := newTable("ID", "Name", "Price", "Unit cost", "Starting cash", "Stock / Hire / R&D")
	for _, info := range businesses {
		cfg, err := registry.Lookup(info.ID)
		if err != nil {
			return err
		}
		t.Row(
			cfg.ID,
			cfg.Name,
			tui.Money(cfg.BasePrice),
			tui.Money(cfg.BaseCOGS),
			tui.Money(cfg.StartingCash),
			fmt.Sprintf("%s / %s / %s",
				tui.Money(cfg.ActionCosts.Inventory),
				tui.Money(cfg.ActionCosts.Employee),
				tui.Money(cfg.ActionCosts.RD)),
		)
	}
	fmt.Println("Businesses:")
	fmt.Println(t.Render())

	p := newTable("Profile", "Name", "Suggested for", "Win streak", "Metrics", "Events")
	for _, prof := range catalog.Profiles {
		p.Row(
			prof.ID,
			prof.Name,
			prof.Business,
			strconv.Itoa(prof.Rules().VictoryStreak),
			strings.Join(prof.Metrics, ", "),
			strconv.Itoa(len(prof.Events)),
		)
	}
	fmt.Println()
	fmt.Println("Difficulty profiles:")
	fmt.Println(p.Render())

	fmt.Println()
	fmt.Println("Run 'bizsim play <id>' to play a business.")
	return nil
}
