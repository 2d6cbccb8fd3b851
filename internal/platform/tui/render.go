package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Money formats a currency amount with thousands separators and cents.
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// SignedMoney colors an amount green when positive and red when negative.
func SignedMoney(v float64) string {
	switch {
	case v > 0:
		return goodStyle.Render(Money(v))
	case v < 0:
		return badStyle.Render(Money(v))
	}
	return Money(v)
}

// FormatMetric renders a metric value for display.
func FormatMetric(mv game.MetricValue) string {
	switch mv.Key {
	case config.MetricDemand:
		return fmt.Sprintf("%.2fx", mv.Value)
	case config.MetricCustomers:
		return humanize.Comma(int64(mv.Value))
	case config.MetricRunway:
		if mv.Infinite {
			return "unlimited"
		}
		return humanize.Comma(int64(mv.Value)) + " periods"
	case config.MetricNetProfit, config.MetricGrossMargin:
		return SignedMoney(mv.Value)
	}
	return Money(mv.Value)
}

// FormatModifier describes an active modifier, e.g. "viral_post demand +50% (2 left)".
func FormatModifier(m econ.Modifier) string {
	pct := (m.Magnitude - 1) * 100
	effect := fmt.Sprintf("%+.0f%%", pct)
	// Cheaper supplies and more demand are both good news.
	good := (m.Kind == econ.ModifierDemand && pct > 0) || (m.Kind == econ.ModifierCOGS && pct < 0)
	if good {
		effect = goodStyle.Render(effect)
	} else {
		effect = badStyle.Render(effect)
	}
	return fmt.Sprintf("%s %s %s (%d left)", humanizeID(m.Source), m.Kind, effect, m.Remaining)
}

// humanizeID turns "supply_shortage" into "Supply shortage".
func humanizeID(id string) string {
	if id == "" {
		return "Event"
	}
	s := strings.ReplaceAll(id, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
