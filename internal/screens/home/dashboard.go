package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/ui/theme"
)

// Block-letter title.
const titleFull = `  ▄▀█ █   █▀▀ █▀█ █▀█ █ █ █ ▀█
  █▀█ █▄▄ █▄█ █▄█ ▀▀█ █▄█ █ █▄`

const titleCompact = "A L G O Q U I Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	subtitle := theme.Subtitle.Render("Data structures & algorithms, one question at a time")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n\n" + subtitle)
}

// renderStatsBar renders the history aggregates in a bordered box.
func renderStatsBar(h qz.History, cw int) string {
	best := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	avg := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	total := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		best.Render(fmt.Sprintf("★ BEST %d%%", h.BestScore)),
		avg.Render(fmt.Sprintf("◆ AVG %.0f%%", h.AverageScore)),
		total.Render(fmt.Sprintf("● %d QUIZZES", h.TotalQuizzes)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

// renderSettingsLine summarises the settings the next quiz will use.
func renderSettingsLine(s qz.Settings, pool int) string {
	timer := "untimed"
	if s.TimeLimit > 0 && s.ShowTimer {
		timer = qz.FormatRemaining(s.TimeLimit)
	}
	parts := []string{
		fmt.Sprintf("%d questions", pool),
		string(s.Difficulty),
		string(s.Category),
		timer,
	}
	if s.ShowHints {
		parts = append(parts, "hints on")
	}
	return theme.Label.Render(strings.Join(parts, " · "))
}

// renderMenu renders menu labels in a bordered box at content width.
func renderMenu(items []string, selected int, cw int) string {
	var b strings.Builder
	for i, label := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == selected {
			b.WriteString(theme.Selected.Render("▸ " + label + " ◂"))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label + "  "))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 0).
		Render(b.String())
}
