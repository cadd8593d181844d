package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/ui/theme"
)

func badgeStyle(d bank.Difficulty) lipgloss.Style {
	switch d {
	case bank.DifficultyEasy:
		return theme.Easy
	case bank.DifficultyMedium:
		return theme.Medium
	case bank.DifficultyHard:
		return theme.Hard
	}
	return theme.Dim
}

// DifficultyBadge renders a difficulty level in its color.
func DifficultyBadge(d bank.Difficulty) string {
	return badgeStyle(d).Render(string(d))
}

// Progression renders a difficulty sequence as colored initials, e.g. E E M H.
func Progression(levels []bank.Difficulty) string {
	parts := make([]string, len(levels))
	for i, d := range levels {
		initial := "?"
		if d != "" {
			initial = string(d)[:1]
		}
		parts[i] = badgeStyle(d).Render(initial)
	}
	return strings.Join(parts, " ")
}
