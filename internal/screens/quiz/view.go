package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/ui/components"
	"github.com/abhisek/algoquiz/internal/ui/layout"
	"github.com/abhisek/algoquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	q, ok := s.snap.Current()
	if !ok {
		return layout.Centered(theme.Dim.Render("\n\nPreparing quiz..."), width)
	}

	cw := layout.ContentWidth(width)
	sess := s.snap.Session

	var b strings.Builder
	b.WriteString("\n")

	// Status line.
	status := fmt.Sprintf("Question %d of %d   %s   %s",
		sess.Position+1, len(sess.Questions),
		components.DifficultyBadge(q.Difficulty),
		theme.Label.Render(string(q.Category)))
	b.WriteString(layout.Centered(status, width))
	b.WriteString("\n")

	bar := components.NewProgressBar("Progress", float64(s.snap.Progress)/100, true, cw)
	b.WriteString(layout.Centered(bar.View(), width))
	b.WriteString("\n")

	if s.timed() {
		b.WriteString(layout.Centered(s.renderTimer(cw), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Question card.
	var card strings.Builder
	card.WriteString(theme.Body.Bold(true).Width(cw - 6).Render(q.Text))
	card.WriteString("\n\n")
	card.WriteString(s.choice.View())
	if s.snap.HintUsed(sess.Position) && q.Hint != "" {
		card.WriteString("\n")
		card.WriteString(theme.Hint.Width(cw - 6).Render("Hint: " + q.Hint))
	}
	b.WriteString(layout.Centered(theme.Card.Width(cw).Render(card.String()), width))
	b.WriteString("\n")

	if s.feedback != nil {
		b.WriteString("\n")
		b.WriteString(layout.Centered(renderFeedback(s.feedback, cw), width))
		b.WriteString("\n")
	}

	if s.confirmQuit {
		b.WriteString("\n")
		dialog := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Warning).
			Padding(0, 2).
			Render("End this quiz?  y finish and record   n keep going   r discard")
		b.WriteString(layout.Centered(dialog, width))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *QuizScreen) renderTimer(width int) string {
	remaining := s.snap.TimeRemaining
	style := theme.TimerNormal
	fill := theme.Secondary
	switch {
	case qz.IsCritical(remaining):
		style, fill = theme.TimerCritical, theme.Error
	case qz.IsWarning(remaining):
		style, fill = theme.TimerWarning, theme.Warning
	}

	label := "⏱ " + qz.FormatRemaining(remaining)
	if !s.snap.TimerActive {
		label += " (paused)"
	}
	bar := components.NewProgressBar("", s.snap.TimePercentage/100, false, width-lipgloss.Width(label)-2)
	bar.Fill = fill
	return style.Render(label) + "  " + bar.View()
}

func renderFeedback(f *feedback, width int) string {
	var b strings.Builder
	if f.Correct {
		b.WriteString(theme.Correct.Render("✓ Correct"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Incorrect"))
		b.WriteString(theme.Dim.Render("  answer: " + f.Answer))
	}
	if f.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Width(width).Render(f.Explanation))
	}
	return b.String()
}
