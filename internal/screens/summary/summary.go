package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algoquiz/internal/bank"
	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/router"
	"github.com/abhisek/algoquiz/internal/screen"
	"github.com/abhisek/algoquiz/internal/ui/components"
	"github.com/abhisek/algoquiz/internal/ui/layout"
	"github.com/abhisek/algoquiz/internal/ui/theme"
)

// SummaryScreen displays the result of the session that just completed.
type SummaryScreen struct {
	snap    qz.Snapshot
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the engine's completed session. playAgain
// builds the screen that replaces this one when the user starts over.
func New(eng *qz.Engine, playAgain func() screen.Screen) *SummaryScreen {
	s := &SummaryScreen{snap: eng.Snapshot()}
	s.buttons = components.NewButtonRow(
		components.Button{Label: "Play Again", OnPress: func() tea.Cmd {
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: playAgain()} }
		}},
		components.Button{Label: "Home", OnPress: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	rec := s.snap.LastRecord
	if rec == nil || len(s.snap.Session.Questions) == 0 {
		b.WriteString(layout.Centered(theme.Title.Render("No questions to play"), width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Dim.Render(
			"No question matches the current difficulty and category filters."), width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.buttons.View(), width))
		return b.String()
	}

	title := "Quiz complete!"
	if rec.Settings.TimeLimit > 0 && rec.Settings.ShowTimer && s.snap.TimeRemaining == 0 {
		title = "Time's up!"
	}
	b.WriteString(layout.Centered(theme.Title.Render(title), width))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	switch {
	case rec.ScorePercentage < 50:
		scoreStyle = theme.Incorrect
	case rec.ScorePercentage < 80:
		scoreStyle = theme.TimerWarning
	}
	score := fmt.Sprintf("Score: %s / %d", formatScore(rec.Score), rec.TotalQuestions)
	b.WriteString(layout.Centered(theme.Body.Render(score)+"   "+
		scoreStyle.Render(fmt.Sprintf("%d%%", rec.ScorePercentage)), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Label.Render(
		"Time: "+qz.FormatRemaining(rec.CompletionTime)), width))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(0, min(width-8, 60))))

	// Category breakdown.
	b.WriteString(layout.Centered(theme.Label.Render("Categories"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(divider, width))
	b.WriteString("\n")
	for _, c := range bank.AllCategories() {
		st, ok := rec.CategoryBreakdown[c]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-18s %d/%d correct", c, st.Correct, st.Total)
		b.WriteString(layout.Centered(theme.Body.Render(line), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(rec.DifficultyProgression) > 0 {
		b.WriteString(layout.Centered(theme.Label.Render("Difficulty  ")+
			components.Progression(rec.DifficultyProgression), width))
		b.WriteString("\n\n")
	}

	// Answer review.
	b.WriteString(layout.Centered(theme.Label.Render("Review"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(divider, width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(s.renderReview(min(width-8, 60)), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(s.buttons.View(), width))
	return b.String()
}

// renderReview lists every question with the chosen and correct options.
func (s *SummaryScreen) renderReview(width int) string {
	sess := s.snap.Session
	lines := make([]string, 0, len(sess.Questions))
	for i, q := range sess.Questions {
		chosen, answered := sess.Answers[q.ID]
		mark := theme.Dim.Render("·")
		detail := theme.Dim.Render("skipped")
		switch {
		case answered && q.IsCorrect(chosen):
			mark = theme.Correct.Render("✓")
			detail = ""
		case answered:
			mark = theme.Incorrect.Render("✗")
			detail = theme.Dim.Render("answer: " + q.Options[q.Answer])
		}
		if sess.Hints[q.ID] {
			detail = strings.TrimSpace(detail + theme.Hint.Render(" (hint)"))
		}
		text := truncate(q.Text, width-8)
		line := fmt.Sprintf("%s %2d. %s", mark, i+1, text)
		if detail != "" {
			line += "\n       " + detail
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// formatScore drops the decimals from whole scores.
func formatScore(score float64) string {
	if score == float64(int(score)) {
		return fmt.Sprintf("%d", int(score))
	}
	return fmt.Sprintf("%.1f", score)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
