package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algoquiz/internal/bank"
	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/screen"
	"github.com/abhisek/algoquiz/internal/ui/components"
	"github.com/abhisek/algoquiz/internal/ui/layout"
	"github.com/abhisek/algoquiz/internal/ui/theme"
)

// HistoryScreen displays past quiz results.
type HistoryScreen struct {
	eng       *qz.Engine
	exportDir string

	history      qz.History
	selected     int
	expanded     map[int]bool
	confirmClear bool
	status       string
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.BackInterceptor = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Exports are written into exportDir.
func New(eng *qz.Engine, exportDir string) *HistoryScreen {
	return &HistoryScreen{
		eng:       eng,
		exportDir: exportDir,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	s.eng.SetView(qz.ViewHistory)
	s.history = s.eng.Snapshot().History
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// InterceptsBack keeps Esc inside the clear confirmation.
func (s *HistoryScreen) InterceptsBack() bool {
	return s.confirmClear
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "y", Description: "Clear all"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "e", Description: "Export"},
		{Key: "c", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirmClear {
		switch kmsg.String() {
		case "y":
			s.eng.ClearHistory()
			s.history = s.eng.Snapshot().History
			s.selected = 0
			s.expanded = make(map[int]bool)
			s.status = "History cleared."
			s.confirmClear = false
		case "n", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.history.Results)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	case "e":
		path, err := s.eng.ExportHistoryFile(s.exportDir)
		if err != nil {
			s.errMsg = err.Error()
			s.status = ""
		} else {
			s.status = "Exported to " + path
			s.errMsg = ""
		}
	case "c":
		if len(s.history.Results) > 0 {
			s.confirmClear = true
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	summary := fmt.Sprintf("Best %d%%   Average %.1f%%   Quizzes %d",
		s.history.BestScore, s.history.AverageScore, s.history.TotalQuizzes)
	b.WriteString(layout.Centered(theme.Label.Render(summary), width))
	b.WriteString("\n\n")

	if len(s.history.Results) == 0 {
		b.WriteString(layout.Centered(lipgloss.NewStyle().
			Foreground(theme.TextDim).Italic(true).
			Render("No quizzes yet. Take one from the home screen!"), width))
		b.WriteString("\n")
	}

	for i, rec := range s.history.Results {
		dateStr := rec.Date
		if t := rec.Time(); !t.IsZero() {
			dateStr = t.Local().Format("Jan 02, 2006 15:04")
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %g/%d  %3d%%",
			prefix, dateStr, qz.FormatRemaining(rec.CompletionTime),
			rec.Score, rec.TotalQuestions, rec.ScorePercentage)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetails(rec)))
			b.WriteString("\n")
		}
	}

	if s.confirmClear {
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Warning).
			Padding(0, 2).
			Render("Delete all quiz history?  y yes   n no"), width))
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Correct.Render(s.status), width))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render("Error: "+s.errMsg), width))
	}

	return b.String()
}

// renderDetails shows the breakdown, progression and settings of a record.
func renderDetails(rec qz.Record) string {
	var lines []string
	for _, c := range bank.AllCategories() {
		if st, ok := rec.CategoryBreakdown[c]; ok {
			lines = append(lines, fmt.Sprintf("%-18s %d/%d", c, st.Correct, st.Total))
		}
	}
	if len(rec.DifficultyProgression) > 0 {
		lines = append(lines, "Difficulty  "+components.Progression(rec.DifficultyProgression))
	}
	timer := "untimed"
	if rec.Settings.TimeLimit > 0 {
		timer = qz.FormatRemaining(rec.Settings.TimeLimit)
	}
	lines = append(lines, fmt.Sprintf("Settings    %s · %s · %s",
		rec.Settings.Difficulty, rec.Settings.Category, timer))

	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		PaddingLeft(4).
		Render(strings.Join(lines, "\n"))
}
