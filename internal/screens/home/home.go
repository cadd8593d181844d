package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/router"
	"github.com/abhisek/algoquiz/internal/screen"
	"github.com/abhisek/algoquiz/internal/screens/history"
	quizscreen "github.com/abhisek/algoquiz/internal/screens/quiz"
	"github.com/abhisek/algoquiz/internal/screens/settings"
	"github.com/abhisek/algoquiz/internal/ui/components"
	"github.com/abhisek/algoquiz/internal/ui/layout"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	eng        *qz.Engine
	menu       components.Menu
	menuLabels []string
	snap       qz.Snapshot
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. exportDir is where the history screen
// writes exports.
func New(eng *qz.Engine, exportDir string) *HomeScreen {
	menuLabels := []string{"START QUIZ", "SETTINGS", "HISTORY", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.New(eng)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(eng)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eng, exportDir)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		eng:        eng,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		snap:       eng.Snapshot(),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the stats after a quiz, settings change or history clear.
func (h *HomeScreen) Resume() tea.Cmd {
	h.eng.SetView(qz.ViewQuiz)
	h.snap = h.eng.Snapshot()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + 8)
	cw := layout.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.snap.History, cw),
		layout.Centered(renderSettingsLine(h.snap.Settings, h.snap.TotalQuestions), cw),
		renderMenu(h.menuLabels, h.menu.Selected, cw),
	}

	content := strings.Join(sections, "\n\n")
	return "\n" + layout.Centered(content, width)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
