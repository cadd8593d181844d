package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algoquiz/internal/bank"
	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/screen"
	"github.com/abhisek/algoquiz/internal/ui/components"
	"github.com/abhisek/algoquiz/internal/ui/layout"
	"github.com/abhisek/algoquiz/internal/ui/theme"
)

type field int

const (
	fieldTimeLimit field = iota
	fieldShowTimer
	fieldShuffle
	fieldHints
	fieldDifficulty
	fieldCategory
	fieldCount
)

// timeStep is the left/right adjustment of the time limit, in seconds.
const timeStep = 30

// maxTimeLimit bounds the time limit input.
const maxTimeLimit = 3600

// SettingsScreen edits the quiz settings. Every change is applied to the
// engine, which persists it.
type SettingsScreen struct {
	eng      *qz.Engine
	settings qz.Settings
	cursor   field

	editing bool
	input   components.TextInput
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.BackInterceptor = (*SettingsScreen)(nil)

// New creates a new SettingsScreen.
func New(eng *qz.Engine) *SettingsScreen {
	return &SettingsScreen{
		eng:      eng,
		settings: eng.Snapshot().Settings,
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	s.eng.SetView(qz.ViewSettings)
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

// InterceptsBack keeps Esc inside the time limit editor.
func (s *SettingsScreen) InterceptsBack() bool {
	return s.editing
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Toggle/Edit"},
		{Key: "r", Description: "Defaults"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.editing {
		return s.updateEditor(kmsg)
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < fieldCount-1 {
			s.cursor++
		}
	case "left", "h":
		s.change(-1)
	case "right", "l", "space", " ":
		s.change(1)
	case "enter":
		if s.cursor == fieldTimeLimit {
			return s, s.openEditor()
		}
		s.change(1)
	case "r":
		s.apply(qz.FullPatch(qz.DefaultSettings()))
	}
	return s, nil
}

func (s *SettingsScreen) updateEditor(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.editing = false
		s.errMsg = ""
		return s, nil
	case "enter":
		n, err := s.input.NumericValue()
		if err != nil || n < 0 || n > maxTimeLimit {
			s.input.Submit(false)
			s.errMsg = fmt.Sprintf("enter 0 to %d seconds (0 = untimed)", maxTimeLimit)
			return s, nil
		}
		s.input.Submit(true)
		s.apply(qz.SettingsPatch{TimeLimit: &n})
		s.editing = false
		s.errMsg = ""
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *SettingsScreen) openEditor() tea.Cmd {
	s.input = components.NewTextInput("seconds", true, 4)
	s.input.SetValue(strconv.Itoa(s.settings.TimeLimit))
	s.editing = true
	return s.input.Init()
}

// change steps the field under the cursor by dir.
func (s *SettingsScreen) change(dir int) {
	var p qz.SettingsPatch
	cur := s.settings
	switch s.cursor {
	case fieldTimeLimit:
		n := cur.TimeLimit + dir*timeStep
		n = max(0, min(n, maxTimeLimit))
		p.TimeLimit = &n
	case fieldShowTimer:
		v := !cur.ShowTimer
		p.ShowTimer = &v
	case fieldShuffle:
		v := !cur.ShuffleQuestions
		p.ShuffleQuestions = &v
	case fieldHints:
		v := !cur.ShowHints
		p.ShowHints = &v
	case fieldDifficulty:
		opts := []qz.DifficultyFilter{qz.All}
		for _, d := range bank.AllDifficulties() {
			opts = append(opts, qz.DifficultyFilter(d))
		}
		v := cycle(opts, cur.Difficulty, dir)
		p.Difficulty = &v
	case fieldCategory:
		opts := []qz.CategoryFilter{qz.All}
		for _, c := range bank.AllCategories() {
			opts = append(opts, qz.CategoryFilter(c))
		}
		v := cycle(opts, cur.Category, dir)
		p.Category = &v
	}
	s.apply(p)
}

func (s *SettingsScreen) apply(p qz.SettingsPatch) {
	s.eng.UpdateSettings(p)
	s.settings = s.eng.Snapshot().Settings
}

// cycle returns the option dir steps away from cur, wrapping around.
func cycle[T comparable](opts []T, cur T, dir int) T {
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	n := len(opts)
	return opts[((idx+dir)%n+n)%n]
}

func (s *SettingsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	rows := []struct {
		label string
		value string
	}{
		{"Time limit", s.timeLimitValue()},
		{"Show timer", onOff(s.settings.ShowTimer)},
		{"Shuffle questions", onOff(s.settings.ShuffleQuestions)},
		{"Hints", onOff(s.settings.ShowHints)},
		{"Difficulty", string(s.settings.Difficulty)},
		{"Category", string(s.settings.Category)},
	}

	var b strings.Builder
	for i, r := range rows {
		label := fmt.Sprintf("%-20s", r.label)
		if field(i) == s.cursor {
			b.WriteString(theme.Selected.Render("▸ "+label) + theme.Body.Render("‹ "+r.value+" ›"))
		} else {
			b.WriteString(theme.Unselected.Render("  "+label) + theme.Dim.Render("  "+r.value))
		}
		b.WriteString("\n")
	}
	if s.editing {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("Seconds: ") + s.input.View())
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render(s.errMsg))
		b.WriteString("\n")
	}

	card := theme.Card.Width(cw).Render(strings.TrimRight(b.String(), "\n"))
	note := theme.Hint.Render("Changes apply to the next quiz.")
	return "\n" + layout.Centered(card+"\n\n"+note, width)
}

func (s *SettingsScreen) timeLimitValue() string {
	if s.settings.TimeLimit == 0 {
		return "untimed"
	}
	return fmt.Sprintf("%s (%ds)", qz.FormatRemaining(s.settings.TimeLimit), s.settings.TimeLimit)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
