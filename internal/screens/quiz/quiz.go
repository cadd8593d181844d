package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algoquiz/internal/bank"
	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/router"
	"github.com/abhisek/algoquiz/internal/screen"
	"github.com/abhisek/algoquiz/internal/screens/summary"
	"github.com/abhisek/algoquiz/internal/ui/components"
	"github.com/abhisek/algoquiz/internal/ui/layout"
)

// QuizScreen runs a quiz session on the engine.
type QuizScreen struct {
	eng *qz.Engine

	snap      qz.Snapshot
	choice    components.MultiChoice
	choicePos int
	feedback  *feedback

	confirmQuit bool
	done        bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New creates a QuizScreen. The session starts when the screen is pushed;
// a session already in progress is resumed.
func New(eng *qz.Engine) *QuizScreen {
	return &QuizScreen{eng: eng, choicePos: -1}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.eng.SetView(qz.ViewQuiz)
	s.eng.Start()
	s.sync()
	if s.snap.Session.Phase == qz.PhaseCompleted {
		return s.finish()
	}
	return refreshCmd()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) InterceptsBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "y", Description: "Finish"},
			{Key: "n", Description: "Keep going"},
			{Key: "r", Description: "Discard"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
	}
	if s.snap.Settings.ShowHints {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "Hint"})
	}
	if s.timed() {
		hints = append(hints, layout.KeyHint{Key: "p", Description: "Pause"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}

	switch msg := msg.(type) {
	case refreshMsg:
		s.sync()
		if s.snap.Session.Phase == qz.PhaseCompleted {
			return s, s.finish()
		}
		return s, refreshCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		switch msg.String() {
		case "y":
			s.eng.CompleteQuiz()
			s.sync()
			return s, s.finish()
		case "n", "esc":
			s.confirmQuit = false
		case "r":
			s.eng.ResetQuiz()
			s.done = true
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "h":
		s.eng.UseHint(s.snap.Session.Position)
	case "left", "b":
		s.eng.GoBack()
		s.feedback = nil
	case "right", "n":
		s.eng.Advance()
		s.feedback = nil
	case "p":
		if s.snap.TimerActive {
			s.eng.PauseTimer()
		} else {
			s.eng.ResumeTimer()
		}
	default:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted && !s.snap.Session.IsAnswered(s.choicePos) {
			s.submit()
		}
		if cmd != nil {
			return s, cmd
		}
	}

	s.sync()
	if s.snap.Session.Phase == qz.PhaseCompleted {
		return s, s.finish()
	}
	return s, nil
}

// submit records the chosen option and remembers the outcome for display.
func (s *QuizScreen) submit() {
	q, ok := s.snap.Current()
	if !ok {
		return
	}
	chosen := s.choice.ChosenIndex
	s.feedback = &feedback{
		Correct:     q.IsCorrect(chosen),
		Answer:      q.Options[q.Answer],
		Explanation: q.Explanation,
	}
	s.eng.SubmitAnswer(s.choicePos, chosen)
}

// sync refreshes the snapshot and rebuilds the option list when the
// session moved to another question.
func (s *QuizScreen) sync() {
	s.snap = s.eng.Snapshot()
	q, ok := s.snap.Current()
	if !ok {
		return
	}
	pos := s.snap.Session.Position
	if pos == s.choicePos {
		return
	}
	s.choicePos = pos
	s.choice = newChoice(q, s.snap.Session.Answers)
}

func newChoice(q bank.Question, answers map[int]int) components.MultiChoice {
	if chosen, ok := answers[q.ID]; ok {
		return components.Answered(q.Options, q.Answer, chosen)
	}
	return components.NewMultiChoice(q.Options, q.Answer)
}

// finish swaps this screen for the summary.
func (s *QuizScreen) finish() tea.Cmd {
	s.done = true
	eng := s.eng
	next := summary.New(eng, func() screen.Screen { return New(eng) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) timed() bool {
	return s.snap.Settings.ShowTimer && s.snap.Settings.TimeLimit > 0
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
