package quiz

import (
	"time"

	"github.com/abhisek/algoquiz/internal/bank"
)

// Phase is the lifecycle state of a quiz session.
type Phase int

const (
	PhaseNotStarted Phase = iota // No session running
	PhaseInProgress              // Serving questions
	PhaseCompleted               // Finished; result recorded
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return "not-started"
	}
}

// View is the presentation view the user is looking at.
type View string

const (
	ViewQuiz     View = "quiz"
	ViewSettings View = "settings"
	ViewHistory  View = "history"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewQuiz, ViewSettings, ViewHistory:
		return true
	}
	return false
}

// AnswerEvent is one entry of the per-answer log.
type AnswerEvent struct {
	QuestionID int             `json:"questionId"`
	Selected   int             `json:"selected"`
	Correct    bool            `json:"correct"`
	Difficulty bank.Difficulty `json:"difficulty"`
	TimeSpent  int             `json:"timeSpent"` // seconds
}

// Session is the mutable state of one quiz attempt. The engine owns it; the
// presentation layer only ever sees copies.
type Session struct {
	// ID identifies the attempt; it becomes the history record ID.
	ID string

	// Phase is the lifecycle state.
	Phase Phase

	// Questions is the in-play sequence, frozen when the session starts.
	Questions []bank.Question

	// Position is the index into Questions of the current question.
	Position int

	// Answers maps question ID to the selected option.
	Answers map[int]int

	// Hints marks question IDs for which a hint was used.
	Hints map[int]bool

	// StartedAt and EndedAt bound the attempt. Zero until set.
	StartedAt time.Time
	EndedAt   time.Time

	// QuestionStart anchors the time spent on the current question.
	QuestionStart time.Time

	// Streak is positive for a run of correct answers and negative for a run
	// of incorrect ones.
	Streak int

	// Difficulty is the current adaptive level.
	Difficulty bank.Difficulty

	// Log records every submitted answer in order.
	Log []AnswerEvent

	// Progression records the adaptive level in effect before each answer.
	Progression []bank.Difficulty
}

// newSession returns a session in the NotStarted phase.
func newSession(start bank.Difficulty) Session {
	return Session{
		Phase:      PhaseNotStarted,
		Answers:    make(map[int]int),
		Hints:      make(map[int]bool),
		Difficulty: start,
	}
}

// Current returns the question at Position, or false when there is none.
func (s *Session) Current() (bank.Question, bool) {
	if s.Position < 0 || s.Position >= len(s.Questions) {
		return bank.Question{}, false
	}
	return s.Questions[s.Position], true
}

// IsAnswered reports whether the question at position has an answer.
func (s *Session) IsAnswered(position int) bool {
	if position < 0 || position >= len(s.Questions) {
		return false
	}
	_, ok := s.Answers[s.Questions[position].ID]
	return ok
}

// AnsweredCount returns the number of in-play questions with an answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.Answers[q.ID]; ok {
			n++
		}
	}
	return n
}

// clone returns a deep copy of s.
func (s *Session) clone() Session {
	c := *s
	c.Questions = bank.Clone(s.Questions)
	c.Answers = make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	c.Hints = make(map[int]bool, len(s.Hints))
	for k, v := range s.Hints {
		c.Hints[k] = v
	}
	c.Log = append([]AnswerEvent(nil), s.Log...)
	c.Progression = append([]bank.Difficulty(nil), s.Progression...)
	return c
}
