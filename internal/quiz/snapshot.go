package quiz

import "github.com/abhisek/algoquiz/internal/bank"

// Snapshot is a consistent, deep-copied view of the engine state plus the
// statistics derived from it.
type Snapshot struct {
	Session    Session
	Settings   Settings
	View       View
	History    History
	LastRecord *Record // record of the most recent completion, if any

	TimeRemaining  int
	TimerActive    bool
	TimePercentage float64

	TotalQuestions  int
	Answered        int
	Score           float64
	ScorePercentage int
	Progress        int
	Breakdown       CategoryBreakdown
}

// Current returns the question the session is positioned on.
func (s Snapshot) Current() (bank.Question, bool) {
	if s.Session.Phase != PhaseInProgress {
		return bank.Question{}, false
	}
	return s.Session.Current()
}

// HintUsed reports whether a hint was used for the question at position.
func (s Snapshot) HintUsed(position int) bool {
	if position < 0 || position >= len(s.Session.Questions) {
		return false
	}
	return s.Session.Hints[s.Session.Questions[position].ID]
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.session.clone()
	snap := Snapshot{
		Session:        sess,
		Settings:       e.settings,
		View:           e.view,
		History:        e.history.clone(),
		TimeRemaining:  e.remaining,
		TimerActive:    e.timerActive,
		TimePercentage: TimePercentage(e.remaining, e.settings.TimeLimit),
		Answered:       sess.AnsweredCount(),
		Score:          Score(&sess),
		Breakdown:      Breakdown(&sess),
	}
	if e.lastRecord != nil {
		rec := e.lastRecord.clone()
		snap.LastRecord = &rec
	}

	if sess.Phase == PhaseNotStarted {
		snap.TotalQuestions = len(FilterPool(e.bank, e.settings, nil))
	} else {
		snap.TotalQuestions = len(sess.Questions)
		snap.ScorePercentage = ScorePercentage(&sess)
		snap.Progress = Progress(&sess)
	}
	return snap
}
