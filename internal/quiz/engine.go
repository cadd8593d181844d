package quiz

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/store"
)

// Completion reasons recorded in the complete event.
const (
	reasonFinished = "finished"
	reasonTimeout  = "timeout"
	reasonManual   = "manual"
	reasonEmpty    = "empty"
)

// Options configures an Engine. Zero fields get production defaults.
type Options struct {
	// Store persists settings and history. Nil disables persistence.
	Store KV

	// Events receives the quiz event log. Nil disables event logging.
	Events store.EventRepo

	// Overrides are applied on top of the stored settings without being
	// persisted.
	Overrides SettingsPatch

	Now       func() time.Time
	Shuffle   ShuffleFunc
	Scheduler Scheduler
	NewID     func() string

	// Warn receives persistence and event-log failures, which never
	// interrupt the session. Defaults to a warning line on stderr.
	Warn func(error)
}

func (o *Options) withDefaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Shuffle == nil {
		o.Shuffle = RandomShuffle
	}
	if o.Scheduler == nil {
		o.Scheduler = TickerScheduler{}
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Warn == nil {
		o.Warn = func(err error) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

// Engine is the quiz session state machine. All actions and timer ticks are
// serialized by a single mutex; readers take a Snapshot.
type Engine struct {
	mu   sync.Mutex
	opts Options
	bank []bank.Question

	settings   Settings
	session    Session
	history    History
	view       View
	lastRecord *Record

	remaining   int
	timerActive bool
	stopTick    func()
	timerGen    uint64
}

// New creates an engine over the given question bank and loads settings and
// history from opts.Store.
func New(questions []bank.Question, opts Options) *Engine {
	opts.withDefaults()
	e := &Engine{
		opts:     opts,
		bank:     bank.Clone(questions),
		settings: DefaultSettings(),
		history:  NewHistory(),
		view:     ViewQuiz,
	}

	if opts.Store != nil {
		ctx := context.Background()
		s, err := LoadSettings(ctx, opts.Store)
		if err != nil {
			opts.Warn(err)
		}
		h, err := LoadHistory(ctx, opts.Store)
		if err != nil {
			opts.Warn(err)
		}
		e.settings, e.history = s, h
	}
	e.settings = e.settings.Apply(opts.Overrides)

	e.session = newSession(e.settings.StartingDifficulty())
	e.remaining = e.settings.TimeLimit
	return e
}

// Start begins a new session. It is a no-op while a session is in progress.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Phase == PhaseInProgress {
		return
	}
	e.resetTimerLocked()

	now := e.opts.Now()
	s := newSession(e.settings.StartingDifficulty())
	s.ID = e.opts.NewID()
	s.Phase = PhaseInProgress
	s.Questions = FilterPool(e.bank, e.settings, e.opts.Shuffle)
	s.StartedAt = now
	s.QuestionStart = now
	e.session = s
	e.lastRecord = nil

	e.logEvent(store.EventData{
		SessionID: s.ID,
		Action:    store.ActionStart,
		Payload: map[string]any{
			"questions":  len(s.Questions),
			"difficulty": s.Difficulty,
			"settings":   e.settings,
		},
	})

	// Zero questions is vacuously complete.
	if len(s.Questions) == 0 {
		e.completeLocked(reasonEmpty)
		return
	}

	if e.settings.ShowTimer {
		e.startTimerLocked()
	}
}

// SubmitAnswer records option for the question at position and moves on.
// Invalid positions, invalid options and already-answered questions are
// ignored.
func (e *Engine) SubmitAnswer(position, option int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.session
	if s.Phase != PhaseInProgress || position < 0 || position >= len(s.Questions) {
		return
	}
	q := s.Questions[position]
	if _, answered := s.Answers[q.ID]; answered || !q.HasOption(option) {
		return
	}

	now := e.opts.Now()
	spent := roundSeconds(now.Sub(s.QuestionStart))
	s.QuestionStart = now

	correct := q.IsCorrect(option)
	before := s.Difficulty
	s.Answers[q.ID] = option
	s.Streak = NextStreak(s.Streak, correct)

	ev := AnswerEvent{
		QuestionID: q.ID,
		Selected:   option,
		Correct:    correct,
		Difficulty: q.Difficulty,
		TimeSpent:  spent,
	}
	s.Log = append(s.Log, ev)
	s.Progression = append(s.Progression, before)

	e.logEvent(store.EventData{
		SessionID:  s.ID,
		Action:     store.ActionAnswer,
		QuestionID: q.ID,
		Payload:    ev,
	})

	if s.AnsweredCount() == len(s.Questions) {
		e.completeLocked(reasonFinished)
		return
	}
	e.advanceLocked()
}

// Advance applies the adaptive rule and moves to the next unanswered
// question. When every question is answered the session completes.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Phase != PhaseInProgress {
		return
	}
	e.advanceLocked()
}

func (e *Engine) advanceLocked() {
	s := &e.session
	s.Difficulty = NextDifficulty(s.Difficulty, s.Streak)

	pos, ok := SelectNext(s.Questions, s.Answers, s.Difficulty)
	if !ok {
		e.completeLocked(reasonFinished)
		return
	}
	s.Position = pos
	s.QuestionStart = e.opts.Now()
}

// GoBack moves to the previous position. It has no adaptive side effects.
func (e *Engine) GoBack() {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.session
	if s.Phase != PhaseInProgress || s.Position == 0 {
		return
	}
	s.Position--
	s.QuestionStart = e.opts.Now()
}

// UseHint marks the question at position as hinted. Ignored unless hints
// are enabled and a session is in progress.
func (e *Engine) UseHint(position int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.session
	if !e.settings.ShowHints || s.Phase != PhaseInProgress {
		return
	}
	if position < 0 || position >= len(s.Questions) {
		return
	}
	q := s.Questions[position]
	if s.Hints[q.ID] {
		return
	}
	s.Hints[q.ID] = true

	e.logEvent(store.EventData{
		SessionID:  s.ID,
		Action:     store.ActionHint,
		QuestionID: q.ID,
	})
}

// CompleteQuiz ends the session in progress and records it. Calling it in
// any other phase is a no-op.
func (e *Engine) CompleteQuiz() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completeLocked(reasonManual)
}

func (e *Engine) completeLocked(reason string) {
	s := &e.session
	if s.Phase != PhaseInProgress {
		return
	}
	e.stopTimerLocked()
	s.EndedAt = e.opts.Now()
	s.Phase = PhaseCompleted

	payload := map[string]any{"reason": reason}
	if len(s.Questions) > 0 {
		rec := e.buildRecord()
		e.history.Add(rec)
		e.lastRecord = &rec
		e.persistHistory()
		payload["score"] = rec.Score
		payload["scorePercentage"] = rec.ScorePercentage
	}

	e.logEvent(store.EventData{
		SessionID: s.ID,
		Action:    store.ActionComplete,
		Payload:   payload,
	})
}

func (e *Engine) buildRecord() Record {
	s := &e.session
	return Record{
		ID:                    s.ID,
		Date:                  s.EndedAt.UTC().Format(isoLayout),
		Score:                 Score(s),
		TotalQuestions:        len(s.Questions),
		CompletionTime:        CompletionSeconds(s),
		ScorePercentage:       ScorePercentage(s),
		CategoryBreakdown:     Breakdown(s),
		Settings:              e.settings,
		AnswerHistory:         append([]AnswerEvent{}, s.Log...),
		DifficultyProgression: append([]bank.Difficulty{}, s.Progression...),
	}
}

// ResetQuiz discards the session and returns to NotStarted. History is
// untouched.
func (e *Engine) ResetQuiz() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	if e.session.ID != "" {
		e.logEvent(store.EventData{
			SessionID: e.session.ID,
			Action:    store.ActionReset,
		})
	}
	e.session = newSession(e.settings.StartingDifficulty())
	e.remaining = e.settings.TimeLimit
	e.lastRecord = nil
}

// UpdateSettings merges p into the settings and persists them. Only a
// session that has not started picks up the new time limit; a running or
// finished session keeps its countdown.
func (e *Engine) UpdateSettings(p SettingsPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settings = e.settings.Apply(p)
	if e.session.Phase == PhaseNotStarted {
		e.remaining = e.settings.TimeLimit
		e.session.Difficulty = e.settings.StartingDifficulty()
	}
	if e.opts.Store != nil {
		if err := SaveSettings(context.Background(), e.opts.Store, e.settings); err != nil {
			e.opts.Warn(err)
		}
	}
}

// SetView records the view the presentation layer is showing. Unknown
// views are ignored.
func (e *Engine) SetView(v View) {
	if !v.Valid() {
		return
	}
	e.mu.Lock()
	e.view = v
	e.mu.Unlock()
}

// ClearHistory empties the history and persists the empty document.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Clear()
	e.persistHistory()
}

// ExportHistory writes the history document to w.
func (e *Engine) ExportHistory(w io.Writer) error {
	e.mu.Lock()
	h := e.history.clone()
	e.mu.Unlock()
	return h.Export(w)
}

// ExportHistoryFile writes the history document into dir and returns the
// file path.
func (e *Engine) ExportHistoryFile(dir string) (string, error) {
	e.mu.Lock()
	h := e.history.clone()
	now := e.opts.Now()
	e.mu.Unlock()
	return WriteExportFile(h, dir, now)
}

// StartTimer starts the countdown. No-op if it is already running, the
// quiz is untimed, the timer is hidden, no session is in progress or no
// time remains.
func (e *Engine) StartTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startTimerLocked()
}

// StopTimer cancels the countdown.
func (e *Engine) StopTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
}

// PauseTimer cancels the countdown and keeps the remaining time.
func (e *Engine) PauseTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
}

// ResumeTimer restarts a paused countdown if time remains.
func (e *Engine) ResumeTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timerActive || e.remaining <= 0 {
		return
	}
	e.startTimerLocked()
}

// ResetTimer stops the countdown and restores the configured limit.
func (e *Engine) ResetTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetTimerLocked()
}

// Close stops the countdown. The engine stays usable.
func (e *Engine) Close() {
	e.StopTimer()
}

func (e *Engine) startTimerLocked() {
	if e.timerActive || e.settings.TimeLimit == 0 || !e.settings.ShowTimer {
		return
	}
	if e.session.Phase != PhaseInProgress || e.remaining <= 0 {
		return
	}
	e.timerGen++
	gen := e.timerGen
	e.timerActive = true
	e.stopTick = e.opts.Scheduler.Every(TickInterval, func() { e.tick(gen) })
}

func (e *Engine) stopTimerLocked() {
	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
	}
	e.timerActive = false
	e.timerGen++
}

func (e *Engine) resetTimerLocked() {
	e.stopTimerLocked()
	e.remaining = e.settings.TimeLimit
}

// tick is one countdown step. Ticks from a stopped timer carry a stale
// generation and are dropped.
func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.timerGen || !e.timerActive {
		return
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.completeLocked(reasonTimeout)
	}
}

func (e *Engine) persistHistory() {
	if e.opts.Store == nil {
		return
	}
	if err := SaveHistory(context.Background(), e.opts.Store, e.history); err != nil {
		e.opts.Warn(err)
	}
}

func (e *Engine) logEvent(data store.EventData) {
	if e.opts.Events == nil {
		return
	}
	if err := e.opts.Events.Append(context.Background(), data); err != nil {
		e.opts.Warn(fmt.Errorf("log %s event: %w", data.Action, err))
	}
}
