package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/store"
)

func TestStartInitializesSession(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine

	snap := e.Snapshot()
	assert.Equal(t, PhaseNotStarted, snap.Session.Phase)
	assert.Equal(t, 3, snap.TotalQuestions)
	assert.Equal(t, 0, snap.Progress)

	e.Start()
	snap = e.Snapshot()
	assert.Equal(t, PhaseInProgress, snap.Session.Phase)
	assert.Equal(t, "session-1", snap.Session.ID)
	assert.Equal(t, 0, snap.Session.Position)
	assert.Equal(t, 0, snap.Session.Streak)
	assert.Equal(t, bank.DifficultyEasy, snap.Session.Difficulty)
	assert.Equal(t, h.clock.Now(), snap.Session.StartedAt)
	assert.Empty(t, snap.Session.Answers)
	assert.Empty(t, snap.Session.Log)

	// Start while in progress is ignored.
	e.Start()
	assert.Equal(t, "session-1", e.Snapshot().Session.ID)
}

func TestStartingDifficultyFollowsConcreteFilter(t *testing.T) {
	questions := append(threeLevels(), q(4, bank.DifficultyHard, bank.CategoryDataStructures))
	h := newHarness(questions, SettingsPatch{Difficulty: ptr(DifficultyFilter("Hard"))})

	h.engine.Start()
	snap := h.engine.Snapshot()
	assert.Equal(t, bank.DifficultyHard, snap.Session.Difficulty)
	assert.Len(t, snap.Session.Questions, 2)
}

func TestAdaptiveScenarioThreeLevels(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()

	cur, _ := e.Snapshot().Current()
	require.Equal(t, bank.DifficultyEasy, cur.Difficulty)
	h.answerCurrent(true)

	cur, _ = e.Snapshot().Current()
	require.Equal(t, bank.DifficultyMedium, cur.Difficulty)
	h.answerCurrent(true)

	snap := e.Snapshot()
	assert.Equal(t, 2, snap.Session.Streak)
	// One level per step: Easy escalates to Medium, and the only
	// unanswered question left is the Hard one.
	assert.Equal(t, bank.DifficultyMedium, snap.Session.Difficulty)
	cur, _ = snap.Current()
	require.Equal(t, bank.DifficultyHard, cur.Difficulty)
	h.answerCurrent(true)

	snap = e.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Session.Phase)
	assert.Equal(t, 100, snap.ScorePercentage)
	assert.Equal(t, 3.0, snap.Score)
	assert.Equal(t,
		[]bank.Difficulty{bank.DifficultyEasy, bank.DifficultyEasy, bank.DifficultyMedium},
		snap.Session.Progression)
	require.Len(t, snap.History.Results, 1)
	assert.Equal(t, 100, snap.History.Results[0].ScorePercentage)
}

func TestAdaptiveEscalatesOneLevelAtATime(t *testing.T) {
	questions := []bank.Question{
		q(1, bank.DifficultyEasy, bank.CategoryDataStructures),
		q(2, bank.DifficultyEasy, bank.CategoryDataStructures),
		q(3, bank.DifficultyHard, bank.CategoryAlgorithms),
		q(4, bank.DifficultyMedium, bank.CategoryAlgorithms),
		q(5, bank.DifficultyHard, bank.CategoryAlgorithms),
	}
	h := newHarness(questions, SettingsPatch{})
	e := h.engine
	e.Start()

	var served []int
	for range 4 {
		cur, ok := e.Snapshot().Current()
		require.True(t, ok)
		served = append(served, cur.ID)
		h.answerCurrent(true)
	}
	// Easy, Easy (streak 1), then Medium at streak 2, then Hard at streak 3.
	assert.Equal(t, []int{1, 2, 4, 3}, served)
	assert.Equal(t, bank.DifficultyHard, e.Snapshot().Session.Difficulty)
}

func TestAdaptiveDeescalates(t *testing.T) {
	questions := []bank.Question{
		q(1, bank.DifficultyHard, bank.CategoryAlgorithms),
		q(2, bank.DifficultyHard, bank.CategoryAlgorithms),
		q(3, bank.DifficultyHard, bank.CategoryAlgorithms),
		q(4, bank.DifficultyHard, bank.CategoryAlgorithms),
	}
	h := newHarness(questions, SettingsPatch{Difficulty: ptr(DifficultyFilter("Hard"))})
	e := h.engine
	e.Start()

	for range 4 {
		h.answerCurrent(false)
	}
	snap := e.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Session.Phase)
	assert.Equal(t, -4, snap.Session.Streak)
	assert.Equal(t,
		[]bank.Difficulty{bank.DifficultyHard, bank.DifficultyHard, bank.DifficultyMedium, bank.DifficultyEasy},
		snap.Session.Progression)
	assert.Equal(t, bank.DifficultyEasy, snap.Session.Difficulty)
	assert.Equal(t, 0, snap.ScorePercentage)
}

func TestSubmitAnswerIgnoresInvalidInput(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine

	e.SubmitAnswer(0, 0) // not started
	assert.Empty(t, e.Snapshot().Session.Answers)

	e.Start()
	before := e.Snapshot()

	e.SubmitAnswer(-1, 0)
	e.SubmitAnswer(3, 0)
	e.SubmitAnswer(0, 4)
	e.SubmitAnswer(0, -1)
	assert.Equal(t, before.Session, e.Snapshot().Session)

	e.SubmitAnswer(0, 1)
	first := e.Snapshot()
	require.Len(t, first.Session.Log, 1)

	e.SubmitAnswer(0, 2) // already answered
	again := e.Snapshot()
	assert.Equal(t, first.Session.Answers, again.Session.Answers)
	assert.Len(t, again.Session.Log, 1)
}

func TestSubmitAnswerRecordsTimeSpent(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()

	h.clock.Advance(7 * time.Second)
	h.answerCurrent(true)
	h.clock.Advance(3400 * time.Millisecond)
	h.answerCurrent(false)

	log := e.Snapshot().Session.Log
	require.Len(t, log, 2)
	assert.Equal(t, 7, log[0].TimeSpent)
	assert.True(t, log[0].Correct)
	assert.Equal(t, bank.DifficultyEasy, log[0].Difficulty)
	assert.Equal(t, 3, log[1].TimeSpent)
	assert.False(t, log[1].Correct)
}

func TestHintHalvesCredit(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{ShowHints: ptr(true)})
	e := h.engine
	e.Start()

	e.UseHint(0)
	h.answerCurrent(true)

	snap := e.Snapshot()
	assert.True(t, snap.HintUsed(0))
	assert.Equal(t, 0.5, snap.Score)
	// The correct count ignores the penalty.
	assert.Equal(t, 1, snap.Breakdown[bank.CategoryDataStructures].Correct)
}

func TestHintAfterAnswerStillCounts(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{ShowHints: ptr(true)})
	e := h.engine
	e.Start()

	h.answerCurrent(true)
	e.UseHint(0)
	assert.Equal(t, 0.5, e.Snapshot().Score)
}

func TestHintIgnoredWhenDisabled(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{ShowHints: ptr(false)})
	e := h.engine
	e.Start()

	e.UseHint(0)
	h.answerCurrent(true)
	snap := e.Snapshot()
	assert.False(t, snap.HintUsed(0))
	assert.Equal(t, 1.0, snap.Score)
}

func TestEmptyPoolCompletesImmediately(t *testing.T) {
	questions := []bank.Question{q(1, bank.DifficultyEasy, bank.CategoryAlgorithms)}
	h := newHarness(questions, SettingsPatch{Difficulty: ptr(DifficultyFilter("Hard"))})
	e := h.engine

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.TotalQuestions)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, 0, snap.ScorePercentage)

	e.Start()
	snap = e.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Session.Phase)
	assert.Equal(t, 0, snap.TotalQuestions)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, 0, snap.ScorePercentage)
	assert.Empty(t, snap.Session.Log)
	assert.Empty(t, snap.History.Results)
	assert.Nil(t, snap.LastRecord)
	assert.Equal(t, 0, h.sched.Active())
}

func TestTimerRunsOutAndCompletesOnce(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{
		TimeLimit: ptr(5),
		ShowTimer: ptr(true),
	})
	e := h.engine
	e.Start()
	require.True(t, e.Snapshot().TimerActive)

	for range 4 {
		h.sched.Tick()
	}
	snap := e.Snapshot()
	assert.Equal(t, PhaseInProgress, snap.Session.Phase)
	assert.Equal(t, 1, snap.TimeRemaining)

	h.sched.Tick()
	snap = e.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Session.Phase)
	assert.Equal(t, 0, snap.TimeRemaining)
	assert.False(t, snap.TimerActive)
	assert.Equal(t, 0, h.sched.Active())
	require.Len(t, snap.History.Results, 1)
	assert.Equal(t, 0, snap.History.Results[0].ScorePercentage)

	// A racing manual completion and further ticks change nothing.
	e.CompleteQuiz()
	h.sched.Tick()
	assert.Len(t, e.Snapshot().History.Results, 1)
}

func TestStaleTickIsIgnored(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{TimeLimit: ptr(5), ShowTimer: ptr(true)})
	e := h.engine
	e.Start()

	// Capture the live tick, then stop the timer and fire it anyway.
	h.sched.mu.Lock()
	stale := h.sched.tasks[0].fn
	h.sched.mu.Unlock()
	e.StopTimer()
	stale()
	assert.Equal(t, 5, e.Snapshot().TimeRemaining)
}

func TestTimerNotStartedWhenUntimedOrHidden(t *testing.T) {
	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{"untimed", SettingsPatch{TimeLimit: ptr(0), ShowTimer: ptr(true)}},
		{"hidden", SettingsPatch{TimeLimit: ptr(60), ShowTimer: ptr(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(threeLevels(), tt.patch)
			h.engine.Start()
			h.engine.StartTimer()
			assert.False(t, h.engine.Snapshot().TimerActive)
			assert.Equal(t, 0, h.sched.Active())
		})
	}
}

func TestPauseResumeTimer(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{TimeLimit: ptr(10), ShowTimer: ptr(true)})
	e := h.engine
	e.Start()

	h.sched.Tick()
	h.sched.Tick()
	e.PauseTimer()
	h.sched.Tick()
	snap := e.Snapshot()
	assert.False(t, snap.TimerActive)
	assert.Equal(t, 8, snap.TimeRemaining)

	e.ResumeTimer()
	e.ResumeTimer() // already running
	assert.Equal(t, 1, h.sched.Active())
	h.sched.Tick()
	assert.Equal(t, 7, e.Snapshot().TimeRemaining)

	e.ResetTimer()
	snap = e.Snapshot()
	assert.False(t, snap.TimerActive)
	assert.Equal(t, 10, snap.TimeRemaining)
}

func TestCompleteQuizIsIdempotent(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine

	e.CompleteQuiz() // not started
	assert.Equal(t, PhaseNotStarted, e.Snapshot().Session.Phase)

	e.Start()
	h.answerCurrent(true)
	h.clock.Advance(42 * time.Second)
	e.CompleteQuiz()
	e.CompleteQuiz()

	snap := e.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Session.Phase)
	require.Len(t, snap.History.Results, 1)
	rec := snap.History.Results[0]
	assert.Equal(t, "session-1", rec.ID)
	assert.Equal(t, 3, rec.TotalQuestions)
	assert.Equal(t, 42, rec.CompletionTime)
	assert.Equal(t, 33, rec.ScorePercentage)
	assert.Equal(t, "2025-03-14T09:30:42.000Z", rec.Date)
	require.NotNil(t, snap.LastRecord)
	assert.Equal(t, rec.ID, snap.LastRecord.ID)
}

func TestAdvanceAndGoBack(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()

	e.GoBack() // at position 0
	assert.Equal(t, 0, e.Snapshot().Session.Position)

	e.Advance()
	assert.Equal(t, 0, e.Snapshot().Session.Position, "first unanswered Easy question is still 0")

	h.answerCurrent(true)
	pos := e.Snapshot().Session.Position
	require.Equal(t, 1, pos)

	diff := e.Snapshot().Session.Difficulty
	e.GoBack()
	snap := e.Snapshot()
	assert.Equal(t, 0, snap.Session.Position)
	assert.Equal(t, diff, snap.Session.Difficulty)
	assert.Equal(t, 1, snap.Session.Streak)
}

func TestOutOfOrderAnswersComplete(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()

	// Answer out of order so the automatic advance has something to do.
	e.SubmitAnswer(2, threeLevels()[2].Answer)
	e.SubmitAnswer(1, threeLevels()[1].Answer)
	assert.Equal(t, PhaseInProgress, e.Snapshot().Session.Phase)
	e.SubmitAnswer(0, threeLevels()[0].Answer)
	assert.Equal(t, PhaseCompleted, e.Snapshot().Session.Phase)
}

func TestResetQuizKeepsHistory(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{TimeLimit: ptr(30), ShowTimer: ptr(true)})
	e := h.engine
	e.Start()
	for range 3 {
		h.answerCurrent(true)
	}
	e.Start()
	h.answerCurrent(true)
	h.sched.Tick()

	e.ResetQuiz()
	snap := e.Snapshot()
	assert.Equal(t, PhaseNotStarted, snap.Session.Phase)
	assert.Empty(t, snap.Session.Answers)
	assert.Empty(t, snap.Session.Log)
	assert.Equal(t, 0, snap.Session.Streak)
	assert.False(t, snap.TimerActive)
	assert.Equal(t, 30, snap.TimeRemaining)
	assert.Len(t, snap.History.Results, 1)
	assert.Equal(t, 0, h.sched.Active())
}

func TestUpdateSettings(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{TimeLimit: ptr(120), ShowTimer: ptr(true)})
	e := h.engine

	e.UpdateSettings(SettingsPatch{TimeLimit: ptr(90)})
	assert.Equal(t, 90, e.Snapshot().TimeRemaining, "NotStarted picks up the new limit")

	e.Start()
	e.UpdateSettings(SettingsPatch{TimeLimit: ptr(10)})
	snap := e.Snapshot()
	assert.Equal(t, 90, snap.TimeRemaining, "running countdown is not altered")
	assert.Equal(t, 10, snap.Settings.TimeLimit)

	var stored Settings
	require.NoError(t, json.Unmarshal(h.kv.data[SettingsKey], &stored))
	assert.Equal(t, 10, stored.TimeLimit)

	// Invalid values are ignored.
	e.UpdateSettings(SettingsPatch{TimeLimit: ptr(-1), Category: ptr(CategoryFilter("Poetry"))})
	snap = e.Snapshot()
	assert.Equal(t, 10, snap.Settings.TimeLimit)
	assert.Equal(t, CategoryFilter(All), snap.Settings.Category)
}

func TestUpdateSettingsKeepsFinishedCountdown(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{TimeLimit: ptr(3), ShowTimer: ptr(true)})
	e := h.engine
	e.Start()
	for range 3 {
		h.sched.Tick()
	}
	require.Equal(t, PhaseCompleted, e.Snapshot().Session.Phase)

	e.UpdateSettings(SettingsPatch{ShowHints: ptr(true)})
	assert.Equal(t, 0, e.Snapshot().TimeRemaining, "timed-out session still reads 0")

	e.UpdateSettings(SettingsPatch{TimeLimit: ptr(60)})
	assert.Equal(t, 0, e.Snapshot().TimeRemaining)

	e.Start()
	assert.Equal(t, 60, e.Snapshot().TimeRemaining, "a new session starts from the configured limit")
}

func TestStartRestoresLimitWithHiddenTimer(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{TimeLimit: ptr(10), ShowTimer: ptr(true)})
	e := h.engine
	e.Start()
	h.sched.Tick()
	h.sched.Tick()
	e.CompleteQuiz()
	require.Equal(t, 8, e.Snapshot().TimeRemaining)

	e.UpdateSettings(SettingsPatch{ShowTimer: ptr(false)})
	e.Start()
	snap := e.Snapshot()
	assert.Equal(t, 10, snap.TimeRemaining)
	assert.False(t, snap.TimerActive)
}

func TestUpdateSettingsChangesTotalBeforeStart(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.UpdateSettings(SettingsPatch{Category: ptr(CategoryFilter(bank.CategoryAlgorithms))})
	assert.Equal(t, 2, e.Snapshot().TotalQuestions)
}

func TestSettingsAndHistoryPersistAcrossEngines(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	h.engine.UpdateSettings(SettingsPatch{ShowHints: ptr(true), Difficulty: ptr(DifficultyFilter("Medium"))})
	h.engine.Start()
	h.answerCurrent(true)

	again := New(threeLevels(), Options{Store: h.kv, Scheduler: &manualScheduler{}})
	snap := again.Snapshot()
	assert.True(t, snap.Settings.ShowHints)
	assert.Equal(t, DifficultyFilter("Medium"), snap.Settings.Difficulty)
	assert.Equal(t, bank.DifficultyMedium, snap.Session.Difficulty)
	require.Len(t, snap.History.Results, 1)
	assert.Equal(t, 1, snap.History.TotalQuizzes)
}

func TestOverridesAreNotPersisted(t *testing.T) {
	kv := newFakeKV()
	e := New(threeLevels(), Options{
		Store:     kv,
		Scheduler: &manualScheduler{},
		Overrides: SettingsPatch{TimeLimit: ptr(15)},
	})
	assert.Equal(t, 15, e.Snapshot().Settings.TimeLimit)
	assert.NotContains(t, kv.data, SettingsKey)
}

func TestMalformedStoredDataFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		history  string
	}{
		{"not json", `{not json`, `[[[`},
		{"wrong types", `{"timeLimit":"soon","showTimer":1}`, `{"results":"none"}`},
		{"out of range", `{"timeLimit":-5,"difficulty":"Extreme"}`, `{"results":[{"id":"x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFakeKV()
			kv.data[SettingsKey] = json.RawMessage(tt.settings)
			kv.data[HistoryKey] = json.RawMessage(tt.history)

			var warns []error
			e := New(threeLevels(), Options{
				Store:     kv,
				Scheduler: &manualScheduler{},
				Warn:      func(err error) { warns = append(warns, err) },
			})
			snap := e.Snapshot()
			assert.Equal(t, DefaultSettings(), snap.Settings)
			assert.Empty(t, snap.History.Results)
			assert.Len(t, warns, 2)
		})
	}
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	h.kv.setErr = errors.New("quota exceeded")
	e := h.engine

	e.Start()
	for range 3 {
		h.answerCurrent(true)
	}
	snap := e.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Session.Phase)
	assert.Len(t, snap.History.Results, 1, "in-memory state stays authoritative")
	require.NotEmpty(t, h.warns)
	assert.ErrorContains(t, h.warns[0], "quota exceeded")
}

func TestClearHistory(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()
	e.CompleteQuiz()
	require.Len(t, e.Snapshot().History.Results, 1)

	e.ClearHistory()
	snap := e.Snapshot()
	assert.Empty(t, snap.History.Results)
	assert.Equal(t, 0, snap.History.TotalQuizzes)

	loaded, err := LoadHistory(t.Context(), h.kv)
	require.NoError(t, err)
	assert.Empty(t, loaded.Results)
}

func TestExportHistoryRoundTrip(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{ShowHints: ptr(true)})
	e := h.engine
	for range 2 {
		e.Start()
		e.UseHint(0)
		h.answerCurrent(true)
		h.answerCurrent(false)
		h.answerCurrent(true)
		h.clock.Advance(time.Minute)
	}

	var buf bytes.Buffer
	require.NoError(t, e.ExportHistory(&buf))
	assert.Contains(t, buf.String(), "\n  \"results\": [")

	var decoded History
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, e.Snapshot().History, decoded)
}

func TestExportHistoryFile(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()
	e.CompleteQuiz()

	dir := t.TempDir()
	path, err := e.ExportHistoryFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quiz-history-2025-03-14.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded History
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Results, 1)
}

func TestSetView(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	assert.Equal(t, ViewQuiz, e.Snapshot().View)
	e.SetView(ViewHistory)
	assert.Equal(t, ViewHistory, e.Snapshot().View)
	e.SetView(View("garden"))
	assert.Equal(t, ViewHistory, e.Snapshot().View)
}

func TestEventsLogged(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{ShowHints: ptr(true)})
	e := h.engine
	e.Start()
	e.UseHint(0)
	e.UseHint(0) // already hinted
	for range 3 {
		h.answerCurrent(true)
	}
	e.ResetQuiz()

	assert.Equal(t, []string{
		store.ActionStart,
		store.ActionHint,
		store.ActionAnswer,
		store.ActionAnswer,
		store.ActionAnswer,
		store.ActionComplete,
		store.ActionReset,
	}, h.events.actions())
}

func TestSnapshotIsACopy(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()
	h.answerCurrent(true)

	snap := e.Snapshot()
	snap.Session.Answers[99] = 1
	snap.Session.Questions[0].Options[0] = "mutated"
	snap.Session.Log[0].Correct = false

	fresh := e.Snapshot()
	assert.NotContains(t, fresh.Session.Answers, 99)
	assert.Equal(t, "a", fresh.Session.Questions[0].Options[0])
	assert.True(t, fresh.Session.Log[0].Correct)
}

func TestSnapshotLastRecordIsACopy(t *testing.T) {
	h := newHarness(threeLevels(), SettingsPatch{})
	e := h.engine
	e.Start()
	for range 3 {
		h.answerCurrent(true)
	}

	snap := e.Snapshot()
	require.NotNil(t, snap.LastRecord)
	snap.LastRecord.AnswerHistory[0].Correct = false
	snap.LastRecord.DifficultyProgression[0] = bank.DifficultyHard
	snap.LastRecord.CategoryBreakdown[bank.CategoryAlgorithms] = CategoryStats{}

	fresh := e.Snapshot()
	for _, rec := range []Record{*fresh.LastRecord, fresh.History.Results[0]} {
		assert.True(t, rec.AnswerHistory[0].Correct)
		assert.Equal(t, bank.DifficultyEasy, rec.DifficultyProgression[0])
		assert.Equal(t, 2, rec.CategoryBreakdown[bank.CategoryAlgorithms].Total)
	}
}

func TestScoreBoundsProperty(t *testing.T) {
	questions := bank.Default()
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 50 {
		h := newHarness(questions, SettingsPatch{ShowHints: ptr(true), ShuffleQuestions: ptr(trial%2 == 0)})
		e := h.engine
		e.Start()
		for e.Snapshot().Session.Phase == PhaseInProgress {
			snap := e.Snapshot()
			if rng.IntN(3) == 0 {
				e.UseHint(snap.Session.Position)
			}
			if rng.IntN(10) == 0 {
				e.CompleteQuiz()
				break
			}
			h.answerCurrent(rng.IntN(2) == 0)

			after := e.Snapshot()
			d := after.Session.Difficulty
			require.True(t, d.Valid(), "difficulty %q out of bounds", d)
		}
		snap := e.Snapshot()
		assert.LessOrEqual(t, snap.Score, float64(snap.TotalQuestions))
		assert.GreaterOrEqual(t, snap.ScorePercentage, 0)
		assert.LessOrEqual(t, snap.ScorePercentage, 100)
	}
}
