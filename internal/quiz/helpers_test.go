package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/algoquiz/internal/bank"
	"github.com/abhisek/algoquiz/internal/store"
)

// --- Manual scheduler ---

type manualTask struct {
	fn      func()
	stopped bool
}

type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

func (m *manualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{fn: fn}
	m.tasks = append(m.tasks, t)
	return func() {
		m.mu.Lock()
		t.stopped = true
		m.mu.Unlock()
	}
}

// Tick fires every live task once.
func (m *manualScheduler) Tick() {
	m.mu.Lock()
	var live []*manualTask
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.mu.Unlock()
	for _, t := range live {
		t.fn()
	}
}

func (m *manualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// --- Fake clock ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// --- Fake KV ---

type fakeKV struct {
	data   map[string]json.RawMessage
	setErr error
	sets   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]json.RawMessage{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (json.RawMessage, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value json.RawMessage) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = append(json.RawMessage(nil), value...)
	return nil
}

func (f *fakeKV) Remove(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

// --- Mock event repo ---

type mockEventRepo struct {
	mu     sync.Mutex
	events []store.EventData
}

func (m *mockEventRepo) Append(_ context.Context, data store.EventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return nil
}

func (m *mockEventRepo) Query(context.Context, store.QueryOpts) ([]store.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.Action)
	}
	return out
}

// --- Fixtures ---

func q(id int, d bank.Difficulty, c bank.Category) bank.Question {
	return bank.Question{
		ID:         id,
		Text:       fmt.Sprintf("question %d", id),
		Options:    []string{"a", "b", "c", "d"},
		Answer:     id % bank.OptionCount,
		Category:   c,
		Difficulty: d,
		Hint:       "think",
	}
}

// threeLevels is one question per difficulty in Easy, Medium, Hard order.
func threeLevels() []bank.Question {
	return []bank.Question{
		q(1, bank.DifficultyEasy, bank.CategoryDataStructures),
		q(2, bank.DifficultyMedium, bank.CategoryAlgorithms),
		q(3, bank.DifficultyHard, bank.CategoryAlgorithms),
	}
}

func wrong(q bank.Question) int { return (q.Answer + 1) % bank.OptionCount }

type harness struct {
	engine *Engine
	sched  *manualScheduler
	clock  *fakeClock
	kv     *fakeKV
	events *mockEventRepo
	warns  []error
}

// newHarness builds an engine with unshuffled, untimed defaults unless
// patch says otherwise.
func newHarness(questions []bank.Question, patch SettingsPatch) *harness {
	h := &harness{
		sched:  &manualScheduler{},
		clock:  newFakeClock(),
		kv:     newFakeKV(),
		events: &mockEventRepo{},
	}
	base := DefaultSettings()
	base.ShuffleQuestions = false
	base.ShowTimer = false
	h.kv.data[SettingsKey], _ = json.Marshal(base.Apply(patch))

	ids := 0
	h.engine = New(questions, Options{
		Store:     h.kv,
		Events:    h.events,
		Now:       h.clock.Now,
		Scheduler: h.sched,
		NewID: func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		},
		Warn: func(err error) { h.warns = append(h.warns, err) },
	})
	return h
}

// answerCurrent answers the current question correctly or not.
func (h *harness) answerCurrent(correct bool) {
	snap := h.engine.Snapshot()
	cur, ok := snap.Current()
	if !ok {
		return
	}
	opt := cur.Answer
	if !correct {
		opt = wrong(cur)
	}
	h.engine.SubmitAnswer(snap.Session.Position, opt)
}

func ptr[T any](v T) *T { return &v }
