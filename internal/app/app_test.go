package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algoquiz/internal/bank"
	qz "github.com/abhisek/algoquiz/internal/quiz"
	"github.com/abhisek/algoquiz/internal/router"
	quizscreen "github.com/abhisek/algoquiz/internal/screens/quiz"
	"github.com/abhisek/algoquiz/internal/screens/settings"
)

type noopScheduler struct{}

func (noopScheduler) Every(time.Duration, func()) func() { return func() {} }

func testModel(t *testing.T) (AppModel, *qz.Engine) {
	t.Helper()
	eng := qz.New(bank.Default(), qz.Options{Scheduler: noopScheduler{}})
	return newAppModel(Options{Engine: eng, ExportDir: t.TempDir()}), eng
}

func TestEscAtRootIsNoop(t *testing.T) {
	m, _ := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command at the root screen")
	}
}

func TestEscPopsScreen(t *testing.T) {
	m, _ := testModel(t)
	m.router.Update(router.PushScreenMsg{Screen: settings.New(m.eng)})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscGoesToInterceptingScreen(t *testing.T) {
	m, eng := testModel(t)
	m.router.Update(router.PushScreenMsg{Screen: quizscreen.New(eng)})

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want the quiz screen kept", m.router.Depth())
	}
	if eng.Snapshot().Session.Phase != qz.PhaseInProgress {
		t.Error("expected the session to keep running behind the dialog")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, eng := testModel(t)
	m.router.Update(router.PushScreenMsg{Screen: quizscreen.New(eng)})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if eng.Snapshot().TimerActive {
		t.Error("expected the countdown stopped")
	}
}

func TestWindowSize(t *testing.T) {
	m, _ := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 30 {
		t.Errorf("size = %dx%d, want 100x30", am.width, am.height)
	}
	am.View()
}
