package quiz

import (
	"fmt"
	"sync"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Warning and critical thresholds for the countdown display, in seconds.
const (
	WarningSeconds  = 60
	CriticalSeconds = 30
)

// Scheduler runs fn every d until the returned stop function is called.
// stop must not block waiting for a running fn.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler is the production Scheduler backed by time.Ticker.
type TickerScheduler struct{}

// Every starts a goroutine that calls fn on each tick.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// FormatRemaining renders seconds as m:ss.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TimePercentage is the share of the limit still remaining. An untimed quiz
// reports 100.
func TimePercentage(remaining, limit int) float64 {
	if limit == 0 {
		return 100
	}
	return float64(remaining) / float64(limit) * 100
}

// IsWarning reports whether the countdown is in its last minute.
func IsWarning(remaining int) bool { return remaining <= WarningSeconds }

// IsCritical reports whether the countdown is in its last 30 seconds.
func IsCritical(remaining int) bool { return remaining <= CriticalSeconds }
