package quiz

import "time"

// refreshMsg polls the engine so countdown ticks and timeouts, which happen
// off the UI goroutine, reach the screen.
type refreshMsg time.Time

// refreshInterval is shorter than the countdown resolution so the display
// never lags a tick by a full second.
const refreshInterval = 250 * time.Millisecond

// feedback describes the most recently submitted answer.
type feedback struct {
	Correct     bool
	Answer      string
	Explanation string
}
