package quiz

import (
	"math"
	"time"

	"github.com/abhisek/algoquiz/internal/bank"
)

// HintPenalty is deducted from a correct answer for which a hint was used.
const HintPenalty = 0.5

// CategoryStats counts questions and correct answers in one category.
type CategoryStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// CategoryBreakdown maps each category in play to its stats.
type CategoryBreakdown map[bank.Category]CategoryStats

// Score sums the per-question contributions over the in-play sequence:
// 1 for a correct answer, 1-HintPenalty when a hint was used, 0 otherwise.
func Score(s *Session) float64 {
	var total float64
	for _, q := range s.Questions {
		selected, ok := s.Answers[q.ID]
		if !ok || !q.IsCorrect(selected) {
			continue
		}
		if s.Hints[q.ID] {
			total += 1 - HintPenalty
		} else {
			total++
		}
	}
	return total
}

// Percentage returns round(100 * part / whole), or 0 when whole is 0.
func Percentage(part float64, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / float64(whole) * 100))
}

// ScorePercentage is the rounded score as a share of the question count.
func ScorePercentage(s *Session) int {
	return Percentage(Score(s), len(s.Questions))
}

// Progress is the current position as a rounded percentage of the sequence.
func Progress(s *Session) int {
	return Percentage(float64(s.Position), len(s.Questions))
}

// Breakdown counts questions and correct answers per category. The hint
// penalty does not apply to the correct count.
func Breakdown(s *Session) CategoryBreakdown {
	out := make(CategoryBreakdown)
	for _, q := range s.Questions {
		st := out[q.Category]
		st.Total++
		if selected, ok := s.Answers[q.ID]; ok && q.IsCorrect(selected) {
			st.Correct++
		}
		out[q.Category] = st
	}
	return out
}

// CompletionSeconds returns the rounded attempt duration, or 0 when the
// session has not both started and ended.
func CompletionSeconds(s *Session) int {
	if s.StartedAt.IsZero() || s.EndedAt.IsZero() {
		return 0
	}
	return roundSeconds(s.EndedAt.Sub(s.StartedAt))
}

func roundSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(math.Round(d.Seconds()))
}
