package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/algoquiz/internal/bank"
)

// ShuffleFunc permutes questions in place.
type ShuffleFunc func([]bank.Question)

// RandomShuffle is a Fisher-Yates shuffle backed by math/rand/v2.
func RandomShuffle(qs []bank.Question) {
	rand.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

// FilterPool derives the in-play sequence from the bank: filter by
// difficulty, then by category, then shuffle when the settings ask for it.
// The bank is never modified.
func FilterPool(questions []bank.Question, s Settings, shuffle ShuffleFunc) []bank.Question {
	diff, byDifficulty := s.Difficulty.Concrete()
	cat := bank.Category(s.Category)
	byCategory := cat.Valid()

	pool := make([]bank.Question, 0, len(questions))
	for _, q := range questions {
		if byDifficulty && q.Difficulty != diff {
			continue
		}
		if byCategory && q.Category != cat {
			continue
		}
		pool = append(pool, q)
	}

	if s.ShuffleQuestions && shuffle != nil && len(pool) > 1 {
		shuffle(pool)
	}
	return pool
}
