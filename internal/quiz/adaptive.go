package quiz

import "github.com/abhisek/algoquiz/internal/bank"

// StreakThreshold is the run length that moves the adaptive level.
const StreakThreshold = 2

// NextStreak applies one answer to a signed streak. A result that matches the
// streak's sign extends it; an opposite result restarts it at +1 or -1.
func NextStreak(streak int, correct bool) int {
	if correct {
		if streak >= 0 {
			return streak + 1
		}
		return 1
	}
	if streak <= 0 {
		return streak - 1
	}
	return -1
}

// NextDifficulty returns the adaptive level after an answer. It moves at most
// one level and never leaves Easy..Hard.
func NextDifficulty(current bank.Difficulty, streak int) bank.Difficulty {
	switch {
	case streak >= StreakThreshold && current != bank.DifficultyHard:
		if current == bank.DifficultyEasy {
			return bank.DifficultyMedium
		}
		return bank.DifficultyHard
	case streak <= -StreakThreshold && current != bank.DifficultyEasy:
		if current == bank.DifficultyHard {
			return bank.DifficultyMedium
		}
		return bank.DifficultyEasy
	}
	return current
}

// SelectNext picks the position of the next question: the first unanswered
// question at the target level in pool order, else the first unanswered
// question of any level. Returns false when every question is answered.
func SelectNext(questions []bank.Question, answers map[int]int, target bank.Difficulty) (int, bool) {
	fallback := -1
	for i, q := range questions {
		if _, answered := answers[q.ID]; answered {
			continue
		}
		if q.Difficulty == target {
			return i, true
		}
		if fallback < 0 {
			fallback = i
		}
	}
	if fallback < 0 {
		return 0, false
	}
	return fallback, true
}
