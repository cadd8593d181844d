package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/algoquiz/internal/bank"
)

// All is the filter value that disables difficulty or category filtering.
const All = "All"

// DifficultyFilter is a concrete difficulty level or All.
type DifficultyFilter string

// Valid reports whether f is a concrete difficulty or All.
func (f DifficultyFilter) Valid() bool {
	return f == All || bank.Difficulty(f).Valid()
}

// Concrete returns the filtered level and true, or false when f is All.
func (f DifficultyFilter) Concrete() (bank.Difficulty, bool) {
	d := bank.Difficulty(f)
	return d, d.Valid()
}

// CategoryFilter is a concrete category or All.
type CategoryFilter string

// Valid reports whether f is a known category or All.
func (f CategoryFilter) Valid() bool {
	return f == All || bank.Category(f).Valid()
}

// Settings are the user preferences that shape a quiz session.
type Settings struct {
	TimeLimit        int              `json:"timeLimit"` // seconds, 0 = untimed
	ShowTimer        bool             `json:"showTimer"`
	ShuffleQuestions bool             `json:"shuffleQuestions"`
	ShowHints        bool             `json:"showHints"`
	Difficulty       DifficultyFilter `json:"difficulty"`
	Category         CategoryFilter   `json:"category"`
}

// DefaultTimeLimit is the default quiz length in seconds.
const DefaultTimeLimit = 300

// DefaultSettings returns the compiled-in settings.
func DefaultSettings() Settings {
	return Settings{
		TimeLimit:        DefaultTimeLimit,
		ShowTimer:        true,
		ShuffleQuestions: true,
		ShowHints:        false,
		Difficulty:       All,
		Category:         All,
	}
}

// StartingDifficulty is the adaptive level a new session begins at: the
// difficulty filter when it is concrete, Easy otherwise.
func (s Settings) StartingDifficulty() bank.Difficulty {
	if d, ok := s.Difficulty.Concrete(); ok {
		return d
	}
	return bank.DifficultyEasy
}

// normalize replaces invalid fields with their defaults.
func (s Settings) normalize() Settings {
	def := DefaultSettings()
	if s.TimeLimit < 0 {
		s.TimeLimit = def.TimeLimit
	}
	if !s.Difficulty.Valid() {
		s.Difficulty = def.Difficulty
	}
	if !s.Category.Valid() {
		s.Category = def.Category
	}
	return s
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	TimeLimit        *int
	ShowTimer        *bool
	ShuffleQuestions *bool
	ShowHints        *bool
	Difficulty       *DifficultyFilter
	Category         *CategoryFilter
}

// FullPatch returns a patch that replaces every field with the values in s.
func FullPatch(s Settings) SettingsPatch {
	return SettingsPatch{
		TimeLimit:        &s.TimeLimit,
		ShowTimer:        &s.ShowTimer,
		ShuffleQuestions: &s.ShuffleQuestions,
		ShowHints:        &s.ShowHints,
		Difficulty:       &s.Difficulty,
		Category:         &s.Category,
	}
}

// Apply returns s with the patch merged in. Invalid values in the patch are ignored.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.TimeLimit != nil && *p.TimeLimit >= 0 {
		s.TimeLimit = *p.TimeLimit
	}
	if p.ShowTimer != nil {
		s.ShowTimer = *p.ShowTimer
	}
	if p.ShuffleQuestions != nil {
		s.ShuffleQuestions = *p.ShuffleQuestions
	}
	if p.ShowHints != nil {
		s.ShowHints = *p.ShowHints
	}
	if p.Difficulty != nil && p.Difficulty.Valid() {
		s.Difficulty = *p.Difficulty
	}
	if p.Category != nil && p.Category.Valid() {
		s.Category = *p.Category
	}
	return s
}

// SettingKeys lists the keys accepted by ParseSetting, in display order.
var SettingKeys = []string{"timeLimit", "showTimer", "shuffleQuestions", "showHints", "difficulty", "category"}

// ParseSetting parses a single key=value assignment into p.
// Keys are matched case-insensitively.
func ParseSetting(p *SettingsPatch, key, value string) error {
	switch strings.ToLower(key) {
	case "timelimit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("timeLimit must be a non-negative number of seconds, got %q", value)
		}
		p.TimeLimit = &n
	case "showtimer":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("showTimer: %w", err)
		}
		p.ShowTimer = &b
	case "shufflequestions":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("shuffleQuestions: %w", err)
		}
		p.ShuffleQuestions = &b
	case "showhints":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("showHints: %w", err)
		}
		p.ShowHints = &b
	case "difficulty":
		f := DifficultyFilter(matchFold(value, append([]string{All}, difficultyNames()...)))
		if !f.Valid() {
			return fmt.Errorf("difficulty must be one of Easy, Medium, Hard, All; got %q", value)
		}
		p.Difficulty = &f
	case "category":
		f := CategoryFilter(matchFold(value, append([]string{All}, categoryNames()...)))
		if !f.Valid() {
			return fmt.Errorf("category must be one of %q, %q, All; got %q",
				bank.CategoryDataStructures, bank.CategoryAlgorithms, value)
		}
		p.Category = &f
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(SettingKeys, ", "))
	}
	return nil
}

func matchFold(value string, candidates []string) string {
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(value), c) {
			return c
		}
	}
	return value
}

func difficultyNames() []string {
	var out []string
	for _, d := range bank.AllDifficulties() {
		out = append(out, string(d))
	}
	return out
}

func categoryNames() []string {
	var out []string
	for _, c := range bank.AllCategories() {
		out = append(out, string(c))
	}
	return out
}
