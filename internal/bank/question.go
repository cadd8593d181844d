package bank

// Category is the topic area a question belongs to.
type Category string

const (
	CategoryDataStructures Category = "Data Structures"
	CategoryAlgorithms     Category = "Algorithms"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryDataStructures, CategoryAlgorithms}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryDataStructures, CategoryAlgorithms:
		return true
	}
	return false
}

// Difficulty is the concrete difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AllDifficulties returns the difficulty levels from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the three concrete levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question. Questions are immutable once
// the bank is loaded.
type Question struct {
	ID          int        `json:"id" yaml:"id"`
	Text        string     `json:"question" yaml:"question"`
	Options     []string   `json:"options" yaml:"options"`
	Answer      int        `json:"answer" yaml:"answer"`
	Category    Category   `json:"category" yaml:"category"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Hint        string     `json:"hint,omitempty" yaml:"hint,omitempty"`
	Explanation string     `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// IsCorrect reports whether option is the correct option index.
func (q Question) IsCorrect(option int) bool {
	return option == q.Answer
}

// HasOption reports whether option addresses one of the question's options.
func (q Question) HasOption(option int) bool {
	return option >= 0 && option < len(q.Options)
}
