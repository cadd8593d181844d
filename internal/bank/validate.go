package bank

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a question set.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate performs all structural checks on the given question set.
// Returns a *ValidationError describing all problems found, or nil if valid.
func Validate(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "bank has no questions")
	}

	idSet := make(map[int]bool, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("question %d (id %d)", i, q.ID)

		if q.ID <= 0 {
			errs = append(errs, fmt.Sprintf("%s: id must be > 0", prefix))
		}
		if idSet[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		idSet[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("%s: text is empty", prefix))
		}
		if len(q.Options) != OptionCount {
			errs = append(errs, fmt.Sprintf("%s: must have %d options, got %d", prefix, OptionCount, len(q.Options)))
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("%s: option %d is empty", prefix, j))
			}
		}
		if q.Answer < 0 || q.Answer >= OptionCount {
			errs = append(errs, fmt.Sprintf("%s: answer must be in [0, %d), got %d", prefix, OptionCount, q.Answer))
		}
		if !q.Category.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown category %q", prefix, q.Category))
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown difficulty %q", prefix, q.Difficulty))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
