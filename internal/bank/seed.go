package bank

import (
	_ "embed"
	"sync"
)

//go:embed questions.yaml
var seedYAML []byte

var seed = sync.OnceValue(func() []Question {
	questions, err := Parse(seedYAML, FormatYAML)
	if err != nil {
		panic("invalid embedded question bank: " + err.Error())
	}
	return questions
})

// Default returns a copy of the built-in question bank.
func Default() []Question {
	return Clone(seed())
}

// Clone returns a deep copy of questions.
func Clone(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
