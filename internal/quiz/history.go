package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/algoquiz/internal/bank"
)

// MaxHistory is the number of records kept; older records are evicted.
const MaxHistory = 50

// isoLayout matches JavaScript's Date.toISOString output.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is the snapshot of one completed session.
type Record struct {
	ID                    string            `json:"id"`
	Date                  string            `json:"date"`
	Score                 float64           `json:"score"`
	TotalQuestions        int               `json:"totalQuestions"`
	CompletionTime        int               `json:"completionTime"` // seconds
	ScorePercentage       int               `json:"scorePercentage"`
	CategoryBreakdown     CategoryBreakdown `json:"categoryBreakdown"`
	Settings              Settings          `json:"settings"`
	AnswerHistory         []AnswerEvent     `json:"answerHistory"`
	DifficultyProgression []bank.Difficulty `json:"difficultyProgression"`
}

// Time parses the record date. It returns the zero time when the date is
// malformed.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// History is the persisted log of completed sessions, most recent first.
type History struct {
	Results      []Record `json:"results"`
	BestScore    int      `json:"bestScore"`
	AverageScore float64  `json:"averageScore"`
	TotalQuizzes int      `json:"totalQuizzes"` // completions since the last clear
}

// NewHistory returns an empty history.
func NewHistory() History {
	return History{Results: []Record{}}
}

// Add prepends r, evicts the oldest records past MaxHistory and recomputes
// the aggregates.
func (h *History) Add(r Record) {
	h.Results = append([]Record{r}, h.Results...)
	if len(h.Results) > MaxHistory {
		h.Results = h.Results[:MaxHistory]
	}
	h.TotalQuizzes++
	h.recompute()
}

// Clear resets h to an empty history.
func (h *History) Clear() {
	*h = NewHistory()
}

// normalize enforces the cap and recomputes aggregates on a loaded document.
func (h *History) normalize() {
	if h.Results == nil {
		h.Results = []Record{}
	}
	if len(h.Results) > MaxHistory {
		h.Results = h.Results[:MaxHistory]
	}
	if h.TotalQuizzes < len(h.Results) {
		h.TotalQuizzes = len(h.Results)
	}
	h.recompute()
}

func (h *History) recompute() {
	h.BestScore = 0
	h.AverageScore = 0
	if len(h.Results) == 0 {
		return
	}
	sum := 0
	for _, r := range h.Results {
		if r.ScorePercentage > h.BestScore {
			h.BestScore = r.ScorePercentage
		}
		sum += r.ScorePercentage
	}
	h.AverageScore = float64(sum) / float64(len(h.Results))
}

// clone returns a deep copy of h.
func (h History) clone() History {
	c := h
	c.Results = make([]Record, len(h.Results))
	for i, r := range h.Results {
		c.Results[i] = r.clone()
	}
	return c
}

// clone returns a copy of r that shares no slices or maps with it.
func (r Record) clone() Record {
	r.AnswerHistory = append([]AnswerEvent(nil), r.AnswerHistory...)
	r.DifficultyProgression = append([]bank.Difficulty(nil), r.DifficultyProgression...)
	bd := make(CategoryBreakdown, len(r.CategoryBreakdown))
	for k, v := range r.CategoryBreakdown {
		bd[k] = v
	}
	r.CategoryBreakdown = bd
	return r
}

// Export writes h as a pretty-printed JSON document.
func (h History) Export(w io.Writer) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// ExportFileName is the download name for an export taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("quiz-history-%s.json", t.UTC().Format("2006-01-02"))
}

// WriteExportFile writes h into dir under ExportFileName(t) and returns the path.
func WriteExportFile(h History, dir string, t time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(t))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := h.Export(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
