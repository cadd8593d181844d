package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/algoquiz/internal/store"
)

// Storage keys.
const (
	SettingsKey = "quiz-settings"
	HistoryKey  = "quiz-history"
)

// KV is the persistent key-value collaborator. Get returns store.ErrNotFound
// for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error
}

var settingsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"timeLimit":        map[string]any{"type": "integer", "minimum": 0},
		"showTimer":        map[string]any{"type": "boolean"},
		"shuffleQuestions": map[string]any{"type": "boolean"},
		"showHints":        map[string]any{"type": "boolean"},
		"difficulty":       map[string]any{"enum": []any{"Easy", "Medium", "Hard", "All"}},
		"category":         map[string]any{"enum": []any{"Data Structures", "Algorithms", "All"}},
	},
}

var historySchema = map[string]any{
	"type":     "object",
	"required": []any{"results"},
	"properties": map[string]any{
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "date", "score", "totalQuestions", "scorePercentage"},
				"properties": map[string]any{
					"id":              map[string]any{"type": "string"},
					"date":            map[string]any{"type": "string"},
					"score":           map[string]any{"type": "number", "minimum": 0},
					"totalQuestions":  map[string]any{"type": "integer", "minimum": 0},
					"completionTime":  map[string]any{"type": "integer", "minimum": 0},
					"scorePercentage": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"answerHistory":   map[string]any{"type": []any{"array", "null"}},
				},
			},
		},
		"bestScore":    map[string]any{"type": "number"},
		"averageScore": map[string]any{"type": "number"},
		"totalQuizzes": map[string]any{"type": "integer", "minimum": 0},
	},
}

var compiledSchemas = sync.OnceValues(func() (map[string]*jsonschema.Schema, error) {
	out := make(map[string]*jsonschema.Schema, 2)
	for key, def := range map[string]map[string]any{
		SettingsKey: settingsSchema,
		HistoryKey:  historySchema,
	} {
		// The compiler wants a parsed JSON value, not Go literals.
		defBytes, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", key, err)
		}
		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", key, err)
		}

		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s.json", key)
		if err := c.AddResource(url, parsed); err != nil {
			return nil, fmt.Errorf("add resource %s: %w", key, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", key, err)
		}
		out[key] = s
	}
	return out, nil
})

// validateDocument checks raw against the schema registered for key.
func validateDocument(key string, raw json.RawMessage) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schemas[key].Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// loadDocument reads key into v. It reports false, with a nil error, when
// the key is absent.
func loadDocument(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := validateDocument(key, raw); err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return true, nil
}

func saveDocument(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadSettings returns the stored settings merged over the defaults. Absent
// or malformed data yields the defaults; the error describes what was
// discarded and is informational only.
func LoadSettings(ctx context.Context, kv KV) (Settings, error) {
	s := DefaultSettings()
	ok, err := loadDocument(ctx, kv, SettingsKey, &s)
	if err != nil || !ok {
		return DefaultSettings(), err
	}
	return s.normalize(), nil
}

// SaveSettings persists s.
func SaveSettings(ctx context.Context, kv KV, s Settings) error {
	return saveDocument(ctx, kv, SettingsKey, s)
}

// LoadHistory returns the stored history. Absent or malformed data yields an
// empty history; the error describes what was discarded and is
// informational only.
func LoadHistory(ctx context.Context, kv KV) (History, error) {
	var h History
	ok, err := loadDocument(ctx, kv, HistoryKey, &h)
	if err != nil || !ok {
		return NewHistory(), err
	}
	h.normalize()
	return h, nil
}

// SaveHistory persists h.
func SaveHistory(ctx context.Context, kv KV, h History) error {
	return saveDocument(ctx, kv, HistoryKey, h)
}

// ResetSettings removes the stored settings so the defaults apply again.
func ResetSettings(ctx context.Context, kv KV) error {
	if err := kv.Remove(ctx, SettingsKey); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
