package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events of this session ("" = all)

	// Latest makes Limit keep the most recent events instead of the
	// oldest. Results stay in sequence order either way.
	Latest bool
}

// Event actions recorded by the quiz engine.
const (
	ActionStart    = "start"
	ActionAnswer   = "answer"
	ActionHint     = "hint"
	ActionComplete = "complete"
	ActionReset    = "reset"
)

// EventData is the data for a single quiz event.
type EventData struct {
	SessionID  string
	Action     string
	QuestionID int // 0 when the event is not about a question
	Payload    any // marshalled to JSON; nil stores {}
}

// Event is a stored quiz event.
type Event struct {
	Sequence   int64
	Timestamp  time.Time
	SessionID  string
	Action     string
	QuestionID int
	Payload    json.RawMessage
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	// Append records an event with the next global sequence number.
	Append(ctx context.Context, data EventData) error

	// Query returns events in sequence order.
	Query(ctx context.Context, opts QueryOpts) ([]Event, error)
}
