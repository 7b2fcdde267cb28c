package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID string
	Timestamp time.Time // zero = now
	ItemKind  string
	ItemKey   string
	Mode      string
	Review    bool
	Correct   bool
	Answer    string // learner input as entered
}

// AnswerEvent is a stored answer with its identity and ordering.
type AnswerEvent struct {
	ID       string
	Sequence int64
	AnswerEventData
}

// Session event actions.
const (
	ActionReviewStart = "review-start"
	ActionReviewEnd   = "review-end"
	ActionModeChange  = "mode-change"
	ActionReset       = "reset"
)

// SessionEventData captures a session lifecycle change.
type SessionEventData struct {
	SessionID string
	Timestamp time.Time // zero = now
	Action    string
	Mode      string
	Remaining int
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID       string
	Sequence int64
	SessionEventData
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	// AppendAnswer records a graded answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session lifecycle change.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// RecentAnswers returns up to limit answers, newest first.
	RecentAnswers(ctx context.Context, limit int) ([]AnswerEvent, error)

	// RecentSessionEvents returns up to limit session events, newest first.
	RecentSessionEvents(ctx context.Context, limit int) ([]SessionEvent, error)

	// ItemAccuracy returns the logged accuracy and answer count for one item.
	ItemAccuracy(ctx context.Context, kind, key string) (float64, int, error)
}

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func eventTime(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
