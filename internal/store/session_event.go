package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const sessionTable = "session_events"

type sessionRow struct {
	ID        string `sql:"id"`
	Sequence  int64  `sql:"sequence"`
	Timestamp int64  `sql:"timestamp"`
	SessionID string `sql:"session_id"`
	Action    string `sql:"action"`
	Mode      string `sql:"mode"`
	Remaining int    `sql:"remaining"`
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder.Insert(sessionTable).
		Columns("id", "sequence", "timestamp", "session_id", "action", "mode", "remaining").
		Values(uuid.NewString(), seqNum, eventTime(data.Timestamp), data.SessionID,
			data.Action, data.Mode, data.Remaining).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessionEvents(ctx context.Context, limit int) ([]SessionEvent, error) {
	sel := builder.Select("id", "sequence", "timestamp", "session_id", "action", "mode", "remaining").
		From(builder.Table(sessionTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var scanned []sessionRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan session events: %w", err)
	}

	events := make([]SessionEvent, 0, len(scanned))
	for _, row := range scanned {
		events = append(events, SessionEvent{
			ID:       row.ID,
			Sequence: row.Sequence,
			SessionEventData: SessionEventData{
				SessionID: row.SessionID,
				Timestamp: time.UnixMilli(row.Timestamp),
				Action:    row.Action,
				Mode:      row.Mode,
				Remaining: row.Remaining,
			},
		})
	}
	return events, nil
}
