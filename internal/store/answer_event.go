package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const answerTable = "answer_events"

// answerRow mirrors a row of the answer_events table.
type answerRow struct {
	ID        string `sql:"id"`
	Sequence  int64  `sql:"sequence"`
	Timestamp int64  `sql:"timestamp"`
	SessionID string `sql:"session_id"`
	ItemKind  string `sql:"item_kind"`
	ItemKey   string `sql:"item_key"`
	Mode      string `sql:"mode"`
	Review    bool   `sql:"review"`
	Correct   bool   `sql:"correct"`
	Answer    string `sql:"answer"`
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder.Insert(answerTable).
		Columns("id", "sequence", "timestamp", "session_id", "item_kind", "item_key",
			"mode", "review", "correct", "answer").
		Values(uuid.NewString(), seqNum, eventTime(data.Timestamp), data.SessionID,
			data.ItemKind, data.ItemKey, data.Mode, boolInt(data.Review), boolInt(data.Correct), data.Answer).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, limit int) ([]AnswerEvent, error) {
	sel := builder.Select("id", "sequence", "timestamp", "session_id", "item_kind", "item_key",
		"mode", "review", "correct", "answer").
		From(builder.Table(answerTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var scanned []answerRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan answer events: %w", err)
	}

	events := make([]AnswerEvent, 0, len(scanned))
	for _, row := range scanned {
		events = append(events, AnswerEvent{
			ID:       row.ID,
			Sequence: row.Sequence,
			AnswerEventData: AnswerEventData{
				SessionID: row.SessionID,
				Timestamp: time.UnixMilli(row.Timestamp),
				ItemKind:  row.ItemKind,
				ItemKey:   row.ItemKey,
				Mode:      row.Mode,
				Review:    row.Review,
				Correct:   row.Correct,
				Answer:    row.Answer,
			},
		})
	}
	return events, nil
}

func (r *eventRepo) ItemAccuracy(ctx context.Context, kind, key string) (float64, int, error) {
	q, args := builder.Select("correct").
		From(builder.Table(answerTable)).
		Where(entsql.And(entsql.EQ("item_kind", kind), entsql.EQ("item_key", key))).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return 0, 0, fmt.Errorf("query item accuracy: %w", err)
	}
	defer rows.Close()

	var outcomes []bool
	if err := entsql.ScanSlice(rows, &outcomes); err != nil {
		return 0, 0, fmt.Errorf("scan item accuracy: %w", err)
	}
	if len(outcomes) == 0 {
		return 0, 0, nil
	}

	correct := 0
	for _, ok := range outcomes {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(outcomes)), len(outcomes), nil
}
