package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out one monotonic sequence shared by answer and
// session events, so the two tables can be merged into a single timeline.
// The mutex serializes within the process; RETURNING makes the increment
// atomic in the database.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	err := drv.Exec(ctx, `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`, []any{}, nil)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	err = drv.Exec(ctx, `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`, []any{}, nil)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next returns the next sequence number and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var rows entsql.Rows
	err := sc.drv.Query(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, &rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	seq, err := entsql.ScanInt64(rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
