package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const kvTable = "kv"

// KVRepo is a flat key-value store. Each write is a single upsert statement.
type KVRepo struct {
	drv *entsql.Driver
}

// Load returns the value stored under key, or nil with no error when the
// key is absent.
func (r *KVRepo) Load(ctx context.Context, key string) ([]byte, error) {
	q, args := builder.Select("value").
		From(builder.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("load %q: %w", key, err)
		}
		return nil, nil
	}
	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Save stores value under key, replacing any previous value.
func (r *KVRepo) Save(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	q, args := builder.Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
