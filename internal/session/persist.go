package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/snapshot"
	"github.com/abhisek/greekquiz/internal/stats"
)

// load restores persisted state. Missing keys leave the zero state in place.
func (c *Controller) load(ctx context.Context) error {
	if c.kv == nil {
		return nil
	}
	if err := c.loadStats(ctx, snapshot.KeyLetterStats, c.letters); err != nil {
		return err
	}
	if err := c.loadStats(ctx, snapshot.KeyWordStats, c.words); err != nil {
		return err
	}
	return c.loadHistory(ctx)
}

func (c *Controller) loadStats(ctx context.Context, key string, recs *stats.Store) error {
	raw, err := c.kv.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}

	data, err := snapshot.DecodeRecords(raw)
	if errors.Is(err, snapshot.ErrCorrupted) {
		c.log.Warn("discarding corrupted state", "key", key, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	if dropped := recs.Restore(data); dropped > 0 {
		c.log.Warn("dropped invalid records", "key", key, "count", dropped)
	}
	return nil
}

func (c *Controller) loadHistory(ctx context.Context) error {
	raw, err := c.kv.Load(ctx, snapshot.KeyLearnedHistory)
	if err != nil {
		return fmt.Errorf("load %s: %w", snapshot.KeyLearnedHistory, err)
	}
	if raw == nil {
		return nil
	}

	points, err := snapshot.DecodeHistory(raw)
	if errors.Is(err, snapshot.ErrCorrupted) {
		c.log.Warn("discarding corrupted state", "key", snapshot.KeyLearnedHistory, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", snapshot.KeyLearnedHistory, err)
	}
	if dropped := c.history.Restore(points); dropped > 0 {
		c.log.Warn("dropped invalid history points", "count", dropped)
	}
	return nil
}

func (c *Controller) saveStats(ctx context.Context, kind catalog.Kind) error {
	if c.kv == nil {
		return nil
	}
	key := snapshot.KeyWordStats
	if kind == catalog.KindLetter {
		key = snapshot.KeyLetterStats
	}
	raw, err := snapshot.EncodeRecords(c.storeFor(kind).Snapshot())
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.kv.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (c *Controller) saveHistory(ctx context.Context) error {
	if c.kv == nil {
		return nil
	}
	raw, err := snapshot.EncodeHistory(c.history.Points())
	if err != nil {
		return fmt.Errorf("encode %s: %w", snapshot.KeyLearnedHistory, err)
	}
	if err := c.kv.Save(ctx, snapshot.KeyLearnedHistory, raw); err != nil {
		return fmt.Errorf("save %s: %w", snapshot.KeyLearnedHistory, err)
	}
	return nil
}

func (c *Controller) saveAll(ctx context.Context) error {
	return errors.Join(
		c.saveStats(ctx, catalog.KindLetter),
		c.saveStats(ctx, catalog.KindWord),
		c.saveHistory(ctx),
	)
}
