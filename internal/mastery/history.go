package mastery

import (
	"slices"
	"time"
)

// HistoryPoint is one entry in the learned-word history.
type HistoryPoint struct {
	Timestamp time.Time
	Count     int
}

// History is the append-only record of learned-word count changes. An
// empty history has an implicit baseline count of 0.
type History struct {
	points []HistoryPoint
}

// Observe appends a point when count differs from the last recorded count.
// Timestamps never go backwards; an earlier at is clamped to the last point.
func (h *History) Observe(count int, at time.Time) bool {
	if count == h.Last() {
		return false
	}
	if n := len(h.points); n > 0 && at.Before(h.points[n-1].Timestamp) {
		at = h.points[n-1].Timestamp
	}
	h.points = append(h.points, HistoryPoint{Timestamp: at, Count: count})
	return true
}

// Last returns the most recent count, or 0 for an empty history.
func (h *History) Last() int {
	if len(h.points) == 0 {
		return 0
	}
	return h.points[len(h.points)-1].Count
}

// Points returns a copy of the history in order.
func (h *History) Points() []HistoryPoint {
	return slices.Clone(h.points)
}

// Len returns the number of points.
func (h *History) Len() int { return len(h.points) }

// Reset clears the history.
func (h *History) Reset() {
	h.points = nil
}

// Restore replaces the history with points, keeping only entries that
// preserve timestamp order and change the count. It returns how many
// entries were dropped.
func (h *History) Restore(points []HistoryPoint) int {
	h.Reset()
	dropped := 0
	for _, p := range points {
		if p.Count < 0 || p.Count == h.Last() {
			dropped++
			continue
		}
		if n := len(h.points); n > 0 && p.Timestamp.Before(h.points[n-1].Timestamp) {
			dropped++
			continue
		}
		h.points = append(h.points, p)
	}
	return dropped
}
