// Package selection scores quiz candidates and draws the next item.
package selection

import (
	"math"
	"time"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/stats"
)

const (
	// MinWeight is the floor applied to every weight.
	MinWeight = 0.01

	unseenAccuracy  = 0.5
	missPenalty     = 0.6
	minDamping      = 0.1
	strugglingBoost = 1.5
)

// cadence is the review interval per item kind; an item gains weight in
// proportion to how many intervals have passed since it was last seen.
func cadence(kind catalog.Kind) time.Duration {
	if kind == catalog.KindLetter {
		return 5 * time.Minute
	}
	return 15 * time.Minute
}

// dampingStep is the weight reduction per consecutive correct answer.
func dampingStep(kind catalog.Kind) float64 {
	if kind == catalog.KindLetter {
		return 0.10
	}
	return 0.15
}

// Weight returns the sampling weight for an item with the given record.
// The result is always at least MinWeight. Unseen items count elapsed time
// from the Unix epoch, which makes their recency factor very large.
func Weight(rec stats.Record, kind catalog.Kind, isStruggling bool, now time.Time) float64 {
	accuracy := unseenAccuracy
	if rec.TotalAttempts > 0 {
		accuracy = rec.Accuracy()
	}

	missFactor := 1 + missPenalty*float64(rec.RecentMisses())

	lastSeen := rec.LastSeen
	if lastSeen.IsZero() {
		lastSeen = time.Unix(0, 0)
	}
	elapsed := now.Sub(lastSeen).Minutes()
	recency := math.Max(1, elapsed/cadence(kind).Minutes())

	damping := math.Max(minDamping, 1-float64(rec.ConsecutiveCorrect)*dampingStep(kind))

	base := (1 - accuracy + 0.5) * missFactor * recency * damping
	if isStruggling {
		base *= strugglingBoost
	}
	if math.IsNaN(base) {
		return MinWeight
	}
	return math.Max(MinWeight, base)
}

// RecordFunc looks up the record for an item.
type RecordFunc func(catalog.Item) stats.Record

// Weigher binds Weight to a record source, struggling flag and time.
func Weigher(records RecordFunc, isStruggling bool, now time.Time) WeightFunc {
	return func(it catalog.Item) float64 {
		return Weight(records(it), it.Kind(), isStruggling, now)
	}
}
