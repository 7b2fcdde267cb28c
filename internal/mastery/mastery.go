// Package mastery decides when items and vocabulary groups are learned and
// tracks how the learned-word count evolves over time.
package mastery

import "github.com/abhisek/greekquiz/internal/stats"

const (
	// LearnedMinSeen is the minimum number of attempts before an item can be learned.
	LearnedMinSeen = stats.RecentWindow

	// LearnedRecentThreshold is the accuracy required over the recent window.
	LearnedRecentThreshold = 0.75
)

// IsLearned reports whether a record meets the learned criteria. Only the
// recent window counts, so an item loses the status when recent answers
// regress regardless of lifetime accuracy.
func IsLearned(rec stats.Record) bool {
	if rec.TotalAttempts < LearnedMinSeen || len(rec.RecentPerformance) == 0 {
		return false
	}
	window := rec.RecentPerformance
	if len(window) > LearnedMinSeen {
		window = window[len(window)-LearnedMinSeen:]
	}
	correct := 0
	for _, ok := range window {
		if ok {
			correct++
		}
	}
	return float64(correct)/float64(len(window)) >= LearnedRecentThreshold
}

// StateOf maps a record to its lifecycle state.
func StateOf(rec stats.Record) State {
	switch {
	case !rec.Seen():
		return StateNew
	case IsLearned(rec):
		return StateLearned
	default:
		return StateLearning
	}
}

// Compare returns the transition between two records of the same item, or
// nil when the state did not change.
func Compare(key string, before, after stats.Record) *Transition {
	from, to := StateOf(before), StateOf(after)
	if from == to {
		return nil
	}
	return &Transition{Key: key, From: from, To: to}
}
