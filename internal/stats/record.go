package stats

import "time"

// RecentWindow is the length of the sliding window of recent outcomes.
// It equals the minimum attempt count before an item can be learned.
const RecentWindow = 4

// Record holds the attempt history for a single item.
type Record struct {
	TotalAttempts      int
	CorrectAttempts    int
	ConsecutiveCorrect int
	RecentPerformance  []bool // oldest first, at most RecentWindow entries
	LastSeen           time.Time
}

// Accuracy returns the lifetime accuracy ratio.
func (r Record) Accuracy() float64 {
	if r.TotalAttempts == 0 {
		return 0.0
	}
	return float64(r.CorrectAttempts) / float64(r.TotalAttempts)
}

// RecentMisses counts incorrect outcomes in the recent window.
func (r Record) RecentMisses() int {
	n := 0
	for _, ok := range r.RecentPerformance {
		if !ok {
			n++
		}
	}
	return n
}

// Seen reports whether the item has been attempted at least once.
func (r Record) Seen() bool {
	return r.TotalAttempts > 0
}

func (r Record) clone() Record {
	if r.RecentPerformance != nil {
		r.RecentPerformance = append([]bool(nil), r.RecentPerformance...)
	}
	return r
}

// apply folds one outcome into the record.
func (r *Record) apply(correct bool, at time.Time) {
	r.TotalAttempts++
	if correct {
		r.CorrectAttempts++
		r.ConsecutiveCorrect++
	} else {
		r.ConsecutiveCorrect = 0
	}

	r.RecentPerformance = append(r.RecentPerformance, correct)
	if len(r.RecentPerformance) > RecentWindow {
		r.RecentPerformance = r.RecentPerformance[len(r.RecentPerformance)-RecentWindow:]
	}
	r.LastSeen = at
}

// sanitize repairs a record loaded from outside. It reports false when the
// record is unusable.
func (r *Record) sanitize() bool {
	if r.TotalAttempts < 0 || r.CorrectAttempts < 0 || r.ConsecutiveCorrect < 0 {
		return false
	}
	if r.CorrectAttempts > r.TotalAttempts {
		r.CorrectAttempts = r.TotalAttempts
	}
	if r.ConsecutiveCorrect > r.CorrectAttempts {
		r.ConsecutiveCorrect = r.CorrectAttempts
	}
	if len(r.RecentPerformance) > RecentWindow {
		r.RecentPerformance = r.RecentPerformance[len(r.RecentPerformance)-RecentWindow:]
	}
	if len(r.RecentPerformance) > r.TotalAttempts {
		r.RecentPerformance = r.RecentPerformance[len(r.RecentPerformance)-r.TotalAttempts:]
	}
	return true
}
