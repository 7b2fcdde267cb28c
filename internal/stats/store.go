// Package stats keeps per-item attempt records keyed by item identity.
package stats

import (
	"slices"
	"time"
)

// Store holds one Record per item key. It is not safe for concurrent use.
type Store struct {
	records map[string]*Record
}

// New creates a store with a zero record for every key in the universe.
func New(keys []string) *Store {
	s := &Store{records: make(map[string]*Record, len(keys))}
	for _, k := range keys {
		s.records[k] = &Record{}
	}
	return s
}

// Get returns a copy of the record for key. Unknown keys are lazily
// initialized to a zero record.
func (s *Store) Get(key string) Record {
	return s.lookup(key).clone()
}

func (s *Store) lookup(key string) *Record {
	if r, ok := s.records[key]; ok {
		return r
	}
	r := &Record{}
	s.records[key] = r
	return r
}

// Record applies one answer outcome to key and returns the updated record.
// No other key is touched.
func (s *Store) Record(key string, correct bool, at time.Time) Record {
	r := s.lookup(key)
	r.apply(correct, at)
	return r.clone()
}

// Totals sums correct and total attempts across every record.
func (s *Store) Totals() (correct, total int) {
	for _, r := range s.records {
		correct += r.CorrectAttempts
		total += r.TotalAttempts
	}
	return correct, total
}

// Seen returns how many items have at least one attempt.
func (s *Store) Seen() int {
	n := 0
	for _, r := range s.records {
		if r.Seen() {
			n++
		}
	}
	return n
}

// Keys returns every known key, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// All returns a copy of every record.
func (s *Store) All() map[string]Record {
	out := make(map[string]Record, len(s.records))
	for k, r := range s.records {
		out[k] = r.clone()
	}
	return out
}

// Reset zeroes every record. Known keys are kept.
func (s *Store) Reset() {
	for k := range s.records {
		s.records[k] = &Record{}
	}
}

// ResetItem zeroes a single record. It reports whether the key was known.
func (s *Store) ResetItem(key string) bool {
	if _, ok := s.records[key]; !ok {
		return false
	}
	s.records[key] = &Record{}
	return true
}

// Snapshot exports every record for persistence.
func (s *Store) Snapshot() map[string]Record {
	return s.All()
}

// Restore replaces the stored records with data. Keys known to the store but
// absent from data are zeroed. Records that cannot be repaired are dropped;
// the number dropped is returned.
func (s *Store) Restore(data map[string]Record) int {
	s.Reset()
	dropped := 0
	for k, r := range data {
		r = r.clone()
		if !r.sanitize() {
			dropped++
			continue
		}
		s.records[k] = &r
	}
	return dropped
}
