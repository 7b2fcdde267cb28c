package mastery

import (
	"slices"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/stats"
)

// Evaluator answers learned-status questions about the vocabulary. All
// results are recomputed from the word store on every call.
type Evaluator struct {
	catalog *catalog.Catalog
	words   *stats.Store
}

// NewEvaluator creates an evaluator over the catalog's words.
func NewEvaluator(cat *catalog.Catalog, words *stats.Store) *Evaluator {
	return &Evaluator{catalog: cat, words: words}
}

// IsLearned reports whether the word with the given key is learned.
func (e *Evaluator) IsLearned(key string) bool {
	return IsLearned(e.words.Get(key))
}

// LearnedItems returns the keys of every learned word, sorted.
func (e *Evaluator) LearnedItems() []string {
	var keys []string
	for _, w := range e.catalog.Words() {
		if e.IsLearned(w.Greek) {
			keys = append(keys, w.Greek)
		}
	}
	slices.Sort(keys)
	return keys
}

// LearnedWords returns every learned word in catalog order.
func (e *Evaluator) LearnedWords() []catalog.Word {
	var out []catalog.Word
	for _, w := range e.catalog.Words() {
		if e.IsLearned(w.Greek) {
			out = append(out, w)
		}
	}
	return out
}

// LearnedWordCount returns the number of learned words.
func (e *Evaluator) LearnedWordCount() int {
	n := 0
	for _, w := range e.catalog.Words() {
		if e.IsLearned(w.Greek) {
			n++
		}
	}
	return n
}

// LearnedGroups returns, in ascending order, every non-empty group whose
// words are all learned.
func (e *Evaluator) LearnedGroups() []int {
	var groups []int
	for _, g := range e.catalog.Groups() {
		if e.groupLearned(g) {
			groups = append(groups, g)
		}
	}
	return groups
}

func (e *Evaluator) groupLearned(group int) bool {
	words := e.catalog.WordsInGroup(group)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !e.IsLearned(w.Greek) {
			return false
		}
	}
	return true
}

// CurrentFocusGroup returns the smallest group that is not fully learned.
// When every group is learned it returns the largest group, and 1 when the
// catalog has no words.
func (e *Evaluator) CurrentFocusGroup() int {
	groups := e.catalog.Groups()
	if len(groups) == 0 {
		return 1
	}
	for _, g := range groups {
		if !e.groupLearned(g) {
			return g
		}
	}
	return groups[len(groups)-1]
}
