package mastery

// GroupProgress summarizes one vocabulary group.
type GroupProgress struct {
	Group    int
	Words    int
	Learned  int
	Correct  int
	Attempts int
}

// Accuracy returns the group's lifetime accuracy ratio.
func (g GroupProgress) Accuracy() float64 {
	if g.Attempts == 0 {
		return 0.0
	}
	return float64(g.Correct) / float64(g.Attempts)
}

// Complete reports whether every word in the group is learned.
func (g GroupProgress) Complete() bool {
	return g.Words > 0 && g.Learned == g.Words
}

// GroupProgress returns per-group counts in ascending group order.
func (e *Evaluator) GroupProgress() []GroupProgress {
	groups := e.catalog.Groups()
	out := make([]GroupProgress, 0, len(groups))
	for _, g := range groups {
		p := GroupProgress{Group: g}
		for _, w := range e.catalog.WordsInGroup(g) {
			rec := e.words.Get(w.Greek)
			p.Words++
			p.Correct += rec.CorrectAttempts
			p.Attempts += rec.TotalAttempts
			if IsLearned(rec) {
				p.Learned++
			}
		}
		out = append(out, p)
	}
	return out
}
