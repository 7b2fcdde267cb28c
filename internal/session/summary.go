package session

import (
	"time"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/mastery"
)

// tally counts answers given since the controller was created.
type tally struct {
	letters      TypeTotals
	words        TypeTotals
	newlyLearned []string
}

func (t *tally) add(kind catalog.Kind, correct bool, tr *mastery.Transition) {
	tt := &t.words
	if kind == catalog.KindLetter {
		tt = &t.letters
	}
	tt.Total++
	if correct {
		tt.Scored++
	}
	if tr != nil && tr.To == mastery.StateLearned {
		t.newlyLearned = append(t.newlyLearned, tr.Key)
	}
}

// SessionSummary holds the data shown when the learner quits.
type SessionSummary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Letters        TypeTotals
	Words          TypeTotals
	NewlyLearned   []string
}

// Summary reports on the answers given since the controller was created.
func (c *Controller) Summary() *SessionSummary {
	total := c.tally.letters.Total + c.tally.words.Total
	correct := c.tally.letters.Scored + c.tally.words.Scored

	var accuracy float64
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	return &SessionSummary{
		Duration:       c.clock().Sub(c.started),
		TotalQuestions: total,
		TotalCorrect:   correct,
		Accuracy:       accuracy,
		Letters:        c.tally.letters,
		Words:          c.tally.words,
		NewlyLearned:   append([]string(nil), c.tally.newlyLearned...),
	}
}
