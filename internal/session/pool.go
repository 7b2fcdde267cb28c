package session

import (
	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/mastery"
)

// PoolSource records why a pool was chosen.
type PoolSource string

const (
	SourceLetters       PoolSource = "letters"
	SourceBasicWords    PoolSource = "basic-words"
	SourceFocusGroup    PoolSource = "focus-group"
	SourceLearnedGroups PoolSource = "learned-groups"
	SourceAllWords      PoolSource = "all-words"
	SourceReview        PoolSource = "review"
)

// Basic-word gate thresholds for quiz mode.
const (
	basicMinLetterAttempts = 10
	basicMinLetterAccuracy = 0.7
	basicSeenDivisor       = 3 // a third of all letters
)

// LetterTotals summarizes letter practice for the basic-word gate.
type LetterTotals struct {
	Correct int
	Total   int
	Seen    int // letters with at least one attempt
}

// PoolInput is everything SelectPool needs. Roll is a uniform draw in
// [0,1) supplied by the caller so that SelectPool stays deterministic.
type PoolInput struct {
	Mode        Mode
	Review      ReviewState
	Catalog     *catalog.Catalog
	Evaluator   *mastery.Evaluator
	Letters     LetterTotals
	BasicChance float64
	FocusRatio  float64
	Roll        float64
}

// Pool is the candidate set for the next question.
type Pool struct {
	Items      []catalog.Item
	Struggling bool
	Source     PoolSource
	// AbortReview is set when an active review found no learned words;
	// the caller must end the review session.
	AbortReview bool
}

// SelectPool decides which items are eligible for the next question and
// whether struggling items get boosted.
func SelectPool(in PoolInput) Pool {
	var aborted bool
	if in.Review.Active || in.Mode == ModeReview {
		learned := in.Evaluator.LearnedWords()
		if len(learned) > 0 {
			return Pool{Items: catalog.WordsToItems(learned), Struggling: true, Source: SourceReview}
		}
		aborted = in.Review.Active
	}

	var p Pool
	switch in.Mode {
	case ModeQuiz:
		p = quizPool(in)
	case ModeVocabFocus:
		p = vocabPool(in)
	default:
		p = Pool{Source: SourceReview}
	}
	p.AbortReview = aborted
	return p
}

func quizPool(in PoolInput) Pool {
	letters := in.Catalog.LetterItems()
	basic := catalog.WordsToItems(in.Catalog.BasicWords())

	if len(basic) > 0 && basicWordsUnlocked(in.Letters, len(letters)) && in.Roll < in.BasicChance {
		return Pool{Items: basic, Source: SourceBasicWords}
	}
	if len(letters) > 0 {
		return Pool{Items: letters, Source: SourceLetters}
	}
	return Pool{Items: basic, Source: SourceBasicWords}
}

func basicWordsUnlocked(t LetterTotals, letterCount int) bool {
	if t.Total < basicMinLetterAttempts {
		return false
	}
	if float64(t.Correct)/float64(t.Total) < basicMinLetterAccuracy {
		return false
	}
	return float64(t.Seen) >= float64(letterCount)/basicSeenDivisor
}

func vocabPool(in PoolInput) Pool {
	focus := in.Catalog.WordsInGroup(in.Evaluator.CurrentFocusGroup())

	var learned []catalog.Word
	for _, g := range in.Evaluator.LearnedGroups() {
		learned = append(learned, in.Catalog.WordsInGroup(g)...)
	}

	switch {
	case len(focus) == 0 && len(learned) == 0:
		return Pool{Items: in.Catalog.WordItems(), Source: SourceAllWords}
	case len(focus) == 0:
		return Pool{Items: catalog.WordsToItems(learned), Struggling: true, Source: SourceLearnedGroups}
	case len(learned) == 0:
		return Pool{Items: catalog.WordsToItems(focus), Source: SourceFocusGroup}
	case in.Roll < in.FocusRatio:
		return Pool{Items: catalog.WordsToItems(focus), Source: SourceFocusGroup}
	default:
		return Pool{Items: catalog.WordsToItems(learned), Struggling: true, Source: SourceLearnedGroups}
	}
}
