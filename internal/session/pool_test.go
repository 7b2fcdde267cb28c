package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/mastery"
	"github.com/abhisek/greekquiz/internal/stats"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testCatalog() *catalog.Catalog {
	return catalog.MustNew(
		[]catalog.Letter{
			{Symbol: "α", Name: "alpha", Sound: "a"},
			{Symbol: "β", Name: "beta", Sound: "b"},
			{Symbol: "γ", Name: "gamma", Sound: "g"},
		},
		[]catalog.Word{
			{Greek: "ένα", English: "one", Pronunciation: "ena", Group: 1},
			{Greek: "δύο", English: "two", Pronunciation: "dyo", Group: 1},
			{Greek: "τρία", English: "three", Pronunciation: "tria", Group: 2},
		},
	)
}

func learnWord(s *stats.Store, key string) {
	for i := 0; i < mastery.LearnedMinSeen; i++ {
		s.Record(key, true, t0)
	}
}

func keysOf(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

type poolFixture struct {
	cat   *catalog.Catalog
	words *stats.Store
	eval  *mastery.Evaluator
}

func newPoolFixture(cat *catalog.Catalog) poolFixture {
	words := stats.New(cat.Keys(catalog.KindWord))
	return poolFixture{cat: cat, words: words, eval: mastery.NewEvaluator(cat, words)}
}

func (f poolFixture) input(mode Mode) PoolInput {
	return PoolInput{
		Mode:        mode,
		Catalog:     f.cat,
		Evaluator:   f.eval,
		BasicChance: 0.2,
		FocusRatio:  2.0 / 3,
	}
}

func TestSelectPool_QuizLettersOnly(t *testing.T) {
	f := newPoolFixture(testCatalog())
	in := f.input(ModeQuiz)
	in.Roll = 0

	p := SelectPool(in)
	assert.Equal(t, SourceLetters, p.Source)
	assert.Equal(t, []string{"α", "β", "γ"}, keysOf(p.Items))
	assert.False(t, p.Struggling)
}

func TestSelectPool_BasicWordGate(t *testing.T) {
	f := newPoolFixture(testCatalog())
	unlocked := LetterTotals{Correct: 8, Total: 10, Seen: 1}

	tests := []struct {
		name    string
		letters LetterTotals
		roll    float64
		want    PoolSource
	}{
		{"unlocked, roll hits", unlocked, 0.1, SourceBasicWords},
		{"unlocked, roll misses", unlocked, 0.2, SourceLetters},
		{"too few attempts", LetterTotals{Correct: 9, Total: 9, Seen: 3}, 0, SourceLetters},
		{"low accuracy", LetterTotals{Correct: 6, Total: 10, Seen: 3}, 0, SourceLetters},
		{"exactly seventy percent", LetterTotals{Correct: 7, Total: 10, Seen: 1}, 0, SourceBasicWords},
		{"too few letters seen", LetterTotals{Correct: 10, Total: 10, Seen: 0}, 0, SourceLetters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(ModeQuiz)
			in.Letters = tt.letters
			in.Roll = tt.roll
			p := SelectPool(in)
			assert.Equal(t, tt.want, p.Source)
			if tt.want == SourceBasicWords {
				assert.Equal(t, []string{"ένα", "δύο"}, keysOf(p.Items))
			}
		})
	}
}

func TestSelectPool_QuizWithoutLetters(t *testing.T) {
	cat := catalog.MustNew(nil, []catalog.Word{{Greek: "ένα", English: "one", Pronunciation: "ena", Group: 1}})
	f := newPoolFixture(cat)

	p := SelectPool(f.input(ModeQuiz))
	assert.Equal(t, SourceBasicWords, p.Source)
	assert.Equal(t, []string{"ένα"}, keysOf(p.Items))

	empty := newPoolFixture(catalog.MustNew(nil, []catalog.Word{{Greek: "τρία", English: "three", Pronunciation: "tria", Group: 2}}))
	assert.Empty(t, SelectPool(empty.input(ModeQuiz)).Items)
}

func TestSelectPool_VocabFocusOnlyWhenNothingLearned(t *testing.T) {
	f := newPoolFixture(testCatalog())
	for _, roll := range []float64{0, 0.5, 0.99} {
		in := f.input(ModeVocabFocus)
		in.Roll = roll
		p := SelectPool(in)
		assert.Equal(t, SourceFocusGroup, p.Source)
		assert.Equal(t, []string{"ένα", "δύο"}, keysOf(p.Items))
		assert.False(t, p.Struggling)
	}
}

func TestSelectPool_VocabSplit(t *testing.T) {
	f := newPoolFixture(testCatalog())
	learnWord(f.words, "ένα")
	learnWord(f.words, "δύο")
	require.Equal(t, []int{1}, f.eval.LearnedGroups())
	require.Equal(t, 2, f.eval.CurrentFocusGroup())

	in := f.input(ModeVocabFocus)
	in.Roll = 0.5
	p := SelectPool(in)
	assert.Equal(t, SourceFocusGroup, p.Source)
	assert.Equal(t, []string{"τρία"}, keysOf(p.Items))
	assert.False(t, p.Struggling)

	in.Roll = 0.7
	p = SelectPool(in)
	assert.Equal(t, SourceLearnedGroups, p.Source)
	assert.Equal(t, []string{"ένα", "δύο"}, keysOf(p.Items))
	assert.True(t, p.Struggling)
}

func TestSelectPool_VocabAllLearnedFocusesLastGroup(t *testing.T) {
	f := newPoolFixture(testCatalog())
	for _, k := range []string{"ένα", "δύο", "τρία"} {
		learnWord(f.words, k)
	}
	in := f.input(ModeVocabFocus)
	in.Roll = 0
	p := SelectPool(in)
	assert.Equal(t, SourceFocusGroup, p.Source)
	assert.Equal(t, []string{"τρία"}, keysOf(p.Items))
}

func TestSelectPool_VocabNoWords(t *testing.T) {
	f := newPoolFixture(catalog.MustNew(nil, nil))
	p := SelectPool(f.input(ModeVocabFocus))
	assert.Equal(t, SourceAllWords, p.Source)
	assert.Empty(t, p.Items)
}

func TestSelectPool_ReviewActive(t *testing.T) {
	f := newPoolFixture(testCatalog())
	learnWord(f.words, "δύο")

	in := f.input(ModeVocabFocus)
	in.Review = ReviewState{Active: true, Remaining: 5}
	p := SelectPool(in)
	assert.Equal(t, SourceReview, p.Source)
	assert.Equal(t, []string{"δύο"}, keysOf(p.Items))
	assert.True(t, p.Struggling)
	assert.False(t, p.AbortReview)
}

func TestSelectPool_ReviewAbortsWithoutLearnedWords(t *testing.T) {
	f := newPoolFixture(testCatalog())

	in := f.input(ModeVocabFocus)
	in.Review = ReviewState{Active: true, Remaining: 5}
	p := SelectPool(in)
	assert.True(t, p.AbortReview)
	assert.Equal(t, SourceFocusGroup, p.Source)
	assert.NotEmpty(t, p.Items)
}

func TestSelectPool_ReviewModeEmpty(t *testing.T) {
	f := newPoolFixture(testCatalog())
	p := SelectPool(f.input(ModeReview))
	assert.Empty(t, p.Items)
	assert.False(t, p.AbortReview)
}
