package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/selection"
	"github.com/abhisek/greekquiz/internal/snapshot"
	"github.com/abhisek/greekquiz/internal/store"
)

// memKV is an in-memory KV.
type memKV struct {
	data    map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Load(_ context.Context, key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (m *memKV) Save(_ context.Context, key string, value []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte{}, value...)
	return nil
}

// recordingLog collects events.
type recordingLog struct {
	answers  []store.AnswerEventData
	sessions []store.SessionEventData
}

func (r *recordingLog) AppendAnswer(_ context.Context, d store.AnswerEventData) error {
	r.answers = append(r.answers, d)
	return nil
}

func (r *recordingLog) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	r.sessions = append(r.sessions, d)
	return nil
}

func (r *recordingLog) actions() []string {
	var out []string
	for _, s := range r.sessions {
		out = append(out, s.Action)
	}
	return out
}

// stepClock advances one minute per call.
func stepClock() Clock {
	now := t0
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(t *testing.T, kv KV, events EventLog) *Controller {
	t.Helper()
	opts := Options{
		Catalog:  testCatalog(),
		Clock:    stepClock(),
		Selector: selection.NewSeeded(7),
		Logger:   quietLogger(),
	}
	if kv != nil {
		opts.KV = kv
	}
	if events != nil {
		opts.Events = events
	}
	c, err := New(context.Background(), opts)
	require.NoError(t, err)
	return c
}

func correctWord(key string, cat *catalog.Catalog) Answer {
	w, _ := cat.Word(key)
	return Answer{Kind: catalog.KindWord, Key: key, Pronunciation: w.Pronunciation, Meaning: w.English}
}

func wrongWord(key string) Answer {
	return Answer{Kind: catalog.KindWord, Key: key, Pronunciation: "?", Meaning: "?"}
}

func submit(t *testing.T, c *Controller, a Answer) Result {
	t.Helper()
	res, err := c.Submit(context.Background(), a)
	require.NoError(t, err)
	return res
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestSubmit_Letter(t *testing.T) {
	c := newTestController(t, nil, nil)

	res := submit(t, c, Answer{Kind: catalog.KindLetter, Key: "α", Name: "Alpha ", Sound: "a"})
	assert.True(t, res.IsCorrect)
	assert.Equal(t, "Correct! Well done.", res.Feedback)
	assert.Equal(t, 1, res.Record.TotalAttempts)
	assert.Equal(t, TypeTotals{Scored: 1, Total: 1}, res.Overview.Letters)
	assert.Equal(t, TypeTotals{}, res.Overview.Words)
	assert.Nil(t, res.Transition)
}

func TestSubmit_InvalidKeyMutatesNothing(t *testing.T) {
	kv := newMemKV()
	events := &recordingLog{}
	c := newTestController(t, kv, events)
	before := c.Overview()

	_, err := c.Submit(context.Background(), Answer{Kind: catalog.KindWord, Key: "nope", Meaning: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidItemKey))
	var ik *InvalidItemKeyError
	require.True(t, errors.As(err, &ik))
	assert.Equal(t, "nope", ik.Key)

	// A letter key is not a word key.
	_, err = c.Submit(context.Background(), Answer{Kind: catalog.KindWord, Key: "α"})
	assert.ErrorIs(t, err, ErrInvalidItemKey)

	assert.Equal(t, before, c.Overview())
	assert.Zero(t, kv.saves)
	assert.Empty(t, events.answers)
}

func TestSubmit_WordTransitionAndHistory(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()

	var learnedAt int
	for i := 1; i <= 4; i++ {
		res := submit(t, c, correctWord("τρία", cat))
		if res.Transition != nil && res.Transition.To == "learned" {
			learnedAt = i
		}
	}
	assert.Equal(t, 4, learnedAt)
	require.Len(t, c.History(), 1)
	assert.Equal(t, 1, c.History()[0].Count)

	// Two misses push the word out of the learned state.
	submit(t, c, wrongWord("τρία"))
	submit(t, c, wrongWord("τρία"))
	h := c.History()
	require.Len(t, h, 2)
	assert.Equal(t, 0, h[1].Count)
	assert.False(t, h[1].Timestamp.Before(h[0].Timestamp))
}

func TestReviewTrigger_ExactlyOnce(t *testing.T) {
	events := &recordingLog{}
	c := newTestController(t, nil, events)
	cat := c.Catalog()
	require.NoError(t, c.SetMode(context.Background(), ModeVocabFocus))

	submit(t, c, correctWord("ένα", cat))
	for i := 0; i < 4; i++ {
		res := submit(t, c, correctWord("ένα", cat))
		assert.False(t, res.ReviewStarted)
	}

	var started int
	for i := 0; i < 4; i++ {
		res := submit(t, c, correctWord("δύο", cat))
		if res.ReviewStarted {
			started++
			assert.Equal(t, ReviewState{Active: true, Remaining: DefaultReviewLength}, res.Review)
		}
	}
	assert.Equal(t, 1, started, "group 1 completed once")

	// Further correct answers on a learned group do not re-trigger.
	answers := 0
	for c.Review().Active {
		res := submit(t, c, correctWord("ένα", cat))
		answers++
		assert.False(t, res.ReviewStarted)
		if answers < DefaultReviewLength {
			assert.Equal(t, DefaultReviewLength-answers, res.Review.Remaining)
		} else {
			assert.True(t, res.ReviewEnded)
		}
		require.LessOrEqual(t, answers, DefaultReviewLength)
	}
	assert.Equal(t, DefaultReviewLength, answers)

	for i := 0; i < 5; i++ {
		res := submit(t, c, correctWord("ένα", cat))
		assert.False(t, res.ReviewStarted)
	}
	assert.Equal(t, []string{store.ActionModeChange, store.ActionReviewStart, store.ActionReviewEnd}, events.actions())
}

func TestReviewTrigger_OnlyInVocabMode(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()
	for _, k := range []string{"ένα", "δύο"} {
		for i := 0; i < 4; i++ {
			res := submit(t, c, correctWord(k, cat))
			assert.False(t, res.ReviewStarted)
		}
	}
	assert.Equal(t, []int{1}, c.Overview().LearnedGroups)
	assert.False(t, c.Review().Active)
}

func TestReview_ServesLearnedWords(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()
	ctx := context.Background()
	require.NoError(t, c.SetMode(ctx, ModeVocabFocus))
	for _, k := range []string{"ένα", "δύο"} {
		for i := 0; i < 4; i++ {
			submit(t, c, correctWord(k, cat))
		}
	}
	require.True(t, c.Review().Active)

	for i := 0; i < 10; i++ {
		q, err := c.NextItem(ctx)
		require.NoError(t, err)
		assert.True(t, q.IsReview)
		assert.Equal(t, SourceReview, q.Source)
		assert.Contains(t, []string{"ένα", "δύο"}, q.Item.Key())
	}
}

func TestSetMode_EndsReview(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()
	ctx := context.Background()
	require.NoError(t, c.SetMode(ctx, ModeVocabFocus))
	for _, k := range []string{"ένα", "δύο"} {
		for i := 0; i < 4; i++ {
			submit(t, c, correctWord(k, cat))
		}
	}
	require.True(t, c.Review().Active)

	require.NoError(t, c.SetMode(ctx, ModeQuiz))
	assert.Equal(t, ReviewState{}, c.Review())

	err := c.SetMode(ctx, Mode("bogus"))
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, ModeQuiz, c.Mode())
}

func TestNextItem_AbortsReviewWithoutLearnedWords(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()
	ctx := context.Background()
	require.NoError(t, c.SetMode(ctx, ModeVocabFocus))
	for _, k := range []string{"ένα", "δύο"} {
		for i := 0; i < 4; i++ {
			submit(t, c, correctWord(k, cat))
		}
	}
	require.True(t, c.Review().Active)

	require.NoError(t, c.ResetItem(ctx, catalog.KindWord, "ένα"))
	require.NoError(t, c.ResetItem(ctx, catalog.KindWord, "δύο"))

	q, err := c.NextItem(ctx)
	require.NoError(t, err)
	assert.False(t, q.IsReview)
	assert.Equal(t, SourceFocusGroup, q.Source)
	assert.False(t, c.Review().Active)
}

func TestModeReview_ExhaustedWithoutLearnedWords(t *testing.T) {
	c := newTestController(t, nil, nil)
	ctx := context.Background()
	require.NoError(t, c.SetMode(ctx, ModeReview))

	_, err := c.NextItem(ctx)
	assert.ErrorIs(t, err, ErrReviewPoolExhausted)
}

func TestModeReview_RearmsAfterRound(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		submit(t, c, correctWord("τρία", cat))
	}
	require.NoError(t, c.SetMode(ctx, ModeReview))
	require.Equal(t, ReviewState{Active: true, Remaining: DefaultReviewLength}, c.Review())

	var ended bool
	for i := 0; i < DefaultReviewLength; i++ {
		q, err := c.NextItem(ctx)
		require.NoError(t, err)
		assert.Equal(t, "τρία", q.Item.Key())
		ended = submit(t, c, correctWord("τρία", cat)).ReviewEnded
	}
	assert.True(t, ended)
	assert.False(t, c.Review().Active)

	q, err := c.NextItem(ctx)
	require.NoError(t, err)
	assert.True(t, q.IsReview)
	assert.Equal(t, DefaultReviewLength, q.ReviewRemaining)
	assert.Equal(t, ModeReview, c.Mode())
}

func TestNextItem_QuizServesLetters(t *testing.T) {
	c := newTestController(t, nil, nil)
	ctx := context.Background()

	var prev string
	for i := 0; i < 50; i++ {
		q, err := c.NextItem(ctx)
		require.NoError(t, err)
		assert.Equal(t, catalog.KindLetter, q.Kind)
		assert.NotEqual(t, prev, q.Item.Key(), "immediate repeat")
		prev = q.Item.Key()
	}
}

func TestNextItem_EmptyCatalog(t *testing.T) {
	c, err := New(context.Background(), Options{Catalog: catalog.MustNew(nil, nil), Logger: quietLogger()})
	require.NoError(t, err)
	_, err = c.NextItem(context.Background())
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestResetAll(t *testing.T) {
	kv := newMemKV()
	c := newTestController(t, kv, nil)
	cat := c.Catalog()
	ctx := context.Background()

	require.NoError(t, c.SetMode(ctx, ModeVocabFocus))
	for i := 0; i < 4; i++ {
		submit(t, c, correctWord("ένα", cat))
	}
	submit(t, c, Answer{Kind: catalog.KindLetter, Key: "β", Name: "beta", Sound: "b"})

	require.NoError(t, c.ResetAll(ctx))
	assert.Equal(t, ModeQuiz, c.Mode())
	assert.Equal(t, ReviewState{}, c.Review())
	assert.Empty(t, c.History())

	ov := c.Overview()
	assert.Equal(t, TypeTotals{}, ov.Letters)
	assert.Equal(t, TypeTotals{}, ov.Words)
	assert.Zero(t, ov.LearnedWords)
	for _, kind := range []catalog.Kind{catalog.KindLetter, catalog.KindWord} {
		for _, s := range c.ItemStats(kind) {
			assert.Zero(t, s.Record.TotalAttempts, s.Item.Key())
		}
	}

	reloaded := newTestController(t, kv, nil)
	assert.Equal(t, TypeTotals{}, reloaded.Overview().Words)
	assert.Empty(t, reloaded.History())
}

func TestResetItem(t *testing.T) {
	c := newTestController(t, nil, nil)
	ctx := context.Background()
	submit(t, c, Answer{Kind: catalog.KindLetter, Key: "α", Name: "alpha", Sound: "a"})
	submit(t, c, Answer{Kind: catalog.KindLetter, Key: "β", Name: "beta", Sound: "b"})

	require.NoError(t, c.ResetItem(ctx, catalog.KindLetter, "α"))
	assert.Equal(t, TypeTotals{Scored: 1, Total: 1}, c.Overview().Letters)

	assert.ErrorIs(t, c.ResetItem(ctx, catalog.KindLetter, "ω"), ErrInvalidItemKey)
}

func TestPersistence_RoundTrip(t *testing.T) {
	kv := newMemKV()
	c := newTestController(t, kv, nil)
	cat := c.Catalog()
	for i := 0; i < 4; i++ {
		submit(t, c, correctWord("τρία", cat))
	}
	submit(t, c, Answer{Kind: catalog.KindLetter, Key: "γ", Name: "gamma", Sound: "x"})

	reloaded := newTestController(t, kv, nil)
	assert.Equal(t, c.Overview(), reloaded.Overview())
	assert.Equal(t, c.History(), reloaded.History())
	assert.Equal(t, c.ItemStats(catalog.KindWord), reloaded.ItemStats(catalog.KindWord))
}

func TestLoad_CorruptedStateDiscarded(t *testing.T) {
	kv := newMemKV()
	kv.data[snapshot.KeyWordStats] = []byte(`{"version":"v1.0.0","records":{"x":{"total_attempts":"many"}}}`)
	kv.data[snapshot.KeyLearnedHistory] = []byte(`not json`)
	kv.data[snapshot.KeyLetterStats] = []byte(`{"α":{"totalAttempts":2,"correctAttempts":1,"consecutiveCorrect":0,"recentPerformance":[true,false],"lastSeen":1709294400000}}`)

	c := newTestController(t, kv, nil)
	assert.Equal(t, TypeTotals{}, c.Overview().Words)
	assert.Empty(t, c.History())
	assert.Equal(t, TypeTotals{Scored: 1, Total: 2}, c.Overview().Letters)
}

func TestLoad_IOErrorReturned(t *testing.T) {
	kv := newMemKV()
	kv.loadErr = errors.New("disk on fire")
	_, err := New(context.Background(), Options{Catalog: testCatalog(), KV: kv, Logger: quietLogger()})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestSubmit_SaveFailureKeepsMemoryState(t *testing.T) {
	kv := newMemKV()
	c := newTestController(t, kv, nil)
	kv.saveErr = errors.New("read-only")

	res := submit(t, c, Answer{Kind: catalog.KindLetter, Key: "α", Name: "alpha", Sound: "a"})
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1, c.Overview().Letters.Total)
}

func TestSubmit_AppendsAnswerEvent(t *testing.T) {
	events := &recordingLog{}
	c := newTestController(t, nil, events)

	submit(t, c, Answer{Kind: catalog.KindLetter, Key: "α", Name: "alpha", Sound: "x"})
	require.Len(t, events.answers, 1)
	ev := events.answers[0]
	assert.Equal(t, c.SessionID(), ev.SessionID)
	assert.Equal(t, "letter", ev.ItemKind)
	assert.Equal(t, "α", ev.ItemKey)
	assert.Equal(t, "quiz", ev.Mode)
	assert.False(t, ev.Correct)
	assert.Equal(t, "alpha / x", ev.Answer)
}

func TestSummary(t *testing.T) {
	c := newTestController(t, nil, nil)
	cat := c.Catalog()
	submit(t, c, Answer{Kind: catalog.KindLetter, Key: "α", Name: "alpha", Sound: "a"})
	for i := 0; i < 4; i++ {
		submit(t, c, correctWord("τρία", cat))
	}
	submit(t, c, wrongWord("ένα"))

	s := c.Summary()
	assert.Equal(t, 6, s.TotalQuestions)
	assert.Equal(t, 5, s.TotalCorrect)
	assert.InDelta(t, 5.0/6, s.Accuracy, 1e-9)
	assert.Equal(t, TypeTotals{Scored: 1, Total: 1}, s.Letters)
	assert.Equal(t, []string{"τρία"}, s.NewlyLearned)
	assert.Positive(t, s.Duration)
}
