// Package session drives a quiz: it picks the next item, grades answers,
// updates statistics and runs review sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/mastery"
	"github.com/abhisek/greekquiz/internal/selection"
	"github.com/abhisek/greekquiz/internal/stats"
	"github.com/abhisek/greekquiz/internal/store"
)

// KV is the persistence provider for engine state. Load returns nil, nil
// when the key is absent.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// EventLog receives an append-only trail of answers and session changes.
type EventLog interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Clock returns the current time.
type Clock func() time.Time

// Config tunes the engine. A zero Config means DefaultConfig.
type Config struct {
	ReviewLength    int
	BasicWordChance float64 // chance of a basic-word question once unlocked
	FocusRatio      float64 // share of vocab questions drawn from the focus group
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		ReviewLength:    DefaultReviewLength,
		BasicWordChance: 0.2,
		FocusRatio:      2.0 / 3,
	}
}

func (c Config) withDefaults() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	if c.ReviewLength <= 0 {
		c.ReviewLength = DefaultReviewLength
	}
	return c
}

// Options configures a Controller. Catalog is required; everything else is
// optional. Without a KV the controller keeps state in memory only.
type Options struct {
	Catalog  *catalog.Catalog
	KV       KV
	Events   EventLog
	Clock    Clock
	Selector *selection.Selector
	Logger   *slog.Logger
	Config   Config
}

// Controller owns the statistics, the learned history and the review state
// of one learner. It is not safe for concurrent use.
type Controller struct {
	catalog  *catalog.Catalog
	letters  *stats.Store
	words    *stats.Store
	eval     *mastery.Evaluator
	history  mastery.History
	selector *selection.Selector
	kv       KV
	events   EventLog
	clock    Clock
	log      *slog.Logger
	cfg      Config

	sessionID string
	started   time.Time
	mode      Mode
	review    ReviewState
	previous  catalog.Item
	tally     tally
}

// Question is the item to present next.
type Question struct {
	Item            catalog.Item
	Kind            catalog.Kind
	Mode            Mode
	IsReview        bool
	ReviewRemaining int
	Source          PoolSource
}

// Result is the outcome of one submitted answer.
type Result struct {
	IsCorrect     bool
	Fields        map[string]bool
	Feedback      string
	Record        stats.Record
	Transition    *mastery.Transition
	Overview      Overview
	Review        ReviewState
	ReviewStarted bool
	ReviewEnded   bool
}

// TypeTotals counts correct and total attempts for one item kind.
type TypeTotals struct {
	Scored int
	Total  int
}

// Overview is the learner-wide progress summary.
type Overview struct {
	Letters       TypeTotals
	Words         TypeTotals
	LearnedWords  int
	LearnedGroups []int
	FocusGroup    int
	TotalGroups   int
}

// ItemStat pairs an item with its record.
type ItemStat struct {
	Item   catalog.Item
	Record stats.Record
	State  mastery.State
}

// New creates a controller and loads any persisted state. Corrupted state is
// discarded with a warning; I/O failures are returned.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Selector == nil {
		opts.Selector = selection.NewSelector(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		catalog:   opts.Catalog,
		letters:   stats.New(opts.Catalog.Keys(catalog.KindLetter)),
		words:     stats.New(opts.Catalog.Keys(catalog.KindWord)),
		selector:  opts.Selector,
		kv:        opts.KV,
		events:    opts.Events,
		clock:     opts.Clock,
		cfg:       opts.Config.withDefaults(),
		sessionID: uuid.NewString(),
		mode:      ModeQuiz,
	}
	c.log = opts.Logger.With("session", c.sessionID)
	c.eval = mastery.NewEvaluator(c.catalog, c.words)
	c.started = c.clock()

	if err := c.load(ctx); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return c, nil
}

// SessionID identifies this controller's run in the event log.
func (c *Controller) SessionID() string { return c.sessionID }

// Catalog returns the catalog the controller quizzes on.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Review returns the current review-session state.
func (c *Controller) Review() ReviewState { return c.review }

// NextItem picks the next question for the current mode.
func (c *Controller) NextItem(ctx context.Context) (Question, error) {
	if c.mode == ModeReview && !c.review.Active && c.eval.LearnedWordCount() > 0 {
		c.beginReview(ctx)
	}

	pool := SelectPool(PoolInput{
		Mode:        c.mode,
		Review:      c.review,
		Catalog:     c.catalog,
		Evaluator:   c.eval,
		Letters:     c.letterTotals(),
		BasicChance: c.cfg.BasicWordChance,
		FocusRatio:  c.cfg.FocusRatio,
		Roll:        c.selector.Float64(),
	})
	if pool.AbortReview {
		c.log.Warn("review session aborted, no learned words")
		c.endReview(ctx)
	}
	if len(pool.Items) == 0 {
		if c.mode == ModeReview {
			return Question{}, ErrReviewPoolExhausted
		}
		c.log.Warn("empty selection pool", "mode", c.mode, "source", pool.Source)
		return Question{}, ErrEmptyPool
	}

	weight := selection.Weigher(c.recordOf, pool.Struggling, c.clock())
	item, ok := c.selector.Select(pool.Items, weight, c.previous)
	if !ok {
		return Question{}, ErrEmptyPool
	}
	c.previous = item

	return Question{
		Item:            item,
		Kind:            item.Kind(),
		Mode:            c.mode,
		IsReview:        c.review.Active,
		ReviewRemaining: c.review.Remaining,
		Source:          pool.Source,
	}, nil
}

// Submit grades an answer and applies it. An answer for an item missing
// from the catalog returns an *InvalidItemKeyError and changes nothing.
func (c *Controller) Submit(ctx context.Context, a Answer) (Result, error) {
	item, ok := c.catalog.Item(a.Kind, a.Key)
	if !ok {
		return Result{}, &InvalidItemKeyError{Kind: a.Kind, Key: a.Key}
	}

	grade := check(item, a)
	now := c.clock()
	wasActive := c.review.Active
	groupsBefore := len(c.eval.LearnedGroups())

	recs := c.storeFor(item.Kind())
	before := recs.Get(item.Key())
	after := recs.Record(item.Key(), grade.Correct, now)

	var transition *mastery.Transition
	if item.Kind() == catalog.KindWord {
		transition = mastery.Compare(item.Key(), before, after)
		if transition != nil {
			c.log.Info("word state changed", "word", item.Key(), "from", transition.From, "to", transition.To)
		}
	}
	c.tally.add(item.Kind(), grade.Correct, transition)

	res := Result{
		IsCorrect:  grade.Correct,
		Fields:     grade.Fields,
		Feedback:   grade.Feedback,
		Record:     after,
		Transition: transition,
	}

	reviewing := wasActive
	next, ended := c.review.afterAnswer()
	c.review = next
	if ended {
		res.ReviewEnded = true
		c.log.Info("review session completed")
		c.logSession(ctx, store.ActionReviewEnd)
	}
	if !wasActive && c.mode == ModeVocabFocus && len(c.eval.LearnedGroups()) > groupsBefore {
		c.beginReview(ctx)
		res.ReviewStarted = true
	}

	historyChanged := c.history.Observe(c.eval.LearnedWordCount(), now)

	if err := c.saveStats(ctx, item.Kind()); err != nil {
		c.log.Error("persist stats", "kind", item.Kind(), "error", err)
	}
	if historyChanged {
		if err := c.saveHistory(ctx); err != nil {
			c.log.Error("persist history", "error", err)
		}
	}
	c.logAnswer(ctx, item, a, grade.Correct, reviewing, now)

	res.Overview = c.Overview()
	res.Review = c.review
	return res, nil
}

// SetMode switches modes. Any mode change ends the review session; entering
// ModeReview arms a new one when learned words exist.
func (c *Controller) SetMode(ctx context.Context, m Mode) error {
	if !slices.Contains(Modes(), m) {
		return fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	if m == c.mode {
		return nil
	}

	c.mode = m
	c.review = ReviewState{}
	c.previous = nil
	c.log.Info("mode changed", "mode", m)
	c.logSession(ctx, store.ActionModeChange)

	if m == ModeReview && c.eval.LearnedWordCount() > 0 {
		c.beginReview(ctx)
	}
	return nil
}

// Overview summarizes progress across letters and words.
func (c *Controller) Overview() Overview {
	lc, lt := c.letters.Totals()
	wc, wt := c.words.Totals()
	return Overview{
		Letters:       TypeTotals{Scored: lc, Total: lt},
		Words:         TypeTotals{Scored: wc, Total: wt},
		LearnedWords:  c.eval.LearnedWordCount(),
		LearnedGroups: c.eval.LearnedGroups(),
		FocusGroup:    c.eval.CurrentFocusGroup(),
		TotalGroups:   len(c.catalog.Groups()),
	}
}

// History returns the learned-word history in order.
func (c *Controller) History() []mastery.HistoryPoint {
	return c.history.Points()
}

// GroupProgress returns per-group vocabulary progress.
func (c *Controller) GroupProgress() []mastery.GroupProgress {
	return c.eval.GroupProgress()
}

// ItemStats lists every catalog item of kind with its record.
func (c *Controller) ItemStats(kind catalog.Kind) []ItemStat {
	recs := c.storeFor(kind)
	var items []catalog.Item
	switch kind {
	case catalog.KindLetter:
		items = c.catalog.LetterItems()
	case catalog.KindWord:
		items = c.catalog.WordItems()
	}
	out := make([]ItemStat, 0, len(items))
	for _, it := range items {
		rec := recs.Get(it.Key())
		out = append(out, ItemStat{Item: it, Record: rec, State: mastery.StateOf(rec)})
	}
	return out
}

// ResetAll zeroes every record, clears the history and returns to quiz mode.
func (c *Controller) ResetAll(ctx context.Context) error {
	c.letters.Reset()
	c.words.Reset()
	c.history.Reset()
	c.mode = ModeQuiz
	c.review = ReviewState{}
	c.previous = nil
	c.tally = tally{}

	c.log.Info("all progress reset")
	c.logSession(ctx, store.ActionReset)
	return c.saveAll(ctx)
}

// ResetItem zeroes the record of a single item.
func (c *Controller) ResetItem(ctx context.Context, kind catalog.Kind, key string) error {
	if _, ok := c.catalog.Item(kind, key); !ok {
		return &InvalidItemKeyError{Kind: kind, Key: key}
	}
	c.storeFor(kind).ResetItem(key)

	if err := c.saveStats(ctx, kind); err != nil {
		return err
	}
	if c.history.Observe(c.eval.LearnedWordCount(), c.clock()) {
		return c.saveHistory(ctx)
	}
	return nil
}

func (c *Controller) beginReview(ctx context.Context) {
	c.review = startReview(c.cfg.ReviewLength)
	c.log.Info("review session started", "length", c.cfg.ReviewLength)
	c.logSession(ctx, store.ActionReviewStart)
}

func (c *Controller) endReview(ctx context.Context) {
	c.review = ReviewState{}
	c.logSession(ctx, store.ActionReviewEnd)
}

func (c *Controller) storeFor(kind catalog.Kind) *stats.Store {
	if kind == catalog.KindLetter {
		return c.letters
	}
	return c.words
}

func (c *Controller) recordOf(it catalog.Item) stats.Record {
	return c.storeFor(it.Kind()).Get(it.Key())
}

func (c *Controller) letterTotals() LetterTotals {
	correct, total := c.letters.Totals()
	return LetterTotals{Correct: correct, Total: total, Seen: c.letters.Seen()}
}

func (c *Controller) logAnswer(ctx context.Context, it catalog.Item, a Answer, correct, review bool, at time.Time) {
	if c.events == nil {
		return
	}
	err := c.events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID: c.sessionID,
		Timestamp: at,
		ItemKind:  string(it.Kind()),
		ItemKey:   it.Key(),
		Mode:      string(c.mode),
		Review:    review,
		Correct:   correct,
		Answer:    a.Text(),
	})
	if err != nil {
		c.log.Error("append answer event", "error", err)
	}
}

func (c *Controller) logSession(ctx context.Context, action string) {
	if c.events == nil {
		return
	}
	err := c.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: c.sessionID,
		Timestamp: c.clock(),
		Action:    action,
		Mode:      string(c.mode),
		Remaining: c.review.Remaining,
	})
	if err != nil {
		c.log.Error("append session event", "action", action, "error", err)
	}
}
