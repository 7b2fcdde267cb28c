package selection

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/greekquiz/internal/catalog"
)

// MaxRepeatRetries bounds how often a draw that repeats the previous item
// is retried.
const MaxRepeatRetries = 10

// WeightFunc scores a candidate. Larger weights are drawn more often.
type WeightFunc func(catalog.Item) float64

// Selector draws weighted random items. It is not safe for concurrent use.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector using rng. A nil rng is seeded from the clock.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Selector{rng: rng}
}

// NewSeeded creates a selector with a deterministic source.
func NewSeeded(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Float64 returns a uniform draw in [0,1) from the selector's source.
func (s *Selector) Float64() float64 {
	return s.rng.Float64()
}

// Select draws one item from pool. When the draw repeats previous and the
// pool has another item, it redraws from the pool without previous, up to
// MaxRepeatRetries times. It returns false only for an empty pool.
func (s *Selector) Select(pool []catalog.Item, weight WeightFunc, previous catalog.Item) (catalog.Item, bool) {
	if len(pool) == 0 {
		return nil, false
	}

	pick := s.draw(pool, weight)
	if previous == nil || !catalog.SameItem(pick, previous) || !hasOther(pool, previous) {
		return pick, true
	}

	candidates := without(pool, previous)
	if len(candidates) == 0 {
		candidates = pool
	}
	for range MaxRepeatRetries {
		pick = s.draw(candidates, weight)
		if !catalog.SameItem(pick, previous) {
			break
		}
	}
	return pick, true
}

// draw performs one cumulative-weight draw, falling back to a uniform
// choice when the weights do not form a usable distribution.
func (s *Selector) draw(pool []catalog.Item, weight WeightFunc) catalog.Item {
	weights := make([]float64, len(pool))
	total := 0.0
	for i, it := range pool {
		w := weight(it)
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		return pool[s.rng.IntN(len(pool))]
	}

	r := s.rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}

func hasOther(pool []catalog.Item, previous catalog.Item) bool {
	for _, it := range pool {
		if !catalog.SameItem(it, previous) {
			return true
		}
	}
	return false
}

func without(pool []catalog.Item, previous catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, len(pool))
	for _, it := range pool {
		if !catalog.SameItem(it, previous) {
			out = append(out, it)
		}
	}
	return out
}
