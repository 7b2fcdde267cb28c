package selection

import (
	"testing"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letters(symbols ...string) []catalog.Item {
	out := make([]catalog.Item, len(symbols))
	for i, s := range symbols {
		out[i] = catalog.Letter{Symbol: s}
	}
	return out
}

func uniform(catalog.Item) float64 { return 1 }

func TestSelect_EmptyPool(t *testing.T) {
	s := NewSeeded(1)
	it, ok := s.Select(nil, uniform, nil)
	assert.False(t, ok)
	assert.Nil(t, it)
}

func TestSelect_SingleItemRepeats(t *testing.T) {
	s := NewSeeded(1)
	pool := letters("α")
	it, ok := s.Select(pool, uniform, pool[0])
	require.True(t, ok)
	assert.Equal(t, "α", it.Key())
}

func TestSelect_AvoidsRepeats(t *testing.T) {
	s := NewSeeded(42)
	pool := letters("α", "β", "γ")
	// Heavily skewed toward α.
	weight := func(it catalog.Item) float64 {
		if it.Key() == "α" {
			return 50
		}
		return 1
	}

	const trials = 5000
	repeats := 0
	var prev catalog.Item
	for range trials {
		it, ok := s.Select(pool, weight, prev)
		require.True(t, ok)
		if prev != nil && catalog.SameItem(it, prev) {
			repeats++
		}
		prev = it
	}
	rate := float64(repeats) / trials
	if rate > 0.01 {
		t.Errorf("repeat rate = %f, want near zero", rate)
	}
}

func TestSelect_IdentityByKey(t *testing.T) {
	s := NewSeeded(7)
	pool := []catalog.Item{
		catalog.Letter{Symbol: "ο", Name: "omicron"},
		catalog.Word{Greek: "ο", Group: 1},
	}
	prev := catalog.Letter{Symbol: "ο", Name: "other display text"}
	for range 200 {
		it, _ := s.Select(pool, uniform, prev)
		if it.Kind() != catalog.KindWord {
			t.Fatalf("Select returned the previous item %v", it)
		}
	}
}

func TestSelect_FollowsWeights(t *testing.T) {
	s := NewSeeded(3)
	pool := letters("α", "β")
	weight := func(it catalog.Item) float64 {
		if it.Key() == "α" {
			return 3
		}
		return 1
	}

	counts := map[string]int{}
	const trials = 20000
	for range trials {
		it, _ := s.Select(pool, weight, nil)
		counts[it.Key()]++
	}
	share := float64(counts["α"]) / trials
	assert.InDelta(t, 0.75, share, 0.02)
}

func TestSelect_ZeroWeightsFallBackToUniform(t *testing.T) {
	s := NewSeeded(9)
	pool := letters("α", "β", "γ", "δ")
	zero := func(catalog.Item) float64 { return 0 }

	seen := map[string]bool{}
	for range 400 {
		it, ok := s.Select(pool, zero, nil)
		require.True(t, ok)
		seen[it.Key()] = true
	}
	assert.Len(t, seen, 4)
}

func TestSelect_Deterministic(t *testing.T) {
	pool := letters("α", "β", "γ", "δ", "ε")
	a, b := NewSeeded(11), NewSeeded(11)
	for range 50 {
		x, _ := a.Select(pool, uniform, nil)
		y, _ := b.Select(pool, uniform, nil)
		require.Equal(t, x, y)
	}
}
