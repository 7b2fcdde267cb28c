package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// BasicGroup is the vocabulary group offered as "basic words" in quiz mode.
const BasicGroup = 1

// Catalog is the static universe of letters and words with lookup indices.
// It is immutable after construction.
type Catalog struct {
	letters     []Letter
	words       []Word
	letterByKey map[string]int
	wordByKey   map[string]int
	byGroup     map[int][]Word
	groups      []int
}

// New validates letters and words and builds a Catalog.
func New(letters []Letter, words []Word) (*Catalog, error) {
	if err := validate(letters, words); err != nil {
		return nil, err
	}

	c := &Catalog{
		letters:     slices.Clone(letters),
		words:       slices.Clone(words),
		letterByKey: make(map[string]int, len(letters)),
		wordByKey:   make(map[string]int, len(words)),
		byGroup:     make(map[int][]Word),
	}
	for i, l := range c.letters {
		c.letterByKey[l.Symbol] = i
	}
	for i, w := range c.words {
		c.wordByKey[w.Greek] = i
		c.byGroup[w.Group] = append(c.byGroup[w.Group], w)
	}
	for g := range c.byGroup {
		c.groups = append(c.groups, g)
	}
	sort.Ints(c.groups)
	return c, nil
}

// MustNew is like New but panics on invalid input. Used for the embedded seed.
func MustNew(letters []Letter, words []Word) *Catalog {
	c, err := New(letters, words)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(letters []Letter, words []Word) error {
	var errs []string

	seen := make(map[string]bool, len(letters))
	for i, l := range letters {
		if strings.TrimSpace(l.Symbol) == "" {
			errs = append(errs, fmt.Sprintf("letter %d has an empty symbol", i))
			continue
		}
		if seen[l.Symbol] {
			errs = append(errs, fmt.Sprintf("duplicate letter: %q", l.Symbol))
		}
		seen[l.Symbol] = true
	}

	seen = make(map[string]bool, len(words))
	for i, w := range words {
		if strings.TrimSpace(w.Greek) == "" {
			errs = append(errs, fmt.Sprintf("word %d has an empty greek spelling", i))
			continue
		}
		if seen[w.Greek] {
			errs = append(errs, fmt.Sprintf("duplicate word: %q", w.Greek))
		}
		if w.Group < 1 {
			errs = append(errs, fmt.Sprintf("word %q has invalid group %d", w.Greek, w.Group))
		}
		seen[w.Greek] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Letters returns all letters in catalog order.
func (c *Catalog) Letters() []Letter { return slices.Clone(c.letters) }

// Words returns all words in catalog order.
func (c *Catalog) Words() []Word { return slices.Clone(c.words) }

// Letter looks up a letter by symbol.
func (c *Catalog) Letter(symbol string) (Letter, bool) {
	i, ok := c.letterByKey[symbol]
	if !ok {
		return Letter{}, false
	}
	return c.letters[i], true
}

// Word looks up a word by greek spelling.
func (c *Catalog) Word(greek string) (Word, bool) {
	i, ok := c.wordByKey[greek]
	if !ok {
		return Word{}, false
	}
	return c.words[i], true
}

// Item looks up an item of either kind.
func (c *Catalog) Item(kind Kind, key string) (Item, bool) {
	switch kind {
	case KindLetter:
		if l, ok := c.Letter(key); ok {
			return l, true
		}
	case KindWord:
		if w, ok := c.Word(key); ok {
			return w, true
		}
	}
	return nil, false
}

// Keys returns the identity keys of every item of the given kind.
func (c *Catalog) Keys(kind Kind) []string {
	switch kind {
	case KindLetter:
		keys := make([]string, len(c.letters))
		for i, l := range c.letters {
			keys[i] = l.Symbol
		}
		return keys
	case KindWord:
		keys := make([]string, len(c.words))
		for i, w := range c.words {
			keys[i] = w.Greek
		}
		return keys
	}
	return nil
}

// Groups returns the distinct group ids in ascending order.
func (c *Catalog) Groups() []int { return slices.Clone(c.groups) }

// WordsInGroup returns the words tagged with group, in catalog order.
func (c *Catalog) WordsInGroup(group int) []Word {
	return slices.Clone(c.byGroup[group])
}

// BasicWords returns the subset of words offered in quiz mode.
func (c *Catalog) BasicWords() []Word {
	return c.WordsInGroup(BasicGroup)
}

// LetterItems returns the letters as Items.
func (c *Catalog) LetterItems() []Item {
	return LettersToItems(c.letters)
}

// WordItems returns the words as Items.
func (c *Catalog) WordItems() []Item {
	return WordsToItems(c.words)
}

// LettersToItems widens a letter slice to Items.
func LettersToItems(letters []Letter) []Item {
	items := make([]Item, len(letters))
	for i, l := range letters {
		items[i] = l
	}
	return items
}

// WordsToItems widens a word slice to Items.
func WordsToItems(words []Word) []Item {
	items := make([]Item, len(words))
	for i, w := range words {
		items[i] = w
	}
	return items
}
