package catalog

import "strings"

// Kind distinguishes the two quizzable item variants.
type Kind string

const (
	KindLetter Kind = "letter"
	KindWord   Kind = "word"
)

// ParseKind maps a user-supplied string onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "letter", "letters":
		return KindLetter, true
	case "word", "words":
		return KindWord, true
	}
	return "", false
}

// Item is a single flash-card fact. Keys are unique within a Kind.
type Item interface {
	Key() string
	Kind() Kind
}

// Letter is one letter of the Greek alphabet.
type Letter struct {
	Symbol string `json:"letter"`
	Name   string `json:"name"`
	Sound  string `json:"sound"`
}

func (l Letter) Key() string { return l.Symbol }
func (l Letter) Kind() Kind  { return KindLetter }

// Word is a vocabulary entry. English holds slash-separated alternatives.
type Word struct {
	Greek         string `json:"greek"`
	English       string `json:"english"`
	Pronunciation string `json:"pronunciation"`
	Group         int    `json:"group"`
}

func (w Word) Key() string { return w.Greek }
func (w Word) Kind() Kind  { return KindWord }

// Meanings splits English into its trimmed, lowercased alternatives.
// Empty alternatives are dropped.
func (w Word) Meanings() []string {
	var out []string
	for _, m := range strings.Split(strings.ToLower(w.English), "/") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// SameItem reports whether a and b identify the same catalog entry.
// A nil item never matches.
func SameItem(a, b Item) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind() == b.Kind() && a.Key() == b.Key()
}
