package session

import (
	"slices"
	"strings"

	"github.com/abhisek/greekquiz/internal/catalog"
)

// Answer fields.
const (
	FieldName          = "name"
	FieldSound         = "sound"
	FieldPronunciation = "pronunciation"
	FieldMeaning       = "meaning"
)

const feedbackCorrect = "Correct! Well done."

// Answer is a learner's submission. Letters use Name and Sound; words use
// Pronunciation and Meaning.
type Answer struct {
	Kind          catalog.Kind
	Key           string
	Name          string
	Sound         string
	Pronunciation string
	Meaning       string
}

// Text renders the learner input for the answer log.
func (a Answer) Text() string {
	if a.Kind == catalog.KindLetter {
		return a.Name + " / " + a.Sound
	}
	return a.Pronunciation + " / " + a.Meaning
}

// Grade is the outcome of checking one answer. Only Correct is recorded;
// Fields and Feedback are for display.
type Grade struct {
	Correct  bool
	Fields   map[string]bool
	Feedback string
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckLetter grades a letter answer. Both name and sound must match.
func CheckLetter(l catalog.Letter, name, sound string) Grade {
	nameOK := normalize(name) == normalize(l.Name)
	soundOK := normalize(sound) == normalize(l.Sound)

	g := Grade{
		Correct: nameOK && soundOK,
		Fields:  map[string]bool{FieldName: nameOK, FieldSound: soundOK},
	}
	if g.Correct {
		g.Feedback = feedbackCorrect
		return g
	}
	var b strings.Builder
	b.WriteString("Incorrect: ")
	if !nameOK {
		b.WriteString("Name: " + l.Name + ". ")
	}
	if !soundOK {
		b.WriteString("Sound: " + l.Sound + ".")
	}
	g.Feedback = strings.TrimSpace(b.String())
	return g
}

// CheckWord grades a word answer. Pronunciation must match and the meaning
// must equal one of the slash-separated glosses. A word without glosses
// never matches on meaning.
func CheckWord(w catalog.Word, pronunciation, meaning string) Grade {
	meanings := w.Meanings()
	pronOK := normalize(pronunciation) == normalize(w.Pronunciation)
	meaningOK := len(meanings) > 0 && slices.Contains(meanings, normalize(meaning))

	g := Grade{
		Correct: pronOK && meaningOK,
		Fields:  map[string]bool{FieldPronunciation: pronOK, FieldMeaning: meaningOK},
	}
	if g.Correct {
		g.Feedback = feedbackCorrect
		return g
	}
	var b strings.Builder
	b.WriteString("Incorrect: ")
	if !pronOK {
		b.WriteString("Pronun.: " + w.Pronunciation + ". ")
	}
	switch {
	case len(meanings) == 0:
		b.WriteString("(No official meaning provided for comparison).")
	case !meaningOK:
		b.WriteString("Meaning: " + w.English + ".")
	}
	g.Feedback = strings.TrimSpace(b.String())
	return g
}

// check grades a against item.
func check(item catalog.Item, a Answer) Grade {
	switch it := item.(type) {
	case catalog.Letter:
		return CheckLetter(it, a.Name, a.Sound)
	case catalog.Word:
		return CheckWord(it, a.Pronunciation, a.Meaning)
	}
	return Grade{Fields: map[string]bool{}}
}
