package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/greekquiz/internal/catalog"
)

func TestCheckLetter(t *testing.T) {
	alpha := catalog.Letter{Symbol: "α", Name: "alpha", Sound: "a"}

	tests := []struct {
		name         string
		nameIn       string
		soundIn      string
		wantCorrect  bool
		wantFeedback string
	}{
		{"exact", "alpha", "a", true, "Correct! Well done."},
		{"case and spaces", "Alpha ", " A", true, "Correct! Well done."},
		{"wrong sound", "alpha", "b", false, "Incorrect: Sound: a."},
		{"wrong name", "beta", "a", false, "Incorrect: Name: alpha."},
		{"both wrong", "beta", "b", false, "Incorrect: Name: alpha. Sound: a."},
		{"empty", "", "", false, "Incorrect: Name: alpha. Sound: a."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := CheckLetter(alpha, tt.nameIn, tt.soundIn)
			assert.Equal(t, tt.wantCorrect, g.Correct)
			assert.Equal(t, tt.wantFeedback, g.Feedback)
		})
	}
}

func TestCheckLetter_Fields(t *testing.T) {
	alpha := catalog.Letter{Symbol: "α", Name: "alpha", Sound: "a"}
	g := CheckLetter(alpha, "alpha", "x")
	assert.Equal(t, map[string]bool{FieldName: true, FieldSound: false}, g.Fields)
}

func TestCheckWord(t *testing.T) {
	logos := catalog.Word{Greek: "λόγος", English: "word / speech", Pronunciation: "logos", Group: 1}
	bare := catalog.Word{Greek: "και", English: " / ", Pronunciation: "kai", Group: 1}

	tests := []struct {
		name         string
		word         catalog.Word
		pron         string
		meaning      string
		wantCorrect  bool
		wantFeedback string
	}{
		{"first meaning", logos, "logos", "word", true, "Correct! Well done."},
		{"second meaning", logos, "LOGOS", " Speech", true, "Correct! Well done."},
		{"partial meaning", logos, "logos", "spee", false, "Incorrect: Meaning: word / speech."},
		{"whole english is not a meaning", logos, "logos", "word / speech", false, "Incorrect: Meaning: word / speech."},
		{"wrong pronunciation", logos, "lagos", "word", false, "Incorrect: Pronun.: logos."},
		{"both wrong", logos, "x", "y", false, "Incorrect: Pronun.: logos. Meaning: word / speech."},
		{"no meanings never match", bare, "kai", "", false, "Incorrect: (No official meaning provided for comparison)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := CheckWord(tt.word, tt.pron, tt.meaning)
			assert.Equal(t, tt.wantCorrect, g.Correct)
			assert.Equal(t, tt.wantFeedback, g.Feedback)
		})
	}
}

func TestAnswerText(t *testing.T) {
	assert.Equal(t, "alpha / a", Answer{Kind: catalog.KindLetter, Name: "alpha", Sound: "a"}.Text())
	assert.Equal(t, "logos / word", Answer{Kind: catalog.KindWord, Pronunciation: "logos", Meaning: "word"}.Text())
}
