package session

import (
	"fmt"
	"strings"
)

// Mode selects which items the controller serves.
type Mode string

const (
	// ModeQuiz serves letters, mixing in basic words once letters are known.
	ModeQuiz Mode = "quiz"
	// ModeVocabFocus serves words from the focus group and learned groups.
	ModeVocabFocus Mode = "vocab"
	// ModeReview serves learned words in back-to-back review rounds.
	ModeReview Mode = "review"
)

// Modes lists every mode in display order.
func Modes() []Mode { return []Mode{ModeQuiz, ModeVocabFocus, ModeReview} }

// ParseMode accepts a mode name, case-insensitively, with a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiz", "letters":
		return ModeQuiz, nil
	case "vocab", "vocabfocus", "vocab-focus", "words":
		return ModeVocabFocus, nil
	case "review":
		return ModeReview, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
