package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/greekquiz/internal/catalog"
)

var (
	// ErrInvalidItemKey is returned when an answer names an item missing
	// from the catalog. No state is changed.
	ErrInvalidItemKey = errors.New("invalid item key")

	// ErrEmptyPool is returned when there is nothing to ask.
	ErrEmptyPool = errors.New("no item available")

	// ErrReviewPoolExhausted is returned by review mode when no word is learned yet.
	ErrReviewPoolExhausted = errors.New("no learned words to review, learn some words first")

	// ErrInvalidMode is returned for an unknown mode name.
	ErrInvalidMode = errors.New("invalid mode")
)

// InvalidItemKeyError identifies the rejected item.
type InvalidItemKeyError struct {
	Kind catalog.Kind
	Key  string
}

func (e *InvalidItemKeyError) Error() string {
	return fmt.Sprintf("%s: %s %q is not in the catalog", ErrInvalidItemKey, e.Kind, e.Key)
}

func (e *InvalidItemKeyError) Unwrap() error { return ErrInvalidItemKey }
