// Package snapshot encodes quiz state for the key-value store.
//
// Current documents are JSON envelopes carrying a semantic format version.
// Documents written by the earlier browser trainer (bare camelCase record
// maps and [timestamp, count] history pairs) are read as well.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/abhisek/greekquiz/internal/schemacheck"
)

// FormatVersion is written into every envelope. Documents with a different
// major version are rejected.
const FormatVersion = "v1.0.0"

// Keys under which state is persisted.
const (
	KeyLetterStats    = "letter_stats"
	KeyWordStats      = "word_stats"
	KeyLearnedHistory = "learned_history"
)

// ErrCorrupted marks persisted data that cannot be decoded.
var ErrCorrupted = errors.New("corrupted persisted state")

// CorruptedError describes why a document was rejected.
type CorruptedError struct {
	Doc string
	Err error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCorrupted, e.Doc, e.Err)
}

func (e *CorruptedError) Unwrap() error { return e.Err }

// Is reports ErrCorrupted as a match.
func (e *CorruptedError) Is(target error) bool { return target == ErrCorrupted }

func corrupted(doc string, err error) error {
	return &CorruptedError{Doc: doc, Err: err}
}

// envelopeVersion reads the version field when raw is a versioned envelope.
// ok is false for documents without one.
func envelopeVersion(raw []byte) (version string, ok bool, err error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		// Arrays and scalars are not envelopes.
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			return "", false, nil
		}
		return "", false, err
	}
	v, found := probe["version"]
	if !found {
		return "", false, nil
	}
	if err := json.Unmarshal(v, &version); err != nil {
		return "", true, fmt.Errorf("version: %w", err)
	}
	return version, true, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid format version %q", v)
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("unsupported format version %s (want %s.x)", v, semver.Major(FormatVersion))
	}
	return nil
}

// decodeEnvelope validates raw against a schema and unmarshals it into dst.
func decodeEnvelope(doc, schemaDef string, raw []byte, dst any) error {
	if err := schemacheck.Validate(doc, schemaDef, raw); err != nil {
		return corrupted(doc, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return corrupted(doc, err)
	}
	return nil
}
