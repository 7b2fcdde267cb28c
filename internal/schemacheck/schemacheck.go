// Package schemacheck validates JSON documents against JSON Schema
// definitions compiled once per name.
package schemacheck

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidationError reports a document that does not conform to its schema.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document does not match schema %q: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks raw JSON against the schema definition registered under name.
// The definition is compiled on first use and cached.
func Validate(name, definition string, raw []byte) error {
	compiled, err := compiled(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{Schema: name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := compiled.Validate(doc); err != nil {
		return &ValidationError{Schema: name, Err: err}
	}
	return nil
}

func compiled(name, definition string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := jsonschema.UnmarshalJSON(strings.NewReader(definition))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, s)
	return s, nil
}
