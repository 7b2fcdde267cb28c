package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/greekquiz/internal/schemacheck"
)

//go:embed data/default.json
var defaultCatalogJSON []byte

// fileSchema describes the on-disk catalog document.
const fileSchema = `{
	"type": "object",
	"properties": {
		"letters": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["letter", "name", "sound"],
				"properties": {
					"letter": {"type": "string", "minLength": 1},
					"name": {"type": "string"},
					"sound": {"type": "string"}
				}
			}
		},
		"words": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["greek", "english", "pronunciation", "group"],
				"properties": {
					"greek": {"type": "string", "minLength": 1},
					"english": {"type": "string"},
					"pronunciation": {"type": "string"},
					"group": {"type": "integer", "minimum": 1}
				}
			}
		}
	}
}`

// File is the JSON document layout for a catalog.
type File struct {
	Letters []Letter `json:"letters"`
	Words   []Word   `json:"words"`
}

// Default returns the embedded alphabet and vocabulary.
func Default() *Catalog {
	c, err := Decode(defaultCatalogJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Decode parses and validates a JSON catalog document.
func Decode(raw []byte) (*Catalog, error) {
	if err := schemacheck.Validate("catalog", fileSchema, raw); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(f.Letters, f.Words)
}

// Encode renders a catalog as an indented JSON document.
func Encode(c *Catalog) ([]byte, error) {
	return json.MarshalIndent(File{Letters: c.Letters(), Words: c.Words()}, "", "  ")
}

// LoadFile reads a catalog from path. JSON files carry letters and words;
// spreadsheet and CSV files carry words only and keep the default letters.
func LoadFile(path string) (*Catalog, error) {
	return LoadSheet(path, "")
}

// LoadSheet is LoadFile reading the named worksheet of an .xlsx file.
// An empty sheet means the first one.
func LoadSheet(path, sheet string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return Decode(raw)
	case ".xlsx", ".csv":
		cfg := DefaultImportConfig()
		cfg.FilePath = path
		cfg.SheetName = sheet
		words, res, err := ImportWords(cfg)
		if err != nil {
			return nil, err
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("import %s: %d bad rows, first: %s", path, len(res.Errors), res.Errors[0])
		}
		return New(Default().Letters(), words)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %q", filepath.Ext(path))
	}
}
