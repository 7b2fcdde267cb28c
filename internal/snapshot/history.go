package snapshot

import (
	"encoding/json"
	"time"

	"github.com/abhisek/greekquiz/internal/mastery"
)

const historySchema = `{
	"type": "object",
	"required": ["version", "points"],
	"properties": {
		"version": {"type": "string"},
		"points": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["timestamp", "count"],
				"properties": {
					"timestamp": {"type": "string", "format": "date-time"},
					"count": {"type": "integer", "minimum": 0}
				}
			}
		}
	}
}`

// The browser trainer stored history as [epochMillis, count] pairs.
const legacyHistorySchema = `{
	"type": "array",
	"items": {
		"type": "array",
		"prefixItems": [{"type": "number"}, {"type": "integer", "minimum": 0}],
		"minItems": 2,
		"maxItems": 2
	}
}`

type historyPoint struct {
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
}

type historyEnvelope struct {
	Version string         `json:"version"`
	Points  []historyPoint `json:"points"`
}

// EncodeHistory renders learned-word history as a versioned envelope.
func EncodeHistory(points []mastery.HistoryPoint) ([]byte, error) {
	env := historyEnvelope{Version: FormatVersion, Points: make([]historyPoint, 0, len(points))}
	for _, p := range points {
		env.Points = append(env.Points, historyPoint{
			Timestamp: p.Timestamp.UTC().Format(time.RFC3339Nano),
			Count:     p.Count,
		})
	}
	return json.Marshal(env)
}

// DecodeHistory parses a history document. Any failure is reported as
// ErrCorrupted.
func DecodeHistory(raw []byte) ([]mastery.HistoryPoint, error) {
	const doc = "history"

	version, versioned, err := envelopeVersion(raw)
	if err != nil {
		return nil, corrupted(doc, err)
	}
	if !versioned {
		return decodeLegacyHistory(raw)
	}
	if err := checkVersion(version); err != nil {
		return nil, corrupted(doc, err)
	}

	var env historyEnvelope
	if err := decodeEnvelope(doc, historySchema, raw, &env); err != nil {
		return nil, err
	}

	out := make([]mastery.HistoryPoint, 0, len(env.Points))
	for _, p := range env.Points {
		t, err := time.Parse(time.RFC3339Nano, p.Timestamp)
		if err != nil {
			return nil, corrupted(doc, err)
		}
		out = append(out, mastery.HistoryPoint{Timestamp: t, Count: p.Count})
	}
	return out, nil
}

func decodeLegacyHistory(raw []byte) ([]mastery.HistoryPoint, error) {
	const doc = "legacy-history"

	var pairs [][2]float64
	if err := decodeEnvelope(doc, legacyHistorySchema, raw, &pairs); err != nil {
		return nil, err
	}
	out := make([]mastery.HistoryPoint, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, mastery.HistoryPoint{
			Timestamp: time.UnixMilli(int64(p[0])),
			Count:     int(p[1]),
		})
	}
	return out, nil
}
