package snapshot

import (
	"encoding/json"
	"time"

	"github.com/abhisek/greekquiz/internal/stats"
)

const recordsSchema = `{
	"type": "object",
	"required": ["version", "records"],
	"properties": {
		"version": {"type": "string"},
		"records": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["total_attempts", "correct_attempts"],
				"properties": {
					"total_attempts": {"type": "integer", "minimum": 0},
					"correct_attempts": {"type": "integer", "minimum": 0},
					"consecutive_correct": {"type": "integer", "minimum": 0},
					"recent_performance": {"type": "array", "items": {"type": "boolean"}},
					"last_seen": {"type": "string", "format": "date-time"}
				}
			}
		}
	}
}`

const legacyRecordsSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"properties": {
			"totalAttempts": {"type": "integer", "minimum": 0},
			"correctAttempts": {"type": "integer", "minimum": 0},
			"consecutiveCorrect": {"type": "integer", "minimum": 0},
			"recentPerformance": {"type": ["array", "null"], "items": {"type": "boolean"}},
			"lastSeen": {"type": ["number", "null"]}
		}
	}
}`

type recordData struct {
	TotalAttempts      int     `json:"total_attempts"`
	CorrectAttempts    int     `json:"correct_attempts"`
	ConsecutiveCorrect int     `json:"consecutive_correct"`
	RecentPerformance  []bool  `json:"recent_performance"`
	LastSeen           *string `json:"last_seen,omitempty"`
}

type recordsEnvelope struct {
	Version string                `json:"version"`
	Records map[string]recordData `json:"records"`
}

// legacyRecord is the browser trainer's per-item shape; lastSeen is in
// milliseconds since the epoch.
type legacyRecord struct {
	TotalAttempts      int     `json:"totalAttempts"`
	CorrectAttempts    int     `json:"correctAttempts"`
	ConsecutiveCorrect int     `json:"consecutiveCorrect"`
	RecentPerformance  []bool  `json:"recentPerformance"`
	LastSeen           float64 `json:"lastSeen"`
}

// EncodeRecords renders a stats snapshot as a versioned envelope.
func EncodeRecords(recs map[string]stats.Record) ([]byte, error) {
	env := recordsEnvelope{
		Version: FormatVersion,
		Records: make(map[string]recordData, len(recs)),
	}
	for key, r := range recs {
		rd := recordData{
			TotalAttempts:      r.TotalAttempts,
			CorrectAttempts:    r.CorrectAttempts,
			ConsecutiveCorrect: r.ConsecutiveCorrect,
			RecentPerformance:  r.RecentPerformance,
		}
		if rd.RecentPerformance == nil {
			rd.RecentPerformance = []bool{}
		}
		if !r.LastSeen.IsZero() {
			s := r.LastSeen.UTC().Format(time.RFC3339Nano)
			rd.LastSeen = &s
		}
		env.Records[key] = rd
	}
	return json.Marshal(env)
}

// DecodeRecords parses a stats document. Any failure is reported as
// ErrCorrupted.
func DecodeRecords(raw []byte) (map[string]stats.Record, error) {
	const doc = "records"

	version, versioned, err := envelopeVersion(raw)
	if err != nil {
		return nil, corrupted(doc, err)
	}
	if !versioned {
		return decodeLegacyRecords(raw)
	}
	if err := checkVersion(version); err != nil {
		return nil, corrupted(doc, err)
	}

	var env recordsEnvelope
	if err := decodeEnvelope(doc, recordsSchema, raw, &env); err != nil {
		return nil, err
	}

	out := make(map[string]stats.Record, len(env.Records))
	for key, rd := range env.Records {
		r := stats.Record{
			TotalAttempts:      rd.TotalAttempts,
			CorrectAttempts:    rd.CorrectAttempts,
			ConsecutiveCorrect: rd.ConsecutiveCorrect,
			RecentPerformance:  rd.RecentPerformance,
		}
		if rd.LastSeen != nil {
			t, err := time.Parse(time.RFC3339Nano, *rd.LastSeen)
			if err != nil {
				return nil, corrupted(doc, err)
			}
			r.LastSeen = t
		}
		out[key] = r
	}
	return out, nil
}

func decodeLegacyRecords(raw []byte) (map[string]stats.Record, error) {
	const doc = "legacy-records"

	var legacy map[string]legacyRecord
	if err := decodeEnvelope(doc, legacyRecordsSchema, raw, &legacy); err != nil {
		return nil, err
	}

	out := make(map[string]stats.Record, len(legacy))
	for key, lr := range legacy {
		r := stats.Record{
			TotalAttempts:      lr.TotalAttempts,
			CorrectAttempts:    lr.CorrectAttempts,
			ConsecutiveCorrect: lr.ConsecutiveCorrect,
			RecentPerformance:  lr.RecentPerformance,
		}
		if lr.LastSeen > 0 {
			r.LastSeen = time.UnixMilli(int64(lr.LastSeen))
		}
		out[key] = r
	}
	return out, nil
}
