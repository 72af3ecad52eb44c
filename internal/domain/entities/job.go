package entities

import (
	"strconv"
	"strings"
	"time"
)

// AttributeMap carries the category-specific job attributes supplied by the
// homeowner (numbers, strings and booleans). Estimation components read it,
// never write it.
type AttributeMap map[string]interface{}

// Number resolves an attribute as float64. Booleans map to 0/1 and numeric
// strings are accepted; anything else reports ok=false so callers can apply
// their category default.
func (m AttributeMap) Number(key string) (float64, bool) {
	v, exists := m[key]
	if !exists {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NumberOr resolves an attribute as float64, falling back to def when the
// attribute is absent or not numeric.
func (m AttributeMap) NumberOr(key string, def float64) float64 {
	if v, ok := m.Number(key); ok {
		return v
	}
	return def
}

// Bool resolves an attribute as a boolean. Absent or non-boolean values
// report false.
func (m AttributeMap) Bool(key string) bool {
	v, exists := m[key]
	if !exists {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Location is the optional job location used for locality rate adjustment.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	City string  `json:"city"`
}

// Job is a homeowner's renovation job as stored in the record store.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The attribute map is category-specific and only partially validated; the
// estimation components must tolerate missing or malformed entries.
type Job struct {
	ID          string       `json:"id"`
	HomeownerID string       `json:"homeowner_id"`
	Category    string       `json:"category"`
	Attributes  AttributeMap `json:"attributes"`
	Location    *Location    `json:"location,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
