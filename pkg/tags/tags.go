// Package tags is the codec for tag sets at the storage boundary.
// Tag sets (fitness tags, workout types) are persisted as JSON-encoded
// string arrays inside a text column; decoding is total — anything that
// is not a well-formed JSON string array comes back as an empty slice.
package tags

import "encoding/json"

// Encode serializes a tag set for storage. A nil slice encodes as "[]".
func Encode(ts []string) string {
	if len(ts) == 0 {
		return "[]"
	}
	data, err := json.Marshal(ts)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Decode parses a stored tag set. Empty, malformed, or non-array input
// decodes to an empty slice, never an error.
func Decode(s string) []string {
	if s == "" {
		return []string{}
	}
	var ts []string
	if err := json.Unmarshal([]byte(s), &ts); err != nil {
		return []string{}
	}
	if ts == nil {
		return []string{}
	}
	return ts
}

// ContainsAny reports whether set and query share at least one tag.
func ContainsAny(set, query []string) bool {
	for _, q := range query {
		for _, t := range set {
			if t == q {
				return true
			}
		}
	}
	return false
}
