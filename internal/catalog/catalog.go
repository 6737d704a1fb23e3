// Package catalog turns the backend's grouped step-definition payload into
// the deduplicated, ordered pattern list the completion engine consumes.
package catalog

import (
	"encoding/json"
	"io"
	"strings"
)

// Bucket is one named group of raw step patterns as supplied by the
// backend. The grouping is semantically irrelevant on this side; only the
// order of buckets and of entries within them matters.
type Bucket struct {
	Name     string
	Patterns []string
}

// Normalize flattens buckets into an ordered list of unique canonical
// patterns: whitespace runs collapsed to single spaces, ends trimmed,
// empty entries skipped, case-insensitive first-seen dedup preserving the
// original casing. Bucket order then entry order keeps suggestion order
// reproducible across identical fetches.
func Normalize(buckets []Bucket) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range buckets {
		for _, raw := range b.Patterns {
			pattern := strings.Join(strings.Fields(raw), " ")
			if pattern == "" {
				continue
			}
			lower := strings.ToLower(pattern)
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			out = append(out, pattern)
		}
	}
	return out
}

// DecodeSteps reads a `{"data":{"steps":{bucket:[...]}}}` payload,
// preserving bucket order. Unexpected shapes degrade to nil rather than
// erroring; non-string entries inside a bucket are skipped.
func DecodeSteps(r io.Reader) []Bucket {
	dec := json.NewDecoder(r)
	if !expectDelim(dec, '{') {
		return nil
	}
	for dec.More() {
		key, ok := nextKey(dec)
		if !ok {
			return nil
		}
		if key != "data" {
			if !skipValue(dec) {
				return nil
			}
			continue
		}
		return decodeData(dec)
	}
	return nil
}

func decodeData(dec *json.Decoder) []Bucket {
	if !expectDelim(dec, '{') {
		return nil
	}
	for dec.More() {
		key, ok := nextKey(dec)
		if !ok {
			return nil
		}
		if key != "steps" {
			if !skipValue(dec) {
				return nil
			}
			continue
		}
		return decodeBuckets(dec)
	}
	return nil
}

func decodeBuckets(dec *json.Decoder) []Bucket {
	if !expectDelim(dec, '{') {
		return nil
	}
	var buckets []Bucket
	for dec.More() {
		name, ok := nextKey(dec)
		if !ok {
			return nil
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}
		var entries []any
		if err := json.Unmarshal(raw, &entries); err != nil {
			// bucket value is not an array; skip the bucket
			continue
		}
		b := Bucket{Name: name}
		for _, v := range entries {
			if s, isStr := v.(string); isStr {
				b.Patterns = append(b.Patterns, s)
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func expectDelim(dec *json.Decoder, want rune) bool {
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	d, ok := tok.(json.Delim)
	return ok && rune(d) == want
}

func nextKey(dec *json.Decoder) (string, bool) {
	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	s, ok := tok.(string)
	return s, ok
}

func skipValue(dec *json.Decoder) bool {
	var v json.RawMessage
	return dec.Decode(&v) == nil
}
