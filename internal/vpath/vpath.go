// Package vpath provides helpers for the slash-separated virtual paths
// that address nodes in a workspace tree. Paths are case-sensitive and
// carry no leading or trailing slash; empty segments are discarded.
package vpath

import "strings"

// Normalize splits a path on "/", trims each segment, drops empty
// segments, and rejoins. Normalize is idempotent.
func Normalize(path string) string {
	segs := Segments(path)
	return strings.Join(segs, "/")
}

// Segments returns the normalized non-empty segments of a path.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		segs = append(segs, p)
	}
	return segs
}

// Parent returns the parent prefix of a normalized path, or "" if the
// path has no parent.
func Parent(path string) string {
	n := Normalize(path)
	idx := strings.LastIndex(n, "/")
	if idx < 0 {
		return ""
	}
	return n[:idx]
}

// Depth returns the number of segments minus one, floored at zero.
func Depth(path string) int {
	segs := Segments(path)
	if len(segs) <= 1 {
		return 0
	}
	return len(segs) - 1
}

// Name returns the last segment of a path, or the normalized path itself
// when there are no segments.
func Name(path string) string {
	segs := Segments(path)
	if len(segs) == 0 {
		return Normalize(path)
	}
	return segs[len(segs)-1]
}
