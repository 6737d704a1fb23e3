package vpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a/b/c", Normalize("a/b/c"))
	assert.Equal(t, "a/b/c", Normalize("/a/b/c/"))
	assert.Equal(t, "a/b/c", Normalize("a//b///c"))
	assert.Equal(t, "a/b", Normalize(" a / b "))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("///"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"a/b/c", "/a//b/", "  x ", "", "a b/c d", "////"}
	for _, p := range inputs {
		once := Normalize(p)
		assert.Equal(t, once, Normalize(once), "input %q", p)
	}
}

func TestParent(t *testing.T) {
	assert.Equal(t, "a/b", Parent("a/b/c"))
	assert.Equal(t, "a", Parent("a/b"))
	assert.Equal(t, "", Parent("a"))
	assert.Equal(t, "", Parent(""))
	assert.Equal(t, "a", Parent("/a/b/"))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(""))
	assert.Equal(t, 0, Depth("a"))
	assert.Equal(t, 1, Depth("a/b"))
	assert.Equal(t, 2, Depth("a/b/c"))
	assert.Equal(t, 2, Depth("/a//b/c/"))
}

func TestName(t *testing.T) {
	assert.Equal(t, "c", Name("a/b/c"))
	assert.Equal(t, "a", Name("a"))
	assert.Equal(t, "", Name(""))
	assert.Equal(t, "b", Name("/a/b/"))
}
