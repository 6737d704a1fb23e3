package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders_OrderAndTypes(t *testing.T) {
	ph := Placeholders("Given a {string} value of {int} and {double} plus {long}")

	require.Len(t, ph, 4)
	assert.Equal(t, Placeholder{Raw: "{string}", Type: String}, ph[0])
	assert.Equal(t, Placeholder{Raw: "{int}", Type: Int}, ph[1])
	assert.Equal(t, Placeholder{Raw: "{double}", Type: Double}, ph[2])
	assert.Equal(t, Placeholder{Raw: "{long}", Type: Long}, ph[3])
}

func TestPlaceholders_IgnoresUnknownBrackets(t *testing.T) {
	assert.Empty(t, Placeholders("Given a {word} and {float}"))
}

func TestTemplate_TabStopsNumberedLeftToRight(t *testing.T) {
	out := Template("Given", "a {string} value of {int}")

	assert.Equal(t, `Given a "${1:value}" value of ${2:0}`, out)
}

func TestTemplate_TypedDefaults(t *testing.T) {
	out := Template("When", "x {double} y {long}")

	assert.Equal(t, "When x ${1:0.0} y ${2:0}", out)
}

func TestTemplate_PatternOwnKeywordNotDuplicated(t *testing.T) {
	out := Template("Given", "Given a {string} value of {int}")

	assert.Equal(t, `Given a "${1:value}" value of ${2:0}`, out)
}

func TestTemplate_KeywordOverridesPatternKeyword(t *testing.T) {
	out := Template("When", "Given a user")

	assert.Equal(t, "When a user", out)
}

func TestTemplate_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "Then the page loads", Template("Then", "the page loads"))
}

func TestLiteral_QuotesStringsPassesNumbers(t *testing.T) {
	out := Literal("Given", "a {string} value of {int}", []string{"name", "42"})

	assert.Equal(t, `Given a "name" value of 42`, out)
}

func TestLiteral_Defaults(t *testing.T) {
	out := Literal("Given", "a {string} value of {int}", nil)

	assert.Equal(t, `Given a "" value of 0`, out)
}

func TestLiteral_EmptyNumericArgDefaultsToZero(t *testing.T) {
	out := Literal("When", "waiting {double} seconds", []string{""})

	assert.Equal(t, "When waiting 0 seconds", out)
}
