package fuzzy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_EmptyQueryMatchesEverything(t *testing.T) {
	s, ok := Score("", "Given a user")
	require.True(t, ok)
	assert.Equal(t, 0, s)
}

func TestScore_SubstringUsesFirstIndex(t *testing.T) {
	s, ok := Score("int", "Given a {int} value")
	require.True(t, ok)
	assert.Equal(t, 9, s)
}

func TestScore_SubstringIsCaseInsensitive(t *testing.T) {
	s, ok := Score("GIVEN", "given a user")
	require.True(t, ok)
	assert.Equal(t, 0, s)
}

func TestScore_SubsequenceCountsGaps(t *testing.T) {
	// g-a-v as a subsequence of "given a value":
	// g matches at 0, "iven " skipped (5 gaps) before a, one more
	// space skipped before v.
	s, ok := Score("gav", "Given a value")
	require.True(t, ok)
	assert.Equal(t, 106, s)
}

func TestScore_SubsequenceAlwaysRanksBelowSubstring(t *testing.T) {
	sub, ok := Score("value", "Given a value")
	require.True(t, ok)
	seq, ok2 := Score("gav", "Given a value")
	require.True(t, ok2)
	assert.Less(t, sub, seq)
}

func TestScore_NoMatch(t *testing.T) {
	_, ok := Score("xyz", "Given a value")
	assert.False(t, ok)
}

func TestRank_OrdersByScoreStably(t *testing.T) {
	candidates := []string{
		"Then the user sees a value", // "value" at index 21
		"Given a value",              // "value" at index 8
		"When a value appears",       // "value" at index 7
	}

	out := Rank("value", candidates)

	assert.Equal(t, []string{
		"When a value appears",
		"Given a value",
		"Then the user sees a value",
	}, out)
}

func TestRank_TiesKeepInsertionOrder(t *testing.T) {
	out := Rank("given", []string{"Given b", "Given a"})

	assert.Equal(t, []string{"Given b", "Given a"}, out)
}

func TestRank_ExcludesNonMatches(t *testing.T) {
	out := Rank("zz", []string{"Given a", "When b"})

	assert.Empty(t, out)
}

func TestRank_TruncatesToMax(t *testing.T) {
	var candidates []string
	for i := 0; i < MaxSuggestions+20; i++ {
		candidates = append(candidates, fmt.Sprintf("Given value %03d", i))
	}

	out := Rank("given", candidates)

	assert.Len(t, out, MaxSuggestions)
	assert.Equal(t, "Given value 000", out[0])
}
