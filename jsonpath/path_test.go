package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathDottedAndIndexed(t *testing.T) {
	segs, err := ParsePath("members[2].name")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Key: "members"}, segs[0])
	assert.Equal(t, Segment{IsIndex: true, Index: 2}, segs[1])
	assert.Equal(t, Segment{Key: "name"}, segs[2])
}

func TestParsePathLeadingIndex(t *testing.T) {
	segs, err := ParsePath("[0][1]")
	require.NoError(t, err)
	assert.Equal(t, []Segment{
		{IsIndex: true, Index: 0},
		{IsIndex: true, Index: 1},
	}, segs)
}

func TestParsePathSingleKey(t *testing.T) {
	segs, err := ParsePath("name")
	require.NoError(t, err)
	assert.Equal(t, []Segment{{Key: "name"}}, segs)
}

func TestParsePathRejectsEmpty(t *testing.T) {
	_, err := ParsePath("")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestParsePathRejectsDoubleDot(t *testing.T) {
	_, err := ParsePath("a..b")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestParsePathRejectsUnterminatedBracket(t *testing.T) {
	_, err := ParsePath("a[1")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestParsePathRejectsNonNumericIndex(t *testing.T) {
	_, err := ParsePath("a[x]")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMustParsePathPanicsOnBadPath(t *testing.T) {
	assert.Panics(t, func() { MustParsePath("") })
}
