package jsonpath

import (
	"strings"
	"testing"

	"github.com/couchjson/jsoncore/jsontree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const beatles = `{
	"name": "The Beatles",
	"members": [
		{"name": "John", "role": "guitar"},
		{"name": "Paul", "role": "bass"},
		{"name": "George", "role": "guitar"},
		{"name": "Ringo", "role": "drums"}
	]
}`

func TestScanSingleScalarPath(t *testing.T) {
	var got string
	err := ScanString(beatles, "name", func(v *jsontree.Value) {
		got, _ = v.AsString()
	})
	require.NoError(t, err)
	assert.Equal(t, "The Beatles", got)
}

func TestScanIndexedPath(t *testing.T) {
	var got string
	err := ScanString(beatles, "members[2].name", func(v *jsontree.Value) {
		got, _ = v.AsString()
	})
	require.NoError(t, err)
	assert.Equal(t, "George", got)
}

func TestScanContainerPath(t *testing.T) {
	var got *jsontree.Value
	err := ScanString(beatles, "members[0]", func(v *jsontree.Value) {
		got = v
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	name, err := got.Key("name").AsString()
	require.NoError(t, err)
	assert.Equal(t, "John", name)
}

func TestScanMultipleSubscriptionsInOnePass(t *testing.T) {
	var names []string
	s := NewScanner()
	require.NoError(t, s.Subscribe("members[0].name", func(v *jsontree.Value) {
		n, _ := v.AsString()
		names = append(names, n)
	}))
	require.NoError(t, s.Subscribe("members[3].name", func(v *jsontree.Value) {
		n, _ := v.AsString()
		names = append(names, n)
	}))
	require.NoError(t, Run(strings.NewReader(beatles), s))
	assert.Equal(t, []string{"John", "Ringo"}, names)
}

func TestScanNonMatchingPathNeverCallsBack(t *testing.T) {
	called := false
	err := ScanString(beatles, "members[99].name", func(v *jsontree.Value) {
		called = true
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestScanPropagatesParseErrors(t *testing.T) {
	err := ScanString(`{"a":}`, "a", func(v *jsontree.Value) {})
	assert.ErrorIs(t, err, ErrScan)
}

func TestScanDuplicateKeyOutsideCaptureStillRejected(t *testing.T) {
	err := ScanString(`{"a":1,"a":2,"b":3}`, "b", func(v *jsontree.Value) {})
	assert.Error(t, err)
}

func TestScanArrayOfScalars(t *testing.T) {
	var got []int64
	s := NewScanner()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Subscribe(indexPath(i), func(v *jsontree.Value) {
			n, _ := v.AsInteger()
			got = append(got, n)
		}))
	}
	require.NoError(t, Run(strings.NewReader(`[10, 20, 30]`), s))
	assert.Equal(t, []int64{10, 20, 30}, got)
}

func indexPath(i int) string {
	switch i {
	case 0:
		return "[0]"
	case 1:
		return "[1]"
	default:
		return "[2]"
	}
}
