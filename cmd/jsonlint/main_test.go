package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunValidJSONPassesThrough(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(`{"a":1}`), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, `{"a": 1}`, strings.TrimSpace(stdout.String()))
}

func TestRunInvalidJSONFailsWithExitOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(`{"a":}`), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())
}

func TestRunIndentFlagReformats(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-indent", "  "}, strings.NewReader(`[1,2]`), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "[\n  1,\n  2\n]", strings.TrimSpace(stdout.String()))
}

func TestRunQuietFlagSuppressesOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-q"}, strings.NewReader(`{"a":1}`), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunAsciiFlagEscapesNonASCII(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-ascii"}, strings.NewReader(`["café"]`), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "[\"caf\\u00e9\"]", strings.TrimSpace(stdout.String()))
}
