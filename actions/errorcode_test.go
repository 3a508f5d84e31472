package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeStringAndSentinel(t *testing.T) {
	assert.Equal(t, "DuplicateKey", DuplicateKey.String())
	assert.ErrorIs(t, DuplicateKey.SentinelError(), ErrDuplicateKey)
	assert.Nil(t, NoError.SentinelError())
}

func TestErrorCodeUnknownFallsBackToInternalLogicError(t *testing.T) {
	var bogus ErrorCode = 9999
	assert.ErrorIs(t, bogus.SentinelError(), ErrInternalLogicError)
}
