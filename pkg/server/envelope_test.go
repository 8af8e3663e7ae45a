package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/surf/pkg/browser"
)

func TestOkEnvelope(t *testing.T) {
	status := ok()
	assert.True(t, status.Success)
	assert.Empty(t, status.Error)
	assert.Empty(t, status.ErrorType)
	assert.Empty(t, status.Suggestion)
}

func TestFailureEnvelopeFromClassifiedError(t *testing.T) {
	err := &browser.Error{
		Kind:    browser.ErrInvalidSession,
		Message: "unknown session: abc",
		Hint:    "list sessions to see valid ids",
	}

	status := failure(err)
	assert.False(t, status.Success)
	assert.Equal(t, "unknown session: abc", status.Error)
	assert.Equal(t, "InvalidSession", status.ErrorType)
	assert.Equal(t, "list sessions to see valid ids", status.Suggestion)
}

func TestFailureEnvelopeFromRawError(t *testing.T) {
	status := failure(errors.New("something went sideways"))
	assert.False(t, status.Success)
	assert.Equal(t, "something went sideways", status.Error)
	assert.Equal(t, "Unknown", status.ErrorType)
}

func TestFailureEnvelopeClassifiesDriverTimeout(t *testing.T) {
	status := failure(errors.New("Timeout 10000ms exceeded"))
	assert.Equal(t, "ElementTimeout", status.ErrorType)
	assert.NotEmpty(t, status.Suggestion)
}
