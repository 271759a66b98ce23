package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
)

func TestDocumentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{StatusDraft, StatusWaiting, true},
		{StatusDraft, StatusReady, true},
		{StatusDraft, StatusDone, true},
		{StatusWaiting, StatusReady, true},
		{StatusWaiting, StatusDraft, false},
		{StatusReady, StatusWaiting, false},
		{StatusReady, StatusDone, true},
		{StatusDraft, StatusCanceled, true},
		{StatusReady, StatusCanceled, true},
		{StatusDone, StatusCanceled, false},
		{StatusDone, StatusDraft, false},
		{StatusCanceled, StatusDraft, false},
		{StatusCanceled, StatusDone, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDocument_SetStatus(t *testing.T) {
	doc := NewDocument()
	require.Equal(t, StatusDraft, doc.Status)

	require.NoError(t, doc.SetStatus(StatusWaiting))
	require.NoError(t, doc.SetStatus(StatusReady))

	// Done is reserved for the validation engine
	err := doc.SetStatus(StatusDone)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
	assert.Equal(t, StatusReady, doc.Status)

	// Backward moves rejected
	require.Error(t, doc.SetStatus(StatusDraft))
}

func TestDocument_MarkDoneAndCancel(t *testing.T) {
	doc := NewDocument()
	doc.MarkDone()
	assert.Equal(t, StatusDone, doc.Status)

	require.Error(t, doc.CanModify())
	require.Error(t, doc.MarkCanceled())

	doc = NewDocument()
	require.NoError(t, doc.MarkCanceled())
	assert.Equal(t, StatusCanceled, doc.Status)
	require.Error(t, doc.SetStatus(StatusWaiting))
}
