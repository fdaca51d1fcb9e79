package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illyshaieb/ace/store/sqlite"
)

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenConversationStartsFresh(t *testing.T) {
	store := openTestStore(t)

	first, err := openConversation(context.Background(), store, false)
	require.NoError(t, err)
	second, err := openConversation(context.Background(), store, false)
	require.NoError(t, err)
	assert.Greater(t, second.ID(), first.ID())
}

func TestOpenConversationResumesLatest(t *testing.T) {
	store := openTestStore(t)

	first, err := openConversation(context.Background(), store, false)
	require.NoError(t, err)
	resumed, err := openConversation(context.Background(), store, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), resumed.ID())
}

func TestOpenConversationResumeOnEmptyStore(t *testing.T) {
	store := openTestStore(t)

	conversation, err := openConversation(context.Background(), store, true)
	require.NoError(t, err)
	assert.NotZero(t, conversation.ID())
}
