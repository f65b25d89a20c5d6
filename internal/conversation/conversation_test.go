package conversation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus/internal/llm"
)

func message(id string, role llm.Role, content string) *llm.Message {
	return &llm.Message{
		ID:        id,
		Role:      role,
		Kind:      llm.KindText,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

func TestStoreAppendPreservesOrder(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		store.Append(message(fmt.Sprintf("m%d", i), llm.RoleUser, "hi"))
	}

	messages := store.Messages()
	require.Len(t, messages, 5)
	for i, m := range messages {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.ID)
	}
}

func TestStoreUpsertUpdatesInPlace(t *testing.T) {
	store := NewStore()
	store.Append(message("a", llm.RoleUser, "hello"))
	store.Append(message("b", llm.RoleAssistant, "Hel"))
	store.Append(message("c", llm.RoleUser, "another"))

	created := store.Messages()[1].CreatedAt
	store.Upsert(message("b", llm.RoleAssistant, "Hello"))

	messages := store.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "b", messages[1].ID)
	assert.Equal(t, "Hello", messages[1].Content)
	assert.Equal(t, llm.RoleAssistant, messages[1].Role)
	assert.True(t, created.Equal(messages[1].CreatedAt))
}

func TestStoreUpsertAppendsWhenAbsent(t *testing.T) {
	store := NewStore()
	store.Append(message("a", llm.RoleUser, "hello"))

	store.Upsert(message("b", llm.RoleAssistant, "hi"))
	require.Equal(t, 2, store.Len())
	got, ok := store.Get("b")
	require.True(t, ok)
	assert.Equal(t, "hi", got.Content)
}

func TestStoreReplaceIsOneWayCopy(t *testing.T) {
	store := NewStore()
	snapshot := []*llm.Message{
		message("a", llm.RoleUser, "hello"),
		message("b", llm.RoleAssistant, "hi"),
	}
	store.Replace(snapshot)

	// Appends after the copy must not touch the source slice.
	store.Append(message("c", llm.RoleUser, "more"))
	assert.Len(t, snapshot, 2)
	assert.Equal(t, 3, store.Len())
}

func TestStoreReplaceCopiesMessageContent(t *testing.T) {
	store := NewStore()
	source := message("a", llm.RoleUser, "hello")
	store.Replace([]*llm.Message{source})

	// Mutating the source message must not bleed into the log.
	source.Content = "changed"
	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "hello", got.Content)
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Append(message("a", llm.RoleUser, "hello"))
	store.Clear()
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Messages())
}
