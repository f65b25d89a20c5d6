// Package session manages the durable collection of named conversations.
// The registry is the sole owner of persisted session data: it loads the
// collection once at startup and rewrites it in full on every mutation.
package session

import (
	"time"

	"github.com/nexusai/nexus/internal/llm"
)

const (
	// PlaceholderTitle names a session until its first user message exists.
	PlaceholderTitle = "New Chat"

	titleLimit = 40
)

// Session is a named, independently persisted conversation.
type Session struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Messages  []*llm.Message `json:"messages"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// deriveTitle computes a session title from the first user message: its
// first 40 characters, with an ellipsis when truncated. Without a user
// message the placeholder stands.
func deriveTitle(messages []*llm.Message) string {
	for _, message := range messages {
		if message.Role != llm.RoleUser {
			continue
		}
		runes := []rune(message.Content)
		if len(runes) > titleLimit {
			return string(runes[:titleLimit]) + "..."
		}
		return message.Content
	}
	return PlaceholderTitle
}
