// Package conversation owns the in-memory message log of the active
// conversation and the machinery that feeds it: the response assembler that
// folds streamed deltas into a single assistant message, and the manager
// that drives a full turn from submitted prompt to synced session.
package conversation

import "github.com/nexusai/nexus/internal/llm"

// Store is the ordered message log of the active conversation. It is
// append-only except for the in-place content update used while streaming.
type Store struct {
	messages []*llm.Message
}

// NewStore returns an empty conversation log.
func NewStore() *Store {
	return &Store{}
}

// Append adds a message to the end of the log.
func (s *Store) Append(message *llm.Message) {
	s.messages = append(s.messages, message)
}

// Upsert inserts the message if its id is absent; otherwise it updates the
// existing message's content in place, preserving its position, role and
// creation time.
func (s *Store) Upsert(message *llm.Message) {
	for _, existing := range s.messages {
		if existing.ID == message.ID {
			existing.Content = message.Content
			return
		}
	}
	s.messages = append(s.messages, message)
}

// Get returns the message with the given id, if present.
func (s *Store) Get(id string) (*llm.Message, bool) {
	for _, message := range s.messages {
		if message.ID == id {
			return message, true
		}
	}
	return nil, false
}

// Messages returns a snapshot of the log in insertion order.
func (s *Store) Messages() []*llm.Message {
	snapshot := make([]*llm.Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Replace swaps the log wholesale for a deep copy of the given snapshot.
// Used when a persisted session is selected; it is a one-way copy, not a
// live binding.
func (s *Store) Replace(messages []*llm.Message) {
	s.messages = llm.CloneMessages(messages)
}

// Clear empties the log.
func (s *Store) Clear() {
	s.messages = nil
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	return len(s.messages)
}
