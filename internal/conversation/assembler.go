package conversation

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/nexusai/nexus/internal/llm"
)

// Assemble drains the stream into the store, maintaining exactly one
// assistant message for the turn. The first delta allocates the message;
// every subsequent delta replaces its content with everything accumulated
// so far, in place. onDelta, when set, observes each fragment after the
// store has been updated.
//
// The assembled message is returned, nil when the stream produced no
// deltas. A mid-stream read error is returned alongside whatever was
// assembled before it; the partial message stays in the store.
func Assemble(stream llm.Stream, store *Store, onDelta func(fragment string)) (*llm.Message, error) {
	var message *llm.Message
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			return message, nil
		}
		if err != nil {
			return message, err
		}
		if event.Content == "" {
			continue
		}

		if message == nil {
			message = &llm.Message{
				ID:        uuid.New().String(),
				Role:      llm.RoleAssistant,
				Kind:      llm.KindText,
				CreatedAt: time.Now(),
			}
		}
		message.Content += event.Content
		store.Upsert(message)
		if onDelta != nil {
			onDelta(event.Content)
		}
	}
}
