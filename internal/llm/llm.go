package llm

import (
	"context"
	"time"
)

// Role of a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind of content a message carries.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// DefaultImageCaption is used when the backend returns an image without a description.
const DefaultImageCaption = "Here's your generated image:"

// Message represents one conversational turn.
type Message struct {
	// ID of this message, stable for its lifetime.
	ID string `json:"id"`
	// Role of the author. Never changes once set.
	Role Role `json:"role"`
	// Content of the message. Grows monotonically while streaming.
	Content string `json:"content"`
	// Kind is a rendering hint.
	Kind Kind `json:"type,omitempty"`
	// ImageRef points at generated image data. Set only when Kind is image.
	ImageRef string `json:"imageUrl,omitempty"`
	// Time at which the message was created. Set once.
	CreatedAt time.Time `json:"timestamp"`
}

// CloneMessages copies a message log so the two sides can be mutated
// independently.
func CloneMessages(messages []*Message) []*Message {
	clones := make([]*Message, len(messages))
	for i, message := range messages {
		clone := *message
		clones[i] = &clone
	}
	return clones
}

// StreamEvent carries one incremental text fragment.
type StreamEvent struct {
	Content string
}

// Stream is a lazy, finite, non-restartable sequence of delta events.
// Recv returns io.EOF once the underlying source is exhausted.
type Stream interface {
	Recv() (*StreamEvent, error)
	Close()
}

// ImageResult is the backend's response to an image generation request.
type ImageResult struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Client talks to the inference backend.
type Client interface {
	StreamChat(ctx context.Context, messages []*Message) (Stream, error)
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}
