package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nexusai/nexus/internal/debug"
	"github.com/nexusai/nexus/internal/intent"
	"github.com/nexusai/nexus/internal/llm"
	"github.com/nexusai/nexus/internal/session"
)

// Manager drives conversational turns: it owns the active conversation log,
// routes prompts to the right backend call, and keeps the session registry
// synced with every log mutation. Turn failures are returned to the caller
// for display; they never leave partial assistant state behind on a failed
// dispatch and never tear down the session.
type Manager struct {
	client       llm.Client
	store        *Store
	registry     *session.Registry
	imageCaption string
	loading      bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithImageCaption overrides the caption used for image results whose
// response carries no description.
func WithImageCaption(caption string) Option {
	return func(m *Manager) {
		m.imageCaption = caption
	}
}

// NewManager returns a manager with an empty active conversation.
func NewManager(client llm.Client, registry *session.Registry, opts ...Option) *Manager {
	manager := &Manager{
		client:       client,
		store:        NewStore(),
		registry:     registry,
		imageCaption: llm.DefaultImageCaption,
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

// Store exposes the active conversation log.
func (m *Manager) Store() *Store {
	return m.store
}

// Loading reports whether a turn is in flight.
func (m *Manager) Loading() bool {
	return m.loading
}

// ActivateSession selects the session and replaces the active conversation
// with a copy of its persisted snapshot.
func (m *Manager) ActivateSession(id string) error {
	if err := m.registry.Select(id); err != nil {
		return err
	}
	current := m.registry.Current()
	m.store.Replace(current.Messages)
	return nil
}

// StartSession creates a fresh session, makes it active and empties the
// conversation log.
func (m *Manager) StartSession() *session.Session {
	created := m.registry.Create()
	m.store.Clear()
	return created
}

// ClearConversation empties the active log and syncs the change.
func (m *Manager) ClearConversation() {
	m.store.Clear()
	m.sync()
}

// Send submits one user prompt and runs the turn to completion. A session
// is created synchronously before dispatch if none is active, so no message
// is ever lost to "no active session". onDelta observes streamed fragments
// as they are assembled. The loading flag is cleared on every exit path.
func (m *Manager) Send(ctx context.Context, text string, onDelta func(fragment string)) error {
	m.loading = true
	defer func() { m.loading = false }()

	if m.registry.Current() == nil {
		m.registry.Create()
	}

	m.store.Append(&llm.Message{
		ID:        uuid.New().String(),
		Role:      llm.RoleUser,
		Kind:      llm.KindText,
		Content:   text,
		CreatedAt: time.Now(),
	})
	m.sync()

	if intent.Classify(text) == intent.RouteImage {
		return m.sendImage(ctx, text)
	}
	return m.sendChat(ctx, onDelta)
}

// sendImage performs the single-shot image call. On failure no assistant
// message is appended.
func (m *Manager) sendImage(ctx context.Context, prompt string) error {
	result, err := m.client.GenerateImage(ctx, prompt)
	if err != nil {
		return err
	}

	caption := result.Description
	if caption == "" {
		caption = m.imageCaption
	}
	m.store.Append(&llm.Message{
		ID:        uuid.New().String(),
		Role:      llm.RoleAssistant,
		Kind:      llm.KindImage,
		Content:   caption,
		ImageRef:  result.ImageURL,
		CreatedAt: time.Now(),
	})
	m.sync()
	return nil
}

// sendChat streams the response into the conversation, syncing the session
// after every delta so the persisted snapshot tracks the growing message.
func (m *Manager) sendChat(ctx context.Context, onDelta func(fragment string)) error {
	stream, err := m.client.StreamChat(ctx, m.store.Messages())
	if err != nil {
		return err
	}
	defer stream.Close()

	_, err = Assemble(stream, m.store, func(fragment string) {
		if onDelta != nil {
			onDelta(fragment)
		}
		m.sync()
	})
	if err != nil {
		return err
	}
	m.sync()
	return nil
}

// sync pushes the full conversation snapshot to the active session, if any.
// Persistence failures are logged, not surfaced: they must not kill a turn
// whose response has already been assembled.
func (m *Manager) sync() {
	current := m.registry.Current()
	if current == nil {
		return
	}
	if err := m.registry.Update(current.ID, m.store.Messages()); err != nil {
		debug.Logger().Warn("syncing session", "session", current.ID, "error", err)
	}
}
