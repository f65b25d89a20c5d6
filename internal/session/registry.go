package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nexusai/nexus/internal/debug"
	"github.com/nexusai/nexus/internal/llm"
)

// Registry holds the session collection, most recently created first, plus
// the active pointer. At most one session is active at a time.
type Registry struct {
	store    *Store
	sessions []*Session
	activeID string
}

// NewRegistry loads the persisted collection. A corrupt or unreadable
// collection yields an empty registry rather than a startup failure.
func NewRegistry(store *Store) *Registry {
	sessions, err := store.Load()
	if err != nil {
		debug.Logger().Warn("loading sessions, starting empty", "error", err)
		sessions = nil
	}
	return &Registry{store: store, sessions: sessions}
}

// Create inserts a new session at the front of the registry with the
// placeholder title and an empty log, marks it active, and persists.
func (r *Registry) Create() *Session {
	now := time.Now()
	created := &Session{
		ID:        uuid.New().String(),
		Title:     PlaceholderTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.sessions = append([]*Session{created}, r.sessions...)
	r.activeID = created.ID
	if err := r.save(); err != nil {
		debug.Logger().Warn("persisting created session", "session", created.ID, "error", err)
	}
	return created
}

// Update replaces the stored message log of the session with the given
// snapshot, rederives its title and refreshes its update time. The session
// keeps its position in the registry.
func (r *Registry) Update(id string, messages []*llm.Message) error {
	target, ok := r.find(id)
	if !ok {
		return errors.Errorf("unknown session %s", id)
	}
	target.Messages = llm.CloneMessages(messages)
	target.Title = deriveTitle(target.Messages)
	target.UpdatedAt = time.Now()
	return r.save()
}

// Delete removes the session. Deleting the active session clears the
// active pointer; no replacement is selected.
func (r *Registry) Delete(id string) error {
	for i, existing := range r.sessions {
		if existing.ID != id {
			continue
		}
		r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
		if r.activeID == id {
			r.activeID = ""
		}
		return r.save()
	}
	return errors.Errorf("unknown session %s", id)
}

// Select sets the active pointer. Message logs are untouched.
func (r *Registry) Select(id string) error {
	if _, ok := r.find(id); !ok {
		return errors.Errorf("unknown session %s", id)
	}
	r.activeID = id
	return nil
}

// Current returns the active session, nil when none is active.
func (r *Registry) Current() *Session {
	if r.activeID == "" {
		return nil
	}
	current, ok := r.find(r.activeID)
	if !ok {
		return nil
	}
	return current
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, bool) {
	return r.find(id)
}

// Sessions returns the collection, most recently created first.
func (r *Registry) Sessions() []*Session {
	snapshot := make([]*Session, len(r.sessions))
	copy(snapshot, r.sessions)
	return snapshot
}

// MostRecent returns the most recently updated session, nil when the
// registry is empty.
func (r *Registry) MostRecent() *Session {
	var recent *Session
	for _, existing := range r.sessions {
		if recent == nil || existing.UpdatedAt.After(recent.UpdatedAt) {
			recent = existing
		}
	}
	return recent
}

func (r *Registry) find(id string) (*Session, bool) {
	for _, existing := range r.sessions {
		if existing.ID == id {
			return existing, true
		}
	}
	return nil, false
}

// save rewrites the whole persisted collection.
func (r *Registry) save() error {
	if err := r.store.Save(r.sessions); err != nil {
		return errors.Wrap(err, "persisting sessions")
	}
	return nil
}
