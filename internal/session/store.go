package session

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/nexusai/nexus/internal/llm"
)

// Store persists the session collection in SQLite. The collection is
// written as a whole: every Save rewrites all rows inside one transaction,
// so the table always holds exactly one serialized snapshot of the
// registry. Position encodes registry order.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at dbPath, creating the sessions table if
// it does not exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			position INTEGER NOT NULL,
			id TEXT NOT NULL PRIMARY KEY,
			title TEXT NOT NULL,
			creation_timestamp INTEGER NOT NULL,
			update_timestamp INTEGER NOT NULL,
			messages TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating sessions table")
	}

	return &Store{db: db}, nil
}

// Save rewrites the full collection.
func (s *Store) Save(sessions []*Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return errors.Wrap(err, "clearing sessions table")
	}

	for position, session := range sessions {
		messages, err := json.Marshal(session.Messages)
		if err != nil {
			return errors.Wrap(err, "marshaling messages")
		}
		_, err = tx.Exec(`
			INSERT INTO sessions (position, id, title, creation_timestamp, update_timestamp, messages)
			VALUES (?, ?, ?, ?, ?, ?)
		`, position, session.ID, session.Title, session.CreatedAt.UnixMicro(), session.UpdatedAt.UnixMicro(), string(messages))
		if err != nil {
			return errors.Wrap(err, "inserting session")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

// Load reads the full collection in registry order.
func (s *Store) Load() ([]*Session, error) {
	rows, err := s.db.Query(`
		SELECT id, title, creation_timestamp, update_timestamp, messages
		FROM sessions
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session := &Session{}
		var created, updated int64
		var messagesJSON string
		if err := rows.Scan(&session.ID, &session.Title, &created, &updated, &messagesJSON); err != nil {
			return nil, errors.Wrap(err, "scanning session row")
		}
		session.CreatedAt = time.UnixMicro(created)
		session.UpdatedAt = time.UnixMicro(updated)
		var messages []*llm.Message
		if err := json.Unmarshal([]byte(messagesJSON), &messages); err != nil {
			return nil, errors.Wrap(err, "unmarshaling messages")
		}
		session.Messages = messages
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating session rows")
	}
	return sessions, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
