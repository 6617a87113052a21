// Package store persists each session's accumulated attendance
// dataset in sqlite. The store is a thin boundary: all domain logic
// stays in the attendance package.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/pkg/database"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// Session is one dashboard session owning an accumulated dataset.
type Session struct {
	ID           string     `json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUploadAt *time.Time `json:"last_upload_at,omitempty"`
}

// SessionRepository handles session database operations.
type SessionRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSessionRepository creates a session repository.
func NewSessionRepository(db *database.DB, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{db: db, logger: logger}
}

// Create allocates a new session with a random id.
func (r *SessionRepository) Create() (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(
		"INSERT INTO sessions (id, created_at) VALUES (?, ?)",
		session.ID, session.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Info("Session created", zap.String("session_id", session.ID))
	return session, nil
}

// Get loads a session by id.
func (r *SessionRepository) Get(id string) (*Session, error) {
	var session Session
	var lastUpload sql.NullTime

	err := r.db.QueryRow(
		"SELECT id, created_at, last_upload_at FROM sessions WHERE id = ?", id,
	).Scan(&session.ID, &session.CreatedAt, &lastUpload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if lastUpload.Valid {
		session.LastUploadAt = &lastUpload.Time
	}
	return &session, nil
}

// TouchUpload records that the session received an upload.
func (r *SessionRepository) TouchUpload(tx *sql.Tx, id string) error {
	result, err := tx.Exec(
		"UPDATE sessions SET last_upload_at = ? WHERE id = ?",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check touched session: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
