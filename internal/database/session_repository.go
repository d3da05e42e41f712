package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/ctcourse/pkg/models"
)

// SessionRepository handles database operations for login sessions
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := r.db.Rebind("INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)")
	_, err := r.db.ExecContext(ctx, query, session.Token, session.UserID, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByToken returns the session for a token
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	query := r.db.Rebind("SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?")
	err := r.db.GetContext(ctx, &session, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query := r.db.Rebind("DELETE FROM sessions WHERE token = ?")
	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes every session past its expiry and reports how many.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	var query string
	if r.db.DriverName() == "postgres" {
		query = "DELETE FROM sessions WHERE expires_at < NOW()"
	} else {
		query = "DELETE FROM sessions WHERE datetime(expires_at) < datetime('now')"
	}
	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return result.RowsAffected()
}
