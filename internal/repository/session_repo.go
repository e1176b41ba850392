package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"familyaid/internal/database"
	"familyaid/internal/models"
)

// SessionRepository handles database operations for login sessions
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession stores a new session
func (r *SessionRepository) CreateSession(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, dashboard, expires_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Dashboard, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	s.CreatedAt = time.Now()
	return nil
}

// GetSession retrieves a session by ID, nil when it does not exist
func (r *SessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, dashboard, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.Dashboard, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// UpdateDashboard records the dashboard a dual-role session is on
func (r *SessionRepository) UpdateDashboard(ctx context.Context, id, dashboard string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE sessions SET dashboard = ? WHERE id = ?", dashboard, id)
	if err != nil {
		return fmt.Errorf("failed to update session dashboard: %w", err)
	}
	return nil
}

// DeleteSession removes a session
func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry and returns how many were removed
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
