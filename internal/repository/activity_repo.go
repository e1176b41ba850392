package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"familyaid/internal/database"
	"familyaid/internal/models"
)

// ActivityRepository records and lists admin actions
type ActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// LogActivity appends an entry to the activity log
func (r *ActivityRepository) LogActivity(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activity_log (user_id, username, action, entity, entity_id, details)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, a.UserID, a.Username, a.Action, a.Entity, a.EntityID, a.Details)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	a.ID = id
	a.CreatedAt = time.Now()
	return nil
}

// ListActivity retrieves the most recent entries, newest first
func (r *ActivityRepository) ListActivity(ctx context.Context, limit int) ([]models.Activity, error) {
	query := `
		SELECT id, user_id, username, action, entity, entity_id, details, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	entries := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		var userID sql.NullInt64
		if err := rows.Scan(&a.ID, &userID, &a.Username, &a.Action, &a.Entity, &a.EntityID, &a.Details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if userID.Valid {
			a.UserID = &userID.Int64
		}
		entries = append(entries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}
	return entries, nil
}
