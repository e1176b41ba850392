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

const requestColumns = `r.id, r.family_id, r.type, r.description, r.status, r.admin_comment, r.created_at, r.updated_at`

// RequestRepository handles database operations for aid requests
type RequestRepository struct {
	db *database.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *database.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateRequest inserts a request and sets its ID
func (r *RequestRepository) CreateRequest(ctx context.Context, req *models.Request) error {
	query := `
		INSERT INTO aid_requests (family_id, type, description, status, admin_comment)
		VALUES (?, ?, ?, ?, ?)
	`
	if req.Status == "" {
		req.Status = models.RequestPending
	}
	id, err := r.db.ExecReturningID(ctx, query, req.FamilyID, req.Type, req.Description, req.Status, req.AdminComment)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	now := time.Now()
	req.ID = id
	req.CreatedAt = now
	req.UpdatedAt = now
	return nil
}

// GetRequestByID retrieves a request by ID, nil when it does not exist
func (r *RequestRepository) GetRequestByID(ctx context.Context, id int64) (*models.Request, error) {
	req := &models.Request{}
	err := r.db.QueryRowContext(ctx, "SELECT "+requestColumns+" FROM aid_requests r WHERE r.id = ?", id).Scan(
		&req.ID, &req.FamilyID, &req.Type, &req.Description, &req.Status, &req.AdminComment, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// ListFamilyRequests retrieves the requests of a family, newest first
func (r *RequestRepository) ListFamilyRequests(ctx context.Context, familyID int64) ([]models.Request, error) {
	query := "SELECT " + requestColumns + " FROM aid_requests r WHERE r.family_id = ? ORDER BY r.created_at DESC, r.id DESC"
	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []models.Request{}
	for rows.Next() {
		var req models.Request
		if err := rows.Scan(
			&req.ID, &req.FamilyID, &req.Type, &req.Description, &req.Status, &req.AdminComment, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}
	return requests, nil
}

// ListRequestsWithFamily retrieves every request joined with its family head, newest first
func (r *RequestRepository) ListRequestsWithFamily(ctx context.Context) ([]models.RequestWithFamily, error) {
	query := `
		SELECT ` + requestColumns + `, f.husband_name, f.husband_id
		FROM aid_requests r
		INNER JOIN families f ON f.id = r.family_id
		ORDER BY r.created_at DESC, r.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []models.RequestWithFamily{}
	for rows.Next() {
		var req models.RequestWithFamily
		if err := rows.Scan(
			&req.ID, &req.FamilyID, &req.Type, &req.Description, &req.Status, &req.AdminComment, &req.CreatedAt, &req.UpdatedAt,
			&req.HusbandName, &req.HusbandID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}
	return requests, nil
}

// ReviewRequest sets the status and admin comment of a request
func (r *RequestRepository) ReviewRequest(ctx context.Context, id int64, status, comment string) error {
	query := "UPDATE aid_requests SET status = ?, admin_comment = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, status, comment, id)
	if err != nil {
		return fmt.Errorf("failed to review request: %w", err)
	}
	return nil
}
