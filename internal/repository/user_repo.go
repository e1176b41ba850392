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

const userSelect = `
	SELECT u.id, u.username, u.password_hash, u.email, u.role, u.dual_role, u.created_at, u.updated_at, f.id
	FROM users u
	LEFT JOIN families f ON f.user_id = u.id
`

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var familyID sql.NullInt64
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.DualRole, &u.CreatedAt, &u.UpdatedAt, &familyID)
	if err != nil {
		return nil, err
	}
	if familyID.Valid {
		u.FamilyID = &familyID.Int64
	}
	return u, nil
}

// CreateUser inserts a new user and sets its ID
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, role, dual_role)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, u.Username, u.PasswordHash, u.Email, u.Role, u.DualRole)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	now := time.Now()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// GetUserByUsername retrieves a user by username, nil when it does not exist
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, userSelect+" WHERE u.username = ?", username)
}

// GetUserByID retrieves a user by ID, nil when it does not exist
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, userSelect+" WHERE u.id = ?", id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// ListUsers retrieves all users ordered by creation date
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+" ORDER BY u.created_at DESC, u.id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// CountUsersByRole counts users holding role
func (r *UserRepository) CountUsersByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role = ?", role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
