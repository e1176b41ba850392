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

const memberColumns = `id, family_id, full_name, national_id, birth_date, gender, relationship,
	is_disabled, disability_type, created_at, updated_at`

// MemberRepository handles database operations for household members
type MemberRepository struct {
	db *database.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func scanMember(row rowScanner) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(
		&m.ID, &m.FamilyID, &m.FullName, &m.NationalID, &m.BirthDate, &m.Gender, &m.Relationship,
		&m.IsDisabled, &m.DisabilityType, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMember inserts a member and sets its ID
func (r *MemberRepository) CreateMember(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (family_id, full_name, national_id, birth_date, gender, relationship, is_disabled, disability_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		m.FamilyID, m.FullName, m.NationalID, m.BirthDate, m.Gender, m.Relationship, m.IsDisabled, m.DisabilityType,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	now := time.Now()
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

// GetMemberByID retrieves a member by ID, nil when it does not exist
func (r *MemberRepository) GetMemberByID(ctx context.Context, id int64) (*models.Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// ListFamilyMembers retrieves the members of a family in the order they were added
func (r *MemberRepository) ListFamilyMembers(ctx context.Context, familyID int64) ([]models.Member, error) {
	return r.list(ctx, "SELECT "+memberColumns+" FROM members WHERE family_id = ? ORDER BY id ASC", familyID)
}

// ListAllMembers retrieves every member, grouped by family
func (r *MemberRepository) ListAllMembers(ctx context.Context) ([]models.Member, error) {
	return r.list(ctx, "SELECT "+memberColumns+" FROM members ORDER BY family_id ASC, id ASC")
}

func (r *MemberRepository) list(ctx context.Context, query string, args ...any) ([]models.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMember stores the editable member fields
func (r *MemberRepository) UpdateMember(ctx context.Context, m *models.Member) error {
	query := `
		UPDATE members SET full_name = ?, national_id = ?, birth_date = ?, gender = ?, relationship = ?,
			is_disabled = ?, disability_type = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		m.FullName, m.NationalID, m.BirthDate, m.Gender, m.Relationship, m.IsDisabled, m.DisabilityType, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// DeleteMember removes a member
func (r *MemberRepository) DeleteMember(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
