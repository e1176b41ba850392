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

const familyColumns = `id, user_id, husband_name, husband_id, husband_birth_date, husband_job,
	primary_phone, secondary_phone, wife_name, wife_id, wife_birth_date, wife_job, wife_pregnancy,
	original_residence, housing_status, is_displaced, displacement_location, is_abroad,
	has_war_damage, war_damage_description, branch, landmark, social_status,
	total_members, male_count, female_count, status, created_at, updated_at`

// FamilyRepository handles database operations for families
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFamily(row rowScanner) (*models.Family, error) {
	f := &models.Family{}
	var userID sql.NullInt64
	err := row.Scan(
		&f.ID, &userID, &f.HusbandName, &f.HusbandID, &f.HusbandBirthDate, &f.HusbandJob,
		&f.PrimaryPhone, &f.SecondaryPhone, &f.WifeName, &f.WifeID, &f.WifeBirthDate, &f.WifeJob, &f.WifePregnancy,
		&f.OriginalResidence, &f.HousingStatus, &f.IsDisplaced, &f.DisplacementLocation, &f.IsAbroad,
		&f.HasWarDamage, &f.WarDamageDescription, &f.Branch, &f.Landmark, &f.SocialStatus,
		&f.TotalMembers, &f.MaleCount, &f.FemaleCount, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		f.UserID = &userID.Int64
	}
	return f, nil
}

// CreateFamily inserts a family and sets its ID
func (r *FamilyRepository) CreateFamily(ctx context.Context, f *models.Family) error {
	query := `
		INSERT INTO families (user_id, husband_name, husband_id, husband_birth_date, husband_job,
			primary_phone, secondary_phone, wife_name, wife_id, wife_birth_date, wife_job, wife_pregnancy,
			original_residence, housing_status, is_displaced, displacement_location, is_abroad,
			has_war_damage, war_damage_description, branch, landmark, social_status,
			total_members, male_count, female_count, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if f.Status == "" {
		f.Status = models.FamilyActive
	}
	id, err := r.db.ExecReturningID(ctx, query,
		f.UserID, f.HusbandName, f.HusbandID, f.HusbandBirthDate, f.HusbandJob,
		f.PrimaryPhone, f.SecondaryPhone, f.WifeName, f.WifeID, f.WifeBirthDate, f.WifeJob, f.WifePregnancy,
		f.OriginalResidence, f.HousingStatus, f.IsDisplaced, f.DisplacementLocation, f.IsAbroad,
		f.HasWarDamage, f.WarDamageDescription, f.Branch, f.Landmark, f.SocialStatus,
		f.TotalMembers, f.MaleCount, f.FemaleCount, f.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}

	now := time.Now()
	f.ID = id
	f.CreatedAt = now
	f.UpdatedAt = now
	return nil
}

// GetFamilyByID retrieves a family by ID, nil when it does not exist
func (r *FamilyRepository) GetFamilyByID(ctx context.Context, id int64) (*models.Family, error) {
	return r.getOne(ctx, "SELECT "+familyColumns+" FROM families WHERE id = ?", id)
}

// GetFamilyByUserID retrieves the family headed by a user
func (r *FamilyRepository) GetFamilyByUserID(ctx context.Context, userID int64) (*models.Family, error) {
	return r.getOne(ctx, "SELECT "+familyColumns+" FROM families WHERE user_id = ?", userID)
}

// GetFamilyByHusbandID retrieves a family by the head's national ID
func (r *FamilyRepository) GetFamilyByHusbandID(ctx context.Context, husbandID string) (*models.Family, error) {
	return r.getOne(ctx, "SELECT "+familyColumns+" FROM families WHERE husband_id = ?", husbandID)
}

func (r *FamilyRepository) getOne(ctx context.Context, query string, arg any) (*models.Family, error) {
	f, err := scanFamily(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return f, nil
}

// ListFamilies retrieves all families, newest first
func (r *FamilyRepository) ListFamilies(ctx context.Context) ([]models.Family, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+familyColumns+" FROM families ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query families: %w", err)
	}
	defer rows.Close()

	families := []models.Family{}
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate families: %w", err)
	}
	return families, nil
}

// UpdateFamily stores the editable family fields. Owner and status are left alone.
func (r *FamilyRepository) UpdateFamily(ctx context.Context, f *models.Family) error {
	query := `
		UPDATE families SET husband_name = ?, husband_id = ?, husband_birth_date = ?, husband_job = ?,
			primary_phone = ?, secondary_phone = ?, wife_name = ?, wife_id = ?, wife_birth_date = ?,
			wife_job = ?, wife_pregnancy = ?, original_residence = ?, housing_status = ?,
			is_displaced = ?, displacement_location = ?, is_abroad = ?, has_war_damage = ?,
			war_damage_description = ?, branch = ?, landmark = ?, social_status = ?,
			total_members = ?, male_count = ?, female_count = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		f.HusbandName, f.HusbandID, f.HusbandBirthDate, f.HusbandJob,
		f.PrimaryPhone, f.SecondaryPhone, f.WifeName, f.WifeID, f.WifeBirthDate,
		f.WifeJob, f.WifePregnancy, f.OriginalResidence, f.HousingStatus,
		f.IsDisplaced, f.DisplacementLocation, f.IsAbroad, f.HasWarDamage,
		f.WarDamageDescription, f.Branch, f.Landmark, f.SocialStatus,
		f.TotalMembers, f.MaleCount, f.FemaleCount,
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update family: %w", err)
	}
	return nil
}

// SetFamilyStatus activates or deactivates a family
func (r *FamilyRepository) SetFamilyStatus(ctx context.Context, id int64, status string) error {
	query := "UPDATE families SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update family status: %w", err)
	}
	return nil
}
