package service

import (
	"context"
	"fmt"

	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/views"
)

var duplicateHusbandID = map[string]string{
	"ar": "رقم الهوية مسجل لعائلة أخرى",
	"en": "this ID number is already registered to another family",
}

// FamilyService handles family registration and household members
type FamilyService struct {
	families  FamilyStore
	members   MemberStore
	settings  *SettingsService
	validator *forms.Validator
	activity  *ActivityService
}

// NewFamilyService creates a new family service
func NewFamilyService(families FamilyStore, members MemberStore, settings *SettingsService, validator *forms.Validator, activity *ActivityService) *FamilyService {
	return &FamilyService{
		families:  families,
		members:   members,
		settings:  settings,
		validator: validator,
		activity:  activity,
	}
}

// Register creates the family of a head account. Each head owns at most one family.
func (s *FamilyService) Register(ctx context.Context, user *models.User, form forms.FamilyForm) (*models.Family, error) {
	if !user.HasHeadAccess() {
		return nil, ErrForbidden
	}
	family, err := s.validator.SubmitFamily(form, s.settings.Language())
	if err != nil {
		return nil, err
	}

	existing, err := s.families.GetFamilyByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing family: %w", err)
	}
	if existing != nil {
		return nil, ErrFamilyExists
	}
	if err := s.checkHusbandID(ctx, family.HusbandID, 0); err != nil {
		return nil, err
	}

	ownerID := user.ID
	family.UserID = &ownerID
	if err := s.families.CreateFamily(ctx, &family); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}
	s.activity.Record(ctx, user, ActionCreate, "family", family.ID, family.HusbandName)
	return &family, nil
}

// checkHusbandID rejects an ID already used by a family other than selfID
func (s *FamilyService) checkHusbandID(ctx context.Context, husbandID string, selfID int64) error {
	other, err := s.families.GetFamilyByHusbandID(ctx, husbandID)
	if err != nil {
		return fmt.Errorf("failed to check husband ID: %w", err)
	}
	if other != nil && other.ID != selfID {
		msg, ok := duplicateHusbandID[s.settings.Language()]
		if !ok {
			msg = duplicateHusbandID["ar"]
		}
		return forms.FieldErrors{"husbandId": msg}
	}
	return nil
}

// OwnFamily returns the family owned by user
func (s *FamilyService) OwnFamily(ctx context.Context, user *models.User) (*models.Family, error) {
	family, err := s.families.GetFamilyByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	return family, nil
}

// Get returns a family with its members
func (s *FamilyService) Get(ctx context.Context, id int64) (*models.FamilyWithMembers, error) {
	family, err := s.families.GetFamilyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	members, err := s.ListMembers(ctx, family.ID)
	if err != nil {
		return nil, err
	}
	return &models.FamilyWithMembers{Family: *family, Members: members}, nil
}

// Update replaces the editable fields of family id. The owner and status are kept.
func (s *FamilyService) Update(ctx context.Context, actor *models.User, id int64, form forms.FamilyForm) (*models.Family, error) {
	updated, err := s.validator.SubmitFamily(form, s.settings.Language())
	if err != nil {
		return nil, err
	}

	current, err := s.families.GetFamilyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if current == nil {
		return nil, ErrFamilyNotFound
	}
	if err := s.checkHusbandID(ctx, updated.HusbandID, current.ID); err != nil {
		return nil, err
	}

	updated.ID = current.ID
	updated.UserID = current.UserID
	updated.Status = current.Status
	updated.CreatedAt = current.CreatedAt
	if err := s.families.UpdateFamily(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}
	s.activity.Record(ctx, actor, ActionUpdate, "family", updated.ID, updated.HusbandName)
	return &updated, nil
}

// SetStatus activates or deactivates a family
func (s *FamilyService) SetStatus(ctx context.Context, actor *models.User, id int64, status string) error {
	if status != models.FamilyActive && status != models.FamilyInactive {
		return ErrInvalidStatus
	}
	family, err := s.families.GetFamilyByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return ErrFamilyNotFound
	}
	if err := s.families.SetFamilyStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to set family status: %w", err)
	}
	s.activity.Record(ctx, actor, ActionStatus, "family", id, status)
	return nil
}

// List returns one page of families matching filters
func (s *FamilyService) List(ctx context.Context, filters views.FamilyFilters, page, size int) (views.Page[models.Family], error) {
	families, err := s.families.ListFamilies(ctx)
	if err != nil {
		return views.Page[models.Family]{}, fmt.Errorf("failed to list families: %w", err)
	}
	result := views.Paginate(views.Filter(families, filters.Predicate()), page, size)
	result.FiltersKey = views.FiltersKey(filters.Values())
	return result, nil
}

// ListMembers returns the members of a family
func (s *FamilyService) ListMembers(ctx context.Context, familyID int64) ([]models.Member, error) {
	members, err := s.members.ListFamilyMembers(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMember adds a member to family familyID
func (s *FamilyService) AddMember(ctx context.Context, actor *models.User, familyID int64, form forms.MemberForm) (*models.Member, error) {
	member, err := s.validator.SubmitMember(form, s.settings.Language())
	if err != nil {
		return nil, err
	}
	member.FamilyID = familyID
	if err := s.members.CreateMember(ctx, &member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	s.activity.Record(ctx, actor, ActionCreate, "member", member.ID, member.FullName)
	return &member, nil
}

// familyMember loads a member and checks that it belongs to familyID
func (s *FamilyService) familyMember(ctx context.Context, familyID, memberID int64) (*models.Member, error) {
	member, err := s.members.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil || member.FamilyID != familyID {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// UpdateMember edits a member of family familyID
func (s *FamilyService) UpdateMember(ctx context.Context, actor *models.User, familyID, memberID int64, form forms.MemberForm) (*models.Member, error) {
	updated, err := s.validator.SubmitMember(form, s.settings.Language())
	if err != nil {
		return nil, err
	}
	current, err := s.familyMember(ctx, familyID, memberID)
	if err != nil {
		return nil, err
	}

	updated.ID = current.ID
	updated.FamilyID = current.FamilyID
	updated.CreatedAt = current.CreatedAt
	if err := s.members.UpdateMember(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	s.activity.Record(ctx, actor, ActionUpdate, "member", updated.ID, updated.FullName)
	return &updated, nil
}

// DeleteMember removes a member of family familyID
func (s *FamilyService) DeleteMember(ctx context.Context, actor *models.User, familyID, memberID int64) error {
	member, err := s.familyMember(ctx, familyID, memberID)
	if err != nil {
		return err
	}
	if err := s.members.DeleteMember(ctx, member.ID); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	s.activity.Record(ctx, actor, ActionDelete, "member", member.ID, member.FullName)
	return nil
}
