package service

import (
	"context"
	"fmt"

	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/views"
)

// UserService handles account management by admins
type UserService struct {
	users     UserStore
	settings  *SettingsService
	validator *forms.Validator
	activity  *ActivityService
}

// NewUserService creates a new user service
func NewUserService(users UserStore, settings *SettingsService, validator *forms.Validator, activity *ActivityService) *UserService {
	return &UserService{
		users:     users,
		settings:  settings,
		validator: validator,
		activity:  activity,
	}
}

// Create adds an admin or head account
func (s *UserService) Create(ctx context.Context, actor *models.User, form forms.UserForm) (*models.User, error) {
	user, err := s.validator.SubmitUser(form, s.settings.PasswordPolicy(), s.settings.Language())
	if err != nil {
		return nil, err
	}
	if err := createAccount(ctx, s.users, &user, form.Password); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actor, ActionCreate, "user", user.ID, user.Username)
	return &user, nil
}

// List returns one page of users matching filters
func (s *UserService) List(ctx context.Context, filters views.UserFilters, page int, size int) (views.Page[models.User], error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return views.Page[models.User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	result := views.Paginate(views.Filter(users, filters.Predicate()), page, size)
	result.FiltersKey = views.FiltersKey(filters.Values())
	return result, nil
}
