package service

import (
	"context"
	"fmt"

	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/views"
)

// RequestService handles aid requests
type RequestService struct {
	requests  RequestStore
	families  FamilyStore
	settings  *SettingsService
	validator *forms.Validator
	activity  *ActivityService
}

// NewRequestService creates a new request service
func NewRequestService(requests RequestStore, families FamilyStore, settings *SettingsService, validator *forms.Validator, activity *ActivityService) *RequestService {
	return &RequestService{
		requests:  requests,
		families:  families,
		settings:  settings,
		validator: validator,
		activity:  activity,
	}
}

// Submit files a pending request for the family owned by user
func (s *RequestService) Submit(ctx context.Context, user *models.User, form forms.RequestForm) (*models.Request, error) {
	request, err := s.validator.SubmitRequest(form, s.settings.Language())
	if err != nil {
		return nil, err
	}

	family, err := s.families.GetFamilyByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	if !family.IsActive() {
		return nil, ErrFamilyInactive
	}

	request.FamilyID = family.ID
	if err := s.requests.CreateRequest(ctx, &request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.activity.Record(ctx, user, ActionCreate, "request", request.ID, request.Type)
	return &request, nil
}

// ListOwn returns the requests of the family owned by user
func (s *RequestService) ListOwn(ctx context.Context, user *models.User) ([]models.Request, error) {
	family, err := s.families.GetFamilyByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	requests, err := s.requests.ListFamilyRequests(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// List returns one page of requests matching filters
func (s *RequestService) List(ctx context.Context, filters views.RequestFilters, page, size int) (views.Page[models.RequestWithFamily], error) {
	requests, err := s.requests.ListRequestsWithFamily(ctx)
	if err != nil {
		return views.Page[models.RequestWithFamily]{}, fmt.Errorf("failed to list requests: %w", err)
	}
	result := views.Paginate(views.Filter(requests, filters.Predicate()), page, size)
	result.FiltersKey = views.FiltersKey(filters.Values())
	return result, nil
}

// Review approves or rejects a request with an optional comment
func (s *RequestService) Review(ctx context.Context, actor *models.User, id int64, form forms.ReviewForm) (*models.Request, error) {
	review, err := s.validator.SubmitReview(form, s.settings.Language())
	if err != nil {
		return nil, err
	}

	request, err := s.requests.GetRequestByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if err := s.requests.ReviewRequest(ctx, id, review.Status, review.AdminComment); err != nil {
		return nil, fmt.Errorf("failed to review request: %w", err)
	}

	request.Status = review.Status
	request.AdminComment = review.AdminComment
	s.activity.Record(ctx, actor, ActionReview, "request", id, review.Status)
	return request, nil
}
