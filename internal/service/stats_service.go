package service

import (
	"context"
	"fmt"
	"time"

	"familyaid/internal/models"
	"familyaid/internal/views"
)

// StatsService builds the admin dashboard summary
type StatsService struct {
	families FamilyStore
	requests RequestStore
	users    UserStore
}

// NewStatsService creates a new stats service
func NewStatsService(families FamilyStore, requests RequestStore, users UserStore) *StatsService {
	return &StatsService{families: families, requests: requests, users: users}
}

// Summary counts the records created within bounds. Zero bounds count everything.
func (s *StatsService) Summary(ctx context.Context, bounds views.DateBounds) (*views.Stats, error) {
	families, err := s.families.ListFamilies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	requests, err := s.requests.ListRequestsWithFamily(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	families = views.Filter(families, views.DateRange(bounds, func(f models.Family) time.Time { return f.CreatedAt }))
	requests = views.Filter(requests, views.DateRange(bounds, func(r models.RequestWithFamily) time.Time { return r.CreatedAt }))
	users = views.Filter(users, views.DateRange(bounds, func(u models.User) time.Time { return u.CreatedAt }))

	return &views.Stats{
		Families: views.SummarizeFamilies(families),
		Requests: views.SummarizeRequests(requests),
		Users:    views.SummarizeUsers(users),
	}, nil
}
