package service

import (
	"context"
	"fmt"

	"familyaid/internal/logging"
	"familyaid/internal/models"
)

// Activity actions
const (
	ActionCreate   = "create"
	ActionDelete   = "delete"
	ActionUpdate   = "update"
	ActionStatus   = "status"
	ActionReview   = "review"
	ActionSend     = "send"
	ActionSettings = "settings"
	ActionExport   = "export"
)

// DefaultActivityLimit is how many log entries the activity page shows
const DefaultActivityLimit = 200

// ActivityService records admin actions for the root activity log
type ActivityService struct {
	store  ActivityStore
	logger logging.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(store ActivityStore, logger logging.Logger) *ActivityService {
	return &ActivityService{store: store, logger: logger}
}

// Record logs an action. A failure to write the log is reported but never
// fails the action itself.
func (s *ActivityService) Record(ctx context.Context, actor *models.User, action, entity string, entityID int64, details string) {
	a := &models.Activity{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if actor != nil {
		id := actor.ID
		a.UserID = &id
		a.Username = actor.Username
	}
	if err := s.store.LogActivity(ctx, a); err != nil {
		s.logger.Error("failed to record activity", err, map[string]any{
			"action": action,
			"entity": entity,
		})
	}
}

// List returns the most recent entries, newest first
func (s *ActivityService) List(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	entries, err := s.store.ListActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}
