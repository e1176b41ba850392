package service

import (
	"context"
	"fmt"
	"time"

	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/views"
)

// NotificationService sends and lists notifications
type NotificationService struct {
	notifications NotificationStore
	users         UserStore
	mailer        Mailer
	settings      *SettingsService
	validator     *forms.Validator
	activity      *ActivityService
	logger        logging.Logger
	now           func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications NotificationStore, users UserStore, mailer Mailer, settings *SettingsService, validator *forms.Validator, activity *ActivityService, logger logging.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		settings:      settings,
		validator:     validator,
		activity:      activity,
		logger:        logger,
		now:           time.Now,
	}
}

// Send stores a notification from actor. Urgent notifications are also
// emailed to every other user with an email address.
func (s *NotificationService) Send(ctx context.Context, actor *models.User, form forms.NotificationForm) (*models.Notification, error) {
	n, err := s.validator.SubmitNotification(form, s.settings.Language())
	if err != nil {
		return nil, err
	}

	senderID := actor.ID
	n.SenderID = &senderID
	n.SenderName = actor.Username
	if err := s.notifications.CreateNotification(ctx, &n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	s.activity.Record(ctx, actor, ActionSend, "notification", n.ID, n.Target)

	if n.Target == models.TargetUrgent {
		s.emailUrgent(ctx, actor, n)
	}
	return &n, nil
}

// emailUrgent mails an urgent notification. Failures are logged only.
func (s *NotificationService) emailUrgent(ctx context.Context, actor *models.User, n models.Notification) {
	if s.mailer == nil || !s.mailer.IsEnabled() {
		return
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users for urgent notification", err)
		return
	}
	sent := 0
	for _, u := range users {
		if u.Email == "" || u.ID == actor.ID {
			continue
		}
		if err := s.mailer.SendNotificationEmail(ctx, u.Email, u.Username, n.Title, n.Message); err != nil {
			s.logger.Warn("failed to email urgent notification", err, map[string]any{"user_id": u.ID})
			continue
		}
		sent++
	}
	s.logger.Info(fmt.Sprintf("urgent notification %d emailed to %d users", n.ID, sent))
}

// List returns every notification, newest first
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	list, err := s.notifications.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// ForHead returns the notifications a family head sees: those targeting the
// viewer and sent within the last day.
func (s *NotificationService) ForHead(ctx context.Context, viewer views.Viewer) ([]models.Notification, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return views.HeadNotifications(list, viewer, s.now()), nil
}
