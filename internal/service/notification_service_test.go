package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/views"
)

func TestNotificationSendUrgentEmails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "admin1", models.RoleAdmin, "admin@example.com")
	env.seedUser(t, "head1", models.RoleHead, "head1@example.com")
	env.seedUser(t, "head2", models.RoleHead, "")

	n, err := env.notifications.Send(ctx, admin, forms.NotificationForm{
		Title:   "Water",
		Message: "Water distribution today at noon",
		Target:  models.TargetUrgent,
	})
	require.NoError(t, err)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, admin.ID, *n.SenderID)
	assert.Equal(t, "admin1", n.SenderName)

	require.Len(t, env.mailer.sent, 1, "only other users with an email are mailed")
	assert.Equal(t, "head1@example.com", env.mailer.sent[0].to)
}

func TestNotificationSendNonUrgentDoesNotEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "admin1", models.RoleAdmin, "")
	env.seedUser(t, "head1", models.RoleHead, "head1@example.com")

	_, err := env.notifications.Send(ctx, admin, forms.NotificationForm{
		Title:   "Meeting",
		Message: "General meeting next week",
		Target:  models.TargetAll,
	})
	require.NoError(t, err)
	assert.Empty(t, env.mailer.sent)
}

func TestNotificationForHead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	env.notifications.now = func() time.Time { return now }

	env.store.notifications = []models.Notification{
		{ID: 1, Target: models.TargetAll, CreatedAt: now.Add(-time.Hour)},
		{ID: 2, Target: models.TargetAdmin, CreatedAt: now.Add(-time.Hour)},
		{ID: 3, Target: models.TargetSpecific, Recipients: []int64{7}, CreatedAt: now.Add(-time.Hour)},
		{ID: 4, Target: models.TargetHead, CreatedAt: now.Add(-25 * time.Hour)},
	}

	list, err := env.notifications.ForHead(ctx, views.Viewer{UserID: 7, Role: models.RoleHead})
	require.NoError(t, err)
	var ids []int64
	for _, n := range list {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)

	all, err := env.notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestNotificationValidationSkipsStore(t *testing.T) {
	env := newTestEnv(t)
	admin := &models.User{ID: 1, Role: models.RoleAdmin}

	_, err := env.notifications.Send(context.Background(), admin, forms.NotificationForm{
		Title:   "Hi",
		Message: "short",
		Target:  models.TargetSpecific,
	})
	var errs forms.FieldErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "message")
	assert.Zero(t, env.store.calls)
}
