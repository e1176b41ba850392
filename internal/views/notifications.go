package views

import (
	"time"

	"familyaid/internal/models"
)

// HeadFreshness is how long a notification stays on the family-head view
const HeadFreshness = 24 * time.Hour

// Viewer identifies who is looking at a notification list
type Viewer struct {
	UserID int64
	Role   string
}

// NotificationVisible reports whether n targets the viewer
func NotificationVisible(n models.Notification, v Viewer) bool {
	switch n.Target {
	case models.TargetAll, models.TargetUrgent:
		return true
	case models.TargetAdmin:
		return v.Role == models.RoleAdmin || v.Role == models.RoleRoot
	case models.TargetHead:
		return v.Role == models.RoleHead
	case models.TargetSpecific:
		return n.HasRecipient(v.UserID)
	}
	return false
}

// VisibleNotifications keeps the notifications targeting the viewer
func VisibleNotifications(list []models.Notification, v Viewer) []models.Notification {
	return Filter(list, func(n models.Notification) bool {
		return NotificationVisible(n, v)
	})
}

// HeadNotifications is the family-head notification view: visible items no
// older than HeadFreshness at now.
func HeadNotifications(list []models.Notification, v Viewer, now time.Time) []models.Notification {
	return Filter(VisibleNotifications(list, v), func(n models.Notification) bool {
		return now.Sub(n.CreatedAt) <= HeadFreshness
	})
}
