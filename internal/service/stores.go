package service

import (
	"context"

	"familyaid/internal/models"
)

// The store interfaces below are implemented by the repository package.

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateDashboard(ctx context.Context, id, dashboard string) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type FamilyStore interface {
	CreateFamily(ctx context.Context, f *models.Family) error
	GetFamilyByID(ctx context.Context, id int64) (*models.Family, error)
	GetFamilyByUserID(ctx context.Context, userID int64) (*models.Family, error)
	GetFamilyByHusbandID(ctx context.Context, husbandID string) (*models.Family, error)
	ListFamilies(ctx context.Context) ([]models.Family, error)
	UpdateFamily(ctx context.Context, f *models.Family) error
	SetFamilyStatus(ctx context.Context, id int64, status string) error
}

type MemberStore interface {
	CreateMember(ctx context.Context, m *models.Member) error
	GetMemberByID(ctx context.Context, id int64) (*models.Member, error)
	ListFamilyMembers(ctx context.Context, familyID int64) ([]models.Member, error)
	ListAllMembers(ctx context.Context) ([]models.Member, error)
	UpdateMember(ctx context.Context, m *models.Member) error
	DeleteMember(ctx context.Context, id int64) error
}

type RequestStore interface {
	CreateRequest(ctx context.Context, r *models.Request) error
	GetRequestByID(ctx context.Context, id int64) (*models.Request, error)
	ListFamilyRequests(ctx context.Context, familyID int64) ([]models.Request, error)
	ListRequestsWithFamily(ctx context.Context) ([]models.RequestWithFamily, error)
	ReviewRequest(ctx context.Context, id int64, status, comment string) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context) ([]models.Notification, error)
}

type SettingsStore interface {
	GetAllSettings(ctx context.Context) (map[string]string, error)
	SetSettings(ctx context.Context, values map[string]string) error
	DeleteSetting(ctx context.Context, key string) error
}

type ActivityStore interface {
	LogActivity(ctx context.Context, a *models.Activity) error
	ListActivity(ctx context.Context, limit int) ([]models.Activity, error)
}

// Mailer sends notification emails
type Mailer interface {
	IsEnabled() bool
	SendNotificationEmail(ctx context.Context, toEmail, toName, title, message string) error
}
