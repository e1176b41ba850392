package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"familyaid/internal/models"
)

// ExportVersion is the format version written into every export
const ExportVersion = "1.0"

// ExportData is the complete JSON export of the portal records.
// Password hashes are never exported.
type ExportData struct {
	Version       string                `json:"version"`
	ExportedAt    time.Time             `json:"exported_at"`
	Users         []models.User         `json:"users"`
	Families      []models.Family       `json:"families"`
	Members       []models.Member       `json:"members"`
	Requests      []models.Request      `json:"requests"`
	Notifications []models.Notification `json:"notifications"`
}

// ExportService writes JSON exports of the portal data
type ExportService struct {
	users         UserStore
	families      FamilyStore
	members       MemberStore
	requests      RequestStore
	notifications NotificationStore
	now           func() time.Time
}

// NewExportService creates a new export service
func NewExportService(users UserStore, families FamilyStore, members MemberStore, requests RequestStore, notifications NotificationStore) *ExportService {
	return &ExportService{
		users:         users,
		families:      families,
		members:       members,
		requests:      requests,
		notifications: notifications,
		now:           time.Now,
	}
}

// Collect gathers every exported record
func (s *ExportService) Collect(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: s.now().UTC(),
	}

	var err error
	if data.Users, err = s.users.ListUsers(ctx); err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	if data.Families, err = s.families.ListFamilies(ctx); err != nil {
		return nil, fmt.Errorf("failed to export families: %w", err)
	}
	if data.Members, err = s.members.ListAllMembers(ctx); err != nil {
		return nil, fmt.Errorf("failed to export members: %w", err)
	}

	joined, err := s.requests.ListRequestsWithFamily(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export requests: %w", err)
	}
	data.Requests = make([]models.Request, 0, len(joined))
	for _, r := range joined {
		data.Requests = append(data.Requests, r.Request)
	}

	if data.Notifications, err = s.notifications.ListNotifications(ctx); err != nil {
		return nil, fmt.Errorf("failed to export notifications: %w", err)
	}
	return data, nil
}

// ExportToWriter writes an indented JSON export to w
func (s *ExportService) ExportToWriter(ctx context.Context, w io.Writer) (*ExportData, error) {
	data, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}
