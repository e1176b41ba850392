package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/security"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory implementation of every store interface
type memStore struct {
	calls int
	fail  error

	nextID        int64
	users         map[int64]*models.User
	sessions      map[string]*models.Session
	families      map[int64]*models.Family
	members       map[int64]*models.Member
	requests      map[int64]*models.Request
	notifications []models.Notification
	settings      map[string]string
	activity      []models.Activity
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*models.User{},
		sessions: map[string]*models.Session{},
		families: map[int64]*models.Family{},
		members:  map[int64]*models.Member{},
		requests: map[int64]*models.Request{},
		settings: map[string]string{},
	}
}

func (m *memStore) touch() error {
	m.calls++
	return m.fail
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := m.touch(); err != nil {
		return err
	}
	u.ID = m.id()
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CountUsersByRole(ctx context.Context, role string) (int, error) {
	if err := m.touch(); err != nil {
		return 0, err
	}
	n := 0
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateSession(ctx context.Context, s *models.Session) error {
	if err := m.touch(); err != nil {
		return err
	}
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) UpdateDashboard(ctx context.Context, id, dashboard string) error {
	if err := m.touch(); err != nil {
		return err
	}
	if s, ok := m.sessions[id]; ok {
		s.Dashboard = dashboard
	}
	return nil
}

func (m *memStore) DeleteSession(ctx context.Context, id string) error {
	if err := m.touch(); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	if err := m.touch(); err != nil {
		return 0, err
	}
	var n int64
	for id, s := range m.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateFamily(ctx context.Context, f *models.Family) error {
	if err := m.touch(); err != nil {
		return err
	}
	f.ID = m.id()
	if f.Status == "" {
		f.Status = models.FamilyActive
	}
	f.CreatedAt = time.Now()
	cp := *f
	m.families[f.ID] = &cp
	return nil
}

func (m *memStore) GetFamilyByID(ctx context.Context, id int64) (*models.Family, error) {
	return m.findFamily(func(f *models.Family) bool { return f.ID == id })
}

func (m *memStore) GetFamilyByUserID(ctx context.Context, userID int64) (*models.Family, error) {
	return m.findFamily(func(f *models.Family) bool { return f.UserID != nil && *f.UserID == userID })
}

func (m *memStore) GetFamilyByHusbandID(ctx context.Context, husbandID string) (*models.Family, error) {
	return m.findFamily(func(f *models.Family) bool { return f.HusbandID == husbandID })
}

func (m *memStore) findFamily(match func(*models.Family) bool) (*models.Family, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	for _, f := range m.families {
		if match(f) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListFamilies(ctx context.Context) ([]models.Family, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	out := make([]models.Family, 0, len(m.families))
	for _, f := range m.families {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) UpdateFamily(ctx context.Context, f *models.Family) error {
	if err := m.touch(); err != nil {
		return err
	}
	cp := *f
	m.families[f.ID] = &cp
	return nil
}

func (m *memStore) SetFamilyStatus(ctx context.Context, id int64, status string) error {
	if err := m.touch(); err != nil {
		return err
	}
	if f, ok := m.families[id]; ok {
		f.Status = status
	}
	return nil
}

func (m *memStore) CreateMember(ctx context.Context, mem *models.Member) error {
	if err := m.touch(); err != nil {
		return err
	}
	mem.ID = m.id()
	cp := *mem
	m.members[mem.ID] = &cp
	return nil
}

func (m *memStore) GetMemberByID(ctx context.Context, id int64) (*models.Member, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	mem, ok := m.members[id]
	if !ok {
		return nil, nil
	}
	cp := *mem
	return &cp, nil
}

func (m *memStore) ListFamilyMembers(ctx context.Context, familyID int64) ([]models.Member, error) {
	all, err := m.ListAllMembers(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Member{}
	for _, mem := range all {
		if mem.FamilyID == familyID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *memStore) ListAllMembers(ctx context.Context) ([]models.Member, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	out := make([]models.Member, 0, len(m.members))
	for _, mem := range m.members {
		out = append(out, *mem)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateMember(ctx context.Context, mem *models.Member) error {
	if err := m.touch(); err != nil {
		return err
	}
	cp := *mem
	m.members[mem.ID] = &cp
	return nil
}

func (m *memStore) DeleteMember(ctx context.Context, id int64) error {
	if err := m.touch(); err != nil {
		return err
	}
	delete(m.members, id)
	return nil
}

func (m *memStore) CreateRequest(ctx context.Context, r *models.Request) error {
	if err := m.touch(); err != nil {
		return err
	}
	r.ID = m.id()
	r.CreatedAt = time.Now()
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *memStore) GetRequestByID(ctx context.Context, id int64) (*models.Request, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ListFamilyRequests(ctx context.Context, familyID int64) ([]models.Request, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	out := []models.Request{}
	for _, r := range m.requests {
		if r.FamilyID == familyID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) ListRequestsWithFamily(ctx context.Context) ([]models.RequestWithFamily, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	out := []models.RequestWithFamily{}
	for _, r := range m.requests {
		f, ok := m.families[r.FamilyID]
		if !ok {
			continue
		}
		out = append(out, models.RequestWithFamily{Request: *r, HusbandName: f.HusbandName, HusbandID: f.HusbandID})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) ReviewRequest(ctx context.Context, id int64, status, comment string) error {
	if err := m.touch(); err != nil {
		return err
	}
	if r, ok := m.requests[id]; ok {
		r.Status = status
		r.AdminComment = comment
	}
	return nil
}

func (m *memStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := m.touch(); err != nil {
		return err
	}
	n.ID = m.id()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications = append([]models.Notification{*n}, m.notifications...)
	return nil
}

func (m *memStore) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	return append([]models.Notification(nil), m.notifications...), nil
}

func (m *memStore) GetAllSettings(ctx context.Context) (map[string]string, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(m.settings))
	for k, v := range m.settings {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SetSettings(ctx context.Context, values map[string]string) error {
	if err := m.touch(); err != nil {
		return err
	}
	for k, v := range values {
		m.settings[k] = v
	}
	return nil
}

func (m *memStore) DeleteSetting(ctx context.Context, key string) error {
	if err := m.touch(); err != nil {
		return err
	}
	delete(m.settings, key)
	return nil
}

func (m *memStore) LogActivity(ctx context.Context, a *models.Activity) error {
	if err := m.touch(); err != nil {
		return err
	}
	a.ID = m.id()
	m.activity = append([]models.Activity{*a}, m.activity...)
	return nil
}

func (m *memStore) ListActivity(ctx context.Context, limit int) ([]models.Activity, error) {
	if err := m.touch(); err != nil {
		return nil, err
	}
	if limit < len(m.activity) {
		return m.activity[:limit], nil
	}
	return m.activity, nil
}

type sentEmail struct {
	to, title string
}

type fakeMailer struct {
	enabled bool
	sent    []sentEmail
}

func (f *fakeMailer) IsEnabled() bool { return f.enabled }

func (f *fakeMailer) SendNotificationEmail(ctx context.Context, toEmail, toName, title, message string) error {
	f.sent = append(f.sent, sentEmail{to: toEmail, title: title})
	return nil
}

// testEnv wires every service to one memStore
type testEnv struct {
	store         *memStore
	mailer        *fakeMailer
	settings      *SettingsService
	activity      *ActivityService
	auth          *AuthService
	users         *UserService
	families      *FamilyService
	requests      *RequestService
	notifications *NotificationService
	stats         *StatsService
	export        *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	v, err := forms.New()
	require.NoError(t, err)

	store := newMemStore()
	mailer := &fakeMailer{enabled: true}
	logger := logging.New(log.New(io.Discard, "", 0), logging.Options{})
	activity := NewActivityService(store, logger)
	settings := NewSettingsService(store, v, activity)

	return &testEnv{
		store:         store,
		mailer:        mailer,
		settings:      settings,
		activity:      activity,
		auth:          NewAuthService(store, store, settings, v, security.NewTokenIssuer("test-secret"), time.Hour),
		users:         NewUserService(store, settings, v, activity),
		families:      NewFamilyService(store, store, settings, v, activity),
		requests:      NewRequestService(store, store, settings, v, activity),
		notifications: NewNotificationService(store, store, mailer, settings, v, activity, logger),
		stats:         NewStatsService(store, store, store),
		export:        NewExportService(store, store, store, store, store),
	}
}

// seedUser stores a user directly, bypassing validation
func (e *testEnv) seedUser(t *testing.T, username, role, email string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Role: role, Email: email}
	hash, err := security.HashPassword("Secret123")
	require.NoError(t, err)
	u.PasswordHash = hash
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	return u
}

func validFamilyForm() forms.FamilyForm {
	return forms.FamilyForm{
		HusbandName:       "Ahmad Saleh",
		HusbandID:         "123456789",
		HusbandBirthDate:  "1985-04-12",
		PrimaryPhone:      "0599123456",
		OriginalResidence: "Gaza",
		HousingStatus:     "rented",
		Branch:            "alnogra",
		SocialStatus:      "married",
		TotalMembers:      5,
		MaleCount:         2,
		FemaleCount:       3,
	}
}
