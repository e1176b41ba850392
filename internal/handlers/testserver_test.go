package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"familyaid/internal/database"
	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/repository"
	"familyaid/internal/security"
	"familyaid/internal/service"
)

const (
	migrationsPath = "../../migrations"
	rootPassword   = "RootPass1"
)

type testServer struct {
	*httptest.Server
	auth  *service.AuthService
	users *service.UserService
	csrf  *security.CSRFGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(ctx, migrationsPath))

	logger := logging.New(log.New(io.Discard, "", 0), logging.Options{})
	validator, err := forms.New()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activity := service.NewActivityService(activityRepo, logger)
	settings := service.NewSettingsService(settingsRepo, validator, activity)
	require.NoError(t, settings.Load(ctx))
	mailer, err := service.NewEmailService(ctx, "", "", "", logger)
	require.NoError(t, err)

	tokens := security.NewTokenIssuer("test-secret")
	csrf := security.NewCSRFGenerator("test-secret")
	limiter := security.NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Close)

	authService := service.NewAuthService(userRepo, sessionRepo, settings, validator, tokens, time.Hour)
	userService := service.NewUserService(userRepo, settings, validator, activity)
	familyService := service.NewFamilyService(familyRepo, memberRepo, settings, validator, activity)
	requestService := service.NewRequestService(requestRepo, familyRepo, settings, validator, activity)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, mailer, settings, validator, activity, logger)

	_, err = authService.BootstrapRoot(ctx, "root", rootPassword)
	require.NoError(t, err)

	mw := NewMiddleware(authService, csrf, limiter, logger)
	authHandler := NewAuthHandler(authService, familyService, settings, csrf, logger)
	headHandler := NewHeadHandler(familyService, requestService, notificationService, logger)
	adminHandler := NewAdminHandler(AdminServices{
		Families:      familyService,
		Requests:      requestService,
		Notifications: notificationService,
		Users:         userService,
		Settings:      settings,
		Stats:         service.NewStatsService(familyRepo, requestRepo, userRepo),
		Export:        service.NewExportService(userRepo, familyRepo, memberRepo, requestRepo, notificationRepo),
		Activity:      activity,
	}, logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, mw, authHandler, headHandler, adminHandler)

	srv := httptest.NewServer(Logging(logger, mux))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, auth: authService, users: userService, csrf: csrf}
}

// do sends a JSON request, authenticating with token when it is not empty
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// login signs in and returns the bearer token
func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/login", "", forms.LoginForm{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[LoginResponse](t, resp).Token
}

// createUser adds an account as root and returns its bearer token
func (s *testServer) createUser(t *testing.T, username, role string, dualRole bool) string {
	t.Helper()
	root := &models.User{ID: 1, Username: "root", Role: models.RoleRoot}
	_, err := s.users.Create(context.Background(), root, forms.UserForm{
		Username: username,
		Password: "Secret123",
		Role:     role,
		DualRole: dualRole,
	})
	require.NoError(t, err)
	return s.login(t, username, "Secret123")
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
