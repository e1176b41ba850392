package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"familyaid/internal/forms"
	"familyaid/internal/models"
	"familyaid/internal/security"
	"familyaid/internal/shell"
)

// AuthService handles authentication business logic
type AuthService struct {
	users           UserStore
	sessions        SessionStore
	settings        *SettingsService
	validator       *forms.Validator
	tokens          *security.TokenIssuer
	sessionDuration time.Duration
	now             func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, sessions SessionStore, settings *SettingsService, validator *forms.Validator, tokens *security.TokenIssuer, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		settings:        settings,
		validator:       validator,
		tokens:          tokens,
		sessionDuration: sessionDuration,
		now:             time.Now,
	}
}

// Register creates a family head account
func (s *AuthService) Register(ctx context.Context, form forms.RegisterForm) (*models.User, error) {
	user, err := s.validator.SubmitRegister(form, s.settings.PasswordPolicy(), s.settings.Language())
	if err != nil {
		return nil, err
	}
	if err := createAccount(ctx, s.users, &user, form.Password); err != nil {
		return nil, err
	}
	return &user, nil
}

// createAccount checks the username is free, hashes the password and stores the user
func createAccount(ctx context.Context, users UserStore, user *models.User, password string) error {
	existing, err := users.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login authenticates a user and creates a session on the user's default dashboard
func (s *AuthService) Login(ctx context.Context, form forms.LoginForm) (*models.Session, *models.User, error) {
	form, err := s.validator.SubmitLogin(form, s.settings.Language())
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, form.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(user.PasswordHash, form.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	now := s.now()
	session := &models.Session{
		ID:        security.GenerateSessionID(),
		UserID:    user.ID,
		Dashboard: shell.DefaultDashboard(user),
		ExpiresAt: now.Add(s.sessionDuration),
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, user, nil
}

// IssueToken signs a bearer token bound to the session
func (s *AuthService) IssueToken(session *models.Session, user *models.User) (string, error) {
	return s.tokens.Issue(session.ID, user.ID, user.Role, session.ExpiresAt)
}

// ValidateSession checks if a session is valid and returns it with its user
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*models.Session, *models.User, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteSession(ctx, sessionID)
		return nil, nil, ErrSessionExpired
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrSessionNotFound
	}
	return session, user, nil
}

// ValidateToken verifies a bearer token and then the session it names
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.Session, *models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, security.ErrInvalidToken) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	return s.ValidateSession(ctx, claims.SessionID)
}

// Logout deletes a session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SwitchDashboard toggles a dual-role user between the admin and head
// dashboards and returns the new dashboard and its home route.
func (s *AuthService) SwitchDashboard(ctx context.Context, session *models.Session, user *models.User) (string, string, error) {
	dashboard, route, err := shell.Switch(user, session.Dashboard)
	if err != nil {
		return "", "", err
	}
	if err := s.sessions.UpdateDashboard(ctx, session.ID, dashboard); err != nil {
		return "", "", fmt.Errorf("failed to switch dashboard: %w", err)
	}
	session.Dashboard = dashboard
	return dashboard, route, nil
}

// BootstrapRoot creates the root account when none exists yet.
// It reports whether an account was created.
func (s *AuthService) BootstrapRoot(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	count, err := s.users.CountUsersByRole(ctx, models.RoleRoot)
	if err != nil {
		return false, fmt.Errorf("failed to count root users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	root := &models.User{Username: username, Role: models.RoleRoot}
	if err := createAccount(ctx, s.users, root, password); err != nil {
		return false, err
	}
	return true, nil
}

// CleanupExpiredSessions removes all expired sessions
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}
