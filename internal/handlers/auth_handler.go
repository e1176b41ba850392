package handlers

import (
	"errors"
	"net/http"
	"time"

	"familyaid/internal/domain"
	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/security"
	"familyaid/internal/service"
	"familyaid/internal/shell"
)

// AuthHandler handles authentication and account endpoints
type AuthHandler struct {
	authService     *service.AuthService
	familyService   *service.FamilyService
	settingsService *service.SettingsService
	csrf            *security.CSRFGenerator
	logger          logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, familyService *service.FamilyService, settingsService *service.SettingsService, csrf *security.CSRFGenerator, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		familyService:   familyService,
		settingsService: settingsService,
		csrf:            csrf,
		logger:          logger,
	}
}

func userView(u *models.User) UserView {
	return UserView{User: *u, RoleLabel: domain.RoleLabel(u.Role)}
}

// Login authenticates credentials, sets the session cookie and returns a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form forms.LoginForm
	if !decodeJSON(w, r, &form) {
		return
	}

	session, user, err := h.authService.Login(r.Context(), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}

	token, err := h.authService.IssueToken(session, user)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error issuing token", err)
		return
	}
	csrfToken, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error generating CSRF token", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		CSRFToken: csrfToken,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		HomeRoute: shell.Effective(user, session.Dashboard).HomeRoute,
		User:      userView(user),
		Dashboard: session.Dashboard,
	})
}

// Register creates a family head account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form forms.RegisterForm
	if !decodeJSON(w, r, &form) {
		return
	}

	user, err := h.authService.Register(r.Context(), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, userView(user))
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if err := h.authService.Logout(r.Context(), session.ID); err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgSaveFailure, "Error logging out", err)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r))
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user with the shell for the current dashboard
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	session := GetSessionFromContext(r.Context())

	resp := MeResponse{
		User:       userView(user),
		Dashboard:  session.Dashboard,
		CanSwitch:  shell.CanSwitch(user),
		Capability: shell.Effective(user, session.Dashboard),
	}

	family, err := h.familyService.OwnFamily(r.Context(), user)
	switch {
	case err == nil:
		view := newFamilyView(*family)
		resp.Family = &view
	case !errors.Is(err, service.ErrFamilyNotFound):
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error loading family", err)
		return
	}

	if token, err := h.csrf.GenerateToken(session.ID); err == nil {
		resp.CSRFToken = token
	}
	respondJSON(w, http.StatusOK, resp)
}

// SwitchDashboard toggles a dual-role user between dashboards
func (h *AuthHandler) SwitchDashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	session := GetSessionFromContext(r.Context())

	dashboard, route, err := h.authService.SwitchDashboard(r.Context(), session, user)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"dashboard":  dashboard,
		"homeRoute":  route,
		"capability": shell.Effective(user, dashboard),
	})
}

// PublicSettings returns the site branding and password policy
func (h *AuthHandler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	s := h.settingsService.Get()
	respondJSON(w, http.StatusOK, PublicSettings{
		SiteTitle:      s.SiteTitle,
		SiteName:       s.SiteName,
		SiteLogo:       s.SiteLogo,
		Language:       s.Language,
		PasswordPolicy: h.settingsService.PasswordPolicy(),
	})
}

// Health reports that the server is up
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
