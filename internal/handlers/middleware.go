package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/security"
	"familyaid/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey    ContextKey = "user"
	SessionContextKey ContextKey = "session"
	bearerContextKey  ContextKey = "bearer"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	limiter     *security.RateLimiter
	logger      logging.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, limiter *security.RateLimiter, logger logging.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		limiter:     limiter,
		logger:      logger,
	}
}

// RequireAuth requires a valid session, given either as a bearer token or
// as the session cookie.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			session *models.Session
			user    *models.User
			err     error
			bearer  bool
		)

		if token, ok := bearerToken(r); ok {
			bearer = true
			session, user, err = m.authService.ValidateToken(r.Context(), token)
		} else {
			cookie, cerr := r.Cookie(security.SessionCookieName)
			if cerr != nil {
				respondJSON(w, http.StatusUnauthorized, errorBody{Error: msgUnauthorized})
				return
			}
			session, user, err = m.authService.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				http.SetCookie(w, security.CreateDeleteCookie(r))
			}
		}

		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionExpired) {
				respondJSON(w, http.StatusUnauthorized, errorBody{Error: msgUnauthorized})
				return
			}
			respondWithError(w, m.logger, http.StatusInternalServerError, msgLoadFailure, "Error validating session", err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, SessionContextKey, session)
		ctx = context.WithValue(ctx, bearerContextKey, bearer)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// RequireRole requires an authenticated user with one of roles.
// It must run inside RequireAuth.
func (m *Middleware) RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				respondJSON(w, http.StatusUnauthorized, errorBody{Error: msgUnauthorized})
				return
			}
			if !slices.Contains(roles, user.Role) {
				respondJSON(w, http.StatusForbidden, errorBody{Error: msgForbidden})
				return
			}
			next(w, r)
		}
	}
}

// RequireAdmin allows admins and root
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(m.RequireRole(models.RoleAdmin, models.RoleRoot)(next))
}

// RequireRoot allows root only
func (m *Middleware) RequireRoot(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(m.RequireRole(models.RoleRoot)(next))
}

// RequireHead allows family heads and dual-role admins
func (m *Middleware) RequireHead(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if !user.HasHeadAccess() {
			respondJSON(w, http.StatusForbidden, errorBody{Error: msgForbidden})
			return
		}
		next(w, r)
	})
}

// CSRFProtect checks the CSRF header on unsafe methods for cookie sessions.
// Bearer requests carry no ambient credentials and skip the check.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bearer, _ := r.Context().Value(bearerContextKey).(bool); bearer {
			next(w, r)
			return
		}
		session := GetSessionFromContext(r.Context())
		if session == nil || !m.csrf.ValidateRequest(r, session.ID) {
			respondJSON(w, http.StatusForbidden, errorBody{Error: msgInvalidCSRF})
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the configured request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			m.logger.Warn("rate limit exceeded for " + ip)
			respondJSON(w, http.StatusTooManyRequests, errorBody{Error: msgTooManyRequests})
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs method, path, status and duration of every request
func Logging(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info(fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start)))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionFromContext retrieves the session from the request context
func GetSessionFromContext(ctx context.Context) *models.Session {
	session, ok := ctx.Value(SessionContextKey).(*models.Session)
	if !ok {
		return nil
	}
	return session
}
