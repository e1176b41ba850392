package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"familyaid/internal/domain"
	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/service"
	"familyaid/internal/views"
)

// AdminHandler serves the admin and root dashboards
type AdminHandler struct {
	familyService       *service.FamilyService
	requestService      *service.RequestService
	notificationService *service.NotificationService
	userService         *service.UserService
	settingsService     *service.SettingsService
	statsService        *service.StatsService
	exportService       *service.ExportService
	activityService     *service.ActivityService
	logger              logging.Logger
}

// AdminServices groups the services used by AdminHandler
type AdminServices struct {
	Families      *service.FamilyService
	Requests      *service.RequestService
	Notifications *service.NotificationService
	Users         *service.UserService
	Settings      *service.SettingsService
	Stats         *service.StatsService
	Export        *service.ExportService
	Activity      *service.ActivityService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(s AdminServices, logger logging.Logger) *AdminHandler {
	return &AdminHandler{
		familyService:       s.Families,
		requestService:      s.Requests,
		notificationService: s.Notifications,
		userService:         s.Users,
		settingsService:     s.Settings,
		statsService:        s.Stats,
		exportService:       s.Export,
		activityService:     s.Activity,
		logger:              logger,
	}
}

// dateBounds reads date_from and date_to, writing a 400 when malformed
func dateBounds(w http.ResponseWriter, r *http.Request) (views.DateBounds, bool) {
	q := r.URL.Query()
	bounds, err := views.ParseDateBounds(q.Get("date_from"), q.Get("date_to"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidDate})
		return views.DateBounds{}, false
	}
	return bounds, true
}

// listPage resolves the requested page. The page is reset to 1 when the
// filters differ from filters_key, the key the client paged with.
func listPage(r *http.Request, filters map[string]string) int {
	q := r.URL.Query()
	return views.ResolvePage(q.Get("page"), q.Get("filters_key"), filters).Page
}

// ListFamilies returns one filtered page of families
func (h *AdminHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	bounds, ok := dateBounds(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filters := views.FamilyFilters{
		Query:        q.Get("q"),
		Branch:       q.Get("branch"),
		SocialStatus: q.Get("social_status"),
		Status:       q.Get("status"),
		Dates:        bounds,
	}

	page, err := h.familyService.List(r.Context(), filters, listPage(r, filters.Values()), views.DefaultPageSize)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error listing families", err)
		return
	}
	respondJSON(w, http.StatusOK, mapPage(page, newFamilyView))
}

// GetFamily returns a family with its members
func (h *AdminHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	family, err := h.familyService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}
	respondJSON(w, http.StatusOK, FamilyDetail{Family: newFamilyView(family.Family), Members: newMemberViews(family.Members)})
}

// UpdateFamily edits any family
func (h *AdminHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form forms.FamilyForm
	if !decodeJSON(w, r, &form) {
		return
	}
	family, err := h.familyService.Update(r.Context(), GetUserFromContext(r.Context()), id, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, newFamilyView(*family))
}

// SetFamilyStatus activates or deactivates a family
func (h *AdminHandler) SetFamilyStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.familyService.SetStatus(r.Context(), GetUserFromContext(r.Context()), id, body.Status); err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// AddMember adds a member to any family
func (h *AdminHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form forms.MemberForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if _, err := h.familyService.Get(r.Context(), familyID); err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}
	member, err := h.familyService.AddMember(r.Context(), GetUserFromContext(r.Context()), familyID, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, newMemberView(*member))
}

// UpdateMember edits a member of any family
func (h *AdminHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	var form forms.MemberForm
	if !decodeJSON(w, r, &form) {
		return
	}
	member, err := h.familyService.UpdateMember(r.Context(), GetUserFromContext(r.Context()), familyID, memberID, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, newMemberView(*member))
}

// DeleteMember removes a member of any family
func (h *AdminHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	familyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	if err := h.familyService.DeleteMember(r.Context(), GetUserFromContext(r.Context()), familyID, memberID); err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRequests returns one filtered page of requests
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	bounds, ok := dateBounds(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filters := views.RequestFilters{
		Query:  q.Get("q"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Dates:  bounds,
	}

	page, err := h.requestService.List(r.Context(), filters, listPage(r, filters.Values()), views.DefaultPageSize)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error listing requests", err)
		return
	}
	respondJSON(w, http.StatusOK, mapPage(page, newRequestView))
}

// ReviewRequest approves or rejects a request
func (h *AdminHandler) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form forms.ReviewForm
	if !decodeJSON(w, r, &form) {
		return
	}
	req, err := h.requestService.Review(r.Context(), GetUserFromContext(r.Context()), id, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, newRequestView(models.RequestWithFamily{Request: *req}))
}

// ListNotifications returns every notification
func (h *AdminHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.notificationService.List(r.Context())
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error listing notifications", err)
		return
	}
	respondJSON(w, http.StatusOK, newNotificationViews(list))
}

// SendNotification creates a notification
func (h *AdminHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var form forms.NotificationForm
	if !decodeJSON(w, r, &form) {
		return
	}
	n, err := h.notificationService.Send(r.Context(), GetUserFromContext(r.Context()), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, newNotificationViews([]models.Notification{*n})[0])
}

// ListUsers returns one filtered page of users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := views.UserFilters{Query: q.Get("q"), Role: q.Get("role")}

	page, err := h.userService.List(r.Context(), filters, listPage(r, filters.Values()), views.DefaultPageSize)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error listing users", err)
		return
	}
	respondJSON(w, http.StatusOK, mapPage(page, func(u models.User) UserView {
		return UserView{User: u, RoleLabel: domain.RoleLabel(u.Role)}
	}))
}

// CreateUser creates an admin or head account
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form forms.UserForm
	if !decodeJSON(w, r, &form) {
		return
	}
	user, err := h.userService.Create(r.Context(), GetUserFromContext(r.Context()), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, userView(user))
}

// Stats returns the dashboard summary for an optional date range
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	bounds, ok := dateBounds(w, r)
	if !ok {
		return
	}
	stats, err := h.statsService.Summary(r.Context(), bounds)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error building stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Export streams a JSON export of the portal data as a download
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	data, err := h.exportService.Collect(r.Context())
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error exporting data", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=familyaid_export_%s.json", timestamp))
	respondJSON(w, http.StatusOK, data)

	h.activityService.Record(r.Context(), user, service.ActionExport, "export", 0, "")
	h.logger.Info("Data exported by " + user.Username)
}

// GetSettings returns the full site settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"settings":       h.settingsService.Get(),
		"passwordPolicy": h.settingsService.PasswordPolicy(),
	})
}

// UpdateSettings saves the site settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var form forms.SettingsForm
	if !decodeJSON(w, r, &form) {
		return
	}
	settings, err := h.settingsService.Save(r.Context(), GetUserFromContext(r.Context()), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Activity returns the most recent activity log entries
func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.activityService.List(r.Context(), limit)
	if err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, msgLoadFailure, "Error listing activity", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
