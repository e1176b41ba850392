package handlers

import (
	"net/http"
	"strconv"

	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/models"
	"familyaid/internal/service"
	"familyaid/internal/views"
)

// HeadHandler serves the family head dashboard
type HeadHandler struct {
	familyService       *service.FamilyService
	requestService      *service.RequestService
	notificationService *service.NotificationService
	logger              logging.Logger
}

// NewHeadHandler creates a new head handler
func NewHeadHandler(familyService *service.FamilyService, requestService *service.RequestService, notificationService *service.NotificationService, logger logging.Logger) *HeadHandler {
	return &HeadHandler{
		familyService:       familyService,
		requestService:      requestService,
		notificationService: notificationService,
		logger:              logger,
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidData})
		return 0, false
	}
	return id, true
}

// ownFamily loads the family of the signed-in head, writing the error response on failure
func (h *HeadHandler) ownFamily(w http.ResponseWriter, r *http.Request) (*models.Family, bool) {
	family, err := h.familyService.OwnFamily(r.Context(), GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return nil, false
	}
	return family, true
}

// GetFamily returns the head's family with its members
func (h *HeadHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	family, ok := h.ownFamily(w, r)
	if !ok {
		return
	}
	members, err := h.familyService.ListMembers(r.Context(), family.ID)
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}
	respondJSON(w, http.StatusOK, FamilyDetail{Family: newFamilyView(*family), Members: newMemberViews(members)})
}

// CreateFamily registers the head's family
func (h *HeadHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var form forms.FamilyForm
	if !decodeJSON(w, r, &form) {
		return
	}
	family, err := h.familyService.Register(r.Context(), GetUserFromContext(r.Context()), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, newFamilyView(*family))
}

// UpdateFamily edits the head's family
func (h *HeadHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	var form forms.FamilyForm
	if !decodeJSON(w, r, &form) {
		return
	}
	family, ok := h.ownFamily(w, r)
	if !ok {
		return
	}
	updated, err := h.familyService.Update(r.Context(), GetUserFromContext(r.Context()), family.ID, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, newFamilyView(*updated))
}

// ListMembers returns the members of the head's family
func (h *HeadHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	family, ok := h.ownFamily(w, r)
	if !ok {
		return
	}
	members, err := h.familyService.ListMembers(r.Context(), family.ID)
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}
	respondJSON(w, http.StatusOK, newMemberViews(members))
}

// AddMember adds a member to the head's family
func (h *HeadHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var form forms.MemberForm
	if !decodeJSON(w, r, &form) {
		return
	}
	family, ok := h.ownFamily(w, r)
	if !ok {
		return
	}
	member, err := h.familyService.AddMember(r.Context(), GetUserFromContext(r.Context()), family.ID, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, newMemberView(*member))
}

// UpdateMember edits a member of the head's family
func (h *HeadHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form forms.MemberForm
	if !decodeJSON(w, r, &form) {
		return
	}
	family, ok := h.ownFamily(w, r)
	if !ok {
		return
	}
	member, err := h.familyService.UpdateMember(r.Context(), GetUserFromContext(r.Context()), family.ID, memberID, form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusOK, newMemberView(*member))
}

// DeleteMember removes a member of the head's family
func (h *HeadHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	family, ok := h.ownFamily(w, r)
	if !ok {
		return
	}
	if err := h.familyService.DeleteMember(r.Context(), GetUserFromContext(r.Context()), family.ID, memberID); err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRequests returns the requests of the head's family
func (h *HeadHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListOwn(r.Context(), GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}
	out := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		out = append(out, newRequestView(models.RequestWithFamily{Request: req}))
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateRequest submits an aid request
func (h *HeadHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var form forms.RequestForm
	if !decodeJSON(w, r, &form) {
		return
	}
	req, err := h.requestService.Submit(r.Context(), GetUserFromContext(r.Context()), form)
	if err != nil {
		respondServiceError(w, h.logger, err, msgSaveFailure)
		return
	}
	respondJSON(w, http.StatusCreated, newRequestView(models.RequestWithFamily{Request: *req}))
}

// Notifications returns the recent notifications addressed to the head
func (h *HeadHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	viewer := views.Viewer{UserID: user.ID, Role: models.RoleHead}

	list, err := h.notificationService.ForHead(r.Context(), viewer)
	if err != nil {
		respondServiceError(w, h.logger, err, msgLoadFailure)
		return
	}
	respondJSON(w, http.StatusOK, newNotificationViews(list))
}
