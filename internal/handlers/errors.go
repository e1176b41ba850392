package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"familyaid/internal/forms"
	"familyaid/internal/logging"
	"familyaid/internal/service"
	"familyaid/internal/shell"
)

type errorBody struct {
	Error string `json:"error"`
}

type fieldErrorsBody struct {
	Errors forms.FieldErrors `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func respondWithError(w http.ResponseWriter, logger logging.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Error(logMsg, err)
	}
	respondJSON(w, status, errorBody{Error: userMsg})
}

// known maps service sentinel errors to a status and message. They are
// expected outcomes and are not logged.
var known = []struct {
	err    error
	status int
	msg    string
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCredentials},
	{service.ErrSessionNotFound, http.StatusUnauthorized, msgUnauthorized},
	{service.ErrSessionExpired, http.StatusUnauthorized, msgUnauthorized},
	{service.ErrForbidden, http.StatusForbidden, msgForbidden},
	{service.ErrUsernameTaken, http.StatusConflict, msgUsernameTaken},
	{service.ErrFamilyExists, http.StatusConflict, msgFamilyExists},
	{service.ErrFamilyNotFound, http.StatusNotFound, msgFamilyNotFound},
	{service.ErrMemberNotFound, http.StatusNotFound, msgNotFound},
	{service.ErrRequestNotFound, http.StatusNotFound, msgNotFound},
	{service.ErrFamilyInactive, http.StatusForbidden, msgFamilyInactive},
	{service.ErrInvalidStatus, http.StatusBadRequest, msgInvalidStatus},
	{shell.ErrSwitchNotAllowed, http.StatusForbidden, msgSwitchNotAllowed},
}

// respondServiceError writes FieldErrors as 422, known sentinels with their
// status, and anything else as a logged 500 with fallbackMsg.
func respondServiceError(w http.ResponseWriter, logger logging.Logger, err error, fallbackMsg string) {
	var fieldErrs forms.FieldErrors
	if errors.As(err, &fieldErrs) {
		respondJSON(w, http.StatusUnprocessableEntity, fieldErrorsBody{Errors: fieldErrs})
		return
	}
	for _, k := range known {
		if errors.Is(err, k.err) {
			respondJSON(w, k.status, errorBody{Error: k.msg})
			return
		}
	}
	respondWithError(w, logger, http.StatusInternalServerError, fallbackMsg, "", err)
}

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidData})
		return false
	}
	return true
}
