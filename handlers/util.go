package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/takdanai-ph/taskboard/domain"
)

// writeErrorResp maps domain errors onto status codes. Anything unknown is a
// 500 and gets logged; the message itself is passed through verbatim.
func writeErrorResp(err error, w http.ResponseWriter) {
	if err == nil {
		return
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials()),
		errors.Is(err, domain.ErrInvalidToken()),
		errors.Is(err, domain.ErrUnauthorized()):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden()):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound()),
		errors.Is(err, domain.ErrTaskNotFound()),
		errors.Is(err, domain.ErrTeamNotFound()),
		errors.Is(err, domain.ErrNotificationNotFound()):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUserAlreadyExists()),
		errors.Is(err, domain.ErrTeamAlreadyExists()),
		errors.Is(err, domain.ErrInvalidTransition()):
		status = http.StatusConflict
	case domain.IsValidation(err), errors.Is(err, domain.ErrResetTokenExpired()):
		status = http.StatusBadRequest
	default:
		log.Printf("Unexpected error: %v", err)
		status = http.StatusInternalServerError
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": err.Error()}); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeResp(resp any, statusCode int, w http.ResponseWriter) {
	w.WriteHeader(statusCode)
	if resp == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func readReq(req any, r *http.Request, w http.ResponseWriter) error {
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
	}
	return err
}
