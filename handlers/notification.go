package handlers

import (
	"net/http"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/services"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) NotificationHandler {
	return NotificationHandler{notifications: notifications}
}

// Notifications are always scoped to the acting user; there is no way to
// read or mutate someone else's inbox.
func (h NotificationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	if user == nil {
		writeErrorResp(domain.ErrUnauthorized(), w)
		return
	}

	notifications, err := h.notifications.GetAllByUserID(user.Id.Hex())
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	writeResp(notifications, http.StatusOK, w)
}

func (h NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	if user == nil {
		writeErrorResp(domain.ErrUnauthorized(), w)
		return
	}

	if err := h.notifications.MarkAsRead(user.Id.Hex(), mux.Vars(r)["id"]); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(map[string]string{"message": "Notification marked as read"}, http.StatusOK, w)
}

func (h NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	if user == nil {
		writeErrorResp(domain.ErrUnauthorized(), w)
		return
	}

	if err := h.notifications.MarkAllAsRead(user.Id.Hex()); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(map[string]string{"message": "All notifications marked as read"}, http.StatusOK, w)
}

func (h NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	if user == nil {
		writeErrorResp(domain.ErrUnauthorized(), w)
		return
	}

	if err := h.notifications.Delete(user.Id.Hex(), mux.Vars(r)["id"]); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(nil, http.StatusNoContent, w)
}
