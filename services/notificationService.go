package services

import (
	"time"

	"github.com/takdanai-ph/taskboard/domain"
)

type NotificationService struct {
	notifications domain.NotificationRepository
}

func NewNotificationService(notifications domain.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) GetAllByUserID(userID string) ([]domain.Notification, error) {
	return s.notifications.GetAllByUserID(userID)
}

// Notify stores an unread notification for the user. Failures are returned
// so callers can decide whether they matter; task mutations log and move on.
func (s *NotificationService) Notify(userID, message string) error {
	return s.notifications.Insert(&domain.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
		IsRead:    false,
	})
}

func (s *NotificationService) MarkAsRead(userID, id string) error {
	return s.notifications.MarkAsRead(userID, id)
}

func (s *NotificationService) MarkAllAsRead(userID string) error {
	return s.notifications.MarkAllAsRead(userID)
}

func (s *NotificationService) Delete(userID, id string) error {
	return s.notifications.Delete(userID, id)
}
