package domain

import (
	"time"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

type NotificationRepository interface {
	GetAllByUserID(userID string) ([]Notification, error)
	Insert(notification *Notification) error
	MarkAsRead(userID, id string) error
	MarkAllAsRead(userID string) error
	Delete(userID, id string) error
}
