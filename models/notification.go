package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification for display
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is a transient, self-dismissing user message
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewNotification builds a notification with a fresh ID
func NewNotification(t NotificationType, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      t,
		Message:   message,
		Timestamp: time.Now(),
	}
}
