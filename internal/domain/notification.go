package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	RequestID uuid.UUID        `json:"request_id" db:"request_id"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifNewRequest            NotificationType = "new_request"
	NotifStatusChanged         NotificationType = "status_changed"
	NotifApprovalRequired      NotificationType = "approval_required"
	NotifReturnedForCorrection NotificationType = "returned_for_correction"
	NotifRedesignRequired      NotificationType = "redesign_required"
	NotifCompleted             NotificationType = "completed"
	NotifDeadlineWarning       NotificationType = "deadline_warning"
)

// Real-time event names published on a user's channel.
const (
	EventReceiveNotification  = "ReceiveNotification"
	EventNotificationRead     = "NotificationRead"
	EventAllNotificationsRead = "AllNotificationsRead"
)

const DefaultNotificationLimit = 50
