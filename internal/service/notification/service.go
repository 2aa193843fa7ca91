package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
)

// Publisher pushes an event to every connection of one user.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, event string, payload interface{}) error
}

type Service interface {
	Notify(ctx context.Context, userID, requestID uuid.UUID, message string, typ domain.NotificationType) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type ReceivePayload struct {
	ID        uuid.UUID               `json:"id"`
	RequestID uuid.UUID               `json:"requestId"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

type ReadPayload struct {
	NotificationID uuid.UUID `json:"notificationId"`
}

type service struct {
	notifRepo repository.NotificationRepository
	publisher Publisher
	log       *logrus.Logger
}

func NewService(notifRepo repository.NotificationRepository, publisher Publisher, log *logrus.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		publisher: publisher,
		log:       log,
	}
}

// Notify persists first. A failed push is logged and the stored row stays
// available through ListForUser.
func (s *service) Notify(ctx context.Context, userID, requestID uuid.UUID, message string, typ domain.NotificationType) (*domain.Notification, error) {
	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		RequestID: requestID,
		Message:   message,
		Type:      typ,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publish(ctx, userID, domain.EventReceiveNotification, ReceivePayload{
		ID:        notif.ID,
		RequestID: notif.RequestID,
		Message:   notif.Message,
		Type:      notif.Type,
		IsRead:    notif.IsRead,
		CreatedAt: notif.CreatedAt,
	})

	return notif, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = domain.DefaultNotificationLimit
	}
	return s.notifRepo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead is a no-op when the notification is already read or owned by someone else.
func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	flipped, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if flipped {
		s.publish(ctx, userID, domain.EventNotificationRead, ReadPayload{NotificationID: id})
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	n, err := s.notifRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.publish(ctx, userID, domain.EventAllNotificationsRead, struct{}{})
	}
	return nil
}

func (s *service) publish(ctx context.Context, userID uuid.UUID, event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, userID, event, payload); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"event":   event,
		}).Warn("realtime push failed")
	}
}
