package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

const notificationColumns = `id, user_id, request_id, message, type, is_read, read_at, created_at`

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, request_id, message, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return conn(ctx, r.db).QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.RequestID, notif.Message, notif.Type,
	).Scan(&notif.CreatedAt)
}

// ListByUser returns newest first; rows sharing a timestamp come back in reverse insertion order.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + ` FROM notifications
		WHERE user_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC, seq DESC
		LIMIT $3`

	notifications := []domain.Notification{}
	err := conn(ctx, r.db).SelectContext(ctx, &notifications, query, userID, unreadOnly, limit)
	return notifications, err
}

// MarkAsRead reports whether a row actually flipped.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE id = $1 AND user_id = $2 AND is_read = false`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND is_read = false`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := conn(ctx, r.db).GetContext(ctx, &count, query, userID)
	return count, err
}
