package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `
		INSERT INTO request_history (id, request_id, status, message, actor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return conn(ctx, r.db).QueryRowxContext(ctx, query,
		entry.ID, entry.RequestID, entry.Status, entry.Message, entry.ActorID,
	).Scan(&entry.CreatedAt)
}

// ListByRequest returns the entries in the order they were written.
func (r *historyRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.HistoryEntry, error) {
	query := `
		SELECT
			h.id, h.request_id, h.status, h.message, h.actor_id, h.created_at,
			u.full_name AS actor_name
		FROM request_history h
		LEFT JOIN users u ON h.actor_id = u.id
		WHERE h.request_id = $1
		ORDER BY h.seq ASC`

	entries := []domain.HistoryEntry{}
	err := conn(ctx, r.db).SelectContext(ctx, &entries, query, requestID)
	return entries, err
}
