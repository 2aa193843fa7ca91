package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

type DetailRepository interface {
	Upsert(ctx context.Context, detail *domain.RequestDetail) error
	GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.RequestDetail, error)
}

type detailRepository struct {
	db *sqlx.DB
}

func NewDetailRepository(db *sqlx.DB) DetailRepository {
	return &detailRepository{db: db}
}

// Upsert writes the single detail row of a request. Retrying with the same
// request id replaces the row instead of adding another.
func (r *detailRepository) Upsert(ctx context.Context, detail *domain.RequestDetail) error {
	query := `
		INSERT INTO request_details (request_id, content_type, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (request_id) DO UPDATE
		SET content_type = EXCLUDED.content_type, payload = EXCLUDED.payload, updated_at = NOW()
		RETURNING created_at, updated_at`

	return conn(ctx, r.db).QueryRowxContext(ctx, query,
		detail.RequestID, detail.ContentType, []byte(detail.Payload),
	).Scan(&detail.CreatedAt, &detail.UpdatedAt)
}

func (r *detailRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.RequestDetail, error) {
	var detail domain.RequestDetail
	query := `SELECT request_id, content_type, payload, created_at, updated_at FROM request_details WHERE request_id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &detail, query, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}
