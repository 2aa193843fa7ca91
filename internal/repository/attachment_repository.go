package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

const attachmentColumns = `id, request_id, uploaded_by, file_name, file_size, mime_type, storage_path, created_at`

type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, att *domain.Attachment) error {
	query := `
		INSERT INTO attachments (id, request_id, uploaded_by, file_name, file_size, mime_type, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return conn(ctx, r.db).QueryRowxContext(ctx, query,
		att.ID, att.RequestID, att.UploadedBy,
		att.FileName, att.FileSize, att.MimeType, att.StoragePath,
	).Scan(&att.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var att domain.Attachment
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &att, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error) {
	atts := []domain.Attachment{}
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE request_id = $1 ORDER BY created_at ASC`
	err := conn(ctx, r.db).SelectContext(ctx, &atts, query, requestID)
	return atts, err
}
