package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

const requestColumns = `id, title, content_type, status, priority, due_date, requester_id,
	assigned_designer_id, version, created_at, updated_at`

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	UpdateStatus(ctx context.Context, req *domain.Request, to domain.Status) error
	Touch(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error)
	CountCreatedSince(ctx context.Context, requesterID uuid.UUID, priority domain.Priority, since time.Time) (int64, error)
	ListDueBefore(ctx context.Context, statuses []domain.Status, horizon time.Time) ([]domain.Request, error)
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (id, title, content_type, status, priority, due_date, requester_id, assigned_designer_id, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		RETURNING version, created_at, updated_at`

	return conn(ctx, r.db).QueryRowxContext(ctx, query,
		req.ID, req.Title, req.ContentType, req.Status, req.Priority,
		req.DueDate, req.RequesterID, req.AssignedDesignerID,
	).Scan(&req.Version, &req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	if err := conn(ctx, r.db).GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *requestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 FOR UPDATE`
	if err := conn(ctx, r.db).GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// UpdateStatus moves req to status "to" only if the stored row still has req's
// status and version. On success req is updated in place.
func (r *requestRepository) UpdateStatus(ctx context.Context, req *domain.Request, to domain.Status) error {
	query := `
		UPDATE requests
		SET status = $2, assigned_designer_id = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND status = $4 AND version = $5
		RETURNING version, updated_at`

	var (
		version   int64
		updatedAt time.Time
	)
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		req.ID, to, req.AssignedDesignerID, req.Status, req.Version,
	).Scan(&version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrConcurrentModification
	}
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	req.Status = to
	req.Version = version
	req.UpdatedAt = updatedAt
	return nil
}

func (r *requestRepository) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE requests SET updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error) {
	params.Validate()

	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.ContentType != "" {
		add("content_type = $%d", filter.ContentType)
	}
	if filter.RequesterID != nil {
		add("requester_id = $%d", *filter.RequesterID)
	}
	if filter.DesignerID != nil {
		add("assigned_designer_id = $%d", *filter.DesignerID)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := conn(ctx, r.db).GetContext(ctx, &total, `SELECT COUNT(*) FROM requests`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		requestColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	requests := []domain.Request{}
	err := conn(ctx, r.db).SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

func (r *requestRepository) CountCreatedSince(ctx context.Context, requesterID uuid.UUID, priority domain.Priority, since time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM requests WHERE requester_id = $1 AND priority = $2 AND created_at >= $3`
	err := conn(ctx, r.db).GetContext(ctx, &count, query, requesterID, priority, since)
	return count, err
}

func (r *requestRepository) ListDueBefore(ctx context.Context, statuses []domain.Status, horizon time.Time) ([]domain.Request, error) {
	codes := make([]int64, len(statuses))
	for i, s := range statuses {
		codes[i] = int64(s)
	}

	query := `
		SELECT ` + requestColumns + ` FROM requests
		WHERE status = ANY($1) AND due_date <= $2
		ORDER BY due_date ASC`

	requests := []domain.Request{}
	err := conn(ctx, r.db).SelectContext(ctx, &requests, query, pq.Array(codes), horizon)
	return requests, err
}
