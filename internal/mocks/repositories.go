package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

// Transactor runs fn directly on the caller's context.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) UpdateStatus(ctx context.Context, req *domain.Request, to domain.Status) error {
	args := m.Called(ctx, req, to)
	return args.Error(0)
}

func (m *RequestRepository) Touch(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RequestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.Request, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Request), args.Get(1).(int64), args.Error(2)
}

func (m *RequestRepository) CountCreatedSince(ctx context.Context, requesterID uuid.UUID, priority domain.Priority, since time.Time) (int64, error) {
	args := m.Called(ctx, requesterID, priority, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RequestRepository) ListDueBefore(ctx context.Context, statuses []domain.Status, horizon time.Time) ([]domain.Request, error) {
	args := m.Called(ctx, statuses, horizon)
	return args.Get(0).([]domain.Request), args.Error(1)
}

type DetailRepository struct {
	mock.Mock
}

func (m *DetailRepository) Upsert(ctx context.Context, detail *domain.RequestDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *DetailRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*domain.RequestDetail, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestDetail), args.Error(1)
}

type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *HistoryRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type SettingRepository struct {
	mock.Mock
}

func (m *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *SettingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

type AttachmentRepository struct {
	mock.Mock
}

func (m *AttachmentRepository) Create(ctx context.Context, att *domain.Attachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *AttachmentRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]domain.Attachment), args.Error(1)
}
