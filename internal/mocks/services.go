package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, userID uuid.UUID, event string, payload interface{}) error {
	args := m.Called(ctx, userID, event, payload)
	return args.Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Notify(ctx context.Context, userID, requestID uuid.UUID, message string, typ domain.NotificationType) (*domain.Notification, error) {
	args := m.Called(ctx, userID, requestID, message, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type SettingsService struct {
	mock.Mock
}

func (m *SettingsService) Int(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *SettingsService) UUID(ctx context.Context, key string) (*uuid.UUID, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *SettingsService) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *SettingsService) Set(ctx context.Context, key, value string) (*domain.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendDeadlineWarning(ctx context.Context, to, recipientName, requestTitle, message string) error {
	args := m.Called(ctx, to, recipientName, requestTitle, message)
	return args.Error(0)
}
