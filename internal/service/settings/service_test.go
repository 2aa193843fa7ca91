package settings

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/mocks"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestService_Int(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored Value", func(t *testing.T) {
		repo := new(mocks.SettingRepository)
		repo.On("Get", ctx, domain.SettingDeadlineWarningDays).
			Return(&domain.Setting{Key: domain.SettingDeadlineWarningDays, Value: "5"}, nil)

		n, err := NewService(repo, new(mocks.UserRepository), quietLogger()).Int(ctx, domain.SettingDeadlineWarningDays)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("Missing Uses Default", func(t *testing.T) {
		repo := new(mocks.SettingRepository)
		repo.On("Get", ctx, domain.SettingDeadlineWarningDays).Return(nil, domain.ErrNotFound)

		n, err := NewService(repo, new(mocks.UserRepository), quietLogger()).Int(ctx, domain.SettingDeadlineWarningDays)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("Garbage Uses Default", func(t *testing.T) {
		repo := new(mocks.SettingRepository)
		repo.On("Get", ctx, domain.SettingOrderableDaysLimit).
			Return(&domain.Setting{Key: domain.SettingOrderableDaysLimit, Value: "soon"}, nil)

		n, err := NewService(repo, new(mocks.UserRepository), quietLogger()).Int(ctx, domain.SettingOrderableDaysLimit)
		require.NoError(t, err)
		assert.Equal(t, 30, n)
	})

	t.Run("Store Failure", func(t *testing.T) {
		repo := new(mocks.SettingRepository)
		repo.On("Get", ctx, domain.SettingOrderableDaysLimit).Return(nil, errors.New("conn reset"))

		_, err := NewService(repo, new(mocks.UserRepository), quietLogger()).Int(ctx, domain.SettingOrderableDaysLimit)
		assert.Error(t, err)
	})
}

func TestService_UUID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(mocks.SettingRepository)
	repo.On("Get", ctx, domain.SettingDefaultDesignerID).
		Return(&domain.Setting{Key: domain.SettingDefaultDesignerID, Value: id.String()}, nil).Once()
	repo.On("Get", ctx, domain.SettingDefaultDesignerID).
		Return(&domain.Setting{Key: domain.SettingDefaultDesignerID, Value: ""}, nil).Once()

	svc := NewService(repo, new(mocks.UserRepository), quietLogger())

	got, err := svc.UUID(ctx, domain.SettingDefaultDesignerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	got, err = svc.UUID(ctx, domain.SettingDefaultDesignerID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_Set(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.SettingRepository)
	svc := NewService(repo, new(mocks.UserRepository), quietLogger())

	_, err := svc.Set(ctx, domain.SettingDeadlineWarningDays, "-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Set(ctx, "theme", "dark")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Set(ctx, domain.SettingDefaultDesignerID, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("Upsert", ctx, mock.MatchedBy(func(s *domain.Setting) bool {
		return s.Key == domain.SettingDeadlineWarningDays && s.Value == "3"
	})).Return(nil).Once()

	setting, err := svc.Set(ctx, domain.SettingDeadlineWarningDays, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", setting.Value)
	repo.AssertExpectations(t)
}

func TestService_ListFillsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.SettingRepository)
	repo.On("List", ctx).Return([]domain.Setting{{Key: domain.SettingDeadlineWarningDays, Value: "4"}}, nil)

	list, err := NewService(repo, new(mocks.UserRepository), quietLogger()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.Equal(t, "4", list[0].Value)
}

func TestService_SetDefaultDesigner(t *testing.T) {
	ctx := context.Background()

	designer := &domain.User{ID: uuid.New(), Roles: []string{string(domain.RoleDesigner)}, IsActive: true}
	requester := &domain.User{ID: uuid.New(), Roles: []string{string(domain.RoleRequester)}, IsActive: true}
	retired := &domain.User{ID: uuid.New(), Roles: []string{string(domain.RoleDesigner)}, IsActive: false}
	unknown := uuid.New()

	repo := new(mocks.SettingRepository)
	users := new(mocks.UserRepository)
	users.On("GetByID", ctx, designer.ID).Return(designer, nil)
	users.On("GetByID", ctx, requester.ID).Return(requester, nil)
	users.On("GetByID", ctx, retired.ID).Return(retired, nil)
	users.On("GetByID", ctx, unknown).Return(nil, domain.ErrNotFound)
	svc := NewService(repo, users, quietLogger())

	for name, id := range map[string]uuid.UUID{
		"Unknown User":      unknown,
		"Requester":         requester.ID,
		"Inactive Designer": retired.ID,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Set(ctx, domain.SettingDefaultDesignerID, id.String())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)

	t.Run("Active Designer", func(t *testing.T) {
		repo.On("Upsert", ctx, mock.MatchedBy(func(s *domain.Setting) bool {
			return s.Key == domain.SettingDefaultDesignerID && s.Value == designer.ID.String()
		})).Return(nil).Once()

		_, err := svc.Set(ctx, domain.SettingDefaultDesignerID, designer.ID.String())
		require.NoError(t, err)
	})

	t.Run("Clearing Skips Lookup", func(t *testing.T) {
		repo.On("Upsert", ctx, mock.MatchedBy(func(s *domain.Setting) bool {
			return s.Key == domain.SettingDefaultDesignerID && s.Value == ""
		})).Return(nil).Once()

		_, err := svc.Set(ctx, domain.SettingDefaultDesignerID, "")
		require.NoError(t, err)
	})
	repo.AssertExpectations(t)
}
