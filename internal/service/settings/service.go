package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
)

// Defaults apply when a key is missing from the store or holds an unparsable value.
var Defaults = map[string]int{
	domain.SettingDeadlineWarningDays:     2,
	domain.SettingOrderableDaysLimit:      30,
	domain.SettingMaxNormalRequestsPerDay: 10,
	domain.SettingMaxUrgentRequestsPerDay: 2,
}

type Service interface {
	Int(ctx context.Context, key string) (int, error)
	UUID(ctx context.Context, key string) (*uuid.UUID, error)
	List(ctx context.Context) ([]domain.Setting, error)
	Set(ctx context.Context, key, value string) (*domain.Setting, error)
}

type service struct {
	repo     repository.SettingRepository
	userRepo repository.UserRepository
	log      *logrus.Logger
}

func NewService(repo repository.SettingRepository, userRepo repository.UserRepository, log *logrus.Logger) Service {
	return &service{repo: repo, userRepo: userRepo, log: log}
}

func (s *service) Int(ctx context.Context, key string) (int, error) {
	def := Defaults[key]

	setting, err := s.repo.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	n, err := strconv.Atoi(setting.Value)
	if err != nil {
		s.log.WithFields(logrus.Fields{"key": key, "value": setting.Value}).
			Warn("non-numeric setting, using default")
		return def, nil
	}
	return n, nil
}

// UUID returns nil when the key is unset or empty.
func (s *service) UUID(ctx context.Context, key string) (*uuid.UUID, error) {
	setting, err := s.repo.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	if setting.Value == "" {
		return nil, nil
	}

	id, err := uuid.Parse(setting.Value)
	if err != nil {
		s.log.WithFields(logrus.Fields{"key": key, "value": setting.Value}).
			Warn("malformed uuid setting, ignoring")
		return nil, nil
	}
	return &id, nil
}

// List returns stored settings plus any defaulted key that has no row.
func (s *service) List(ctx context.Context) ([]domain.Setting, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	for _, st := range stored {
		seen[st.Key] = true
	}
	for _, key := range []string{
		domain.SettingDeadlineWarningDays,
		domain.SettingOrderableDaysLimit,
		domain.SettingMaxNormalRequestsPerDay,
		domain.SettingMaxUrgentRequestsPerDay,
	} {
		if !seen[key] {
			stored = append(stored, domain.Setting{Key: key, Value: strconv.Itoa(Defaults[key])})
		}
	}
	return stored, nil
}

func (s *service) Set(ctx context.Context, key, value string) (*domain.Setting, error) {
	switch key {
	case domain.SettingDeadlineWarningDays, domain.SettingOrderableDaysLimit,
		domain.SettingMaxNormalRequestsPerDay, domain.SettingMaxUrgentRequestsPerDay:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
	case domain.SettingDefaultDesignerID:
		if value != "" {
			if err := s.checkDesigner(ctx, value); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	setting := &domain.Setting{Key: key, Value: value}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// checkDesigner accepts only the id of an active user holding the designer role.
func (s *service) checkDesigner(ctx context.Context, value string) error {
	id, err := uuid.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be a uuid", domain.ErrInvalidInput, domain.SettingDefaultDesignerID)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: no user with id %s", domain.ErrInvalidInput, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load designer: %w", err)
	}
	if !user.IsActive || !user.HasRole(domain.RoleDesigner) {
		return fmt.Errorf("%w: user %s is not an active designer", domain.ErrInvalidInput, id)
	}
	return nil
}
