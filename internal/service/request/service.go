package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/detail"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/notification"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/settings"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/workflow"
)

type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error)
	UpdateDetails(ctx context.Context, id, actorID uuid.UUID, input json.RawMessage) (*domain.Request, error)
	Transition(ctx context.Context, id, actorID uuid.UUID, role domain.Role, target domain.Status, note *string) (*domain.Request, error)

	GetByID(ctx context.Context, id uuid.UUID, viewer domain.Identity) (*domain.Request, error)
	List(ctx context.Context, viewer domain.Identity, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error)
	History(ctx context.Context, id uuid.UUID, viewer domain.Identity) ([]domain.HistoryEntry, error)
	GetDetails(ctx context.Context, id uuid.UUID, viewer domain.Identity) (*domain.RequestDetail, error)
}

type service struct {
	tx          repository.Transactor
	requestRepo repository.RequestRepository
	historyRepo repository.HistoryRepository
	detailRepo  repository.DetailRepository
	userRepo    repository.UserRepository
	registry    *detail.Registry
	notifSvc    notification.Service
	settingsSvc settings.Service
	log         *logrus.Logger
	now         func() time.Time
}

func NewService(
	tx repository.Transactor,
	requestRepo repository.RequestRepository,
	historyRepo repository.HistoryRepository,
	detailRepo repository.DetailRepository,
	userRepo repository.UserRepository,
	registry *detail.Registry,
	notifSvc notification.Service,
	settingsSvc settings.Service,
	log *logrus.Logger,
) Service {
	return &service{
		tx:          tx,
		requestRepo: requestRepo,
		historyRepo: historyRepo,
		detailRepo:  detailRepo,
		userRepo:    userRepo,
		registry:    registry,
		notifSvc:    notifSvc,
		settingsSvc: settingsSvc,
		log:         log,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %d", domain.ErrInvalidInput, input.Priority)
	}

	now := s.now()
	if err := s.checkDueDate(ctx, now, input.DueDate); err != nil {
		return nil, err
	}
	if err := s.checkQuota(ctx, now, requesterID, input.Priority); err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = domain.ContentTypeGeneral
	}
	strategy := s.resolve(contentType)

	designerID, err := s.defaultDesigner(ctx)
	if err != nil {
		return nil, err
	}

	req := &domain.Request{
		ID:                 uuid.New(),
		Title:              title,
		ContentType:        contentType,
		Status:             domain.StatusSubmitted,
		Priority:           input.Priority,
		DueDate:            input.DueDate,
		RequesterID:        requesterID,
		AssignedDesignerID: designerID,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requestRepo.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		if err := s.appendHistory(ctx, req, workflow.StatusMessage(domain.StatusSubmitted), requesterID); err != nil {
			return err
		}
		if err := strategy.ProcessCreate(ctx, req, input.Details); err != nil {
			return err
		}

		message, err := workflow.Authorize(req.Status, domain.StatusDesignerReview, domain.RoleSystem)
		if err != nil {
			return err
		}
		if err := s.requestRepo.UpdateStatus(ctx, req, domain.StatusDesignerReview); err != nil {
			return err
		}
		return s.appendHistory(ctx, req, message, requesterID)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   req.ID,
		"user_id":      requesterID,
		"content_type": req.ContentType,
	}).Info("request created")

	s.notifyCreated(ctx, req)

	return req, nil
}

// defaultDesigner returns the configured designer when that user can still
// take the request. A stale setting leaves the request unassigned.
func (s *service) defaultDesigner(ctx context.Context) (*uuid.UUID, error) {
	id, err := s.settingsSvc.UUID(ctx, domain.SettingDefaultDesignerID)
	if err != nil || id == nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, *id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil || !user.IsActive || !user.HasRole(domain.RoleDesigner) {
		s.log.WithField("user_id", *id).Warn("default designer cannot take requests, leaving unassigned")
		return nil, nil
	}
	return id, nil
}

func (s *service) checkDueDate(ctx context.Context, now, due time.Time) error {
	limit, err := s.settingsSvc.Int(ctx, domain.SettingOrderableDaysLimit)
	if err != nil {
		return err
	}

	today := startOfDay(now)
	dueDay := startOfDay(due.In(now.Location()))
	if due.IsZero() || dueDay.Before(today) || dueDay.After(today.AddDate(0, 0, limit)) {
		return domain.ErrInvalidDueDate
	}
	return nil
}

func (s *service) checkQuota(ctx context.Context, now time.Time, requesterID uuid.UUID, priority domain.Priority) error {
	key := domain.SettingMaxNormalRequestsPerDay
	if priority == domain.PriorityUrgent {
		key = domain.SettingMaxUrgentRequestsPerDay
	}

	limit, err := s.settingsSvc.Int(ctx, key)
	if err != nil {
		return err
	}

	count, err := s.requestRepo.CountCreatedSince(ctx, requesterID, priority, startOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to count requests: %w", err)
	}
	if count >= int64(limit) {
		return domain.ErrQuotaExceeded
	}
	return nil
}

func (s *service) resolve(contentType string) detail.Strategy {
	strategy, known := s.registry.Resolve(contentType)
	if !known {
		s.log.WithField("content_type", contentType).Warn("unknown content type, using default detail strategy")
	}
	return strategy
}

func (s *service) appendHistory(ctx context.Context, req *domain.Request, message string, actorID uuid.UUID) error {
	entry := &domain.HistoryEntry{
		ID:        uuid.New(),
		RequestID: req.ID,
		Status:    req.Status,
		Message:   message,
		ActorID:   actorID,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (s *service) UpdateDetails(ctx context.Context, id, actorID uuid.UUID, input json.RawMessage) (*domain.Request, error) {
	var req *domain.Request

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requestRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !current.IsParticipant(actorID) {
			return domain.ErrNotFound
		}

		role, ok := workflow.DetailsEditableBy(current.Status)
		if !ok {
			return domain.ErrDetailsLocked
		}
		switch role {
		case domain.RoleRequester:
			if current.RequesterID != actorID {
				return domain.ErrDetailsLocked
			}
		case domain.RoleDesigner:
			if current.AssignedDesignerID == nil || *current.AssignedDesignerID != actorID {
				return domain.ErrDetailsLocked
			}
		}

		if err := s.resolve(current.ContentType).ProcessUpdate(ctx, current, input); err != nil {
			return err
		}
		if err := s.requestRepo.Touch(ctx, current.ID); err != nil {
			return fmt.Errorf("failed to touch request: %w", err)
		}

		req = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return req, nil
}

// Transition relies on the version check in UpdateStatus to serialize
// concurrent writers; the row is not locked on read.
func (s *service) Transition(ctx context.Context, id, actorID uuid.UUID, role domain.Role, target domain.Status, note *string) (*domain.Request, error) {
	var (
		req     *domain.Request
		from    domain.Status
		message string
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requestRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkActor(current, actorID, role); err != nil {
			return err
		}

		base, err := workflow.Authorize(current.Status, target, role)
		if err != nil {
			return err
		}

		from = current.Status
		if role == domain.RoleDesigner && current.AssignedDesignerID == nil {
			assignee := actorID
			current.AssignedDesignerID = &assignee
		}

		if err := s.requestRepo.UpdateStatus(ctx, current, target); err != nil {
			return err
		}

		message = workflow.WithNote(base, note)
		if err := s.appendHistory(ctx, current, message, actorID); err != nil {
			return err
		}

		req = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  req.ID,
		"user_id":     actorID,
		"status_from": from.String(),
		"status_to":   target.String(),
	}).Info("request transitioned")

	s.notifyTransition(ctx, req, actorID, role, message)

	return req, nil
}

// checkActor enforces ownership on top of the role table. Failures look like
// a missing request so callers learn nothing about requests they do not own.
func checkActor(req *domain.Request, actorID uuid.UUID, role domain.Role) error {
	switch role {
	case domain.RoleRequester:
		if req.RequesterID != actorID {
			return domain.ErrNotFound
		}
	case domain.RoleDesigner:
		if req.AssignedDesignerID != nil && *req.AssignedDesignerID != actorID {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, viewer domain.Identity) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanViewAll() && !req.IsParticipant(viewer.UserID) {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func (s *service) List(ctx context.Context, viewer domain.Identity, filter domain.RequestFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Request], error) {
	params.Validate()
	if !viewer.CanViewAll() {
		filter.RequesterID = &viewer.UserID
	}

	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Request]{}, err
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) History(ctx context.Context, id uuid.UUID, viewer domain.Identity) ([]domain.HistoryEntry, error) {
	if _, err := s.GetByID(ctx, id, viewer); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByRequest(ctx, id)
}

// GetDetails returns an empty payload for requests whose strategy stores nothing.
func (s *service) GetDetails(ctx context.Context, id uuid.UUID, viewer domain.Identity) (*domain.RequestDetail, error) {
	req, err := s.GetByID(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	d, err := s.detailRepo.GetByRequestID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.RequestDetail{
			RequestID:   req.ID,
			ContentType: req.ContentType,
			Payload:     json.RawMessage(`{}`),
		}, nil
	}
	return d, err
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
