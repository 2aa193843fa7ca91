package deadline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/email"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/notification"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/settings"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/workflow"
)

// activeStatuses are the statuses in which a designer is expected to be working.
var activeStatuses = []domain.Status{domain.StatusDesignInProgress, domain.StatusPendingRedesign}

type Result struct {
	Selected int
	Notified int
}

// Sweep warns assigned designers about requests nearing their due date. It
// only reads requests and keeps no record of earlier warnings, so every run
// re-warns the whole matching set.
type Sweep struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	settingsSvc settings.Service
	notifSvc    notification.Service
	emailSvc    email.Service
	log         *logrus.Logger
	now         func() time.Time
}

// NewSweep accepts a nil emailSvc to disable the email mirror.
func NewSweep(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	settingsSvc settings.Service,
	notifSvc notification.Service,
	emailSvc email.Service,
	log *logrus.Logger,
) *Sweep {
	return &Sweep{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		settingsSvc: settingsSvc,
		notifSvc:    notifSvc,
		emailSvc:    emailSvc,
		log:         log,
		now:         time.Now,
	}
}

func (s *Sweep) Run(ctx context.Context) (Result, error) {
	var res Result

	days, err := s.settingsSvc.Int(ctx, domain.SettingDeadlineWarningDays)
	if err != nil {
		return res, err
	}
	horizon := s.now().Add(time.Duration(days) * 24 * time.Hour)

	requests, err := s.requestRepo.ListDueBefore(ctx, activeStatuses, horizon)
	if err != nil {
		return res, fmt.Errorf("failed to list near-due requests: %w", err)
	}
	res.Selected = len(requests)

	for i := range requests {
		req := &requests[i]
		if req.AssignedDesignerID == nil {
			s.log.WithField("request_id", req.ID).Warn("near-due request has no assigned designer")
			continue
		}

		message := workflow.DeadlineWarningMessage(req.Title, req.DueDate)
		if _, err := s.notifSvc.Notify(ctx, *req.AssignedDesignerID, req.ID, message, domain.NotifDeadlineWarning); err != nil {
			s.log.WithError(err).WithField("request_id", req.ID).Error("failed to send deadline warning")
			continue
		}
		res.Notified++

		s.mirrorToEmail(ctx, req, message)
	}

	s.log.WithFields(logrus.Fields{
		"horizon":  horizon.Format(time.RFC3339),
		"selected": res.Selected,
		"notified": res.Notified,
	}).Info("deadline sweep finished")

	return res, nil
}

func (s *Sweep) mirrorToEmail(ctx context.Context, req *domain.Request, message string) {
	if s.emailSvc == nil {
		return
	}

	designer, err := s.userRepo.GetByID(ctx, *req.AssignedDesignerID)
	if err != nil {
		s.log.WithError(err).WithField("request_id", req.ID).Warn("failed to load designer for email")
		return
	}

	if err := s.emailSvc.SendDeadlineWarning(ctx, designer.Email, designer.FullName, req.Title, message); err != nil {
		s.log.WithError(err).WithField("request_id", req.ID).Warn("failed to email deadline warning")
	}
}
