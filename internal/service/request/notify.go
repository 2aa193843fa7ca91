package request

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/workflow"
)

// Notifications are sent only after the owning transaction has committed.
// Failures are logged and never fail the operation that triggered them.

func (s *service) notifyCreated(ctx context.Context, req *domain.Request) {
	message := workflow.NewRequestMessage(req.Title)

	if req.AssignedDesignerID != nil {
		s.notify(ctx, *req.AssignedDesignerID, req, message, domain.NotifNewRequest)
		return
	}

	designers, err := s.userRepo.ListByRole(ctx, domain.RoleDesigner)
	if err != nil {
		s.log.WithError(err).WithField("request_id", req.ID).Error("failed to load designers")
		return
	}
	for _, d := range designers {
		if d.ID == req.RequesterID {
			continue
		}
		s.notify(ctx, d.ID, req, message, domain.NotifNewRequest)
	}
}

func (s *service) notifyTransition(ctx context.Context, req *domain.Request, actorID uuid.UUID, role domain.Role, message string) {
	typ := workflow.NotificationTypeFor(req.Status)
	for _, userID := range s.recipients(ctx, req, actorID, role) {
		s.notify(ctx, userID, req, message, typ)
	}
}

// recipients returns each interested user once, never the actor.
func (s *service) recipients(ctx context.Context, req *domain.Request, actorID uuid.UUID, role domain.Role) []uuid.UUID {
	var (
		out  []uuid.UUID
		seen = map[uuid.UUID]bool{actorID: true}
	)
	add := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	switch role {
	case domain.RoleDesigner, domain.RoleApprover, domain.RoleAdmin:
		add(req.RequesterID)
	}
	switch role {
	case domain.RoleRequester, domain.RoleApprover, domain.RoleAdmin:
		if req.AssignedDesignerID != nil {
			add(*req.AssignedDesignerID)
		}
	}

	if req.Status == domain.StatusPendingApproval {
		approvers, err := s.userRepo.ListByRole(ctx, domain.RoleApprover)
		if err != nil {
			s.log.WithError(err).WithField("request_id", req.ID).Error("failed to load approvers")
		}
		for _, a := range approvers {
			add(a.ID)
		}
	}

	return out
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, req *domain.Request, message string, typ domain.NotificationType) {
	if _, err := s.notifSvc.Notify(ctx, userID, req.ID, message, typ); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"request_id": req.ID,
			"user_id":    userID,
		}).Error("failed to notify")
	}
}
