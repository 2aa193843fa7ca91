package workflow

import "github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"

type edge struct {
	from domain.Status
	to   domain.Status
}

// transitions maps every legal edge to the single role allowed to drive it.
// Admin may additionally drive any listed edge except the automatic one.
var transitions = map[edge]domain.Role{
	{domain.StatusSubmitted, domain.StatusDesignerReview}:         domain.RoleSystem,
	{domain.StatusDesignerReview, domain.StatusPendingCorrection}: domain.RoleDesigner,
	{domain.StatusDesignerReview, domain.StatusDesignInProgress}:  domain.RoleDesigner,
	{domain.StatusPendingCorrection, domain.StatusDesignerReview}: domain.RoleRequester,
	{domain.StatusDesignInProgress, domain.StatusPendingApproval}: domain.RoleDesigner,
	{domain.StatusPendingApproval, domain.StatusCompleted}:        domain.RoleApprover,
	{domain.StatusPendingApproval, domain.StatusPendingRedesign}:  domain.RoleApprover,
	{domain.StatusPendingRedesign, domain.StatusDesignInProgress}: domain.RoleDesigner,
}

// Authorize checks whether role may move a request from one status to another and
// returns the history message for the resulting status.
func Authorize(from, to domain.Status, role domain.Role) (string, error) {
	authorized, ok := transitions[edge{from, to}]
	if !ok {
		return "", &domain.IllegalTransitionError{From: from, To: to, Role: role}
	}
	if role != authorized && !(role == domain.RoleAdmin && authorized != domain.RoleSystem) {
		return "", &domain.IllegalTransitionError{From: from, To: to, Role: role}
	}
	return StatusMessage(to), nil
}

// DetailsEditableBy returns the role whose participant may edit details in status s.
func DetailsEditableBy(s domain.Status) (domain.Role, bool) {
	switch s {
	case domain.StatusPendingCorrection:
		return domain.RoleRequester, true
	case domain.StatusDesignInProgress, domain.StatusPendingRedesign:
		return domain.RoleDesigner, true
	default:
		return "", false
	}
}

// NotificationTypeFor classifies the notification sent when a request enters status s.
func NotificationTypeFor(s domain.Status) domain.NotificationType {
	switch s {
	case domain.StatusDesignerReview:
		return domain.NotifNewRequest
	case domain.StatusPendingCorrection:
		return domain.NotifReturnedForCorrection
	case domain.StatusPendingApproval:
		return domain.NotifApprovalRequired
	case domain.StatusPendingRedesign:
		return domain.NotifRedesignRequired
	case domain.StatusCompleted:
		return domain.NotifCompleted
	default:
		return domain.NotifStatusChanged
	}
}
