package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Status is persisted as its ordinal. The ordinals are part of the external
// contract and must never be renumbered.
type Status uint8

const (
	StatusSubmitted         Status = 0
	StatusDesignerReview    Status = 1
	StatusPendingCorrection Status = 2
	StatusDesignInProgress  Status = 3
	StatusPendingApproval   Status = 4
	StatusPendingRedesign   Status = 5
	StatusCompleted         Status = 6
)

var statusNames = map[Status]string{
	StatusSubmitted:         "Submitted",
	StatusDesignerReview:    "DesignerReview",
	StatusPendingCorrection: "PendingCorrection",
	StatusDesignInProgress:  "DesignInProgress",
	StatusPendingApproval:   "PendingApproval",
	StatusPendingRedesign:   "PendingRedesign",
	StatusCompleted:         "Completed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus accepts either the status name or its ordinal.
func ParseStatus(v string) (Status, error) {
	for status, name := range statusNames {
		if name == v {
			return status, nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil {
		if s := Status(n); n >= 0 && s.IsValid() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, v)
}

// UnmarshalJSON accepts both the numeric ordinal and the status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if st := Status(n); n >= 0 && st.IsValid() {
			*s = st
			return nil
		}
		return fmt.Errorf("%w: unknown status %d", ErrInvalidInput, n)
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: status must be a number or a name", ErrInvalidInput)
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Priority uint8

const (
	PriorityNormal Priority = 0
	PriorityUrgent Priority = 1
)

func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityUrgent
}

func (p Priority) String() string {
	if p == PriorityUrgent {
		return "urgent"
	}
	return "normal"
}

type Request struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Title              string     `json:"title" db:"title"`
	ContentType        string     `json:"content_type" db:"content_type"`
	Status             Status     `json:"status" db:"status"`
	Priority           Priority   `json:"priority" db:"priority"`
	DueDate            time.Time  `json:"due_date" db:"due_date"`
	RequesterID        uuid.UUID  `json:"requester_id" db:"requester_id"`
	AssignedDesignerID *uuid.UUID `json:"assigned_designer_id,omitempty" db:"assigned_designer_id"`
	Version            int64      `json:"version" db:"version"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// IsParticipant reports whether userID is the requester or the assigned designer.
func (r *Request) IsParticipant(userID uuid.UUID) bool {
	if r.RequesterID == userID {
		return true
	}
	return r.AssignedDesignerID != nil && *r.AssignedDesignerID == userID
}

type CreateRequestInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	ContentType string          `json:"content_type" validate:"max=50"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	Priority    Priority        `json:"priority" validate:"oneof=0 1"`
	Details     json.RawMessage `json:"details,omitempty"`
}

type UpdateDetailsInput struct {
	Details json.RawMessage `json:"details" validate:"required"`
}

type TransitionInput struct {
	Status Status  `json:"status"`
	Role   Role    `json:"role,omitempty" validate:"omitempty,oneof=requester designer approver admin"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type RequestFilter struct {
	Status      *Status    `query:"status"`
	ContentType string     `query:"content_type"`
	RequesterID *uuid.UUID `query:"-"`
	DesignerID  *uuid.UUID `query:"-"`
}
