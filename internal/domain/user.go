package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Role string

const (
	RoleRequester Role = "requester"
	RoleDesigner  Role = "designer"
	RoleApprover  Role = "approver"
	RoleAdmin     Role = "admin"

	// RoleSystem drives automatic transitions. It is never assigned to a user.
	RoleSystem Role = "system"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleRequester, RoleDesigner, RoleApprover, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	FullName     string         `json:"full_name" db:"full_name"`
	Roles        pq.StringArray `json:"roles" db:"roles"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if Role(r) == role {
			return true
		}
	}
	return false
}

// Identity is the caller as resolved by the identity provider.
type Identity struct {
	UserID uuid.UUID
	Roles  []Role
}

func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrimaryRole picks the most privileged role the caller holds.
func (i Identity) PrimaryRole() Role {
	for _, r := range []Role{RoleAdmin, RoleApprover, RoleDesigner, RoleRequester} {
		if i.HasRole(r) {
			return r
		}
	}
	return ""
}

// CanViewAll reports whether the caller may see requests they do not own.
func (i Identity) CanViewAll() bool {
	return i.HasRole(RoleAdmin) || i.HasRole(RoleApprover) || i.HasRole(RoleDesigner)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
