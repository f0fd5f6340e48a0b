package models

import (
	"fmt"

	"github.com/trebuchet-org/coffer/internal/domain"
)

// UserRole is a capability tag. It is displayed but not enforced.
type UserRole string

const (
	UserRoleManager UserRole = "manager"
	UserRoleVoter   UserRole = "voter"
	UserRoleCreator UserRole = "creator"
)

// AllUserRoles lists the roles in display order.
var AllUserRoles = []UserRole{UserRoleManager, UserRoleVoter, UserRoleCreator}

// User is a DAO member.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Role    UserRole `json:"role"`
}

// Validate checks a user loaded from seed or persisted data.
func (u *User) Validate() error {
	var errs domain.ValidationErrors
	if u.ID == "" {
		errs.Add("id", "is required")
	}
	if u.Name == "" {
		errs.Add("name", "is required")
	}
	switch u.Role {
	case UserRoleManager, UserRoleVoter, UserRoleCreator:
	default:
		errs.Add("role", "unknown role %q", u.Role)
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("user %q: %w", u.ID, err)
	}
	return nil
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	clone := *u
	return &clone
}
