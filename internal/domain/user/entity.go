package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Office admin - full access, user management
	RoleSupervisor Role = "supervisor" // Can approve/delete any record
	RoleTechnician Role = "technician" // Field technician, owns their own records
	RolePending    Role = "pending"    // Signed up, waiting for a role assignment
)

type User struct {
	ID              string
	Email           string
	FullName        string
	PasswordHash    *string
	Role            Role
	SignatureURL    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user is an office admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user is supervisor or admin
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}

// IsPending checks if user is still waiting for a role
func (u *User) IsPending() bool {
	return u.Role == RolePending
}

// CanApprove checks if user can approve submitted records
func (u *User) CanApprove() bool {
	return u.IsSupervisor()
}
