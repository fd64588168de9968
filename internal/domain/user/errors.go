package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrAdminAccessRequired      = errors.New("admin access required")
	ErrSupervisorAccessRequired = errors.New("supervisor access required")
	ErrRoleAssignmentPending    = errors.New("account is pending role assignment")
	ErrInvalidRole              = errors.New("invalid role")
)
