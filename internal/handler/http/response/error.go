package response

import (
	"errors"
	"net/http"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/attachment"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/auth"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, "OAuth state mismatch", nil)
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		BadRequest(w, "Google sign-in is not configured", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrSupervisorAccessRequired):
		Forbidden(w, "Supervisor access required")
	case errors.Is(err, user.ErrRoleAssignmentPending):
		Forbidden(w, "Account is awaiting role assignment")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Time sheet domain errors
	case errors.Is(err, timesheet.ErrTimeSheetNotFound):
		NotFound(w, "Time sheet not found")
	case errors.Is(err, timesheet.ErrUnauthorized):
		Forbidden(w, "You do not have access to this time sheet")
	case errors.Is(err, timesheet.ErrAlreadyApproved):
		Conflict(w, "Approved time sheets cannot be modified")

	// Attachment domain errors
	case errors.Is(err, attachment.ErrAttachmentNotFound):
		NotFound(w, "Attachment not found")
	case errors.Is(err, attachment.ErrUnknownAttachment):
		BadRequest(w, "Attachment does not belong to this record", nil)
	case errors.Is(err, attachment.ErrNotAnImage):
		BadRequest(w, "Only jpg, jpeg, png attachments are allowed", nil)
	case errors.Is(err, attachment.ErrFileTooLarge):
		PayloadTooLarge(w, "Attachment size must not exceed 10MB")

	// Record domain errors
	case errors.Is(err, record.ErrRecordNotFound):
		NotFound(w, "Record not found")
	case errors.Is(err, record.ErrUnknownFormType):
		BadRequest(w, "Unknown form type", nil)
	case errors.Is(err, record.ErrUnknownSection):
		BadRequest(w, "Section does not belong to this form type", nil)
	case errors.Is(err, record.ErrUnauthorized):
		Forbidden(w, "You do not have access to this record")
	case errors.Is(err, record.ErrAlreadyApproved):
		Conflict(w, "Approved records cannot be modified")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
