package user

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
)

type ProfileResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	SignatureURL *string `json:"signature_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type UpdateRoleRequest struct {
	ID   string `json:"-"`
	Role string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	validRoles := []string{string(RoleAdmin), string(RoleSupervisor), string(RoleTechnician), string(RolePending)}
	if !validator.IsInSlice(strings.ToLower(r.Role), validRoles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, supervisor, technician, pending",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UploadSignatureRequest carries a signature image for the current user.
// Signatures are stamped onto exported PDFs next to the signatory name.
type UploadSignatureRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadSignatureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "signature image is required",
		})
	} else {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "signature image size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
