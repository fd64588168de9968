package attachment

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTACHMENT DTOs
// ========================================

// ExistingAttachmentInput identifies a server-known attachment being kept,
// carrying its possibly edited caption.
type ExistingAttachmentInput struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// FileUpload pairs one multipart file with its caption.
type FileUpload struct {
	File        multipart.File
	Header      *multipart.FileHeader
	Description string
}

// SaveAttachmentsRequest is the full reconciliation payload for one time
// sheet: IDs to delete, existing attachments to keep (with edited
// captions), and new files to store. It is applied in one transaction.
type SaveAttachmentsRequest struct {
	TimeSheetID         string                    `json:"daily_time_sheet_id"`
	AttachmentsToDelete []string                  `json:"attachments_to_delete"`
	ExistingAttachments []ExistingAttachmentInput `json:"existing_attachments"`
	NewFiles            []FileUpload              `json:"-"`
}

func (r *SaveAttachmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimeSheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_time_sheet_id",
			Message: "daily_time_sheet_id is required",
		})
	} else if !validator.IsValidUUID(r.TimeSheetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_time_sheet_id",
			Message: "daily_time_sheet_id must be a valid UUID",
		})
	}

	for i, id := range r.AttachmentsToDelete {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("attachments_to_delete[%d]", i),
				Message: "attachment id must be a valid UUID",
			})
		}
	}

	for i, existing := range r.ExistingAttachments {
		if !validator.IsValidUUID(existing.ID) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("existing_attachments[%d].id", i),
				Message: "attachment id must be a valid UUID",
			})
		}
	}

	for i, upload := range r.NewFiles {
		field := func(name string) string { return fmt.Sprintf("attachment_files[%d].%s", i, name) }

		if upload.Header == nil {
			errs = append(errs, validator.ValidationError{
				Field:   field("file"),
				Message: "file is required",
			})
			continue
		}

		ext := strings.ToLower(filepath.Ext(upload.Header.Filename))
		allowedExts := []string{".jpg", ".jpeg", ".png"}
		if !validator.IsInSlice(ext, allowedExts) {
			errs = append(errs, validator.ValidationError{
				Field:   field("file"),
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		}

		if upload.Header.Size > MaxUploadSize {
			errs = append(errs, validator.ValidationError{
				Field:   field("file"),
				Message: "file size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttachmentResponse struct {
	ID          string `json:"id"`
	TimeSheetID string `json:"daily_time_sheet_id"`
	FileURL     string `json:"file_url"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ListAttachmentsResponse struct {
	TimeSheetID string               `json:"daily_time_sheet_id"`
	Attachments []AttachmentResponse `json:"attachments"`
}
