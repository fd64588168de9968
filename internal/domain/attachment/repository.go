package attachment

import (
	"context"
)

// AttachmentRepository defines data access for time sheet attachments.
type AttachmentRepository interface {
	// Create inserts a stored attachment row
	Create(ctx context.Context, att Attachment) (Attachment, error)

	// ListByTimeSheet retrieves all attachments of one sheet, oldest first
	ListByTimeSheet(ctx context.Context, timeSheetID string) ([]Attachment, error)

	// UpdateDescription updates a caption; returns ErrAttachmentNotFound
	// when the attachment does not belong to the sheet
	UpdateDescription(ctx context.Context, timeSheetID, id, description string) error

	// Delete removes attachments by ID, scoped to the sheet
	Delete(ctx context.Context, timeSheetID string, ids []string) error
}
