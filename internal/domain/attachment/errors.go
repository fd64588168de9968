package attachment

import "errors"

// Attachment domain errors
var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrNotAnImage         = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrFileTooLarge       = errors.New("attachment size must not exceed 10MB")
	ErrUnknownAttachment  = errors.New("attachment does not belong to this record")
)
