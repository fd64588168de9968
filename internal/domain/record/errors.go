package record

import "errors"

// Record domain errors
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnknownFormType = errors.New("unknown form type")
	ErrUnknownSection  = errors.New("section does not belong to this form type")
	ErrUnauthorized    = errors.New("you do not have access to this record")
	ErrAlreadyApproved = errors.New("approved records cannot be modified")
)
