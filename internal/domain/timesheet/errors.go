package timesheet

import "errors"

// Time sheet domain errors
var (
	ErrTimeSheetNotFound = errors.New("time sheet not found")
	ErrUnauthorized      = errors.New("unauthorized to access this time sheet")
	ErrAlreadyApproved   = errors.New("time sheet has already been approved")
)
