package attachment

import "time"

// Attachment is a stored photo belonging to a form record or time sheet.
type Attachment struct {
	ID          string
	TimeSheetID string
	FileURL     string
	FileName    string
	FileType    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
