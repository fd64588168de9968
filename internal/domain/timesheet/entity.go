package timesheet

import (
	"time"
)

// Sheet lifecycle status
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
)

// TimeEntry is one row of a daily time sheet. StartTime and StopTime are
// wall-clock "HH:MM" strings with no date component; a stop time at or
// before the start time means the shift ran past midnight. TotalHours and
// ExpenseTotal are derived and recomputed from the other fields on every
// save; they are never taken from the client.
type TimeEntry struct {
	ID             string
	TimeSheetID    string
	EntryDate      *time.Time // set only on rows that start a new day
	StartTime      string
	StopTime       string
	JobDescription string
	TravelHours    float64
	SortOrder      int

	// Per-category expenses, user-entered decimal strings
	ExpenseBreakfast string
	ExpenseLunch     string
	ExpenseDinner    string
	ExpenseTransport string
	ExpenseLodging   string
	ExpenseOthers    string
	ExpenseRemarks   string

	// Derived
	TotalHours   float64
	ExpenseTotal string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeSheet is the aggregate: an ordered sequence of entries plus
// sheet-level derived totals. It is always persisted whole (entries
// replaced on save), never partially.
type TimeSheet struct {
	ID           string
	OwnerID      string
	JobOrder     string
	CustomerName string
	WeekEnding   *time.Time
	Status       string

	// Derived, recomputed whenever the entry list changes
	TotalRegularHours float64
	GrandTotalHours   float64

	Entries []TimeEntry

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	OwnerName *string
}
