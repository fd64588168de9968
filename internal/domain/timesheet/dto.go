package timesheet

import (
	"fmt"
	"strings"

	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
)

// ========================================
// TIME SHEET DTOs
// ========================================

// TimeEntryInput is one entry row as sent by the client. Client-side row
// identifiers never reach the API; sort order is taken from list position.
// Derived fields (total hours, expense total) are ignored if sent.
type TimeEntryInput struct {
	EntryDate        *string `json:"entry_date,omitempty"` // YYYY-MM-DD, rows starting a new day
	StartTime        string  `json:"start_time"`           // HH:MM
	StopTime         string  `json:"stop_time"`            // HH:MM
	JobDescription   string  `json:"job_description"`
	TravelHours      string  `json:"travel_hours"`
	ExpenseBreakfast string  `json:"expense_breakfast"`
	ExpenseLunch     string  `json:"expense_lunch"`
	ExpenseDinner    string  `json:"expense_dinner"`
	ExpenseTransport string  `json:"expense_transport"`
	ExpenseLodging   string  `json:"expense_lodging"`
	ExpenseOthers    string  `json:"expense_others"`
	ExpenseRemarks   string  `json:"expense_remarks"`
}

// SaveTimeSheetRequest carries the whole sheet: header fields plus the
// full ordered entry list. Used for both create and update; updates
// replace the stored entries wholesale.
type SaveTimeSheetRequest struct {
	ID           string           `json:"-"`
	JobOrder     string           `json:"job_order"`
	CustomerName string           `json:"customer_name"`
	WeekEnding   *string          `json:"week_ending,omitempty"` // YYYY-MM-DD
	Status       *string          `json:"status,omitempty"`
	Entries      []TimeEntryInput `json:"entries"`
}

func (r *SaveTimeSheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobOrder) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_order",
			Message: "job_order is required",
		})
	}

	if r.WeekEnding != nil && *r.WeekEnding != "" {
		if _, valid := validator.IsValidDate(*r.WeekEnding); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "week_ending",
				Message: "week_ending must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Status != nil {
		validStatuses := []string{StatusDraft, StatusSubmitted, StatusApproved}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: draft, submitted, approved",
			})
		}
	}

	for i, entry := range r.Entries {
		field := func(name string) string { return fmt.Sprintf("entries[%d].%s", i, name) }

		// Empty times are allowed (rows still being filled in); anything
		// non-empty must be a valid wall-clock time.
		if entry.StartTime != "" && !validator.IsValidClockTime(entry.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field("start_time"),
				Message: "start_time must be in HH:MM format",
			})
		}
		if entry.StopTime != "" && !validator.IsValidClockTime(entry.StopTime) {
			errs = append(errs, validator.ValidationError{
				Field:   field("stop_time"),
				Message: "stop_time must be in HH:MM format",
			})
		}
		if entry.EntryDate != nil && *entry.EntryDate != "" {
			if _, valid := validator.IsValidDate(*entry.EntryDate); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field("entry_date"),
					Message: "entry_date must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeEntryResponse struct {
	ID               string  `json:"id"`
	EntryDate        *string `json:"entry_date,omitempty"`
	StartTime        string  `json:"start_time"`
	StopTime         string  `json:"stop_time"`
	JobDescription   string  `json:"job_description"`
	TravelHours      float64 `json:"travel_hours"`
	SortOrder        int     `json:"sort_order"`
	ExpenseBreakfast string  `json:"expense_breakfast"`
	ExpenseLunch     string  `json:"expense_lunch"`
	ExpenseDinner    string  `json:"expense_dinner"`
	ExpenseTransport string  `json:"expense_transport"`
	ExpenseLodging   string  `json:"expense_lodging"`
	ExpenseOthers    string  `json:"expense_others"`
	ExpenseRemarks   string  `json:"expense_remarks"`
	TotalHours       string  `json:"total_hours"`
	ExpenseTotal     string  `json:"expense_total"`
}

type TimeSheetResponse struct {
	ID                string              `json:"id"`
	OwnerID           string              `json:"owner_id"`
	OwnerName         string              `json:"owner_name"`
	JobOrder          string              `json:"job_order"`
	CustomerName      string              `json:"customer_name"`
	WeekEnding        *string             `json:"week_ending,omitempty"`
	Status            string              `json:"status"`
	TotalRegularHours string              `json:"total_regular_hours"`
	GrandTotalHours   string              `json:"grand_total_hours"`
	Entries           []TimeEntryResponse `json:"entries"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
}

type TimeSheetFilter struct {
	// Search & Filter
	OwnerID   *string `json:"owner_id,omitempty"`
	JobOrder  *string `json:"job_order,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // created_at, week_ending, job_order, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *TimeSheetFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Status validation
	if f.Status != nil {
		validStatuses := []string{StatusDraft, StatusSubmitted, StatusApproved}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: draft, submitted, approved",
			})
		}
	}

	// Date validation
	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"created_at", "week_ending", "job_order", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: created_at, week_ending, job_order, status",
			})
		}
	} else {
		f.SortBy = "created_at" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListTimeSheetResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	TimeSheets []TimeSheetResponse `json:"time_sheets"`
}
