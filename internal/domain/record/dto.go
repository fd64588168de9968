package record

import (
	"fmt"
	"strings"

	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
)

// ========================================
// RECORD DTOs
// ========================================

// SignatoryInput is one sign-off line as sent by the client. Signature
// images are attached separately via the user's stored signature.
type SignatoryInput struct {
	Name         string  `json:"name"`
	RoleLabel    string  `json:"role_label"`
	SignatureURL *string `json:"signature_url,omitempty"`
}

// SaveRecordRequest carries a whole form record. Used for both create and
// update; updates replace the stored sections and signatories wholesale.
type SaveRecordRequest struct {
	ID            string           `json:"-"`
	FormType      string           `json:"form_type"`
	CustomerName  string           `json:"customer_name"`
	EquipmentName string           `json:"equipment_name"`
	SerialNumber  string           `json:"serial_number"`
	JobOrder      string           `json:"job_order"`
	ReportDate    *string          `json:"report_date,omitempty"` // YYYY-MM-DD
	Status        *string          `json:"status,omitempty"`
	Sections      []Section        `json:"sections"`
	Signatories   []SignatoryInput `json:"signatories"`
}

func (r *SaveRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FormType) {
		errs = append(errs, validator.ValidationError{
			Field:   "form_type",
			Message: "form_type is required",
		})
	} else if !IsValidFormType(r.FormType) {
		errs = append(errs, validator.ValidationError{
			Field:   "form_type",
			Message: "form_type must be one of: engine_inspection, pump_commissioning, motor_teardown, service_report",
		})
	}

	if validator.IsEmpty(r.CustomerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_name",
			Message: "customer_name is required",
		})
	}

	if r.ReportDate != nil && *r.ReportDate != "" {
		if _, valid := validator.IsValidDate(*r.ReportDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "report_date",
				Message: "report_date must be in YYYY-MM-DD format",
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

	if IsValidFormType(r.FormType) {
		if err := ValidateSections(r.FormType, r.Sections); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "sections",
				Message: err.Error(),
			})
		}
	}

	for i, signatory := range r.Signatories {
		if validator.IsEmpty(signatory.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("signatories[%d].name", i),
				Message: "name is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	OwnerName     string      `json:"owner_name"`
	FormType      string      `json:"form_type"`
	CustomerName  string      `json:"customer_name"`
	EquipmentName string      `json:"equipment_name"`
	SerialNumber  string      `json:"serial_number"`
	JobOrder      string      `json:"job_order"`
	ReportDate    *string     `json:"report_date,omitempty"`
	Status        string      `json:"status"`
	Sections      []Section   `json:"sections"`
	Signatories   []Signatory `json:"signatories"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

type RecordFilter struct {
	// Search & Filter
	OwnerID   *string `json:"owner_id,omitempty"`
	FormType  *string `json:"form_type,omitempty"`
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // created_at, report_date, customer_name, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

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

	if f.FormType != nil && !IsValidFormType(*f.FormType) {
		errs = append(errs, validator.ValidationError{
			Field:   "form_type",
			Message: "form_type must be one of: engine_inspection, pump_commissioning, motor_teardown, service_report",
		})
	}

	if f.Status != nil {
		validStatuses := []string{StatusDraft, StatusSubmitted, StatusApproved}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: draft, submitted, approved",
			})
		}
	}

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

	if f.SortBy != "" {
		validSortFields := []string{"created_at", "report_date", "customer_name", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: created_at, report_date, customer_name, status",
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

type ListRecordResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// FolderResponse is one form-type folder with its record count.
type FolderResponse struct {
	FormType    string `json:"form_type"`
	Label       string `json:"label"`
	RecordCount int64  `json:"record_count"`
}
