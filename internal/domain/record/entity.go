package record

import "time"

// Form types, one per folder in the forms catalogue
const (
	FormTypeEngineInspection  = "engine_inspection"
	FormTypePumpCommissioning = "pump_commissioning"
	FormTypeMotorTeardown     = "motor_teardown"
	FormTypeServiceReport     = "service_report"
)

// Record statuses
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
)

// Field is one labeled value inside a section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled group of fields. Titles and labels must match the
// form type's registry.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Signatory is a sign-off line on a record: who signed, in what capacity,
// and the stored signature image if one was applied.
type Signatory struct {
	Name         string  `json:"name"`
	RoleLabel    string  `json:"role_label"`
	SignatureURL *string `json:"signature_url,omitempty"`
}

// Record is one filled-in service form.
type Record struct {
	ID            string
	OwnerID       string
	FormType      string
	CustomerName  string
	EquipmentName string
	SerialNumber  string
	JobOrder      string
	ReportDate    *time.Time
	Status        string
	Sections      []Section
	Signatories   []Signatory
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join fields
	OwnerName *string
}
