package record

import (
	"testing"
)

func TestValidateSections(t *testing.T) {
	tests := []struct {
		name     string
		formType string
		sections []Section
		wantErr  error
	}{
		{
			name:     "unknown form type",
			formType: "boiler_inspection",
			sections: nil,
			wantErr:  ErrUnknownFormType,
		},
		{
			name:     "empty sections ok",
			formType: FormTypeServiceReport,
			sections: nil,
			wantErr:  nil,
		},
		{
			name:     "valid section and fields",
			formType: FormTypeServiceReport,
			sections: []Section{
				{Title: "Work Performed", Fields: []Field{
					{Label: "Problem Reported", Value: "seal leak"},
					{Label: "Work Description", Value: "replaced mechanical seal"},
				}},
			},
			wantErr: nil,
		},
		{
			name:     "partial section ok",
			formType: FormTypeEngineInspection,
			sections: []Section{
				{Title: "Findings", Fields: []Field{
					{Label: "Defects Found", Value: "none"},
				}},
			},
			wantErr: nil,
		},
		{
			name:     "section from another form type",
			formType: FormTypeServiceReport,
			sections: []Section{
				{Title: "Pre-Start Checks", Fields: nil},
			},
			wantErr: ErrUnknownSection,
		},
		{
			name:     "unregistered field label",
			formType: FormTypeMotorTeardown,
			sections: []Section{
				{Title: "As-Received", Fields: []Field{
					{Label: "Paint Color", Value: "blue"},
				}},
			},
			wantErr: ErrUnknownSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSections(tt.formType, tt.sections)
			if err != tt.wantErr {
				t.Errorf("ValidateSections(%q) error = %v, want %v", tt.formType, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidFormType(t *testing.T) {
	for formType := range FolderLabels {
		if !IsValidFormType(formType) {
			t.Errorf("IsValidFormType(%q) = false, want true", formType)
		}
	}
	if IsValidFormType("") || IsValidFormType("daily_time_sheet") {
		t.Error("IsValidFormType accepted a type outside the registry")
	}
}
