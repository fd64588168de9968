package record

// SectionSpec names a section of a form type and the field labels it
// accepts. The registry is the single source of truth for what each form
// type looks like; saves are validated against it so the stored sections
// stay typed.
type SectionSpec struct {
	Title       string
	FieldLabels []string
}

// FolderLabels maps form types to their display names.
var FolderLabels = map[string]string{
	FormTypeEngineInspection:  "Engine Inspection",
	FormTypePumpCommissioning: "Pump Commissioning",
	FormTypeMotorTeardown:     "Motor Teardown",
	FormTypeServiceReport:     "Service Report",
}

// FormRegistry holds the section layout of every form type.
var FormRegistry = map[string][]SectionSpec{
	FormTypeEngineInspection: {
		{Title: "General Condition", FieldLabels: []string{
			"Visual Inspection", "Oil Level", "Coolant Level", "Belt Condition", "Mounting Bolts",
		}},
		{Title: "Running Checks", FieldLabels: []string{
			"Idle RPM", "Operating Temperature", "Oil Pressure", "Exhaust Color", "Unusual Noise",
		}},
		{Title: "Findings", FieldLabels: []string{
			"Defects Found", "Recommended Action", "Parts Required",
		}},
	},
	FormTypePumpCommissioning: {
		{Title: "Pre-Start Checks", FieldLabels: []string{
			"Alignment Verified", "Rotation Direction", "Suction Valve Open", "Seal Flush Connected", "Baseplate Grouting",
		}},
		{Title: "Performance Test", FieldLabels: []string{
			"Suction Pressure", "Discharge Pressure", "Flow Rate", "Motor Current", "Vibration Reading", "Bearing Temperature",
		}},
		{Title: "Sign-Off", FieldLabels: []string{
			"Test Duration", "Result", "Remarks",
		}},
	},
	FormTypeMotorTeardown: {
		{Title: "As-Received", FieldLabels: []string{
			"Nameplate Data", "External Condition", "Shaft End Play", "Insulation Resistance",
		}},
		{Title: "Disassembly Findings", FieldLabels: []string{
			"Bearing Condition DE", "Bearing Condition NDE", "Rotor Condition", "Stator Winding Condition", "Air Gap Measurements",
		}},
		{Title: "Repair Scope", FieldLabels: []string{
			"Work Required", "Parts Required", "Estimated Hours",
		}},
	},
	FormTypeServiceReport: {
		{Title: "Work Performed", FieldLabels: []string{
			"Problem Reported", "Work Description", "Parts Used",
		}},
		{Title: "Completion", FieldLabels: []string{
			"Equipment Status", "Follow-Up Required", "Customer Remarks",
		}},
	},
}

// IsValidFormType reports whether the form type exists in the registry.
func IsValidFormType(formType string) bool {
	_, ok := FormRegistry[formType]
	return ok
}

// ValidateSections checks submitted sections against the form type's
// registry: every section title and field label must be one the form type
// declares. Sections may be partial (not every registered field filled)
// but never carry fields the form does not know.
func ValidateSections(formType string, sections []Section) error {
	specs, ok := FormRegistry[formType]
	if !ok {
		return ErrUnknownFormType
	}

	labelsByTitle := make(map[string]map[string]struct{}, len(specs))
	for _, spec := range specs {
		labels := make(map[string]struct{}, len(spec.FieldLabels))
		for _, label := range spec.FieldLabels {
			labels[label] = struct{}{}
		}
		labelsByTitle[spec.Title] = labels
	}

	for _, section := range sections {
		labels, ok := labelsByTitle[section.Title]
		if !ok {
			return ErrUnknownSection
		}
		for _, field := range section.Fields {
			if _, ok := labels[field.Label]; !ok {
				return ErrUnknownSection
			}
		}
	}

	return nil
}
