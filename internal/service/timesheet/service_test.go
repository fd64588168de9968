package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
)

func TestBuildEntriesComputesDerivedFields(t *testing.T) {
	date := "2025-06-09"
	inputs := []timesheet.TimeEntryInput{
		{
			EntryDate:        &date,
			StartTime:        "06:00",
			StopTime:         "18:00",
			JobDescription:   "compressor rebuild",
			TravelHours:      "1.5",
			ExpenseLunch:     "12.50",
			ExpenseTransport: "30",
		},
		{
			StartTime: "",
			StopTime:  "",
		},
	}

	entries := buildEntries(inputs)

	assert.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].SortOrder)
	assert.Equal(t, 1, entries[1].SortOrder)

	// 06:00-18:00 is 12h worked, 9h inside the regular window
	assert.Equal(t, 12.0, entries[0].TotalHours)
	assert.Equal(t, "42.50", entries[0].ExpenseTotal)
	assert.Equal(t, 1.5, entries[0].TravelHours)
	assert.NotNil(t, entries[0].EntryDate)
	assert.Equal(t, "2025-06-09", entries[0].EntryDate.Format("2006-01-02"))

	// Blank rows contribute nothing
	assert.Equal(t, 0.0, entries[1].TotalHours)
	assert.Equal(t, "0.00", entries[1].ExpenseTotal)
	assert.Nil(t, entries[1].EntryDate)
}

func TestBuildEntriesIgnoresClientTravelGarbage(t *testing.T) {
	inputs := []timesheet.TimeEntryInput{
		{StartTime: "08:00", StopTime: "17:00", TravelHours: "a lot"},
	}

	entries := buildEntries(inputs)
	assert.Equal(t, 0.0, entries[0].TravelHours)
}

func TestWeeklySheetDerivedTotals(t *testing.T) {
	// A regular day plus a two-hour evening job: 9 regular hours, 11 worked
	// hours overall, and the evening entry carries its own expense total.
	inputs := []timesheet.TimeEntryInput{
		{StartTime: "08:00", StopTime: "17:00", JobDescription: "pump overhaul"},
		{
			StartTime:        "17:00",
			StopTime:         "19:00",
			JobDescription:   "site callback",
			ExpenseBreakfast: "50",
			ExpenseLunch:     "100",
		},
	}

	entries := buildEntries(inputs)
	totalRegular, grandTotal := SheetTotals(entries)

	assert.Equal(t, 9.0, totalRegular)
	assert.Equal(t, 11.0, grandTotal)
	assert.Equal(t, "0.00", entries[0].ExpenseTotal)
	assert.Equal(t, "150.00", entries[1].ExpenseTotal)
}

func TestCanEdit(t *testing.T) {
	draft := timesheet.TimeSheet{OwnerID: "u1", Status: timesheet.StatusDraft}
	approved := timesheet.TimeSheet{OwnerID: "u1", Status: timesheet.StatusApproved}

	assert.NoError(t, canEdit(draft, "u1", "technician"))
	assert.ErrorIs(t, canEdit(draft, "u2", "technician"), timesheet.ErrUnauthorized)
	assert.NoError(t, canEdit(draft, "u2", "supervisor"))
	assert.NoError(t, canEdit(draft, "u2", "admin"))

	assert.ErrorIs(t, canEdit(approved, "u1", "technician"), timesheet.ErrAlreadyApproved)
	assert.NoError(t, canEdit(approved, "u2", "supervisor"))
}
