package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
)

func TestBuildTimeSheetPDF(t *testing.T) {
	owner := "Dana Reyes"
	weekEnding := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	entryDate := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	sheet := timesheet.TimeSheet{
		ID:                "ts-1",
		OwnerName:         &owner,
		CustomerName:      "Harbor Mills",
		JobOrder:          "JO-4412",
		WeekEnding:        &weekEnding,
		Status:            timesheet.StatusSubmitted,
		TotalRegularHours: 9,
		GrandTotalHours:   11.5,
		Entries: []timesheet.TimeEntry{
			{
				EntryDate:      &entryDate,
				StartTime:      "06:00",
				StopTime:       "17:30",
				JobDescription: "Pump overhaul, replaced wear rings and mechanical seal",
				TravelHours:    1.5,
				TotalHours:     11.5,
				ExpenseTotal:   "42.75",
			},
		},
	}

	content, err := BuildTimeSheetPDF(sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(content), 1000)
}

func TestBuildRecordPDF(t *testing.T) {
	rec := record.Record{
		ID:            "rec-1",
		FormType:      record.FormTypePumpCommissioning,
		CustomerName:  "Harbor Mills",
		EquipmentName: "Boiler feed pump #2",
		SerialNumber:  "BFP-2-0091",
		JobOrder:      "JO-4412",
		Status:        record.StatusApproved,
		Sections: []record.Section{
			{Title: "Performance Test", Fields: []record.Field{
				{Label: "Discharge Pressure", Value: "12.4 bar"},
				{Label: "Flow Rate", Value: "110 m3/h"},
			}},
		},
		Signatories: []record.Signatory{
			{Name: "Dana Reyes", RoleLabel: "Technician"},
			{Name: "Sam Okafor", RoleLabel: "Supervisor"},
		},
	}

	content, err := BuildRecordPDF(rec)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Greater(t, len(content), 1000)
}
