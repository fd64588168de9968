package timesheet

import (
	"testing"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
)

func TestSplitShift(t *testing.T) {
	tests := []struct {
		name         string
		start, stop  string
		wantRegular  float64
		wantOvertime float64
	}{
		{"full regular day", "08:00", "17:00", 9, 0},
		{"inside window", "09:00", "12:00", 3, 0},
		{"early start", "06:00", "17:00", 9, 2},
		{"late finish", "08:00", "20:00", 9, 3},
		{"hour early two late", "07:00", "19:00", 9, 3},
		{"both sides", "06:00", "20:00", 9, 5},
		{"evening only", "18:00", "22:00", 0, 4},
		{"before window only", "05:00", "07:00", 0, 2},
		{"touches window start", "07:00", "08:00", 0, 1},
		{"ends at window close", "16:00", "17:00", 1, 0},
		{"starts at window close", "17:00", "21:00", 0, 4},
		{"overnight", "22:00", "06:00", 0, 8},
		{"short overnight", "22:00", "02:00", 0, 4},
		{"overnight through morning", "16:30", "08:30", 0.5, 15.5},
		{"equal times wrap a full day", "09:00", "09:00", 8, 16},
		{"half hours", "08:30", "17:30", 8.5, 0.5},
		{"missing start", "", "17:00", 0, 0},
		{"missing stop", "08:00", "", 0, 0},
		{"both missing", "", "", 0, 0},
		{"garbage start", "8am", "17:00", 0, 0},
		{"out of range minutes", "08:60", "17:00", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitShift(tt.start, tt.stop)
			if got.RegularHours != tt.wantRegular {
				t.Errorf("SplitShift(%q, %q).RegularHours = %v, want %v", tt.start, tt.stop, got.RegularHours, tt.wantRegular)
			}
			if got.OvertimeHours != tt.wantOvertime {
				t.Errorf("SplitShift(%q, %q).OvertimeHours = %v, want %v", tt.start, tt.stop, got.OvertimeHours, tt.wantOvertime)
			}
		})
	}
}

func TestSplitShiftTotalNeverNegative(t *testing.T) {
	// Total always equals the worked duration, regular never exceeds it
	pairs := [][2]string{
		{"00:00", "23:59"}, {"08:00", "08:01"}, {"16:59", "17:00"}, {"23:00", "01:00"},
	}
	for _, p := range pairs {
		got := SplitShift(p[0], p[1])
		if got.RegularHours < 0 || got.OvertimeHours < 0 {
			t.Errorf("SplitShift(%q, %q) produced a negative component: %+v", p[0], p[1], got)
		}
	}
}

func TestExpenseTotal(t *testing.T) {
	tests := []struct {
		name  string
		entry timesheet.TimeEntry
		want  string
	}{
		{
			name: "all fields set",
			entry: timesheet.TimeEntry{
				ExpenseBreakfast: "10.50",
				ExpenseLunch:     "12",
				ExpenseDinner:    "20.25",
				ExpenseTransport: "5",
				ExpenseLodging:   "100",
				ExpenseOthers:    "0.25",
			},
			want: "148.00",
		},
		{
			name:  "all empty",
			entry: timesheet.TimeEntry{},
			want:  "0.00",
		},
		{
			name: "invalid fields count as zero",
			entry: timesheet.TimeEntry{
				ExpenseBreakfast: "abc",
				ExpenseLunch:     "12.5",
				ExpenseDinner:    "-",
			},
			want: "12.50",
		},
		{
			name: "whitespace is ignored",
			entry: timesheet.TimeEntry{
				ExpenseTransport: " 7.5 ",
				ExpenseOthers:    "2.5",
			},
			want: "10.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpenseTotal(tt.entry); got != tt.want {
				t.Errorf("ExpenseTotal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSheetTotals(t *testing.T) {
	entries := []timesheet.TimeEntry{
		{StartTime: "08:00", StopTime: "17:00"}, // 9 regular
		{StartTime: "06:00", StopTime: "18:00"}, // 9 regular, 3 OT
		{StartTime: "", StopTime: ""},           // blank row
		{StartTime: "18:00", StopTime: "20:00"}, // 2 OT
	}

	totalRegular, grandTotal := SheetTotals(entries)
	if totalRegular != 18 {
		t.Errorf("totalRegular = %v, want 18", totalRegular)
	}
	if grandTotal != 23 {
		t.Errorf("grandTotal = %v, want 23", grandTotal)
	}
}

func TestSheetTotalsRecomputeIsStable(t *testing.T) {
	// Re-running the aggregation over unchanged entries must produce the
	// same totals, so an unchanged save writes nothing new.
	entries := []timesheet.TimeEntry{
		{StartTime: "07:00", StopTime: "19:00"},
		{StartTime: "22:00", StopTime: "02:00"},
	}

	firstRegular, firstGrand := SheetTotals(entries)
	secondRegular, secondGrand := SheetTotals(entries)
	if firstRegular != secondRegular || firstGrand != secondGrand {
		t.Errorf("recompute drifted: first (%v, %v), second (%v, %v)",
			firstRegular, firstGrand, secondRegular, secondGrand)
	}
}

func TestSheetTotalsEmpty(t *testing.T) {
	totalRegular, grandTotal := SheetTotals(nil)
	if totalRegular != 0 || grandTotal != 0 {
		t.Errorf("SheetTotals(nil) = %v, %v, want 0, 0", totalRegular, grandTotal)
	}
}
