package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
)

// Regular hours window: 08:00 inclusive to 17:00 exclusive. Everything
// worked outside it counts as overtime.
const (
	windowStartMinutes = 8 * 60
	windowEndMinutes   = 17 * 60
	minutesPerDay      = 24 * 60
)

// ShiftSplit is the regular/overtime breakdown of one entry, in hours.
// Values are exact fractions of an hour; formatting is the caller's job.
type ShiftSplit struct {
	RegularHours  float64
	OvertimeHours float64
}

// TotalHours returns the full worked duration of the entry.
func (s ShiftSplit) TotalHours() float64 {
	return s.RegularHours + s.OvertimeHours
}

// parseClockMinutes converts "HH:MM" to minutes since midnight.
func parseClockMinutes(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// SplitShift splits a start/stop pair into regular and overtime hours.
// A stop at or before the start is read as crossing midnight, so the stop
// shifts forward one day; the shifted portion never overlaps the regular
// window. Missing or unparseable times yield a zero split.
func SplitShift(startTime, stopTime string) ShiftSplit {
	start, ok := parseClockMinutes(startTime)
	if !ok {
		return ShiftSplit{}
	}
	stop, ok := parseClockMinutes(stopTime)
	if !ok {
		return ShiftSplit{}
	}

	if stop <= start {
		stop += minutesPerDay
	}
	total := stop - start

	overlapStart := start
	if overlapStart < windowStartMinutes {
		overlapStart = windowStartMinutes
	}
	overlapEnd := stop
	if overlapEnd > windowEndMinutes {
		overlapEnd = windowEndMinutes
	}

	regular := 0
	if overlapEnd > overlapStart {
		regular = overlapEnd - overlapStart
	}

	return ShiftSplit{
		RegularHours:  float64(regular) / 60,
		OvertimeHours: float64(total-regular) / 60,
	}
}

// ExpenseTotal sums the entry's expense fields and formats the result as
// a 2-decimal string. Blank or unparseable fields count as zero.
func ExpenseTotal(entry timesheet.TimeEntry) string {
	sum := validator.ParseDecimal(entry.ExpenseBreakfast) +
		validator.ParseDecimal(entry.ExpenseLunch) +
		validator.ParseDecimal(entry.ExpenseDinner) +
		validator.ParseDecimal(entry.ExpenseTransport) +
		validator.ParseDecimal(entry.ExpenseLodging) +
		validator.ParseDecimal(entry.ExpenseOthers)
	return fmt.Sprintf("%.2f", sum)
}

// SheetTotals recomputes the sheet-level aggregates from its entries:
// total regular hours and the grand total across regular and overtime.
func SheetTotals(entries []timesheet.TimeEntry) (totalRegular, grandTotal float64) {
	for _, entry := range entries {
		split := SplitShift(entry.StartTime, entry.StopTime)
		totalRegular += split.RegularHours
		grandTotal += split.TotalHours()
	}
	return totalRegular, grandTotal
}
