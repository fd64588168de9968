package timesheet

import (
	"context"
)

// TimeSheetRepository defines data access for time sheets. Entries are
// always written as a set belonging to their sheet; there is no
// per-entry update path.
type TimeSheetRepository interface {
	// Create inserts the sheet header and all entries
	Create(ctx context.Context, sheet TimeSheet) (TimeSheet, error)

	// GetByID retrieves a sheet with its entries in sort order
	GetByID(ctx context.Context, id string) (TimeSheet, error)

	// Replace updates the header and swaps the full entry list
	Replace(ctx context.Context, sheet TimeSheet) error

	// UpdateTotals writes the sheet-level derived totals only
	UpdateTotals(ctx context.Context, id string, totalRegular, grandTotal float64) error

	// List retrieves sheet headers with filters and pagination
	List(ctx context.Context, filter TimeSheetFilter) ([]TimeSheet, int64, error)

	// Delete removes the sheet and its entries
	Delete(ctx context.Context, id string) error
}
