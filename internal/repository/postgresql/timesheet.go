package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
)

type timeSheetRepository struct {
	db *database.DB
}

func NewTimeSheetRepository(db *database.DB) timesheet.TimeSheetRepository {
	return &timeSheetRepository{db: db}
}

// Create implements timesheet.TimeSheetRepository.
func (r *timeSheetRepository) Create(ctx context.Context, sheet timesheet.TimeSheet) (timesheet.TimeSheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_sheets (owner_id, job_order, customer_name, week_ending, status, total_regular_hours, grand_total_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sheet.OwnerID,
		sheet.JobOrder,
		sheet.CustomerName,
		sheet.WeekEnding,
		sheet.Status,
		sheet.TotalRegularHours,
		sheet.GrandTotalHours,
	).Scan(&sheet.ID, &sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return timesheet.TimeSheet{}, fmt.Errorf("failed to create time sheet: %w", err)
	}

	if err := r.insertEntries(ctx, sheet.ID, sheet.Entries); err != nil {
		return timesheet.TimeSheet{}, err
	}

	entries, err := r.listEntries(ctx, sheet.ID)
	if err != nil {
		return timesheet.TimeSheet{}, err
	}
	sheet.Entries = entries

	return sheet, nil
}

// GetByID implements timesheet.TimeSheetRepository.
func (r *timeSheetRepository) GetByID(ctx context.Context, id string) (timesheet.TimeSheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.owner_id, t.job_order, t.customer_name, t.week_ending, t.status,
			   t.total_regular_hours, t.grand_total_hours, t.created_at, t.updated_at,
			   u.full_name AS owner_name
		FROM time_sheets t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE t.id = $1
	`

	var sheet timesheet.TimeSheet
	err := q.QueryRow(ctx, query, id).Scan(
		&sheet.ID, &sheet.OwnerID, &sheet.JobOrder, &sheet.CustomerName, &sheet.WeekEnding, &sheet.Status,
		&sheet.TotalRegularHours, &sheet.GrandTotalHours, &sheet.CreatedAt, &sheet.UpdatedAt,
		&sheet.OwnerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeSheet{}, timesheet.ErrTimeSheetNotFound
		}
		return timesheet.TimeSheet{}, fmt.Errorf("failed to get time sheet: %w", err)
	}

	entries, err := r.listEntries(ctx, id)
	if err != nil {
		return timesheet.TimeSheet{}, err
	}
	sheet.Entries = entries

	return sheet, nil
}

// Replace implements timesheet.TimeSheetRepository. The header is updated
// and the entry list swapped wholesale; callers run this inside a
// transaction so a failed swap leaves the stored sheet untouched. Sheet
// totals are not touched here, UpdateTotals writes them when they change.
func (r *timeSheetRepository) Replace(ctx context.Context, sheet timesheet.TimeSheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_sheets
		SET job_order = $1, customer_name = $2, week_ending = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query,
		sheet.JobOrder,
		sheet.CustomerName,
		sheet.WeekEnding,
		sheet.Status,
		sheet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimeSheetNotFound
	}

	if _, err := q.Exec(ctx, `DELETE FROM time_entries WHERE time_sheet_id = $1`, sheet.ID); err != nil {
		return fmt.Errorf("failed to clear time entries: %w", err)
	}

	return r.insertEntries(ctx, sheet.ID, sheet.Entries)
}

// UpdateTotals implements timesheet.TimeSheetRepository.
func (r *timeSheetRepository) UpdateTotals(ctx context.Context, id string, totalRegular, grandTotal float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_sheets
		SET total_regular_hours = $1, grand_total_hours = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, totalRegular, grandTotal, id)
	if err != nil {
		return fmt.Errorf("failed to update time sheet totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimeSheetNotFound
	}
	return nil
}

// List implements timesheet.TimeSheetRepository.
func (r *timeSheetRepository) List(ctx context.Context, filter timesheet.TimeSheetFilter) ([]timesheet.TimeSheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.OwnerID != nil && *filter.OwnerID != "" {
		baseWhere += fmt.Sprintf(" AND t.owner_id = $%d", argIdx)
		args = append(args, *filter.OwnerID)
		argIdx++
	}
	if filter.JobOrder != nil && *filter.JobOrder != "" {
		baseWhere += fmt.Sprintf(" AND t.job_order ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.JobOrder+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.week_ending >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.week_ending <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM time_sheets t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time sheets: %w", err)
	}

	// Build ORDER BY
	orderByField := "t.created_at"
	switch filter.SortBy {
	case "week_ending":
		orderByField = "t.week_ending"
	case "job_order":
		orderByField = "t.job_order"
	case "status":
		orderByField = "t.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT t.id, t.owner_id, t.job_order, t.customer_name, t.week_ending, t.status,
			   t.total_regular_hours, t.grand_total_hours, t.created_at, t.updated_at,
			   u.full_name AS owner_name
		FROM time_sheets t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time sheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.TimeSheet
	for rows.Next() {
		var sheet timesheet.TimeSheet
		err := rows.Scan(
			&sheet.ID, &sheet.OwnerID, &sheet.JobOrder, &sheet.CustomerName, &sheet.WeekEnding, &sheet.Status,
			&sheet.TotalRegularHours, &sheet.GrandTotalHours, &sheet.CreatedAt, &sheet.UpdatedAt,
			&sheet.OwnerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}

	return sheets, total, nil
}

// Delete implements timesheet.TimeSheetRepository.
func (r *timeSheetRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM time_entries WHERE time_sheet_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete time entries: %w", err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM time_sheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimeSheetNotFound
	}
	return nil
}

func (r *timeSheetRepository) insertEntries(ctx context.Context, sheetID string, entries []timesheet.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			time_sheet_id, entry_date, start_time, stop_time, job_description,
			travel_hours, sort_order,
			expense_breakfast, expense_lunch, expense_dinner,
			expense_transport, expense_lodging, expense_others, expense_remarks,
			total_hours, expense_total
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`
	for _, entry := range entries {
		_, err := q.Exec(ctx, query,
			sheetID,
			entry.EntryDate,
			entry.StartTime,
			entry.StopTime,
			entry.JobDescription,
			entry.TravelHours,
			entry.SortOrder,
			entry.ExpenseBreakfast,
			entry.ExpenseLunch,
			entry.ExpenseDinner,
			entry.ExpenseTransport,
			entry.ExpenseLodging,
			entry.ExpenseOthers,
			entry.ExpenseRemarks,
			entry.TotalHours,
			entry.ExpenseTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert time entry: %w", err)
		}
	}
	return nil
}

func (r *timeSheetRepository) listEntries(ctx context.Context, sheetID string) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, time_sheet_id, entry_date, start_time, stop_time, job_description,
			   travel_hours, sort_order,
			   expense_breakfast, expense_lunch, expense_dinner,
			   expense_transport, expense_lodging, expense_others, expense_remarks,
			   total_hours, expense_total, created_at, updated_at
		FROM time_entries
		WHERE time_sheet_id = $1
		ORDER BY sort_order ASC
	`

	rows, err := q.Query(ctx, query, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimeEntry
	for rows.Next() {
		var entry timesheet.TimeEntry
		err := rows.Scan(
			&entry.ID, &entry.TimeSheetID, &entry.EntryDate, &entry.StartTime, &entry.StopTime, &entry.JobDescription,
			&entry.TravelHours, &entry.SortOrder,
			&entry.ExpenseBreakfast, &entry.ExpenseLunch, &entry.ExpenseDinner,
			&entry.ExpenseTransport, &entry.ExpenseLodging, &entry.ExpenseOthers, &entry.ExpenseRemarks,
			&entry.TotalHours, &entry.ExpenseTotal, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
