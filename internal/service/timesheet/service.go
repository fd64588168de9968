package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
	"github.com/tritonmech/fieldforms-backend-go/internal/repository/postgresql"
)

type TimeSheetService interface {
	Save(ctx context.Context, actorID string, actorRole user.Role, req timesheet.SaveTimeSheetRequest) (timesheet.TimeSheetResponse, error)
	Get(ctx context.Context, actorID string, actorRole user.Role, id string) (timesheet.TimeSheetResponse, error)
	List(ctx context.Context, actorID string, actorRole user.Role, filter timesheet.TimeSheetFilter) (timesheet.ListTimeSheetResponse, error)
	Delete(ctx context.Context, actorID string, actorRole user.Role, id string) error
}

type timeSheetServiceImpl struct {
	db   *database.DB
	repo timesheet.TimeSheetRepository
}

func NewTimeSheetService(db *database.DB, repo timesheet.TimeSheetRepository) TimeSheetService {
	return &timeSheetServiceImpl{db: db, repo: repo}
}

// buildEntries converts inputs into entries with derived fields computed
// server-side. Client-sent totals are ignored; sort order comes from list
// position.
func buildEntries(inputs []timesheet.TimeEntryInput) []timesheet.TimeEntry {
	entries := make([]timesheet.TimeEntry, 0, len(inputs))
	for i, input := range inputs {
		entry := timesheet.TimeEntry{
			StartTime:        input.StartTime,
			StopTime:         input.StopTime,
			JobDescription:   input.JobDescription,
			TravelHours:      validator.ParseDecimal(input.TravelHours),
			SortOrder:        i,
			ExpenseBreakfast: input.ExpenseBreakfast,
			ExpenseLunch:     input.ExpenseLunch,
			ExpenseDinner:    input.ExpenseDinner,
			ExpenseTransport: input.ExpenseTransport,
			ExpenseLodging:   input.ExpenseLodging,
			ExpenseOthers:    input.ExpenseOthers,
			ExpenseRemarks:   input.ExpenseRemarks,
		}
		if input.EntryDate != nil && *input.EntryDate != "" {
			if parsed, valid := validator.IsValidDate(*input.EntryDate); valid {
				entry.EntryDate = &parsed
			}
		}

		split := SplitShift(entry.StartTime, entry.StopTime)
		entry.TotalHours = split.TotalHours()
		entry.ExpenseTotal = ExpenseTotal(entry)

		entries = append(entries, entry)
	}
	return entries
}

func canEdit(sheet timesheet.TimeSheet, actorID string, actorRole user.Role) error {
	supervisor := actorRole == user.RoleSupervisor || actorRole == user.RoleAdmin
	if sheet.OwnerID != actorID && !supervisor {
		return timesheet.ErrUnauthorized
	}
	if sheet.Status == timesheet.StatusApproved && !supervisor {
		return timesheet.ErrAlreadyApproved
	}
	return nil
}

// Save implements TimeSheetService. An empty req.ID creates a sheet owned
// by the actor; otherwise the stored sheet is replaced wholesale. Derived
// totals are recomputed either way and written only when they changed.
func (s *timeSheetServiceImpl) Save(ctx context.Context, actorID string, actorRole user.Role, req timesheet.SaveTimeSheetRequest) (timesheet.TimeSheetResponse, error) {
	entries := buildEntries(req.Entries)
	totalRegular, grandTotal := SheetTotals(entries)

	var weekEnding *time.Time
	if req.WeekEnding != nil && *req.WeekEnding != "" {
		if parsed, valid := validator.IsValidDate(*req.WeekEnding); valid {
			weekEnding = &parsed
		}
	}

	if req.ID == "" {
		status := timesheet.StatusDraft
		if req.Status != nil {
			status = strings.ToLower(*req.Status)
		}
		if status == timesheet.StatusApproved && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
			return timesheet.TimeSheetResponse{}, timesheet.ErrUnauthorized
		}

		sheet := timesheet.TimeSheet{
			OwnerID:           actorID,
			JobOrder:          req.JobOrder,
			CustomerName:      req.CustomerName,
			WeekEnding:        weekEnding,
			Status:            status,
			TotalRegularHours: totalRegular,
			GrandTotalHours:   grandTotal,
			Entries:           entries,
		}

		var created timesheet.TimeSheet
		err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			var err error
			created, err = s.repo.Create(txCtx, sheet)
			return err
		})
		if err != nil {
			return timesheet.TimeSheetResponse{}, fmt.Errorf("failed to create time sheet: %w", err)
		}

		return toResponse(created), nil
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.TimeSheetResponse{}, err
	}
	if err := canEdit(existing, actorID, actorRole); err != nil {
		return timesheet.TimeSheetResponse{}, err
	}

	status := existing.Status
	if req.Status != nil {
		status = strings.ToLower(*req.Status)
	}
	if status == timesheet.StatusApproved && existing.Status != timesheet.StatusApproved &&
		actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return timesheet.TimeSheetResponse{}, timesheet.ErrUnauthorized
	}

	updated := existing
	updated.JobOrder = req.JobOrder
	updated.CustomerName = req.CustomerName
	updated.WeekEnding = weekEnding
	updated.Status = status
	updated.Entries = entries

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.repo.Replace(txCtx, updated); err != nil {
			return err
		}
		// Totals are written only when the recomputed values differ
		if totalRegular != existing.TotalRegularHours || grandTotal != existing.GrandTotalHours {
			return s.repo.UpdateTotals(txCtx, updated.ID, totalRegular, grandTotal)
		}
		return nil
	})
	if err != nil {
		return timesheet.TimeSheetResponse{}, fmt.Errorf("failed to update time sheet: %w", err)
	}

	saved, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.TimeSheetResponse{}, err
	}

	return toResponse(saved), nil
}

// Get implements TimeSheetService.
func (s *timeSheetServiceImpl) Get(ctx context.Context, actorID string, actorRole user.Role, id string) (timesheet.TimeSheetResponse, error) {
	sheet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimeSheetResponse{}, err
	}

	if sheet.OwnerID != actorID && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return timesheet.TimeSheetResponse{}, timesheet.ErrUnauthorized
	}

	return toResponse(sheet), nil
}

// List implements TimeSheetService. Technicians only ever see their own
// sheets regardless of the filter they send.
func (s *timeSheetServiceImpl) List(ctx context.Context, actorID string, actorRole user.Role, filter timesheet.TimeSheetFilter) (timesheet.ListTimeSheetResponse, error) {
	if actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		filter.OwnerID = &actorID
	}

	sheets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimeSheetResponse{}, err
	}

	resp := timesheet.ListTimeSheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TimeSheets: make([]timesheet.TimeSheetResponse, 0, len(sheets)),
	}
	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	for _, sheet := range sheets {
		resp.TimeSheets = append(resp.TimeSheets, toResponse(sheet))
	}

	return resp, nil
}

// Delete implements TimeSheetService. Supervisors and admins only.
func (s *timeSheetServiceImpl) Delete(ctx context.Context, actorID string, actorRole user.Role, id string) error {
	if actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return timesheet.ErrUnauthorized
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return s.repo.Delete(txCtx, id)
	})
}

func toResponse(sheet timesheet.TimeSheet) timesheet.TimeSheetResponse {
	resp := timesheet.TimeSheetResponse{
		ID:                sheet.ID,
		OwnerID:           sheet.OwnerID,
		JobOrder:          sheet.JobOrder,
		CustomerName:      sheet.CustomerName,
		Status:            sheet.Status,
		TotalRegularHours: fmt.Sprintf("%.2f", sheet.TotalRegularHours),
		GrandTotalHours:   fmt.Sprintf("%.2f", sheet.GrandTotalHours),
		Entries:           make([]timesheet.TimeEntryResponse, 0, len(sheet.Entries)),
		CreatedAt:         sheet.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         sheet.UpdatedAt.Format(time.RFC3339),
	}
	if sheet.OwnerName != nil {
		resp.OwnerName = *sheet.OwnerName
	}
	if sheet.WeekEnding != nil {
		formatted := sheet.WeekEnding.Format("2006-01-02")
		resp.WeekEnding = &formatted
	}
	for _, entry := range sheet.Entries {
		entryResp := timesheet.TimeEntryResponse{
			ID:               entry.ID,
			StartTime:        entry.StartTime,
			StopTime:         entry.StopTime,
			JobDescription:   entry.JobDescription,
			TravelHours:      entry.TravelHours,
			SortOrder:        entry.SortOrder,
			ExpenseBreakfast: entry.ExpenseBreakfast,
			ExpenseLunch:     entry.ExpenseLunch,
			ExpenseDinner:    entry.ExpenseDinner,
			ExpenseTransport: entry.ExpenseTransport,
			ExpenseLodging:   entry.ExpenseLodging,
			ExpenseOthers:    entry.ExpenseOthers,
			ExpenseRemarks:   entry.ExpenseRemarks,
			TotalHours:       fmt.Sprintf("%.2f", entry.TotalHours),
			ExpenseTotal:     entry.ExpenseTotal,
		}
		if entry.EntryDate != nil {
			formatted := entry.EntryDate.Format("2006-01-02")
			entryResp.EntryDate = &formatted
		}
		resp.Entries = append(resp.Entries, entryResp)
	}
	return resp
}
