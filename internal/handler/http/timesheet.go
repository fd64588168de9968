package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/handler/http/response"
	timesheetService "github.com/tritonmech/fieldforms-backend-go/internal/service/timesheet"
)

type TimeSheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TimeSheetHandlerImpl struct {
	timeSheetService timesheetService.TimeSheetService
}

func NewTimeSheetHandler(service timesheetService.TimeSheetService) TimeSheetHandler {
	return &TimeSheetHandlerImpl{timeSheetService: service}
}

// Create implements TimeSheetHandler.
func (h *TimeSheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.SaveTimeSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create time sheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("Create time sheet validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	sheet, err := h.timeSheetService.Save(r.Context(), actorID, actorRole, req)
	if err != nil {
		slog.Error("Create time sheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Time sheet created", "time_sheet_id", sheet.ID, "user_id", actorID)
	response.Created(w, "Time sheet created successfully", sheet)
}

// Update implements TimeSheetHandler. The sheet is replaced wholesale with
// the submitted payload.
func (h *TimeSheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.SaveTimeSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update time sheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		slog.Error("Update time sheet validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	sheet, err := h.timeSheetService.Save(r.Context(), actorID, actorRole, req)
	if err != nil {
		slog.Error("Update time sheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Time sheet updated", "time_sheet_id", sheet.ID, "user_id", actorID)
	response.SuccessWithMessage(w, "Time sheet updated successfully", sheet)
}

// Get implements TimeSheetHandler.
func (h *TimeSheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	sheet, err := h.timeSheetService.Get(r.Context(), actorID, actorRole, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sheet)
}

// List implements TimeSheetHandler. Filters come from query parameters.
func (h *TimeSheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := timeSheetFilterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.timeSheetService.List(r.Context(), actorID, actorRole, filter)
	if err != nil {
		slog.Error("List time sheets service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.TimeSheets, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Delete implements TimeSheetHandler.
func (h *TimeSheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.timeSheetService.Delete(r.Context(), actorID, actorRole, id); err != nil {
		slog.Error("Delete time sheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Time sheet deleted", "time_sheet_id", id, "user_id", actorID)
	response.Success(w, "Time sheet deleted successfully")
}

func timeSheetFilterFromQuery(r *http.Request) timesheet.TimeSheetFilter {
	query := r.URL.Query()
	filter := timesheet.TimeSheetFilter{
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}

	optional := func(name string) *string {
		if value := query.Get(name); value != "" {
			return &value
		}
		return nil
	}
	filter.OwnerID = optional("owner_id")
	filter.JobOrder = optional("job_order")
	filter.StartDate = optional("start_date")
	filter.EndDate = optional("end_date")
	filter.Status = optional("status")

	return filter
}
