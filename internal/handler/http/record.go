package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/handler/http/response"
	recordService "github.com/tritonmech/fieldforms-backend-go/internal/service/record"
)

type RecordHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Folders(w http.ResponseWriter, r *http.Request)
}

type RecordHandlerImpl struct {
	recordService recordService.RecordService
}

func NewRecordHandler(service recordService.RecordService) RecordHandler {
	return &RecordHandlerImpl{recordService: service}
}

// Create implements RecordHandler.
func (h *RecordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req record.SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("Create record validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.recordService.Create(r.Context(), actorID, actorRole, req)
	if err != nil {
		slog.Error("Create record service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Record created", "record_id", created.ID, "form_type", created.FormType, "user_id", actorID)
	response.Created(w, "Record created successfully", created)
}

// Update implements RecordHandler.
func (h *RecordHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req record.SaveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		slog.Error("Update record validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	updated, err := h.recordService.Update(r.Context(), actorID, actorRole, req)
	if err != nil {
		slog.Error("Update record service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Record updated", "record_id", updated.ID, "user_id", actorID)
	response.SuccessWithMessage(w, "Record updated successfully", updated)
}

// Get implements RecordHandler.
func (h *RecordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	found, err := h.recordService.Get(r.Context(), actorID, actorRole, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements RecordHandler.
func (h *RecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := recordFilterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.recordService.List(r.Context(), actorID, actorRole, filter)
	if err != nil {
		slog.Error("List records service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Records, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Delete implements RecordHandler.
func (h *RecordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.recordService.Delete(r.Context(), actorID, actorRole, id); err != nil {
		slog.Error("Delete record service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Record deleted", "record_id", id, "user_id", actorID)
	response.Success(w, "Record deleted successfully")
}

// Folders implements RecordHandler: one folder per form type with counts.
func (h *RecordHandlerImpl) Folders(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	folders, err := h.recordService.Folders(r.Context(), actorID, actorRole)
	if err != nil {
		slog.Error("List folders service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, folders)
}

func recordFilterFromQuery(r *http.Request) record.RecordFilter {
	query := r.URL.Query()
	filter := record.RecordFilter{
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
	filter.FormType = optional("form_type")
	filter.Status = optional("status")
	filter.StartDate = optional("start_date")
	filter.EndDate = optional("end_date")

	return filter
}
