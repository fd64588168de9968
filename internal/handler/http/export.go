package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/auth"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/handler/http/response"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/jwt"
	exportService "github.com/tritonmech/fieldforms-backend-go/internal/service/export"
)

type ExportHandler interface {
	TimeSheetPDF(w http.ResponseWriter, r *http.Request)
	RecordPDF(w http.ResponseWriter, r *http.Request)
	ExportToken(w http.ResponseWriter, r *http.Request)
}

type ExportHandlerImpl struct {
	exportService exportService.ExportService
	jwtService    jwt.Service
	userRepo      user.UserRepository
}

func NewExportHandler(exportSvc exportService.ExportService, jwtService jwt.Service, userRepo user.UserRepository) ExportHandler {
	return &ExportHandlerImpl{
		exportService: exportSvc,
		jwtService:    jwtService,
		userRepo:      userRepo,
	}
}

// resolveActor accepts either a short-lived export token in the query string
// (so browsers can open download links directly) or a regular access token.
func (h *ExportHandlerImpl) resolveActor(r *http.Request) (string, user.Role, error) {
	if token := r.URL.Query().Get("token"); token != "" {
		userID, err := h.jwtService.ValidateExportToken(token)
		if err != nil {
			return "", "", auth.ErrInvalidToken
		}
		found, err := h.userRepo.GetByID(r.Context(), userID)
		if err != nil {
			return "", "", err
		}
		return found.ID, found.Role, nil
	}
	return actorFromContext(r)
}

// TimeSheetPDF implements ExportHandler.
func (h *ExportHandlerImpl) TimeSheetPDF(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := h.resolveActor(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	content, filename, err := h.exportService.TimeSheetPDF(r.Context(), actorID, actorRole, id)
	if err != nil {
		slog.Error("Time sheet PDF export error", "time_sheet_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Time sheet exported", "time_sheet_id", id, "user_id", actorID)
	writePDF(w, content, filename)
}

// RecordPDF implements ExportHandler.
func (h *ExportHandlerImpl) RecordPDF(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := h.resolveActor(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	content, filename, err := h.exportService.RecordPDF(r.Context(), actorID, actorRole, id)
	if err != nil {
		slog.Error("Record PDF export error", "record_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Record exported", "record_id", id, "user_id", actorID)
	writePDF(w, content, filename)
}

// ExportToken implements ExportHandler: issues a short-lived token the
// frontend appends to PDF URLs it hands to the browser.
func (h *ExportHandlerImpl) ExportToken(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateExportToken(actorID)
	if err != nil {
		slog.Error("Export token generation error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

func writePDF(w http.ResponseWriter, content []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
