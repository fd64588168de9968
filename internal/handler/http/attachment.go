package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/attachment"
	"github.com/tritonmech/fieldforms-backend-go/internal/handler/http/response"
	attachmentService "github.com/tritonmech/fieldforms-backend-go/internal/service/attachment"
)

type AttachmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
}

type AttachmentHandlerImpl struct {
	attachmentService attachmentService.AttachmentService
}

func NewAttachmentHandler(service attachmentService.AttachmentService) AttachmentHandler {
	return &AttachmentHandlerImpl{attachmentService: service}
}

// List implements AttachmentHandler.
func (h *AttachmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	timeSheetID := r.URL.Query().Get("daily_time_sheet_id")
	if timeSheetID == "" {
		response.BadRequest(w, "daily_time_sheet_id query parameter is required", nil)
		return
	}

	list, err := h.attachmentService.List(r.Context(), actorID, actorRole, timeSheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Save implements AttachmentHandler. The multipart payload carries the full
// reconciliation state: ids to delete, kept attachments with their captions,
// and new files paired with their captions by position.
func (h *AttachmentHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// 1. Parse multipart form (32MB in-memory cap, larger files spill to disk)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		slog.Error("Save attachments multipart parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := attachment.SaveAttachmentsRequest{
		TimeSheetID: r.FormValue("daily_time_sheet_id"),
	}

	// 2. Decode the JSON-encoded reconciliation fields
	if raw := r.FormValue("attachments_to_delete"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.AttachmentsToDelete); err != nil {
			slog.Error("Save attachments decode error", "field", "attachments_to_delete", "error", err)
			response.BadRequest(w, "attachments_to_delete must be a JSON array of ids", nil)
			return
		}
	}
	if raw := r.FormValue("existing_attachments"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.ExistingAttachments); err != nil {
			slog.Error("Save attachments decode error", "field", "existing_attachments", "error", err)
			response.BadRequest(w, "existing_attachments must be a JSON array", nil)
			return
		}
	}

	// 3. Collect new files; captions pair with files by position
	descriptions := r.MultipartForm.Value["attachment_descriptions"]
	for i, header := range r.MultipartForm.File["attachment_files"] {
		file, err := header.Open()
		if err != nil {
			slog.Error("Save attachments file open error", "filename", header.Filename, "error", err)
			response.BadRequest(w, "Failed to read uploaded file", nil)
			return
		}
		defer file.Close()

		upload := attachment.FileUpload{
			File:   file,
			Header: header,
		}
		if i < len(descriptions) {
			upload.Description = descriptions[i]
		}
		req.NewFiles = append(req.NewFiles, upload)
	}

	// 4. Validate DTO
	if err := req.Validate(); err != nil {
		slog.Error("Save attachments validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// 5. Call service
	list, err := h.attachmentService.Save(r.Context(), actorID, actorRole, req)
	if err != nil {
		slog.Error("Save attachments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attachments saved",
		"time_sheet_id", req.TimeSheetID,
		"deleted", len(req.AttachmentsToDelete),
		"added", len(req.NewFiles),
		"user_id", actorID,
	)
	response.SuccessWithMessage(w, "Attachments saved successfully", list)
}
