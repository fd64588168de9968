package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/handler/http/response"
	userService "github.com/tritonmech/fieldforms-backend-go/internal/service/user"
)

type UserHandler interface {
	Profile(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	UploadSignature(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService userService.UserService
}

func NewUserHandler(service userService.UserService) UserHandler {
	return &UserHandlerImpl{userService: service}
}

// Profile implements UserHandler: the current user's profile.
func (h *UserHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := h.userService.Profile(r.Context(), actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// List implements UserHandler. Admin only.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	_, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	profiles, err := h.userService.List(r.Context(), actorRole)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profiles)
}

// UpdateRole implements UserHandler. Admin only.
func (h *UserHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update role decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		slog.Error("Update role validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	profile, err := h.userService.UpdateRole(r.Context(), actorRole, req)
	if err != nil {
		slog.Error("Update role service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User role updated", "target_user_id", req.ID, "role", req.Role, "user_id", actorID)
	response.SuccessWithMessage(w, "User role updated successfully", profile)
}

// UploadSignature implements UserHandler: stores the signature image that
// gets stamped onto exported PDFs.
func (h *UserHandlerImpl) UploadSignature(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := actorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Upload signature multipart parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Signature image is required", nil)
		return
	}
	defer file.Close()

	req := user.UploadSignatureRequest{
		File:       file,
		FileHeader: header,
	}
	if err := req.Validate(); err != nil {
		slog.Error("Upload signature validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	profile, err := h.userService.UploadSignature(r.Context(), actorID, req)
	if err != nil {
		slog.Error("Upload signature service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Signature uploaded", "user_id", actorID)
	response.SuccessWithMessage(w, "Signature uploaded successfully", profile)
}
