package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/dto/request"
	"complaint-desk/internal/usecase"
	"complaint-desk/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	service usecase.ComplaintService
	log     *zap.Logger
}

func NewComplaintHandler(service usecase.ComplaintService, log *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/complaints
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required.")
		return
	}

	var req request.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	complaint, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create complaint")
		return
	}

	utils.ResponseCreated(w, "Complaint submitted successfully!", complaint)
}

// List handles GET /api/complaints?status=&priority=
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required.")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	statusFilter := r.URL.Query().Get("status")
	priorityFilter := r.URL.Query().Get("priority")

	complaints, err := h.service.List(r.Context(), userID, entity.UserRole(role), statusFilter, priorityFilter)
	if err != nil {
		h.handleServiceError(w, err, "list complaints")
		return
	}

	utils.ResponseSuccess(w, "Complaints fetched successfully", complaints)
}

// UpdateStatus handles PATCH /api/complaints/{id}
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid complaint id", nil)
		return
	}

	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Status == "" {
		utils.ResponseBadRequest(w, "Status is required.", nil)
		return
	}

	complaint, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update complaint status")
		return
	}

	utils.ResponseSuccess(w, "Complaint status updated successfully.", complaint)
}

// Delete handles DELETE /api/complaints/{id}
func (h *ComplaintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid complaint id", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete complaint")
		return
	}

	utils.ResponseSuccess(w, "Complaint deleted successfully.", nil)
}

// handleServiceError maps service errors to the JSON error surface.
// NotFound is surfaced plainly; validation errors carry their field map;
// everything else is a generic internal failure.
func (h *ComplaintHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var ve *usecase.ValidationError

	switch {
	case errors.As(err, &ve):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed.", ve.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Complaint not found.")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Operation failed. Please try again.")
	}
}
