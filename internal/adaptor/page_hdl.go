package adaptor

import (
	"net/http"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/pages"
	"complaint-desk/internal/usecase"
	"complaint-desk/pkg/utils"

	"go.uber.org/zap"
)

// PageHandler serves the server-rendered pages. Auth enforcement happens in
// the RequirePage middleware; handlers here can assume a valid identity.
type PageHandler struct {
	complaints usecase.ComplaintService
	templates  *pages.Templates
	log        *zap.Logger
}

func NewPageHandler(complaints usecase.ComplaintService, templates *pages.Templates, log *zap.Logger) *PageHandler {
	return &PageHandler{
		complaints: complaints,
		templates:  templates,
		log:        log,
	}
}

// Landing handles GET /
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.templates.RenderLanding(w, http.StatusOK, pages.ViewData{Title: "Complaint Management"})
}

// AuthSelection handles GET /auth-selection
func (h *PageHandler) AuthSelection(w http.ResponseWriter, r *http.Request) {
	h.templates.RenderAuthSelection(w, http.StatusOK, pages.ViewData{Title: "Choose your role"})
}

// UserDashboard handles GET /user/dashboard
func (h *PageHandler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, entity.RoleUser, "My complaints")
}

// AdminDashboard handles GET /admin/dashboard
func (h *PageHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, entity.RoleAdmin, "Admin dashboard")
}

func (h *PageHandler) renderDashboard(w http.ResponseWriter, r *http.Request, role entity.UserRole, title string) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	view := pages.DashboardViewData{Title: title, Role: string(role)}

	complaints, err := h.complaints.List(r.Context(), userID, role,
		r.URL.Query().Get("status"), r.URL.Query().Get("priority"))
	if err != nil {
		h.log.Error("Failed to load dashboard complaints", zap.Error(err), zap.String("user_id", userID.String()))
		view.Error = "Failed to fetch complaints."
		h.templates.RenderDashboard(w, http.StatusInternalServerError, view)
		return
	}

	view.Complaints = complaints
	h.templates.RenderDashboard(w, http.StatusOK, view)
}
