package wire

import (
	"complaint-desk/internal/adaptor"
	"complaint-desk/internal/data/entity"
	"complaint-desk/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wirePages(r chi.Router, pageHandler *adaptor.PageHandler, access *middleware.Access) {
	// ==================== PUBLIC PAGES ====================
	r.Get("/", pageHandler.Landing)
	r.Get("/auth-selection", pageHandler.AuthSelection)

	// ==================== PROTECTED PAGES ====================
	// Redirect-based enforcement, unlike the status-code API surface
	r.With(access.RequirePage(entity.RoleUser)).Get("/user/dashboard", pageHandler.UserDashboard)
	r.With(access.RequirePage(entity.RoleAdmin)).Get("/admin/dashboard", pageHandler.AdminDashboard)
}
