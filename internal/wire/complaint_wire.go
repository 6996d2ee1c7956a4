package wire

import (
	"complaint-desk/internal/adaptor"
	"complaint-desk/internal/data/entity"
	"complaint-desk/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireComplaints(r chi.Router, complaintHandler *adaptor.ComplaintHandler, access *middleware.Access) {
	r.Route("/api/complaints", func(r chi.Router) {
		// Submission is user-only; listing is shared
		r.With(access.RequireAPI(entity.RoleUser)).Post("/", complaintHandler.Create)
		r.With(access.RequireAPI(entity.RoleUser, entity.RoleAdmin)).Get("/", complaintHandler.List)

		// Triage operations are admin-only
		r.With(access.RequireAPI(entity.RoleAdmin)).Patch("/{id}", complaintHandler.UpdateStatus)
		r.With(access.RequireAPI(entity.RoleAdmin)).Delete("/{id}", complaintHandler.Delete)
	})
}
