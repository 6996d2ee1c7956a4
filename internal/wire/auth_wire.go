package wire

import (
	"complaint-desk/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// All auth routes are public; the verification gate lives in the
	// services, not the router.
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)
	r.Get("/signup", authHandler.ShowSignup)
	r.Post("/signup", authHandler.Signup)
	r.Get("/verify-email", authHandler.ShowVerify)
	r.Post("/verify-email", authHandler.Verify)
	r.Post("/logout", authHandler.Logout)
}
