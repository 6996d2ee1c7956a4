package adaptor

import (
	"errors"
	"net/http"
	"net/url"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/dto/request"
	"complaint-desk/internal/pages"
	"complaint-desk/internal/usecase"
	"complaint-desk/pkg/middleware"
	"complaint-desk/pkg/token"
	"complaint-desk/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler serves the form-based auth pages. Failures re-render the
// form; success sets the session cookie and redirects by role.
type AuthHandler struct {
	service   usecase.AuthService
	templates *pages.Templates
	// cookieMaxAge mirrors the token lifetime so the cookie never
	// outlives or undercuts the session it carries.
	cookieMaxAge int
	secure       bool
	log          *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, templates *pages.Templates, tokens *token.Service, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		templates:    templates,
		cookieMaxAge: int(tokens.Expiry().Seconds()),
		secure:       config.App.Production,
		log:          log,
	}
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.templates.RenderLogin(w, http.StatusOK, pages.LoginViewData{
		Title:  "Log in",
		Notice: r.URL.Query().Get("notice"),
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.templates.RenderLogin(w, http.StatusBadRequest, pages.LoginViewData{Title: "Log in", Error: "Invalid form"})
		return
	}

	req := request.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		var ve *usecase.ValidationError
		switch {
		case errors.As(err, &ve):
			h.templates.RenderLogin(w, http.StatusBadRequest, pages.LoginViewData{
				Title: "Log in", Email: req.Email, Error: utils.FormatValidationErrors(ve.Fields)})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			h.templates.RenderLogin(w, http.StatusUnauthorized, pages.LoginViewData{
				Title: "Log in", Email: req.Email, Error: "Invalid credentials."})
		case errors.Is(err, usecase.ErrUnverified):
			// A fresh OTP was already resent; route into verification.
			http.Redirect(w, r, "/verify-email?email="+url.QueryEscape(req.Email), http.StatusSeeOther)
		default:
			h.log.Error("Login failed", zap.Error(err))
			h.templates.RenderLogin(w, http.StatusInternalServerError, pages.LoginViewData{
				Title: "Log in", Email: req.Email, Error: "An unexpected error occurred during login."})
		}
		return
	}

	h.startSession(w, r, resp.Token, resp.Role)
}

// ShowSignup handles GET /signup
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = "user"
	}
	h.templates.RenderSignup(w, http.StatusOK, pages.SignupViewData{Title: "Sign up", Role: role})
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.templates.RenderSignup(w, http.StatusBadRequest, pages.SignupViewData{Title: "Sign up", Error: "Invalid form"})
		return
	}

	req := request.SignupRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	view := pages.SignupViewData{
		Title:    "Sign up",
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}

	if err := h.service.Signup(r.Context(), &req); err != nil {
		var ve *usecase.ValidationError
		switch {
		case errors.As(err, &ve):
			view.Errors = ve.Fields
			h.templates.RenderSignup(w, http.StatusBadRequest, view)
		case errors.Is(err, usecase.ErrUserExists):
			view.Error = "User with this email or username already exists."
			h.templates.RenderSignup(w, http.StatusBadRequest, view)
		default:
			h.log.Error("Signup failed", zap.Error(err))
			view.Error = "An unexpected error occurred during signup."
			h.templates.RenderSignup(w, http.StatusInternalServerError, view)
		}
		return
	}

	// No session cookie yet: the email must be verified first.
	http.Redirect(w, r, "/verify-email?email="+url.QueryEscape(req.Email), http.StatusSeeOther)
}

// ShowVerify handles GET /verify-email
func (h *AuthHandler) ShowVerify(w http.ResponseWriter, r *http.Request) {
	h.templates.RenderVerify(w, http.StatusOK, pages.VerifyViewData{
		Title: "Verify email",
		Email: r.URL.Query().Get("email"),
	})
}

// Verify handles POST /verify-email
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.templates.RenderVerify(w, http.StatusBadRequest, pages.VerifyViewData{Title: "Verify email", Error: "Invalid form"})
		return
	}

	req := request.VerifyEmailRequest{
		Email: r.PostFormValue("email"),
		OTP:   r.PostFormValue("otp"),
	}

	view := pages.VerifyViewData{Title: "Verify email", Email: req.Email}

	resp, err := h.service.VerifyEmail(r.Context(), &req)
	if err != nil {
		var ve *usecase.ValidationError
		switch {
		case errors.As(err, &ve):
			view.Error = utils.FormatValidationErrors(ve.Fields)
			h.templates.RenderVerify(w, http.StatusBadRequest, view)
		case errors.Is(err, usecase.ErrNotFound):
			view.Error = "User not found."
			h.templates.RenderVerify(w, http.StatusNotFound, view)
		case errors.Is(err, usecase.ErrInvalidCode):
			view.Error = "Invalid OTP."
			h.templates.RenderVerify(w, http.StatusBadRequest, view)
		case errors.Is(err, usecase.ErrCodeExpired):
			view.Error = "OTP expired. Please request a new one by logging in."
			h.templates.RenderVerify(w, http.StatusBadRequest, view)
		default:
			h.log.Error("Verification failed", zap.Error(err))
			view.Error = "An unexpected error occurred during OTP verification."
			h.templates.RenderVerify(w, http.StatusInternalServerError, view)
		}
		return
	}

	h.startSession(w, r, resp.Token, resp.Role)
}

// Logout handles POST /logout. Purely client-side: the cookie is deleted,
// the token itself stays valid until expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthCookie(w, h.secure)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, sessionToken string, role entity.UserRole) {
	middleware.SetAuthCookie(w, sessionToken, h.cookieMaxAge, h.secure)

	target := "/user/dashboard"
	if role == entity.RoleAdmin {
		target = "/admin/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
