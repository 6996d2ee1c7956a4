// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"complaint-desk/internal/adaptor"
	"complaint-desk/internal/data/repository"
	"complaint-desk/internal/pages"
	"complaint-desk/internal/usecase"
	"complaint-desk/pkg/mailer"
	"complaint-desk/pkg/middleware"
	"complaint-desk/pkg/token"
	"complaint-desk/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds all wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// Token service and notification dispatcher
	tokens := token.NewService(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour)
	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPSettings{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		Username: config.SMTP.User,
		Password: config.SMTP.Password,
		From:     config.SMTP.From,
		TLSMode:  config.SMTP.TLSMode,
	})
	notifier := usecase.NewMailNotifier(smtpMailer, logger)

	// Page templates
	templates, err := pages.ParseTemplates(logger)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Services and handlers
	service := usecase.NewService(repo, tokens, notifier, config, logger)
	handler := adaptor.NewHandler(service, templates, tokens, config, logger)

	// Access control gate shared by API and page routes
	access := middleware.NewAccess(tokens, repo.User, logger)

	// Setup router
	router := setupRouter(handler, access, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	access *middleware.Access,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth)
	wirePages(r, handler.Page, access)
	wireComplaints(r, handler.Complaint, access)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
