package adaptor

import (
	"complaint-desk/internal/pages"
	"complaint-desk/internal/usecase"
	"complaint-desk/pkg/token"
	"complaint-desk/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Complaint *ComplaintHandler
	Page      *PageHandler
}

func NewHandler(service *usecase.Service, templates *pages.Templates, tokens *token.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, templates, tokens, config, log),
		Complaint: NewComplaintHandler(service.Complaint, log),
		Page:      NewPageHandler(service.Complaint, templates, log),
	}
}
