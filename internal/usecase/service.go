package usecase

import (
	"time"

	"complaint-desk/internal/data/repository"
	"complaint-desk/pkg/token"
	"complaint-desk/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Complaint ComplaintService
}

func NewService(
	repo *repository.Repository,
	tokens *token.Service,
	notifier Notifier,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	otpExpiry := time.Duration(config.OTP.ExpiryMinutes) * time.Minute

	return &Service{
		Auth:      NewAuthService(repo, tokens, notifier, otpExpiry, log),
		Complaint: NewComplaintService(repo, notifier, log),
	}
}
