package usecase

import (
	"context"
	"fmt"
	"time"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/data/repository"
	"complaint-desk/internal/dto/request"
	"complaint-desk/internal/dto/response"
	"complaint-desk/pkg/token"
	"complaint-desk/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo      *repository.Repository
	tokens    *token.Service
	notifier  Notifier
	otpExpiry time.Duration
	log       *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Service,
	notifier Notifier,
	otpExpiry time.Duration,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		notifier:  notifier,
		otpExpiry: otpExpiry,
		log:       log,
	}
}

// Signup creates an unverified account and sends the verification OTP.
// No session token is issued until the email is verified.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return NewValidationError(errs)
	}

	// 2. Check for an existing email or username
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to check email")
	}
	if existing == nil {
		existing, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
			return fmt.Errorf("failed to check username")
		}
	}
	if existing != nil {
		return ErrUserExists
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	// 4. Generate verification OTP
	otp := utils.GenerateOTP()
	otpExpires := time.Now().Add(s.otpExpiry)

	// 5. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:        req.Username,
		Email:           req.Email,
		PasswordHash:    hashedPassword,
		Role:            entity.UserRole(req.Role),
		IsVerified:      false,
		VerificationOTP: &otp,
		OTPExpiresAt:    &otpExpires,
	}

	// 6. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to create account")
	}

	// 7. Send OTP email, best-effort
	s.notifier.SignupOTP(user.Email, otp)

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return nil
}

// Login authenticates by email and password. Unknown email and wrong
// password fail identically. An unverified account never receives a token:
// a fresh OTP is generated and resent instead, and ErrUnverified is
// returned so the caller can route into the verification flow.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Unverified account: regenerate and resend OTP, withhold token
	if !user.IsVerified {
		otp := utils.GenerateOTP()
		otpExpires := time.Now().Add(s.otpExpiry)
		user.VerificationOTP = &otp
		user.OTPExpiresAt = &otpExpires
		user.UpdatedAt = time.Now()

		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to refresh OTP", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, fmt.Errorf("failed to refresh verification code")
		}

		s.notifier.LoginOTP(user.Email, otp)

		s.log.Info("Unverified login, OTP resent", zap.String("user_id", user.ID.String()))
		return nil, ErrUnverified
	}

	// 5. Issue session token
	resp, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return resp, nil
}

// VerifyEmail checks the supplied code against the stored one. On success
// the OTP fields are cleared, the account is marked verified, and a session
// token is issued.
func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify email validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for verification", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to verify email")
	}
	if user == nil {
		return nil, ErrNotFound
	}

	// 3. Check code, then expiry
	if user.VerificationOTP == nil || *user.VerificationOTP != req.OTP {
		return nil, ErrInvalidCode
	}
	if user.OTPExpiresAt == nil || user.OTPExpiresAt.Before(time.Now()) {
		return nil, ErrCodeExpired
	}

	// 4. Clear OTP fields, mark verified
	user.IsVerified = true
	user.VerificationOTP = nil
	user.OTPExpiresAt = nil
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update verification state", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to verify email")
	}

	s.log.Info("Email verified",
		zap.String("email", req.Email),
		zap.String("user_id", user.ID.String()))

	// 5. Issue session token
	return s.issueSession(user)
}

func (s *authService) issueSession(user *entity.User) (*response.AuthResponse, error) {
	tokenString, expiresAt, err := s.tokens.Issue(token.Identity{
		UserID: user.ID.String(),
		Role:   string(user.Role),
	})
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	return response.AuthToResponse(user, tokenString, expiresAt), nil
}
