package usecase

import (
	"context"
	"fmt"
	"time"

	"complaint-desk/internal/data/entity"
	"complaint-desk/internal/data/repository"
	"complaint-desk/internal/dto/request"
	"complaint-desk/internal/dto/response"
	"complaint-desk/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ComplaintService interface {
	Submit(ctx context.Context, userID uuid.UUID, req *request.CreateComplaintRequest) (*response.ComplaintResponse, error)
	List(ctx context.Context, requesterID uuid.UUID, requesterRole entity.UserRole, statusFilter, priorityFilter string) ([]*response.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *request.UpdateStatusRequest) (*response.ComplaintResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type complaintService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewComplaintService(
	repo *repository.Repository,
	notifier Notifier,
	log *zap.Logger,
) ComplaintService {
	return &complaintService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Submit validates and persists a new complaint with status Pending, then
// notifies the author and one admin best-effort.
func (s *complaintService) Submit(ctx context.Context, userID uuid.UUID, req *request.CreateComplaintRequest) (*response.ComplaintResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Complaint validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	// 2. Create complaint entity
	now := time.Now()
	complaint := &entity.Complaint{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.ComplaintCategory(req.Category),
		Priority:    entity.ComplaintPriority(req.Priority),
		Status:      entity.StatusPending,
		UserID:      userID,
	}

	// 3. Persist
	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		s.log.Error("Failed to create complaint", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to submit complaint")
	}

	// 4. Notify author and one admin. Lookup failures only cost the
	// notification, never the submission.
	author, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to load author for notification", zap.Error(err), zap.String("user_id", userID.String()))
	}
	admin, err := s.repo.User.FindFirstAdmin(ctx)
	if err != nil {
		s.log.Warn("Failed to load admin for notification", zap.Error(err))
	}
	s.notifier.ComplaintSubmitted(author, admin, complaint)

	s.log.Info("Complaint submitted",
		zap.String("complaint_id", complaint.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("priority", string(complaint.Priority)))

	return response.ComplaintToResponse(complaint), nil
}

// List returns complaints newest first. A plain user only ever sees their
// own complaints and the filters are ignored; an admin sees all complaints,
// optionally narrowed by exact status/priority match.
func (s *complaintService) List(ctx context.Context, requesterID uuid.UUID, requesterRole entity.UserRole, statusFilter, priorityFilter string) ([]*response.ComplaintResponse, error) {
	var filter repository.ComplaintFilter

	switch requesterRole {
	case entity.RoleAdmin:
		if statusFilter != "" && statusFilter != "all" {
			status := entity.ComplaintStatus(statusFilter)
			filter.Status = &status
		}
		if priorityFilter != "" && priorityFilter != "all" {
			priority := entity.ComplaintPriority(priorityFilter)
			filter.Priority = &priority
		}
	case entity.RoleUser:
		filter.UserID = &requesterID
	default:
		s.log.Warn("List with unknown role", zap.String("role", string(requesterRole)))
		return nil, ErrNotFound
	}

	complaints, err := s.repo.Complaint.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list complaints", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch complaints")
	}

	result := make([]*response.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		result = append(result, response.ComplaintWithAuthorToResponse(c))
	}

	return result, nil
}

// UpdateStatus overwrites the status unconditionally, whatever the current
// value. The admin is always notified; the author only when the new status
// is "In Progress" or "Resolved", not on reversion to "Pending".
func (s *complaintService) UpdateStatus(ctx context.Context, id uuid.UUID, req *request.UpdateStatusRequest) (*response.ComplaintResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Status validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	newStatus := entity.ComplaintStatus(req.Status)

	// 2. Overwrite
	complaint, err := s.repo.Complaint.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		s.log.Error("Failed to update status", zap.Error(err), zap.String("complaint_id", id.String()))
		return nil, fmt.Errorf("failed to update complaint status")
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	// 3. Notify
	admin, err := s.repo.User.FindFirstAdmin(ctx)
	if err != nil {
		s.log.Warn("Failed to load admin for notification", zap.Error(err))
	}
	notifyAuthor := newStatus == entity.StatusInProgress || newStatus == entity.StatusResolved
	s.notifier.StatusChanged(admin, complaint, notifyAuthor)

	s.log.Info("Complaint status updated",
		zap.String("complaint_id", id.String()),
		zap.String("status", string(newStatus)))

	return response.ComplaintWithAuthorToResponse(complaint), nil
}

// Delete permanently removes a complaint. No notification is sent.
func (s *complaintService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Complaint.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete complaint", zap.Error(err), zap.String("complaint_id", id.String()))
		return fmt.Errorf("failed to delete complaint")
	}
	if !deleted {
		return ErrNotFound
	}

	return nil
}
