package response

import (
	"time"

	"complaint-desk/internal/data/entity"
)

type ComplaintResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Category    entity.ComplaintCategory `json:"category"`
	Priority    entity.ComplaintPriority `json:"priority"`
	Status      entity.ComplaintStatus   `json:"status"`
	UserID      string                   `json:"user_id"`
	Author      *AuthorInfo              `json:"author,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

type AuthorInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func ComplaintToResponse(c *entity.Complaint) *ComplaintResponse {
	return &ComplaintResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
		Status:      c.Status,
		UserID:      c.UserID.String(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ComplaintWithAuthorToResponse(c *entity.ComplaintWithAuthor) *ComplaintResponse {
	resp := ComplaintToResponse(&c.Complaint)
	resp.Author = &AuthorInfo{
		Username: c.AuthorUsername,
		Email:    c.AuthorEmail,
	}
	return resp
}
