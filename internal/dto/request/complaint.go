package request

type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required,min=5"`
	Description string `json:"description" validate:"required,min=20"`
	Category    string `json:"category" validate:"required,oneof=Product Service Support"`
	Priority    string `json:"priority" validate:"required,oneof=Low Medium High"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Resolved"`
}
