package entity

import "github.com/google/uuid"

type ComplaintCategory string

const (
	CategoryProduct ComplaintCategory = "Product"
	CategoryService ComplaintCategory = "Service"
	CategorySupport ComplaintCategory = "Support"
)

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
)

type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

func (s ComplaintStatus) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusResolved
}

// Complaint references its submitting user by id. Status transitions are
// unordered, any state can be overwritten with any other.
type Complaint struct {
	Base
	Title       string            `db:"title"`
	Description string            `db:"description"`
	Category    ComplaintCategory `db:"category"`
	Priority    ComplaintPriority `db:"priority"`
	Status      ComplaintStatus   `db:"status"`
	UserID      uuid.UUID         `db:"user_id"`
}

// ComplaintWithAuthor is the list/read shape: the complaint joined with the
// author's contact fields.
type ComplaintWithAuthor struct {
	Complaint
	AuthorUsername string `db:"author_username"`
	AuthorEmail    string `db:"author_email"`
}
