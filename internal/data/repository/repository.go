package repository

import (
	"complaint-desk/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Complaint ComplaintRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Complaint: NewComplaintRepository(db, log),
	}
}
