package repository

import (
	"context"
	"fmt"

	"complaint-desk/internal/data/entity"
	"complaint-desk/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ComplaintFilter narrows FindAll. Nil fields are ignored.
type ComplaintFilter struct {
	UserID   *uuid.UUID
	Status   *entity.ComplaintStatus
	Priority *entity.ComplaintPriority
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ComplaintWithAuthor, error)
	FindAll(ctx context.Context, filter ComplaintFilter) ([]*entity.ComplaintWithAuthor, error)
	// UpdateStatus overwrites the status unconditionally and returns the
	// updated row with its author, or nil when the id does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ComplaintStatus) (*entity.ComplaintWithAuthor, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type complaintRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewComplaintRepository(db database.PgxIface, log *zap.Logger) ComplaintRepository {
	return &complaintRepository{
		db:  db,
		log: log,
	}
}

const complaintJoinColumns = `c.id, c.title, c.description, c.category, c.priority, c.status,
	       c.user_id, c.created_at, c.updated_at, u.username, u.email`

// Create inserts a new complaint record into the database
func (cr *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	query := `
		INSERT INTO complaints (id, title, description, category, priority,
		                       status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := cr.db.Exec(ctx, query,
		complaint.ID,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Priority,
		complaint.Status,
		complaint.UserID,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to create complaint",
			zap.Error(err),
			zap.String("user_id", complaint.UserID.String()),
			zap.String("title", complaint.Title),
		)
		return fmt.Errorf("create complaint: %w", err)
	}

	return nil
}

func (cr *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ComplaintWithAuthor, error) {
	query := `
		SELECT ` + complaintJoinColumns + `
		FROM complaints c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	complaint, err := cr.scanOne(cr.db.QueryRow(ctx, query, id))
	if err != nil {
		cr.log.Error("Failed to find complaint by ID",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
		)
		return nil, fmt.Errorf("find complaint by ID %s: %w", id.String(), err)
	}

	return complaint, nil
}

// FindAll returns complaints newest first, joined with the author.
func (cr *complaintRepository) FindAll(ctx context.Context, filter ComplaintFilter) ([]*entity.ComplaintWithAuthor, error) {
	query := `
		SELECT ` + complaintJoinColumns + `
		FROM complaints c
		JOIN users u ON u.id = c.user_id
		WHERE 1=1
	`

	args := []any{}
	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND c.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil {
		query += fmt.Sprintf(" AND c.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}

	query += " ORDER BY c.created_at DESC"

	rows, err := cr.db.Query(ctx, query, args...)
	if err != nil {
		cr.log.Error("Failed to list complaints", zap.Error(err))
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var complaints []*entity.ComplaintWithAuthor
	for rows.Next() {
		var c entity.ComplaintWithAuthor
		err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.Category,
			&c.Priority,
			&c.Status,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.AuthorUsername,
			&c.AuthorEmail,
		)
		if err != nil {
			cr.log.Error("Failed to scan complaint row", zap.Error(err))
			return nil, fmt.Errorf("scan complaint row: %w", err)
		}
		complaints = append(complaints, &c)
	}

	if err := rows.Err(); err != nil {
		cr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate complaint rows: %w", err)
	}

	return complaints, nil
}

// UpdateStatus is a single-row UPDATE. Two concurrent updates race at
// last-write-wins granularity, the row always ends in one of the two states.
func (cr *complaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ComplaintStatus) (*entity.ComplaintWithAuthor, error) {
	query := `
		UPDATE complaints
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := cr.db.Exec(ctx, query, id, status)
	if err != nil {
		cr.log.Error("Failed to update complaint status",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update complaint %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return nil, nil
	}

	return cr.FindByID(ctx, id)
}

func (cr *complaintRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM complaints WHERE id = $1`

	result, err := cr.db.Exec(ctx, query, id)
	if err != nil {
		cr.log.Error("Failed to delete complaint",
			zap.Error(err),
			zap.String("complaint_id", id.String()),
		)
		return false, fmt.Errorf("delete complaint %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	cr.log.Info("Complaint deleted", zap.String("complaint_id", id.String()))
	return true, nil
}

func (cr *complaintRepository) scanOne(row pgx.Row) (*entity.ComplaintWithAuthor, error) {
	var c entity.ComplaintWithAuthor
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Priority,
		&c.Status,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.AuthorUsername,
		&c.AuthorEmail,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}
