package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type FeedbackRepository interface {
	Store(ctx context.Context, fb *models.Feedback) error
	ListByCompany(ctx context.Context, companyID int64, limit int) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Store(ctx context.Context, fb *models.Feedback) error {
	const q = `
		INSERT INTO feedback (company_id, user_id, subject, text, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		fb.CompanyID, fb.UserID, fb.Subject, fb.Text,
	).Scan(&fb.ID, &fb.CreatedAt)
}

func (r *feedbackRepository) ListByCompany(ctx context.Context, companyID int64, limit int) ([]models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, user_id, subject, text, created_at
		FROM feedback
		WHERE company_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.CompanyID, &fb.UserID, &fb.Subject, &fb.Text, &fb.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}
