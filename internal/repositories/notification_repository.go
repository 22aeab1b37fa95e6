package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type NotificationRepository interface {
	Store(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID, companyID int64, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID, companyID int64) error
	MarkAllRead(ctx context.Context, userID, companyID int64) error
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Store(ctx context.Context, n *models.Notification) error {
	const q = `
		INSERT INTO notifications (company_id, user_id, task_id, kind, text, is_read, created_at)
		VALUES ($1,$2,$3,$4,$5,FALSE,NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		n.CompanyID, n.UserID, n.TaskID, n.Kind, n.Text,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID, companyID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	q := `
		SELECT id, company_id, user_id, task_id, kind, text, is_read, created_at
		FROM notifications
		WHERE user_id=$1 AND company_id=$2`
	if unreadOnly {
		q += ` AND is_read=FALSE`
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT $3`

	rows, err := r.db.QueryContext(ctx, q, userID, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.UserID, &n.TaskID, &n.Kind, &n.Text, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE id=$1 AND user_id=$2 AND company_id=$3`,
		id, userID, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID, companyID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE user_id=$1 AND company_id=$2 AND is_read=FALSE`,
		userID, companyID)
	return err
}
