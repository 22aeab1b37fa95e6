package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type CommentRepository interface {
	Store(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id, companyID int64) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID, companyID int64) ([]models.Comment, error)
	UpdateText(ctx context.Context, id, companyID int64, text string) error
	Delete(ctx context.Context, id, companyID int64) error
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Store(ctx context.Context, comment *models.Comment) error {
	const q = `
		INSERT INTO comments (company_id, task_id, author_id, text, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		comment.CompanyID, comment.TaskID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id, companyID int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, task_id, author_id, text, created_at, updated_at
		FROM comments WHERE id=$1 AND company_id=$2`, id, companyID,
	).Scan(&c.ID, &c.CompanyID, &c.TaskID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID, companyID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, task_id, author_id, text, created_at, updated_at
		FROM comments
		WHERE task_id=$1 AND company_id=$2
		ORDER BY created_at ASC, id ASC`, taskID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.TaskID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentRepository) UpdateText(ctx context.Context, id, companyID int64, text string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET text=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3`,
		text, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
