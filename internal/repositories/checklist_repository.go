package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type ChecklistRepository interface {
	Store(ctx context.Context, item *models.ChecklistItem) error
	ListByTask(ctx context.Context, taskID, companyID int64) ([]models.ChecklistItem, error)
	SetDone(ctx context.Context, id, companyID int64, done bool) error
	Delete(ctx context.Context, id, companyID int64) error
}

type checklistRepository struct {
	db *sql.DB
}

func NewChecklistRepository(db *sql.DB) ChecklistRepository {
	return &checklistRepository{db: db}
}

func (r *checklistRepository) Store(ctx context.Context, item *models.ChecklistItem) error {
	const q = `
		INSERT INTO checklist_items (company_id, task_id, title, is_done, position, created_at)
		VALUES ($1,$2,$3,FALSE,
			COALESCE((SELECT MAX(position)+1 FROM checklist_items WHERE task_id=$2), 0),
			NOW())
		RETURNING id, position, created_at`
	return r.db.QueryRowContext(ctx, q,
		item.CompanyID, item.TaskID, item.Title,
	).Scan(&item.ID, &item.Position, &item.CreatedAt)
}

func (r *checklistRepository) ListByTask(ctx context.Context, taskID, companyID int64) ([]models.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, task_id, title, is_done, position, created_at
		FROM checklist_items
		WHERE task_id=$1 AND company_id=$2
		ORDER BY position ASC, id ASC`, taskID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChecklistItem
	for rows.Next() {
		var it models.ChecklistItem
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.TaskID, &it.Title, &it.IsDone, &it.Position, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *checklistRepository) SetDone(ctx context.Context, id, companyID int64, done bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE checklist_items SET is_done=$1 WHERE id=$2 AND company_id=$3`,
		done, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *checklistRepository) Delete(ctx context.Context, id, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM checklist_items WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
