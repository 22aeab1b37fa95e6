package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type TagRepository interface {
	Store(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id, companyID int64) (*models.Tag, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.Tag, error)
	Delete(ctx context.Context, id, companyID int64) error

	Attach(ctx context.Context, taskID, tagID int64) error
	Detach(ctx context.Context, taskID, tagID int64) error
	ListByTask(ctx context.Context, taskID int64) ([]int64, error)
}

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Store(ctx context.Context, tag *models.Tag) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO tags (company_id, name, color)
		VALUES ($1,$2,$3)
		ON CONFLICT (company_id, name) DO UPDATE SET color = EXCLUDED.color
		RETURNING id`,
		tag.CompanyID, tag.Name, tag.Color,
	).Scan(&tag.ID)
}

func (r *tagRepository) GetByID(ctx context.Context, id, companyID int64) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, name, color FROM tags WHERE id=$1 AND company_id=$2`,
		id, companyID,
	).Scan(&t.ID, &t.CompanyID, &t.Name, &t.Color)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tagRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, name, color FROM tags WHERE company_id=$1 ORDER BY name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tagRepository) Delete(ctx context.Context, id, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tagRepository) Attach(ctx context.Context, taskID, tagID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_tags (task_id, tag_id) VALUES ($1,$2)
		ON CONFLICT DO NOTHING`, taskID, tagID)
	return err
}

func (r *tagRepository) Detach(ctx context.Context, taskID, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM task_tags WHERE task_id=$1 AND tag_id=$2`, taskID, tagID)
	return err
}

func (r *tagRepository) ListByTask(ctx context.Context, taskID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_id FROM task_tags WHERE task_id=$1 ORDER BY tag_id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
