package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type AttachmentRepository interface {
	Store(ctx context.Context, a *models.Attachment) error
	GetByID(ctx context.Context, id, companyID int64) (*models.Attachment, error)
	ListByTask(ctx context.Context, taskID, companyID int64) ([]models.Attachment, error)
	Delete(ctx context.Context, id, companyID int64) error
}

type attachmentRepository struct {
	db *sql.DB
}

func NewAttachmentRepository(db *sql.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Store(ctx context.Context, a *models.Attachment) error {
	const q = `
		INSERT INTO attachments (company_id, task_id, uploader_id, file_name, storage_key, size, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		a.CompanyID, a.TaskID, a.UploaderID, a.FileName, a.StorageKey, a.Size,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id, companyID int64) (*models.Attachment, error) {
	a := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, task_id, uploader_id, file_name, storage_key, size, created_at
		FROM attachments WHERE id=$1 AND company_id=$2`, id, companyID,
	).Scan(&a.ID, &a.CompanyID, &a.TaskID, &a.UploaderID, &a.FileName, &a.StorageKey, &a.Size, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *attachmentRepository) ListByTask(ctx context.Context, taskID, companyID int64) ([]models.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, task_id, uploader_id, file_name, storage_key, size, created_at
		FROM attachments
		WHERE task_id=$1 AND company_id=$2
		ORDER BY id`, taskID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.TaskID, &a.UploaderID, &a.FileName, &a.StorageKey, &a.Size, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attachmentRepository) Delete(ctx context.Context, id, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM attachments WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
