package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type BusinessProcessRepository interface {
	Store(ctx context.Context, p *models.BusinessProcess) error
	GetByID(ctx context.Context, id, companyID int64) (*models.BusinessProcess, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.BusinessProcess, error)
	Update(ctx context.Context, p *models.BusinessProcess) error
	Delete(ctx context.Context, id, companyID int64) error
}

type businessProcessRepository struct {
	db *sql.DB
}

func NewBusinessProcessRepository(db *sql.DB) BusinessProcessRepository {
	return &businessProcessRepository{db: db}
}

func (r *businessProcessRepository) Store(ctx context.Context, p *models.BusinessProcess) error {
	const q = `
		INSERT INTO business_processes (company_id, name, description, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,TRUE,NOW(),NOW())
		RETURNING id, is_active, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		p.CompanyID, p.Name, p.Description,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func (r *businessProcessRepository) GetByID(ctx context.Context, id, companyID int64) (*models.BusinessProcess, error) {
	p := &models.BusinessProcess{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, description, is_active, created_at, updated_at
		FROM business_processes WHERE id=$1 AND company_id=$2`, id, companyID,
	).Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *businessProcessRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.BusinessProcess, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, name, description, is_active, created_at, updated_at
		FROM business_processes
		WHERE company_id=$1
		ORDER BY name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BusinessProcess
	for rows.Next() {
		var p models.BusinessProcess
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *businessProcessRepository) Update(ctx context.Context, p *models.BusinessProcess) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE business_processes SET name=$1, description=$2, is_active=$3, updated_at=NOW()
		WHERE id=$4 AND company_id=$5`,
		p.Name, p.Description, p.IsActive, p.ID, p.CompanyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *businessProcessRepository) Delete(ctx context.Context, id, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM business_processes WHERE id=$1 AND company_id=$2`, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
