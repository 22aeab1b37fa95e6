package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"tasktracker/internal/models"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	const q = `
		INSERT INTO companies (name, director_id, plan, created_at, updated_at)
		VALUES ($1,$2,$3,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		company.Name, company.DirectorID, company.Plan,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	const q = `
		SELECT c.id, c.name, c.director_id, c.plan, c.created_at, c.updated_at,
		       COALESCE((SELECT array_agg(u.id ORDER BY u.id) FROM users u WHERE u.company_id = c.id), '{}') AS employees
		FROM companies c
		WHERE c.id = $1`
	company := &models.Company{}
	var employees pq.Int64Array
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&company.ID, &company.Name, &company.DirectorID, &company.Plan,
		&company.CreatedAt, &company.UpdatedAt, &employees,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	company.EmployeeIDs = employees
	return company, nil
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE companies SET name=$1, plan=$2, updated_at=NOW() WHERE id=$3`,
		company.Name, company.Plan, company.ID)
	return err
}
