package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

// AccessRepository — проверки "сущность существует и принадлежит компании".
// Единственная граница изоляции арендаторов: row-level security в БД нет.
type AccessRepository interface {
	UserBelongsToCompany(ctx context.Context, userID, companyID int64) (bool, error)
	TaskBelongsToCompany(ctx context.Context, taskID, companyID int64) (bool, error)
	ProcessBelongsToCompany(ctx context.Context, processID, companyID int64) (bool, error)
	ChatBindingBelongsToCompany(ctx context.Context, bindingID, companyID int64) (bool, error)
}

type accessRepository struct {
	db *sql.DB
}

func NewAccessRepository(db *sql.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *accessRepository) UserBelongsToCompany(ctx context.Context, userID, companyID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1 AND company_id=$2)`,
		userID, companyID)
}

func (r *accessRepository) TaskBelongsToCompany(ctx context.Context, taskID, companyID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id=$1 AND company_id=$2)`,
		taskID, companyID)
}

func (r *accessRepository) ProcessBelongsToCompany(ctx context.Context, processID, companyID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM business_processes WHERE id=$1 AND company_id=$2)`,
		processID, companyID)
}

func (r *accessRepository) ChatBindingBelongsToCompany(ctx context.Context, bindingID, companyID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS(SELECT 1 FROM chat_bindings WHERE id=$1 AND company_id=$2 AND provider=$3)`,
		bindingID, companyID, models.ChatProviderTelegram)
}
