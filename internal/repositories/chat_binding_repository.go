package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type ChatBindingRepository interface {
	Store(ctx context.Context, b *models.ChatBinding) error
	ListByCompany(ctx context.Context, companyID int64) ([]models.ChatBinding, error)
	Delete(ctx context.Context, id, companyID int64) error
	ChatIDs(ctx context.Context, companyID int64) ([]int64, error)
}

type chatBindingRepository struct {
	db *sql.DB
}

func NewChatBindingRepository(db *sql.DB) ChatBindingRepository {
	return &chatBindingRepository{db: db}
}

func (r *chatBindingRepository) Store(ctx context.Context, b *models.ChatBinding) error {
	b.Provider = models.ChatProviderTelegram
	const q = `
		INSERT INTO chat_bindings (company_id, provider, chat_id, title, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (company_id, provider, chat_id) DO UPDATE SET title = EXCLUDED.title
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		b.CompanyID, b.Provider, b.ChatID, b.Title,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *chatBindingRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.ChatBinding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_id, provider, chat_id, title, created_at
		FROM chat_bindings
		WHERE company_id=$1 AND provider=$2
		ORDER BY id`, companyID, models.ChatProviderTelegram)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChatBinding
	for rows.Next() {
		var b models.ChatBinding
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Provider, &b.ChatID, &b.Title, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *chatBindingRepository) Delete(ctx context.Context, id, companyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_bindings WHERE id=$1 AND company_id=$2 AND provider=$3`,
		id, companyID, models.ChatProviderTelegram)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *chatBindingRepository) ChatIDs(ctx context.Context, companyID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT chat_id FROM chat_bindings WHERE company_id=$1 AND provider=$2`,
		companyID, models.ChatProviderTelegram)
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
