package repositories

import (
	"context"
	"database/sql"

	"tasktracker/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id int64, role string) error
	SetActive(ctx context.Context, id int64, active bool) error
	AssignCompany(ctx context.Context, id, companyID int64) error
	TouchLogin(ctx context.Context, id int64) error

	// Telegram-настройки для уведомлений
	GetTelegramSettings(ctx context.Context, id int64) (telegramID int64, notify bool, err error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, company_id, role, is_active, first_name, last_name, email,
       telegram_id, telegram_username, photo_url, password_hash, notify_telegram,
       last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	var email sql.NullString
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Role, &u.IsActive, &u.FirstName, &u.LastName, &email,
		&u.TelegramID, &u.TelegramUsername, &u.PhotoURL, &u.PasswordHash, &u.NotifyTelegram,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (
			company_id, role, is_active, first_name, last_name, email,
			telegram_id, telegram_username, photo_url, password_hash, notify_telegram,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8,$9,$10,$11,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		user.CompanyID, user.Role, user.IsActive, user.FirstName, user.LastName, user.Email,
		user.TelegramID, user.TelegramUsername, user.PhotoURL, user.PasswordHash, user.NotifyTelegram,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *userRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE users SET
			first_name=$1, last_name=$2, email=NULLIF($3,''), telegram_username=$4,
			photo_url=$5, notify_telegram=$6, updated_at=NOW()
		WHERE id=$7`
	_, err := r.db.ExecContext(ctx, q,
		user.FirstName, user.LastName, user.Email, user.TelegramUsername,
		user.PhotoURL, user.NotifyTelegram, user.ID,
	)
	return err
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`, role, id)
	return err
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	return err
}

func (r *userRepository) AssignCompany(ctx context.Context, id, companyID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET company_id=$1, updated_at=NOW() WHERE id=$2`, companyID, id)
	return err
}

func (r *userRepository) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *userRepository) GetTelegramSettings(ctx context.Context, id int64) (int64, bool, error) {
	var telegramID int64
	var notify bool
	err := r.db.QueryRowContext(ctx,
		`SELECT telegram_id, notify_telegram FROM users WHERE id=$1`, id,
	).Scan(&telegramID, &notify)
	if err == sql.ErrNoRows {
		return 0, false, ErrNotFound
	}
	return telegramID, notify, err
}
