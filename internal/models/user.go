package models

import "time"

type User struct {
	ID        int64  `json:"id"`
	CompanyID *int64 `json:"company_id"` // NULL до приглашения в компанию
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`

	// Telegram-идентичность
	TelegramID       int64   `json:"telegram_id"`
	TelegramUsername *string `json:"telegram_username,omitempty"`
	PhotoURL         *string `json:"photo_url,omitempty"`

	// консольный вход для админа/директора
	PasswordHash string `json:"-"`

	NotifyTelegram bool       `json:"notify_telegram"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CallerInfo — результат резолва идентичности запроса (tenant resolver).
type CallerInfo struct {
	UserID    int64
	CompanyID *int64
	Role      string
}
