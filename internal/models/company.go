package models

import "time"

type CompanyPlan string

const (
	PlanFree CompanyPlan = "free"
	PlanPro  CompanyPlan = "pro"
)

type Company struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	DirectorID int64       `json:"director_id"`
	Plan       CompanyPlan `json:"plan"`
	// id сотрудников (заполняется агрегатом в репозитории)
	EmployeeIDs []int64   `json:"employee_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BusinessProcess — именованный регламент/воркфлоу компании, на который
// могут ссылаться задачи.
type BusinessProcess struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChatBinding — привязка компании к Telegram-группе.
type ChatBinding struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Provider  string    `json:"provider"` // всегда "telegram"
	ChatID    int64     `json:"chat_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

const ChatProviderTelegram = "telegram"
