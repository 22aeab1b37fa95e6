package models

import "time"

type NotificationKind string

const (
	NotifyTaskAssigned NotificationKind = "task_assigned"
	NotifyTaskStatus   NotificationKind = "task_status"
	NotifyTaskComment  NotificationKind = "task_comment"
	NotifyTaskDue      NotificationKind = "task_due"
)

type Notification struct {
	ID        int64            `json:"id"`
	CompanyID int64            `json:"company_id"`
	UserID    int64            `json:"user_id"`
	TaskID    *int64           `json:"task_id,omitempty"`
	Kind      NotificationKind `json:"kind"`
	Text      string           `json:"text"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

type Feedback struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"subject"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Attachment — файл, прикреплённый к задаче. Содержимое лежит на диске
// под files.root_dir, в БД только метаданные.
type Attachment struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"company_id"`
	TaskID     int64     `json:"task_id"`
	UploaderID int64     `json:"uploader_id"`
	FileName   string    `json:"file_name"`
	StorageKey string    `json:"-"` // uuid-имя на диске, наружу не отдаём
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}
