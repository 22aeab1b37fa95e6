package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task represents the structure of a task in the system.
type Task struct {
	ID          int64        `json:"id"`
	CompanyID   int64        `json:"company_id"`
	CreatorID   int64        `json:"creator_id"`
	AssigneeID  int64        `json:"assignee_id"`
	ProcessID   *int64       `json:"process_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	TagIDs      []int64      `json:"tag_ids,omitempty"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
// Все условия собираются в параметризованные $n-клаузы.
type TaskFilter struct {
	AssigneeID     *int64
	CreatorID      *int64
	Status         *TaskStatus
	TagID          *int64
	ProcessID      *int64
	DueBefore      *time.Time
	DueAfter       *time.Time
	IncludeDeleted bool
}

type Comment struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChecklistItem struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	TaskID    int64     `json:"task_id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"is_done"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Tag struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

// TaskActivity — строка журнала действий по задаче (пишется в одной
// транзакции с изменением).
type TaskActivity struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"` // created|status|assigned|deleted|restored
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
