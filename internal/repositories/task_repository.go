package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tasktracker/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id, companyID int64) (*models.Task, error)
	FindAll(ctx context.Context, companyID int64, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, id, companyID int64, to models.TaskStatus) error
	UpdateAssignee(ctx context.Context, id, companyID, assigneeID int64) error

	// Мягкое удаление/восстановление + строка журнала — одной транзакцией.
	SoftDelete(ctx context.Context, id, companyID, actorID int64) error
	Restore(ctx context.Context, id, companyID, actorID int64) error
	ListActivity(ctx context.Context, taskID int64, limit int) ([]models.TaskActivity, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, company_id, creator_id, assignee_id, process_id, title, description,
       due_date, priority, status, deleted_at, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.CreatorID, &t.AssigneeID, &t.ProcessID,
		&t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status,
		&t.DeletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	const q = `
		INSERT INTO tasks (
			company_id, creator_id, assignee_id, process_id, title, description,
			due_date, priority, status, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		task.CompanyID, task.CreatorID, task.AssigneeID, task.ProcessID,
		task.Title, task.Description, task.DueDate, task.Priority, task.Status,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

// FindByID всегда скоупится по company_id: чужая задача неотличима от
// несуществующей.
func (r *taskRepository) FindByID(ctx context.Context, id, companyID int64) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND company_id = $2`, id, companyID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *taskRepository) FindAll(ctx context.Context, companyID int64, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argID := 2

	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("assignee_id = $%d", argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	if filter.CreatorID != nil {
		conditions = append(conditions, fmt.Sprintf("creator_id = $%d", argID))
		args = append(args, *filter.CreatorID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.ProcessID != nil {
		conditions = append(conditions, fmt.Sprintf("process_id = $%d", argID))
		args = append(args, *filter.ProcessID)
		argID++
	}
	if filter.TagID != nil {
		conditions = append(conditions, fmt.Sprintf("id IN (SELECT task_id FROM task_tags WHERE tag_id = $%d)", argID))
		args = append(args, *filter.TagID)
		argID++
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", argID))
		args = append(args, *filter.DueBefore)
		argID++
	}
	if filter.DueAfter != nil {
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", argID))
		args = append(args, *filter.DueAfter)
		argID++
	}
	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}

	baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	const q = `
		UPDATE tasks SET
			assignee_id=$1, process_id=$2, title=$3, description=$4, due_date=$5,
			priority=$6, status=$7, updated_at=NOW()
		WHERE id=$8 AND company_id=$9 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q,
		task.AssigneeID, task.ProcessID, task.Title, task.Description, task.DueDate,
		task.Priority, task.Status, task.ID, task.CompanyID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id, companyID int64, to models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3 AND deleted_at IS NULL`,
		to, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, id, companyID, assigneeID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assignee_id=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3 AND deleted_at IS NULL`,
		assigneeID, id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) SoftDelete(ctx context.Context, id, companyID, actorID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deleted sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT deleted_at FROM tasks WHERE id=$1 AND company_id=$2 FOR UPDATE`,
		id, companyID,
	).Scan(&deleted)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if deleted.Valid {
		// повторное удаление не перезаписывает deleted_at
		return ErrAlreadyDeleted
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO task_activity (task_id, actor_id, action, detail, created_at)
		 VALUES ($1,$2,'deleted','',NOW())`, id, actorID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *taskRepository) Restore(ctx context.Context, id, companyID, actorID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deleted sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT deleted_at FROM tasks WHERE id=$1 AND company_id=$2 FOR UPDATE`,
		id, companyID,
	).Scan(&deleted)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !deleted.Valid {
		return ErrNotDeleted
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET deleted_at=NULL, updated_at=NOW() WHERE id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO task_activity (task_id, actor_id, action, detail, created_at)
		 VALUES ($1,$2,'restored','',NOW())`, id, actorID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *taskRepository) ListActivity(ctx context.Context, taskID int64, limit int) ([]models.TaskActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, actor_id, action, detail, created_at
		FROM task_activity
		WHERE task_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, taskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskActivity
	for rows.Next() {
		var a models.TaskActivity
		if err := rows.Scan(&a.ID, &a.TaskID, &a.ActorID, &a.Action, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
