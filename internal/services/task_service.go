package services

import (
	"context"
	"errors"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
// Все операции скоупятся по companyID вызывающего.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id, companyID int64) (*models.Task, error)
	GetAll(ctx context.Context, companyID int64, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id, companyID int64, updateData *models.Task) (*models.Task, error)
	UpdateStatus(ctx context.Context, id, companyID int64, to models.TaskStatus) (*models.Task, error)
	UpdateAssignee(ctx context.Context, id, companyID, assigneeID int64) (*models.Task, error)
	SoftDelete(ctx context.Context, id, companyID, actorID int64) error
	Restore(ctx context.Context, id, companyID, actorID int64) error
	Activity(ctx context.Context, id, companyID int64, limit int) ([]models.TaskActivity, error)
}

type taskService struct {
	repo repositories.TaskRepository
	tags repositories.TagRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, tags repositories.TagRepository) TaskService {
	return &taskService{repo: repo, tags: tags}
}

func IsAllowedTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.StatusNew, models.StatusInProgress, models.StatusDone, models.StatusCancelled:
		return true
	}
	return false
}

func IsTransitionAllowed(from, to models.TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.StatusNew:
		return to == models.StatusInProgress || to == models.StatusCancelled
	case models.StatusInProgress:
		return to == models.StatusDone || to == models.StatusCancelled
	case models.StatusDone, models.StatusCancelled:
		return false
	}
	return false
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrAlreadyDeleted), errors.Is(err, repositories.ErrNotDeleted):
		return ErrAlreadyInTargetState
	}
	return err
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusNew
	}
	if task.Priority == "" {
		task.Priority = models.PriorityNormal
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id, companyID int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	tagIDs, err := s.tags.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.TagIDs = tagIDs
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context, companyID int64, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, companyID, filter)
}

func (s *taskService) Update(ctx context.Context, id, companyID int64, updateData *models.Task) (*models.Task, error) {
	existing, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	existing.AssigneeID = updateData.AssigneeID
	existing.ProcessID = updateData.ProcessID
	existing.Title = updateData.Title
	existing.Description = updateData.Description
	existing.DueDate = updateData.DueDate
	existing.Priority = updateData.Priority

	if updateData.Status != existing.Status {
		if !IsAllowedTaskStatus(updateData.Status) || !IsTransitionAllowed(existing.Status, updateData.Status) {
			return nil, ErrIllegalTransition
		}
		existing.Status = updateData.Status
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, mapRepoErr(err)
	}
	return existing, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id, companyID int64, to models.TaskStatus) (*models.Task, error) {
	current, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !IsAllowedTaskStatus(to) || !IsTransitionAllowed(current.Status, to) {
		return nil, ErrIllegalTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, companyID, to); err != nil {
		return nil, mapRepoErr(err)
	}
	return s.GetByID(ctx, id, companyID)
}

func (s *taskService) UpdateAssignee(ctx context.Context, id, companyID, assigneeID int64) (*models.Task, error) {
	if err := s.repo.UpdateAssignee(ctx, id, companyID, assigneeID); err != nil {
		return nil, mapRepoErr(err)
	}
	return s.GetByID(ctx, id, companyID)
}

func (s *taskService) SoftDelete(ctx context.Context, id, companyID, actorID int64) error {
	return mapRepoErr(s.repo.SoftDelete(ctx, id, companyID, actorID))
}

func (s *taskService) Restore(ctx context.Context, id, companyID, actorID int64) error {
	return mapRepoErr(s.repo.Restore(ctx, id, companyID, actorID))
}

func (s *taskService) Activity(ctx context.Context, id, companyID int64, limit int) ([]models.TaskActivity, error) {
	// задача обязана принадлежать компании вызывающего
	if _, err := s.repo.FindByID(ctx, id, companyID); err != nil {
		return nil, mapRepoErr(err)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListActivity(ctx, id, limit)
}
