package services

import (
	"context"
	"errors"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// CommentService покрывает комментарии и чек-листы задачи. Перед любой
// записью проверяется принадлежность задачи компании вызывающего.
type CommentService interface {
	AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListComments(ctx context.Context, taskID, companyID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id, companyID, authorID int64, text string) error
	DeleteComment(ctx context.Context, id, companyID, callerID int64, elevated bool) error

	AddChecklistItem(ctx context.Context, item *models.ChecklistItem) (*models.ChecklistItem, error)
	ListChecklist(ctx context.Context, taskID, companyID int64) ([]models.ChecklistItem, error)
	ToggleChecklistItem(ctx context.Context, id, companyID int64, done bool) error
	DeleteChecklistItem(ctx context.Context, id, companyID int64) error
}

type commentService struct {
	comments  repositories.CommentRepository
	checklist repositories.ChecklistRepository
	tasks     repositories.TaskRepository
}

func NewCommentService(
	comments repositories.CommentRepository,
	checklist repositories.ChecklistRepository,
	tasks repositories.TaskRepository,
) CommentService {
	return &commentService{comments: comments, checklist: checklist, tasks: tasks}
}

func (s *commentService) taskInCompany(ctx context.Context, taskID, companyID int64) error {
	if _, err := s.tasks.FindByID(ctx, taskID, companyID); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

func (s *commentService) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := s.taskInCompany(ctx, comment.TaskID, comment.CompanyID); err != nil {
		return nil, err
	}
	if err := s.comments.Store(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, taskID, companyID int64) ([]models.Comment, error) {
	if err := s.taskInCompany(ctx, taskID, companyID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID, companyID)
}

func (s *commentService) UpdateComment(ctx context.Context, id, companyID, authorID int64, text string) error {
	existing, err := s.comments.GetByID(ctx, id, companyID)
	if err != nil {
		return mapRepoErr(err)
	}
	// чужой комментарий править нельзя
	if existing.AuthorID != authorID {
		return ErrAccessDenied
	}
	return mapRepoErr(s.comments.UpdateText(ctx, id, companyID, text))
}

func (s *commentService) DeleteComment(ctx context.Context, id, companyID, callerID int64, elevated bool) error {
	existing, err := s.comments.GetByID(ctx, id, companyID)
	if err != nil {
		return mapRepoErr(err)
	}
	if !elevated && existing.AuthorID != callerID {
		return ErrAccessDenied
	}
	return mapRepoErr(s.comments.Delete(ctx, id, companyID))
}

func (s *commentService) AddChecklistItem(ctx context.Context, item *models.ChecklistItem) (*models.ChecklistItem, error) {
	if err := s.taskInCompany(ctx, item.TaskID, item.CompanyID); err != nil {
		return nil, err
	}
	if err := s.checklist.Store(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *commentService) ListChecklist(ctx context.Context, taskID, companyID int64) ([]models.ChecklistItem, error) {
	if err := s.taskInCompany(ctx, taskID, companyID); err != nil {
		return nil, err
	}
	return s.checklist.ListByTask(ctx, taskID, companyID)
}

func (s *commentService) ToggleChecklistItem(ctx context.Context, id, companyID int64, done bool) error {
	err := s.checklist.SetDone(ctx, id, companyID, done)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *commentService) DeleteChecklistItem(ctx context.Context, id, companyID int64) error {
	return mapRepoErr(s.checklist.Delete(ctx, id, companyID))
}
