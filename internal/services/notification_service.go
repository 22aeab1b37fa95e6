package services

import (
	"context"
	"log"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type NotificationService interface {
	// NotifyTaskEvent проверяет, что получатель принадлежит компании,
	// прежде чем писать строку: кросс-tenant ссылка — нарушение целостности.
	NotifyTaskEvent(ctx context.Context, companyID, userID, taskID int64, kind models.NotificationKind, text string) error
	ListForUser(ctx context.Context, userID, companyID int64, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID, companyID int64) error
	MarkAllRead(ctx context.Context, userID, companyID int64) error
}

type notificationService struct {
	repo   repositories.NotificationRepository
	access repositories.AccessRepository
}

func NewNotificationService(repo repositories.NotificationRepository, access repositories.AccessRepository) NotificationService {
	return &notificationService{repo: repo, access: access}
}

func (s *notificationService) NotifyTaskEvent(ctx context.Context, companyID, userID, taskID int64, kind models.NotificationKind, text string) error {
	ok, err := s.access.UserBelongsToCompany(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("[notify][deny] user=%d not in company=%d", userID, companyID)
		return ErrAccessDenied
	}
	n := &models.Notification{
		CompanyID: companyID,
		UserID:    userID,
		TaskID:    &taskID,
		Kind:      kind,
		Text:      text,
	}
	return s.repo.Store(ctx, n)
}

func (s *notificationService) ListForUser(ctx context.Context, userID, companyID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, companyID, unreadOnly, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID, companyID int64) error {
	return mapRepoErr(s.repo.MarkRead(ctx, id, userID, companyID))
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID, companyID int64) error {
	return s.repo.MarkAllRead(ctx, userID, companyID)
}
