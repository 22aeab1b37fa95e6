package services

import (
	"context"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type ChatBindingService interface {
	Bind(ctx context.Context, b *models.ChatBinding) (*models.ChatBinding, error)
	List(ctx context.Context, companyID int64) ([]models.ChatBinding, error)
	Unbind(ctx context.Context, id, companyID int64) error
}

type chatBindingService struct {
	repo repositories.ChatBindingRepository
}

func NewChatBindingService(repo repositories.ChatBindingRepository) ChatBindingService {
	return &chatBindingService{repo: repo}
}

func (s *chatBindingService) Bind(ctx context.Context, b *models.ChatBinding) (*models.ChatBinding, error) {
	if err := s.repo.Store(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *chatBindingService) List(ctx context.Context, companyID int64) ([]models.ChatBinding, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *chatBindingService) Unbind(ctx context.Context, id, companyID int64) error {
	return mapRepoErr(s.repo.Delete(ctx, id, companyID))
}
