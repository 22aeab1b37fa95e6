package services

import (
	"context"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type BusinessProcessService interface {
	Create(ctx context.Context, p *models.BusinessProcess) (*models.BusinessProcess, error)
	GetByID(ctx context.Context, id, companyID int64) (*models.BusinessProcess, error)
	List(ctx context.Context, companyID int64) ([]models.BusinessProcess, error)
	Update(ctx context.Context, p *models.BusinessProcess) (*models.BusinessProcess, error)
	Delete(ctx context.Context, id, companyID int64) error
}

type businessProcessService struct {
	repo repositories.BusinessProcessRepository
}

func NewBusinessProcessService(repo repositories.BusinessProcessRepository) BusinessProcessService {
	return &businessProcessService{repo: repo}
}

func (s *businessProcessService) Create(ctx context.Context, p *models.BusinessProcess) (*models.BusinessProcess, error) {
	if err := s.repo.Store(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *businessProcessService) GetByID(ctx context.Context, id, companyID int64) (*models.BusinessProcess, error) {
	p, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

func (s *businessProcessService) List(ctx context.Context, companyID int64) ([]models.BusinessProcess, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *businessProcessService) Update(ctx context.Context, p *models.BusinessProcess) (*models.BusinessProcess, error) {
	existing, err := s.GetByID(ctx, p.ID, p.CompanyID)
	if err != nil {
		return nil, err
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.IsActive = p.IsActive
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, mapRepoErr(err)
	}
	return existing, nil
}

func (s *businessProcessService) Delete(ctx context.Context, id, companyID int64) error {
	return mapRepoErr(s.repo.Delete(ctx, id, companyID))
}
