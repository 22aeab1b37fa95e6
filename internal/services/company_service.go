package services

import (
	"context"
	"errors"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type CompanyService interface {
	// Create — создатель становится директором и привязывается к компании.
	Create(ctx context.Context, name string, creatorID int64) (*models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) (*models.Company, error)
}

type companyService struct {
	repo  repositories.CompanyRepository
	users repositories.UserRepository
}

func NewCompanyService(repo repositories.CompanyRepository, users repositories.UserRepository) CompanyService {
	return &companyService{repo: repo, users: users}
}

func (s *companyService) Create(ctx context.Context, name string, creatorID int64) (*models.Company, error) {
	company := &models.Company{
		Name:       name,
		DirectorID: creatorID,
		Plan:       models.PlanFree,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	if err := s.users.AssignCompany(ctx, creatorID, company.ID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, creatorID, authz.RoleDirector); err != nil {
		return nil, err
	}
	company.EmployeeIDs = []int64{creatorID}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *companyService) Update(ctx context.Context, company *models.Company) (*models.Company, error) {
	existing, err := s.GetByID(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = company.Name
	if company.Plan != "" {
		existing.Plan = company.Plan
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
