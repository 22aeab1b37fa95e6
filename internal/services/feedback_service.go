package services

import (
	"context"
	"log"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type FeedbackService interface {
	Submit(ctx context.Context, fb *models.Feedback, authorName string) (*models.Feedback, error)
	List(ctx context.Context, companyID int64, limit int) ([]models.Feedback, error)
}

type feedbackService struct {
	repo      repositories.FeedbackRepository
	companies repositories.CompanyRepository
	users     repositories.UserRepository
	email     EmailService
}

func NewFeedbackService(
	repo repositories.FeedbackRepository,
	companies repositories.CompanyRepository,
	users repositories.UserRepository,
	email EmailService,
) FeedbackService {
	return &feedbackService{repo: repo, companies: companies, users: users, email: email}
}

func (s *feedbackService) Submit(ctx context.Context, fb *models.Feedback, authorName string) (*models.Feedback, error) {
	if err := s.repo.Store(ctx, fb); err != nil {
		return nil, err
	}

	// копия директору на почту; отказ почты не валит запрос
	company, err := s.companies.GetByID(ctx, fb.CompanyID)
	if err != nil {
		log.Printf("[feedback][warn] company lookup failed: %v", err)
		return fb, nil
	}
	director, err := s.users.GetByID(ctx, company.DirectorID)
	if err != nil || director.Email == "" {
		return fb, nil
	}
	if err := s.email.SendFeedbackCopy(director.Email, authorName, fb.Subject, fb.Text); err != nil {
		log.Printf("[feedback][warn] email copy failed: %v", err)
	}
	return fb, nil
}

func (s *feedbackService) List(ctx context.Context, companyID int64, limit int) ([]models.Feedback, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByCompany(ctx, companyID, limit)
}
