package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type UserService interface {
	// Provision — регистрация аккаунта администратором (out-of-band):
	// только так Telegram-идентичность получает доступ в систему.
	Provision(ctx context.Context, user *models.User, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListCompanyUsers(ctx context.Context, companyID int64) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id int64, user *models.User) (*models.User, error)
	ChangeRole(ctx context.Context, id int64, role string) error
	Deactivate(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	AssignCompany(ctx context.Context, id, companyID int64) error
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Provision(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if user.Role == "" {
		user.Role = authz.RoleEmployee
	}
	if !authz.IsKnownRole(user.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrMalformedPayload, user.Role)
	}
	user.IsActive = true
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) ListCompanyUsers(ctx context.Context, companyID int64) ([]*models.User, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// UpdateProfile — только self-service поля (имя, контакты, настройки
// уведомлений); роль и активность меняются отдельными операциями.
func (s *userService) UpdateProfile(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.TelegramUsername = user.TelegramUsername
	existing.PhotoURL = user.PhotoURL
	existing.NotifyTelegram = user.NotifyTelegram

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *userService) ChangeRole(ctx context.Context, id int64, role string) error {
	if !authz.IsKnownRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrMalformedPayload, role)
	}
	return s.repo.UpdateRole(ctx, id, role)
}

func (s *userService) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *userService) Activate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, true)
}

func (s *userService) AssignCompany(ctx context.Context, id, companyID int64) error {
	return s.repo.AssignCompany(ctx, id, companyID)
}
