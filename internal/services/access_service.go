package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// AccessService — резолвер компании вызывающего и проверки принадлежности
// сущностей его компании. Вызывается каждым хендлером до обращения к данным.
type AccessService interface {
	// ResolveCaller — по значению заголовка идентичности возвращает
	// {userID, companyID (может быть nil), role}.
	ResolveCaller(ctx context.Context, identity string) (*models.CallerInfo, error)

	// Валидаторы: true только если сущность существует И принадлежит
	// указанной компании. nil-компания — всегда false (fail-closed).
	ValidateUserAccess(ctx context.Context, userID int64, companyID *int64) (bool, error)
	ValidateTaskAccess(ctx context.Context, taskID int64, companyID *int64) (bool, error)
	ValidateBusinessProcessAccess(ctx context.Context, processID int64, companyID *int64) (bool, error)
	ValidateTelegramGroupAccess(ctx context.Context, bindingID int64, companyID *int64) (bool, error)
}

type accessService struct {
	users  repositories.UserRepository
	access repositories.AccessRepository
}

func NewAccessService(users repositories.UserRepository, access repositories.AccessRepository) AccessService {
	return &accessService{users: users, access: access}
}

func (s *accessService) ResolveCaller(ctx context.Context, identity string) (*models.CallerInfo, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ErrMissingIdentity
	}
	userID, err := strconv.ParseInt(identity, 10, 64)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	// companyID == nil — не ошибка: tenant-scoped операции отсекаются выше
	return &models.CallerInfo{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, nil
}

func (s *accessService) ValidateUserAccess(ctx context.Context, userID int64, companyID *int64) (bool, error) {
	if companyID == nil || userID == 0 {
		return false, nil
	}
	return s.access.UserBelongsToCompany(ctx, userID, *companyID)
}

func (s *accessService) ValidateTaskAccess(ctx context.Context, taskID int64, companyID *int64) (bool, error) {
	if companyID == nil || taskID == 0 {
		return false, nil
	}
	return s.access.TaskBelongsToCompany(ctx, taskID, *companyID)
}

func (s *accessService) ValidateBusinessProcessAccess(ctx context.Context, processID int64, companyID *int64) (bool, error) {
	if companyID == nil || processID == 0 {
		return false, nil
	}
	return s.access.ProcessBelongsToCompany(ctx, processID, *companyID)
}

func (s *accessService) ValidateTelegramGroupAccess(ctx context.Context, bindingID int64, companyID *int64) (bool, error) {
	if companyID == nil || bindingID == 0 {
		return false, nil
	}
	return s.access.ChatBindingBelongsToCompany(ctx, bindingID, *companyID)
}

// RequireCompany — общий отсек для tenant-scoped операций.
func RequireCompany(caller *models.CallerInfo) (int64, error) {
	if caller == nil || caller.CompanyID == nil {
		return 0, ErrTenantNotAssigned
	}
	return *caller.CompanyID, nil
}
