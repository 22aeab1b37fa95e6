package services

import (
	"context"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// fakeUserRepo — in-memory реализация UserRepository для тестов сервисов.
type fakeUserRepo struct {
	users   map[int64]*models.User
	touched []int64
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = int64(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	for _, u := range r.users {
		if u.TelegramID == telegramID {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) ListByCompany(ctx context.Context, companyID int64) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *fakeUserRepo) AssignCompany(ctx context.Context, id, companyID int64) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.CompanyID = &companyID
	return nil
}

func (r *fakeUserRepo) TouchLogin(ctx context.Context, id int64) error {
	r.touched = append(r.touched, id)
	return nil
}

func (r *fakeUserRepo) GetTelegramSettings(ctx context.Context, id int64) (int64, bool, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, false, repositories.ErrNotFound
	}
	return u.TelegramID, u.NotifyTelegram, nil
}

// fakeAccessRepo отвечает по заранее заданным парам (entityID, companyID).
type fakeAccessRepo struct {
	users     map[[2]int64]bool
	tasks     map[[2]int64]bool
	processes map[[2]int64]bool
	bindings  map[[2]int64]bool
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{
		users:     map[[2]int64]bool{},
		tasks:     map[[2]int64]bool{},
		processes: map[[2]int64]bool{},
		bindings:  map[[2]int64]bool{},
	}
}

func (r *fakeAccessRepo) UserBelongsToCompany(ctx context.Context, userID, companyID int64) (bool, error) {
	return r.users[[2]int64{userID, companyID}], nil
}

func (r *fakeAccessRepo) TaskBelongsToCompany(ctx context.Context, taskID, companyID int64) (bool, error) {
	return r.tasks[[2]int64{taskID, companyID}], nil
}

func (r *fakeAccessRepo) ProcessBelongsToCompany(ctx context.Context, processID, companyID int64) (bool, error) {
	return r.processes[[2]int64{processID, companyID}], nil
}

func (r *fakeAccessRepo) ChatBindingBelongsToCompany(ctx context.Context, bindingID, companyID int64) (bool, error) {
	return r.bindings[[2]int64{bindingID, companyID}], nil
}
