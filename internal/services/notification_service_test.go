package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/models"
)

type fakeNotificationRepo struct {
	stored []*models.Notification
}

func (r *fakeNotificationRepo) Store(ctx context.Context, n *models.Notification) error {
	n.ID = int64(len(r.stored) + 1)
	r.stored = append(r.stored, n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID, companyID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.stored {
		if n.UserID != userID || n.CompanyID != companyID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID, companyID int64) error {
	for _, n := range r.stored {
		if n.ID == id && n.UserID == userID && n.CompanyID == companyID {
			n.IsRead = true
			return nil
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID, companyID int64) error {
	for _, n := range r.stored {
		if n.UserID == userID && n.CompanyID == companyID {
			n.IsRead = true
		}
	}
	return nil
}

func TestNotifyTaskEvent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	access := newFakeAccessRepo()
	access.users[[2]int64{8, 1}] = true
	svc := NewNotificationService(repo, access)

	err := svc.NotifyTaskEvent(context.Background(), 1, 8, 10, models.NotifyTaskAssigned, "Вам назначена задача")
	require.NoError(t, err)
	require.Len(t, repo.stored, 1)
	assert.Equal(t, models.NotifyTaskAssigned, repo.stored[0].Kind)
}

func TestNotifyTaskEventCrossTenant(t *testing.T) {
	// получатель из другой компании: строка не пишется
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, newFakeAccessRepo())

	err := svc.NotifyTaskEvent(context.Background(), 1, 8, 10, models.NotifyTaskAssigned, "текст")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.stored)
}

func TestNotificationListAndMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	access := newFakeAccessRepo()
	access.users[[2]int64{8, 1}] = true
	svc := NewNotificationService(repo, access)
	ctx := context.Background()

	require.NoError(t, svc.NotifyTaskEvent(ctx, 1, 8, 10, models.NotifyTaskAssigned, "a"))
	require.NoError(t, svc.NotifyTaskEvent(ctx, 1, 8, 10, models.NotifyTaskStatus, "b"))

	items, err := svc.ListForUser(ctx, 8, 1, true, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, svc.MarkRead(ctx, items[0].ID, 8, 1))
	items, err = svc.ListForUser(ctx, 8, 1, true, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.MarkAllRead(ctx, 8, 1))
	items, err = svc.ListForUser(ctx, 8, 1, true, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
