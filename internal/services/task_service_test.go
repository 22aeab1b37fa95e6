package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktracker/internal/models"
)

func TestIsAllowedTaskStatus(t *testing.T) {
	assert.True(t, IsAllowedTaskStatus(models.StatusNew))
	assert.True(t, IsAllowedTaskStatus(models.StatusInProgress))
	assert.True(t, IsAllowedTaskStatus(models.StatusDone))
	assert.True(t, IsAllowedTaskStatus(models.StatusCancelled))
	assert.False(t, IsAllowedTaskStatus("archived"))
	assert.False(t, IsAllowedTaskStatus(""))
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to models.TaskStatus
		want     bool
	}{
		{models.StatusNew, models.StatusInProgress, true},
		{models.StatusNew, models.StatusCancelled, true},
		{models.StatusNew, models.StatusDone, false},
		{models.StatusInProgress, models.StatusDone, true},
		{models.StatusInProgress, models.StatusCancelled, true},
		{models.StatusInProgress, models.StatusNew, false},
		// терминальные статусы не покидаем
		{models.StatusDone, models.StatusInProgress, false},
		{models.StatusDone, models.StatusNew, false},
		{models.StatusCancelled, models.StatusInProgress, false},
		// переход в себя — no-op, разрешён
		{models.StatusNew, models.StatusNew, true},
		{models.StatusDone, models.StatusDone, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsTransitionAllowed(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
