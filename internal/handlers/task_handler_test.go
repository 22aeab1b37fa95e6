package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

// fakeTaskService — переопределяем только то, что дергают тесты;
// остальные методы унаследованы от nil-интерфейса и не вызываются.
type fakeTaskService struct {
	services.TaskService
	tasks   map[int64]*models.Task
	deleted map[int64]bool
}

func (f *fakeTaskService) GetByID(ctx context.Context, id, companyID int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.CompanyID != companyID {
		return nil, services.ErrNotFound
	}
	return task, nil
}

func (f *fakeTaskService) SoftDelete(ctx context.Context, id, companyID, actorID int64) error {
	task, ok := f.tasks[id]
	if !ok || task.CompanyID != companyID {
		return services.ErrNotFound
	}
	if f.deleted[id] {
		return services.ErrAlreadyInTargetState
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeTaskService) Restore(ctx context.Context, id, companyID, actorID int64) error {
	if !f.deleted[id] {
		return services.ErrAlreadyInTargetState
	}
	delete(f.deleted, id)
	return nil
}

type fakeNotifService struct {
	services.NotificationService
	events []string
}

func (f *fakeNotifService) NotifyTaskEvent(ctx context.Context, companyID, userID, taskID int64, kind models.NotificationKind, text string) error {
	f.events = append(f.events, string(kind))
	return nil
}

// callerMiddleware подставляет caller в контекст напрямую, минуя JWT-периметр.
func callerMiddleware(caller *models.CallerInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("caller", caller)
		c.Set("role", caller.Role)
		c.Next()
	}
}

func newTaskTestRouter(svc *fakeTaskService, caller *models.CallerInfo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(svc, nil, &fakeNotifService{}, nil, nil)
	r := gin.New()
	r.Use(callerMiddleware(caller))
	r.GET("/tasks/:id", h.GetByID)
	r.DELETE("/tasks/:id", h.Delete)
	r.POST("/tasks/:id/restore", h.Restore)
	return r
}

func companyCaller(userID, companyID int64, role string) *models.CallerInfo {
	return &models.CallerInfo{UserID: userID, CompanyID: &companyID, Role: role}
}

func seededTaskService() *fakeTaskService {
	return &fakeTaskService{
		tasks: map[int64]*models.Task{
			10: {ID: 10, CompanyID: 1, CreatorID: 7, AssigneeID: 8, Title: "Счёт за май"},
		},
		deleted: map[int64]bool{},
	}
}

func TestTaskGetByIDCrossTenant(t *testing.T) {
	// чужая задача неотличима от несуществующей
	r := newTaskTestRouter(seededTaskService(), companyCaller(7, 2, authz.RoleEmployee))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/10", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskGetByIDOwnCompany(t *testing.T) {
	r := newTaskTestRouter(seededTaskService(), companyCaller(7, 1, authz.RoleEmployee))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/10", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Счёт за май")
}

func TestTaskDeleteByCreator(t *testing.T) {
	svc := seededTaskService()
	r := newTaskTestRouter(svc, companyCaller(7, 1, authz.RoleEmployee))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/10", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.deleted[10])
}

func TestTaskDeleteForbiddenForOthers(t *testing.T) {
	// исполнитель задачи, но не автор и не руководитель
	svc := seededTaskService()
	r := newTaskTestRouter(svc, companyCaller(8, 1, authz.RoleEmployee))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/10", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, svc.deleted[10])
}

func TestTaskDeleteByDepartmentHead(t *testing.T) {
	svc := seededTaskService()
	r := newTaskTestRouter(svc, companyCaller(9, 1, authz.RoleDepartmentHead))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/10", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTaskDoubleDeleteConflict(t *testing.T) {
	svc := seededTaskService()
	svc.deleted[10] = true
	r := newTaskTestRouter(svc, companyCaller(7, 1, authz.RoleDirector))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/10", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTaskRestoreDirectorOnly(t *testing.T) {
	svc := seededTaskService()
	svc.deleted[10] = true

	r := newTaskTestRouter(svc, companyCaller(8, 1, authz.RoleEmployee))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks/10/restore", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, svc.deleted[10])

	r = newTaskTestRouter(svc, companyCaller(1, 1, authz.RoleDirector))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks/10/restore", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.deleted[10])
}

func TestTaskRequiresCompany(t *testing.T) {
	// caller без компании не проходит ни к одной tenant-scoped операции
	caller := &models.CallerInfo{UserID: 7, Role: authz.RoleEmployee}
	r := newTaskTestRouter(seededTaskService(), caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/10", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskInvalidID(t *testing.T) {
	r := newTaskTestRouter(seededTaskService(), companyCaller(7, 1, authz.RoleEmployee))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
