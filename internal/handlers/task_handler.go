package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
	"tasktracker/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	access  services.AccessService
	notif   services.NotificationService
	tg      *services.TelegramService
	tags    repositories.TagRepository
}

func NewTaskHandler(
	service services.TaskService,
	access services.AccessService,
	notif services.NotificationService,
	tg *services.TelegramService,
	tags repositories.TagRepository,
) *TaskHandler {
	return &TaskHandler{service: service, access: access, notif: notif, tg: tg, tags: tags}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req struct {
		AssigneeID  int64               `json:"assignee_id" binding:"required"`
		ProcessID   *int64              `json:"process_id"`
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		DueDate     string              `json:"due_date"` // RFC3339
		Priority    models.TaskPriority `json:"priority"` // low|normal|high|urgent
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// каждый foreign id из запроса проходит свой валидатор
	ctx := c.Request.Context()
	if ok, err := h.access.ValidateUserAccess(ctx, req.AssigneeID, caller.CompanyID); err != nil {
		respondServiceError(c, "task.create", err)
		return
	} else if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "assignee is not in your company"})
		return
	}
	if req.ProcessID != nil {
		if ok, err := h.access.ValidateBusinessProcessAccess(ctx, *req.ProcessID, caller.CompanyID); err != nil {
			respondServiceError(c, "task.create", err)
			return
		} else if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "unknown business process"})
			return
		}
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
			return
		}
		due = &t
	}

	task := &models.Task{
		CompanyID:   companyID,
		CreatorID:   caller.UserID,
		AssigneeID:  req.AssigneeID,
		ProcessID:   req.ProcessID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    req.Priority,
	}

	created, err := h.service.Create(ctx, task)
	if err != nil {
		respondServiceError(c, "task.create", err)
		return
	}
	log.Printf("[task][create][ok] id=%d company=%d assignee=%d", created.ID, companyID, created.AssigneeID)
	c.JSON(http.StatusCreated, created)

	if created.AssigneeID != caller.UserID {
		_ = h.notif.NotifyTaskEvent(ctx, companyID, created.AssigneeID, created.ID,
			models.NotifyTaskAssigned, "Вам назначена задача: "+created.Title)
	}
	h.tg.NotifyAssignee(ctx, created, "📌 Новая задача")
	h.tg.NotifyCompanyChats(ctx, companyID, created, "📌 Новая задача")
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var filter models.TaskFilter
	if v, ok := c.GetQuery("assignee_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssigneeID = &id
		}
	}
	if v, ok := c.GetQuery("creator_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CreatorID = &id
		}
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("tag_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.TagID = &id
		}
	}
	if v, ok := c.GetQuery("process_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ProcessID = &id
		}
	}
	if v, ok := c.GetQuery("due_before"); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueBefore = &t
		}
	}
	if v, ok := c.GetQuery("due_after"); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DueAfter = &t
		}
	}
	// удалённые видит только директор
	if v, ok := c.GetQuery("include_deleted"); ok && v == "true" && authz.IsDirector(caller.Role) {
		filter.IncludeDeleted = true
	}

	tasks, err := h.service.GetAll(c.Request.Context(), companyID, filter)
	if err != nil {
		respondServiceError(c, "task.list", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// чужая задача неотличима от несуществующей: 404
	task, err := h.service.GetByID(c.Request.Context(), id, companyID)
	if err != nil {
		respondServiceError(c, "task.get", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	current, err := h.service.GetByID(ctx, id, companyID)
	if err != nil {
		respondServiceError(c, "task.update", err)
		return
	}

	// рядовой сотрудник меняет только свои задачи
	if caller.Role == authz.RoleEmployee && !(current.CreatorID == caller.UserID || current.AssigneeID == caller.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req struct {
		AssigneeID  *int64               `json:"assignee_id"`
		ProcessID   *int64               `json:"process_id"`
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		DueDate     *string              `json:"due_date"` // RFC3339, "" — сброс
		Priority    *models.TaskPriority `json:"priority"`
		Status      *models.TaskStatus   `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := *current

	if req.AssigneeID != nil {
		if ok, err := h.access.ValidateUserAccess(ctx, *req.AssigneeID, caller.CompanyID); err != nil {
			respondServiceError(c, "task.update", err)
			return
		} else if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "assignee is not in your company"})
			return
		}
		update.AssigneeID = *req.AssigneeID
	}
	if req.ProcessID != nil {
		if ok, err := h.access.ValidateBusinessProcessAccess(ctx, *req.ProcessID, caller.CompanyID); err != nil {
			respondServiceError(c, "task.update", err)
			return
		} else if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "unknown business process"})
			return
		}
		update.ProcessID = req.ProcessID
	}
	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Description != nil {
		update.Description = *req.Description
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.DueDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date"})
				return
			}
			update.DueDate = &t
		}
	}
	if req.Priority != nil {
		update.Priority = *req.Priority
	}
	if req.Status != nil {
		update.Status = *req.Status
	}

	updated, err := h.service.Update(ctx, id, companyID, &update)
	if err != nil {
		respondServiceError(c, "task.update", err)
		return
	}
	log.Printf("[task][update][ok] id=%d company=%d", id, companyID)
	c.JSON(http.StatusOK, updated)

	h.tg.NotifyAssignee(ctx, updated, "✏️ Задача обновлена")
}

// POST /tasks/:id/status { "to": "in_progress" }
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.service.GetByID(ctx, id, companyID)
	if err != nil {
		respondServiceError(c, "task.status", err)
		return
	}
	if caller.Role == authz.RoleEmployee && !(current.CreatorID == caller.UserID || current.AssigneeID == caller.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	updated, err := h.service.UpdateStatus(ctx, id, companyID, body.To)
	if err != nil {
		respondServiceError(c, "task.status", err)
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, body.To)
	c.JSON(http.StatusOK, updated)

	if updated.CreatorID != caller.UserID {
		_ = h.notif.NotifyTaskEvent(ctx, companyID, updated.CreatorID, updated.ID,
			models.NotifyTaskStatus, "Статус задачи изменён: "+string(body.To))
	}
	h.tg.NotifyAssignee(ctx, updated, "🔁 Статус изменён на "+string(body.To))
}

// POST /tasks/:id/assign { "assignee_id": 2 }
func (h *TaskHandler) Assign(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var body struct {
		AssigneeID int64 `json:"assignee_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// сотрудник может брать задачу только на себя
	if caller.Role == authz.RoleEmployee && body.AssigneeID != caller.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "employee can assign only to self"})
		return
	}
	if ok, err := h.access.ValidateUserAccess(ctx, body.AssigneeID, caller.CompanyID); err != nil {
		respondServiceError(c, "task.assign", err)
		return
	} else if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "assignee is not in your company"})
		return
	}

	updated, err := h.service.UpdateAssignee(ctx, id, companyID, body.AssigneeID)
	if err != nil {
		respondServiceError(c, "task.assign", err)
		return
	}
	log.Printf("[task][assign][ok] id=%d assignee=%d", id, body.AssigneeID)
	c.JSON(http.StatusOK, updated)

	if updated.AssigneeID != caller.UserID {
		_ = h.notif.NotifyTaskEvent(ctx, companyID, updated.AssigneeID, updated.ID,
			models.NotifyTaskAssigned, "Вам назначена задача: "+updated.Title)
	}
	h.tg.NotifyAssignee(ctx, updated, "👤 Вам назначена задача")
}

// DELETE /tasks/:id — мягкое удаление; строго: директор, руководитель
// отдела или автор.
func (h *TaskHandler) Delete(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	current, err := h.service.GetByID(ctx, id, companyID)
	if err != nil {
		respondServiceError(c, "task.delete", err)
		return
	}
	if !authz.CanDeleteTask(caller.Role, caller.UserID, current.CreatorID) {
		log.Printf("[task][delete][deny] uid=%d role=%s creator=%d", caller.UserID, caller.Role, current.CreatorID)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.service.SoftDelete(ctx, id, companyID, caller.UserID); err != nil {
		respondServiceError(c, "task.delete", err)
		return
	}
	log.Printf("[task][delete][ok] id=%d company=%d", id, companyID)

	h.tg.NotifyAssignee(ctx, current, "🗑️ Задача удалена")
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/restore — только директор.
func (h *TaskHandler) Restore(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !authz.IsDirector(caller.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.service.Restore(c.Request.Context(), id, companyID, caller.UserID); err != nil {
		respondServiceError(c, "task.restore", err)
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id, companyID)
	if err != nil {
		respondServiceError(c, "task.restore", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /tasks/:id/activity
func (h *TaskHandler) Activity(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit := 0
	if v, ok := c.GetQuery("limit"); ok {
		limit, _ = strconv.Atoi(v)
	}
	activity, err := h.service.Activity(c.Request.Context(), id, companyID, limit)
	if err != nil {
		respondServiceError(c, "task.activity", err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// POST /tasks/:id/tags { "tag_id": 5 }
func (h *TaskHandler) AttachTag(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var body struct {
		TagID int64 `json:"tag_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.GetByID(ctx, id, companyID); err != nil {
		respondServiceError(c, "task.tag", err)
		return
	}
	if _, err := h.tags.GetByID(ctx, body.TagID, companyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
			return
		}
		respondServiceError(c, "task.tag", err)
		return
	}
	if err := h.tags.Attach(ctx, id, body.TagID); err != nil {
		respondServiceError(c, "task.tag", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /tasks/:id/tags/:tag_id
func (h *TaskHandler) DetachTag(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tag_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.service.GetByID(ctx, id, companyID); err != nil {
		respondServiceError(c, "task.tag", err)
		return
	}
	if err := h.tags.Detach(ctx, id, tagID); err != nil {
		respondServiceError(c, "task.tag", err)
		return
	}
	c.Status(http.StatusNoContent)
}
