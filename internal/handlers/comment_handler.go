package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

type CommentHandler struct {
	service services.CommentService
}

func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// POST /tasks/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), &models.Comment{
		CompanyID: companyID,
		TaskID:    taskID,
		AuthorID:  caller.UserID,
		Text:      req.Text,
	})
	if err != nil {
		respondServiceError(c, "comment.create", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GET /tasks/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.ListComments(c.Request.Context(), taskID, companyID)
	if err != nil {
		respondServiceError(c, "comment.list", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// PUT /comments/:id — только автор.
func (h *CommentHandler) Update(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateComment(c.Request.Context(), id, companyID, caller.UserID, req.Text); err != nil {
		respondServiceError(c, "comment.update", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /comments/:id — автор либо руководитель.
func (h *CommentHandler) Delete(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	elevated := authz.IsElevated(caller.Role)
	if err := h.service.DeleteComment(c.Request.Context(), id, companyID, caller.UserID, elevated); err != nil {
		respondServiceError(c, "comment.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== чек-лист =====

// POST /tasks/:id/checklist
func (h *CommentHandler) AddChecklistItem(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.AddChecklistItem(c.Request.Context(), &models.ChecklistItem{
		CompanyID: companyID,
		TaskID:    taskID,
		Title:     req.Title,
	})
	if err != nil {
		respondServiceError(c, "checklist.create", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /tasks/:id/checklist
func (h *CommentHandler) ListChecklist(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListChecklist(c.Request.Context(), taskID, companyID)
	if err != nil {
		respondServiceError(c, "checklist.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /checklist/:id/toggle { "done": true }
func (h *CommentHandler) ToggleChecklistItem(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Done bool `json:"done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.ToggleChecklistItem(c.Request.Context(), id, companyID, req.Done); err != nil {
		respondServiceError(c, "checklist.toggle", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /checklist/:id
func (h *CommentHandler) DeleteChecklistItem(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteChecklistItem(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, "checklist.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
