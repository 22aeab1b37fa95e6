package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// TagHandler — словарь меток компании. Репозиторий напрямую: слой
// сервиса здесь не добавил бы ничего, кроме проброса.
type TagHandler struct {
	tags repositories.TagRepository
}

func NewTagHandler(tags repositories.TagRepository) *TagHandler {
	return &TagHandler{tags: tags}
}

// POST /tags — upsert по (company, name).
func (h *TagHandler) Create(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := &models.Tag{CompanyID: companyID, Name: req.Name, Color: req.Color}
	if err := h.tags.Store(c.Request.Context(), tag); err != nil {
		respondServiceError(c, "tag.create", err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// GET /tags
func (h *TagHandler) List(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	items, err := h.tags.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, "tag.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DELETE /tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.tags.Delete(c.Request.Context(), id, companyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
			return
		}
		respondServiceError(c, "tag.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
