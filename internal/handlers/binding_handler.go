package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

// BindingHandler — привязки компании к Telegram-чатам для групповых
// уведомлений. Все операции только для руководителей (см. routes).
type BindingHandler struct {
	service services.ChatBindingService
}

func NewBindingHandler(service services.ChatBindingService) *BindingHandler {
	return &BindingHandler{service: service}
}

// POST /chat-bindings
func (h *BindingHandler) Bind(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req struct {
		ChatID int64  `json:"chat_id" binding:"required"`
		Title  string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Bind(c.Request.Context(), &models.ChatBinding{
		CompanyID: companyID,
		ChatID:    req.ChatID,
		Title:     req.Title,
	})
	if err != nil {
		respondServiceError(c, "binding.create", err)
		return
	}
	log.Printf("[binding][create][ok] company=%d chat=%d", companyID, req.ChatID)
	c.JSON(http.StatusCreated, b)
}

// GET /chat-bindings
func (h *BindingHandler) List(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, "binding.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DELETE /chat-bindings/:id
func (h *BindingHandler) Unbind(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Unbind(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, "binding.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
