package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/services"
)

type NotificationHandler struct {
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GET /notifications?unread=true&limit=50
func (h *NotificationHandler) List(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.service.ListForUser(c.Request.Context(), caller.UserID, companyID, unreadOnly, limit)
	if err != nil {
		respondServiceError(c, "notify.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), id, caller.UserID, companyID); err != nil {
		respondServiceError(c, "notify.read", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	if err := h.service.MarkAllRead(c.Request.Context(), caller.UserID, companyID); err != nil {
		respondServiceError(c, "notify.readall", err)
		return
	}
	c.Status(http.StatusNoContent)
}
