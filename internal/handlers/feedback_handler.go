package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

type FeedbackHandler struct {
	service services.FeedbackService
	users   services.UserService
}

func NewFeedbackHandler(service services.FeedbackService, users services.UserService) *FeedbackHandler {
	return &FeedbackHandler{service: service, users: users}
}

// POST /feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req struct {
		Subject string `json:"subject" binding:"required"`
		Text    string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorName := "сотрудник #" + strconv.FormatInt(caller.UserID, 10)
	if u, err := h.users.GetByID(c.Request.Context(), caller.UserID); err == nil {
		authorName = u.FirstName + " " + u.LastName
	}

	fb, err := h.service.Submit(c.Request.Context(), &models.Feedback{
		CompanyID: companyID,
		UserID:    caller.UserID,
		Subject:   req.Subject,
		Text:      req.Text,
	}, authorName)
	if err != nil {
		respondServiceError(c, "feedback.submit", err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// GET /feedback — только руководители.
func (h *FeedbackHandler) List(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	if !authz.IsElevated(caller.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.service.List(c.Request.Context(), companyID, limit)
	if err != nil {
		respondServiceError(c, "feedback.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}
