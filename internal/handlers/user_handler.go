package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

type UserHandler struct {
	service services.UserService
	access  services.AccessService
}

func NewUserHandler(service services.UserService, access services.AccessService) *UserHandler {
	return &UserHandler{service: service, access: access}
}

// POST /users — регистрация аккаунта администратором (out-of-band).
// Только так Telegram-идентичность получает доступ: автосоздания нет.
func (h *UserHandler) Provision(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no caller in context"})
		return
	}
	if !authz.IsDirector(caller.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req struct {
		TelegramID int64  `json:"telegram_id" binding:"required"`
		FirstName  string `json:"first_name" binding:"required"`
		LastName   string `json:"last_name"`
		Email      string `json:"email"`
		Role       string `json:"role"`
		Password   string `json:"password"` // для консольного входа, опционально
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		CompanyID:      caller.CompanyID, // новый сотрудник попадает в компанию создателя
		Role:           req.Role,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		TelegramID:     req.TelegramID,
		NotifyTelegram: true,
	}
	created, err := h.service.Provision(c.Request.Context(), user, req.Password)
	if err != nil {
		respondServiceError(c, "user.provision", err)
		return
	}
	log.Printf("[user][provision][ok] id=%d telegram_id=%d", created.ID, created.TelegramID)
	c.JSON(http.StatusCreated, created)
}

// GET /users — сотрудники своей компании.
func (h *UserHandler) List(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	users, err := h.service.ListCompanyUsers(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, "user.list", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	caller, _, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// чужой пользователь — 404, существование не раскрываем
	if ok, err := h.access.ValidateUserAccess(c.Request.Context(), id, caller.CompanyID); err != nil {
		respondServiceError(c, "user.get", err)
		return
	} else if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "user.get", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /users/me — self-service поля.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no caller in context"})
		return
	}

	var req struct {
		FirstName        string  `json:"first_name" binding:"required"`
		LastName         string  `json:"last_name"`
		Email            string  `json:"email"`
		TelegramUsername *string `json:"telegram_username"`
		PhotoURL         *string `json:"photo_url"`
		NotifyTelegram   bool    `json:"notify_telegram"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), caller.UserID, &models.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		TelegramUsername: req.TelegramUsername,
		PhotoURL:         req.PhotoURL,
		NotifyTelegram:   req.NotifyTelegram,
	})
	if err != nil {
		respondServiceError(c, "user.update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PUT /users/:id/role — только директор, в пределах своей компании.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	caller, _, ok := requireCompany(c)
	if !ok {
		return
	}
	if !authz.IsDirector(caller.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if ok, err := h.access.ValidateUserAccess(c.Request.Context(), id, caller.CompanyID); err != nil {
		respondServiceError(c, "user.role", err)
		return
	} else if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.ChangeRole(c.Request.Context(), id, req.Role); err != nil {
		respondServiceError(c, "user.role", err)
		return
	}
	log.Printf("[user][role][ok] id=%d role=%s by=%d", id, req.Role, caller.UserID)
	c.Status(http.StatusNoContent)
}

// POST /users/:id/deactivate — только директор.
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

// POST /users/:id/activate — только директор.
func (h *UserHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	caller, _, ok := requireCompany(c)
	if !ok {
		return
	}
	if !authz.IsDirector(caller.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if ok, err := h.access.ValidateUserAccess(c.Request.Context(), id, caller.CompanyID); err != nil {
		respondServiceError(c, "user.active", err)
		return
	} else if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var err error
	if active {
		err = h.service.Activate(c.Request.Context(), id)
	} else {
		err = h.service.Deactivate(c.Request.Context(), id)
	}
	if err != nil {
		respondServiceError(c, "user.active", err)
		return
	}
	log.Printf("[user][active][ok] id=%d active=%v", id, active)
	c.Status(http.StatusNoContent)
}
