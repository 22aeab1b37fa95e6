package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

type ProcessHandler struct {
	service services.BusinessProcessService
}

func NewProcessHandler(service services.BusinessProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

// POST /processes
func (h *ProcessHandler) Create(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), &models.BusinessProcess{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		respondServiceError(c, "process.create", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /processes
func (h *ProcessHandler) List(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, "process.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /processes/:id
func (h *ProcessHandler) GetByID(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id, companyID)
	if err != nil {
		respondServiceError(c, "process.get", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /processes/:id
func (h *ProcessHandler) Update(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p, err := h.service.Update(c.Request.Context(), &models.BusinessProcess{
		ID:          id,
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    active,
	})
	if err != nil {
		respondServiceError(c, "process.update", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /processes/:id
func (h *ProcessHandler) Delete(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, "process.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
