package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

type CompanyHandler struct {
	service services.CompanyService
}

func NewCompanyHandler(service services.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// POST /companies — создать компанию; создатель становится директором.
func (h *CompanyHandler) Create(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no caller in context"})
		return
	}
	if caller.CompanyID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user already belongs to a company"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.service.Create(c.Request.Context(), req.Name, caller.UserID)
	if err != nil {
		respondServiceError(c, "company.create", err)
		return
	}
	log.Printf("[company][create][ok] id=%d director=%d", company.ID, caller.UserID)
	c.JSON(http.StatusCreated, company)
}

// GET /companies/my
func (h *CompanyHandler) GetMy(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	company, err := h.service.GetByID(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, "company.get", err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// PUT /companies/my — только директор.
func (h *CompanyHandler) UpdateMy(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	if !authz.IsDirector(caller.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req struct {
		Name string             `json:"name" binding:"required"`
		Plan models.CompanyPlan `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), &models.Company{
		ID:   companyID,
		Name: req.Name,
		Plan: req.Plan,
	})
	if err != nil {
		respondServiceError(c, "company.update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
