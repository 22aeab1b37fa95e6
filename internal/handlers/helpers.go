package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

func getCaller(c *gin.Context) (*models.CallerInfo, bool) {
	v, ok := c.Get("caller")
	if !ok {
		return nil, false
	}
	caller, ok := v.(*models.CallerInfo)
	return caller, ok
}

// requireCompany — общий отсек: caller без компании не имеет доступа
// ни к одной tenant-scoped операции.
func requireCompany(c *gin.Context) (*models.CallerInfo, int64, bool) {
	caller, ok := getCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no caller in context"})
		return nil, 0, false
	}
	companyID, err := services.RequireCompany(caller)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "user not assigned to any company"})
		return nil, 0, false
	}
	return caller, companyID, true
}

// respondServiceError — единый маппинг типизированных исходов в статусы.
// Ошибки БД не классифицируем: наружу уходит generic 500, детали в лог
// (и в ответ — только в debug-режиме).
func respondServiceError(c *gin.Context, area string, err error) {
	switch {
	case errors.Is(err, services.ErrMissingIdentity),
		errors.Is(err, services.ErrSignatureMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, services.ErrAccountDeactivated),
		errors.Is(err, services.ErrTenantNotAssigned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyInTargetState),
		errors.Is(err, services.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMalformedPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s][err] %v", area, err)
		if gin.Mode() == gin.DebugMode {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
