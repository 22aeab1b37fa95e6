package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/services"
)

type ReportHandler struct {
	service services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GET /reports/tasks — PDF-сводка по задачам компании. Только
// руководители (ограничение в routes).
func (h *ReportHandler) TaskReport(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	path, err := h.service.GenerateTaskReport(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, "report.tasks", err)
		return
	}
	log.Printf("[report][tasks][ok] company=%d file=%s", companyID, path)
	c.FileAttachment(path, "tasks_report.pdf")
}
