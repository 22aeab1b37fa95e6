package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

const maxUploadSize = 20 << 20 // 20 MiB

type FileHandler struct {
	service services.AttachmentService
}

func NewFileHandler(service services.AttachmentService) *FileHandler {
	return &FileHandler{service: service}
}

// POST /tasks/:id/files — multipart поле "file".
func (h *FileHandler) Upload(c *gin.Context) {
	caller, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	src, err := header.Open()
	if err != nil {
		respondServiceError(c, "files.upload", err)
		return
	}
	defer src.Close()

	a, err := h.service.Upload(c.Request.Context(), &models.Attachment{
		CompanyID:  companyID,
		TaskID:     taskID,
		UploaderID: caller.UserID,
		FileName:   filepath.Base(header.Filename),
	}, src)
	if err != nil {
		respondServiceError(c, "files.upload", err)
		return
	}
	log.Printf("[files][upload][ok] id=%d task=%d size=%d", a.ID, taskID, a.Size)
	c.JSON(http.StatusCreated, a)
}

// GET /tasks/:id/files
func (h *FileHandler) ListByTask(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListByTask(c.Request.Context(), taskID, companyID)
	if err != nil {
		respondServiceError(c, "files.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /files/:id — отдать содержимое с исходным именем.
func (h *FileHandler) Download(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.GetByID(c.Request.Context(), id, companyID)
	if err != nil {
		respondServiceError(c, "files.get", err)
		return
	}
	c.FileAttachment(h.service.FilePath(a), a.FileName)
}

// DELETE /files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	_, companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, companyID); err != nil {
		respondServiceError(c, "files.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
