package services

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// AttachmentService — файлы задач. Содержимое лежит на диске под FilesRoot
// с uuid-именем, в БД только метаданные со своим company_id.
type AttachmentService interface {
	Upload(ctx context.Context, a *models.Attachment, src io.Reader) (*models.Attachment, error)
	GetByID(ctx context.Context, id, companyID int64) (*models.Attachment, error)
	ListByTask(ctx context.Context, taskID, companyID int64) ([]models.Attachment, error)
	FilePath(a *models.Attachment) string
	Delete(ctx context.Context, id, companyID int64) error
}

type attachmentService struct {
	repo      repositories.AttachmentRepository
	tasks     repositories.TaskRepository
	filesRoot string
}

func NewAttachmentService(repo repositories.AttachmentRepository, tasks repositories.TaskRepository, filesRoot string) AttachmentService {
	return &attachmentService{repo: repo, tasks: tasks, filesRoot: filepath.Clean(filesRoot)}
}

func (s *attachmentService) Upload(ctx context.Context, a *models.Attachment, src io.Reader) (*models.Attachment, error) {
	// задача обязана принадлежать компании вызывающего
	if _, err := s.tasks.FindByID(ctx, a.TaskID, a.CompanyID); err != nil {
		return nil, mapRepoErr(err)
	}

	if err := os.MkdirAll(s.filesRoot, 0o755); err != nil {
		return nil, err
	}
	a.StorageKey = uuid.NewString() + filepath.Ext(filepath.Base(a.FileName))

	dst, err := os.Create(filepath.Join(s.filesRoot, a.StorageKey))
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(s.filesRoot, a.StorageKey))
		return nil, err
	}
	a.Size = size

	if err := s.repo.Store(ctx, a); err != nil {
		os.Remove(filepath.Join(s.filesRoot, a.StorageKey))
		return nil, err
	}
	return a, nil
}

func (s *attachmentService) GetByID(ctx context.Context, id, companyID int64) (*models.Attachment, error) {
	a, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return a, nil
}

func (s *attachmentService) ListByTask(ctx context.Context, taskID, companyID int64) ([]models.Attachment, error) {
	if _, err := s.tasks.FindByID(ctx, taskID, companyID); err != nil {
		return nil, mapRepoErr(err)
	}
	return s.repo.ListByTask(ctx, taskID, companyID)
}

func (s *attachmentService) FilePath(a *models.Attachment) string {
	// StorageKey — всегда uuid+расширение, но basename на всякий случай
	return filepath.Join(s.filesRoot, filepath.Base(a.StorageKey))
}

func (s *attachmentService) Delete(ctx context.Context, id, companyID int64) error {
	a, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return mapRepoErr(err)
	}
	if err := s.repo.Delete(ctx, id, companyID); err != nil {
		return mapRepoErr(err)
	}
	if err := os.Remove(s.FilePath(a)); err != nil && !os.IsNotExist(err) {
		log.Printf("[files][warn] remove %s: %v", a.StorageKey, err)
	}
	return nil
}
