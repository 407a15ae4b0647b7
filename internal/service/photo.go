package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/templui/devcamper/internal/httperr"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
	"github.com/templui/devcamper/internal/storage"
	"github.com/templui/devcamper/internal/validation"
)

type PhotoService struct {
	bootcamps repository.BootcampRepository
	storage   storage.Storage
	maxSize   int64
}

func NewPhotoService(bootcamps repository.BootcampRepository, storage storage.Storage, maxSize int64) *PhotoService {
	return &PhotoService{
		bootcamps: bootcamps,
		storage:   storage,
		maxSize:   maxSize,
	}
}

// Upload validates header as an image, stores it as photo_<bootcamp id><ext>
// and records the name on the bootcamp.
func (s *PhotoService) Upload(ctx context.Context, bootcamp *model.Bootcamp, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints(s.maxSize))
	if err != nil {
		return "", httperr.Wrap(http.StatusBadRequest, err.Error(), err)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	name := fmt.Sprintf("photo_%s%s", bootcamp.ID, strings.ToLower(filepath.Ext(header.Filename)))

	err = s.storage.Save(ctx, name, file)
	if err != nil {
		return "", fmt.Errorf("problem with file upload: %w", err)
	}

	err = s.bootcamps.UpdatePhoto(ctx, bootcamp.ID, name)
	if err != nil {
		return "", err
	}

	bootcamp.Photo = name
	return name, nil
}

// Remove deletes the stored photo of a bootcamp. Failures are logged only.
func (s *PhotoService) Remove(ctx context.Context, bootcamp *model.Bootcamp) {
	if bootcamp.Photo == "" || bootcamp.Photo == model.DefaultPhoto {
		return
	}

	err := s.storage.Delete(ctx, bootcamp.Photo)
	if err != nil {
		slog.Warn("failed to delete bootcamp photo", "bootcamp_id", bootcamp.ID, "photo", bootcamp.Photo, "error", err)
	}
}

// URL returns where a bootcamp photo can be fetched, empty for the default photo.
func (s *PhotoService) URL(bootcamp *model.Bootcamp) string {
	if bootcamp.Photo == "" || bootcamp.Photo == model.DefaultPhoto {
		return ""
	}
	return s.storage.URL(bootcamp.Photo)
}
