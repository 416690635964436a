package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
)

type StorageService interface {
	SaveFile(sessionID uuid.UUID, file *multipart.FileHeader) (*models.Upload, error)
	SaveReader(sessionID uuid.UUID, name string, src io.Reader) (*models.Upload, error)
	DeleteSession(sessionID uuid.UUID) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile implements StorageService.
func (s *storageService) SaveFile(sessionID uuid.UUID, file *multipart.FileHeader) (*models.Upload, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrInvalidFile, file.Filename, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.SaveReader(sessionID, file.Filename, src)
}

// SaveReader implements StorageService.
func (s *storageService) SaveReader(sessionID uuid.UUID, name string, src io.Reader) (*models.Upload, error) {
	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s is not a PDF", ErrInvalidFile, name)
	}

	dir := s.sessionDir(sessionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(dir, uniqueFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	var reader io.Reader = src
	if s.maxFileSize > 0 {
		reader = io.LimitReader(src, s.maxFileSize+1)
	}

	written, err := io.Copy(dst, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	if s.maxFileSize > 0 && written > s.maxFileSize {
		dst.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrInvalidFile, name, s.maxFileSize)
	}

	return &models.Upload{
		Name:     filepath.Base(name),
		Filename: uniqueFilename,
		FilePath: filePath,
		Size:     written,
	}, nil
}

// DeleteSession implements StorageService.
func (s *storageService) DeleteSession(sessionID uuid.UUID) error {
	if err := os.RemoveAll(s.sessionDir(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session files: %w", err)
	}
	return nil
}

func (s *storageService) sessionDir(sessionID uuid.UUID) string {
	return filepath.Join(s.uploadPath, sessionID.String())
}
