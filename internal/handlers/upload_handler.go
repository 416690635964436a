package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type UploadHandler struct {
	screening      services.ScreeningService
	storageService services.StorageService
	maxFileSize    int64
	maxFiles       int
	log            *zap.Logger
}

func NewUploadHandler(
	screening services.ScreeningService,
	storageService services.StorageService,
	maxFileSize int64,
	maxFiles int,
	log *zap.Logger,
) *UploadHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadHandler{
		screening:      screening,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		maxFiles:       maxFiles,
		log:            log,
	}
}

// HandleUpload handles POST /sessions
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jobDescription := strings.TrimSpace(firstValue(form.Value["job_description"]))
	files := form.File["resumes"]

	if jobDescription == "" || len(files) == 0 {
		return respondError(c, services.ErrMissingInput, "")
	}

	if h.maxFiles > 0 && len(files) > h.maxFiles {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Too many resumes. Max files: %d", h.maxFiles),
		})
	}

	var previous uuid.UUID
	if raw := strings.TrimSpace(firstValue(form.Value["previous_session_id"])); raw != "" {
		previous, err = uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid previous_session_id format",
			})
		}
	}

	sessionID := uuid.New()
	uploads := make([]models.Upload, 0, len(files))

	for _, file := range files {
		if file.Size > h.maxFileSize {
			h.storageService.DeleteSession(sessionID)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Resume %s too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}

		upload, err := h.storageService.SaveFile(sessionID, file)
		if err != nil {
			// Cleanup files saved so far
			h.storageService.DeleteSession(sessionID)
			h.log.Warn("failed to save resume", zap.String("resume", file.Filename), zap.Error(err))
			return respondError(c, err, fmt.Sprintf("failed to save resume %s", file.Filename))
		}
		uploads = append(uploads, *upload)
	}

	session, err := h.screening.CreateSession(services.SessionInput{
		ID:             sessionID,
		JobDescription: jobDescription,
		Uploads:        uploads,
		Previous:       previous,
	})
	if err != nil {
		h.storageService.DeleteSession(sessionID)
		return respondError(c, err, "Failed to create screening session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Files uploaded successfully! Request the report to see the ranking.",
		"session": toSessionResponse(session),
	})
}

func toSessionResponse(session *models.Session) models.SessionResponse {
	uploads := make([]models.UploadResponse, len(session.Uploads))
	for i, u := range session.Uploads {
		uploads[i] = models.UploadResponse{
			Name:     u.Name,
			Filename: u.Filename,
			Size:     u.Size,
		}
	}

	response := models.SessionResponse{
		ID:        session.ID.String(),
		Status:    string(session.Status),
		Uploads:   uploads,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}
	if session.Status == models.SessionFailed && session.ErrorMessage != "" {
		response.Error = &session.ErrorMessage
	}
	return response
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
