package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

// ErrSessionFailed is returned for a session whose screening pass already failed.
var ErrSessionFailed = errors.New("screening failed")

type ScreeningService interface {
	CreateSession(input SessionInput) (*models.Session, error)
	Report(ctx context.Context, sessionID uuid.UUID) (*models.Report, error)
	Discard(sessionID uuid.UUID) error
	Screen(ctx context.Context, jobDescription string, uploads []models.Upload) (*models.Report, error)
	RankTexts(jobDescription string, resumes []models.Resume) (*models.Report, error)
}

// SessionInput is what a submission collects before ranking.
type SessionInput struct {
	ID             uuid.UUID
	JobDescription string
	Uploads        []models.Upload
	// Previous names a session from an earlier submission to discard.
	Previous uuid.UUID
}

type screeningService struct {
	sessionRepo    repositories.SessionRepository
	storageService StorageService
	pdfParser      PDFParserService
	ranker         Ranker
	sessionTTL     time.Duration
	log            *zap.Logger

	// one ranking pass at a time
	mu sync.Mutex
}

func NewScreeningService(
	sessionRepo repositories.SessionRepository,
	storageService StorageService,
	pdfParser PDFParserService,
	ranker Ranker,
	sessionTTL time.Duration,
	log *zap.Logger,
) ScreeningService {
	if log == nil {
		log = zap.NewNop()
	}
	return &screeningService{
		sessionRepo:    sessionRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		ranker:         ranker,
		sessionTTL:     sessionTTL,
		log:            log,
	}
}

// CreateSession implements ScreeningService. The previous session, if any, is
// discarded first.
func (s *screeningService) CreateSession(input SessionInput) (*models.Session, error) {
	if input.Previous != uuid.Nil && input.Previous != input.ID {
		if err := s.Discard(input.Previous); err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to discard previous session: %w", err)
		}
	}

	if err := checkInputs(input.JobDescription, len(input.Uploads)); err != nil {
		return nil, err
	}

	if input.ID == uuid.Nil {
		input.ID = uuid.New()
	}

	now := time.Now()
	session := &models.Session{
		ID:             input.ID,
		JobDescription: input.JobDescription,
		Uploads:        input.Uploads,
		Status:         models.SessionPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if s.sessionTTL > 0 {
		session.ExpiresAt = now.Add(s.sessionTTL)
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	ActiveSessions.Set(float64(s.sessionRepo.Count()))

	s.log.Info("session created",
		zap.String("session_id", session.ID.String()),
		zap.Int("resumes", len(input.Uploads)),
		zap.String("job_description", logger.Preview(input.JobDescription, 80)),
	)
	return session, nil
}

// Report implements ScreeningService. The first call runs the screening pass
// and discards the uploaded files; later calls return the stored report.
func (s *screeningService) Report(ctx context.Context, sessionID uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case models.SessionRanked:
		return session.Report, nil
	case models.SessionFailed:
		return nil, fmt.Errorf("%w: %s", ErrSessionFailed, session.ErrorMessage)
	}

	report, screenErr := s.Screen(ctx, session.JobDescription, session.Uploads)

	if err := s.storageService.DeleteSession(sessionID); err != nil {
		s.log.Warn("failed to remove session uploads", zap.String("session_id", sessionID.String()), zap.Error(err))
	}

	if screenErr != nil {
		if err := s.sessionRepo.UpdateError(sessionID, screenErr.Error()); err != nil {
			s.log.Warn("failed to record session error", zap.String("session_id", sessionID.String()), zap.Error(err))
		}
		return nil, screenErr
	}

	if err := s.sessionRepo.UpdateResult(sessionID, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

// Discard implements ScreeningService.
func (s *screeningService) Discard(sessionID uuid.UUID) error {
	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return err
	}
	ActiveSessions.Set(float64(s.sessionRepo.Count()))

	if err := s.storageService.DeleteSession(sessionID); err != nil {
		return err
	}

	s.log.Info("session discarded", zap.String("session_id", sessionID.String()))
	return nil
}

// Screen implements ScreeningService. Résumés are extracted in upload order
// and the first extraction failure aborts the pass.
func (s *screeningService) Screen(ctx context.Context, jobDescription string, uploads []models.Upload) (*models.Report, error) {
	if err := checkInputs(jobDescription, len(uploads)); err != nil {
		ScreeningsTotal.WithLabelValues("missing_input").Inc()
		return nil, err
	}

	// Step 1: Extract text
	texts := make([]string, len(uploads))
	names := make([]string, len(uploads))
	for i, upload := range uploads {
		if err := ctx.Err(); err != nil {
			ScreeningsTotal.WithLabelValues("cancelled").Inc()
			return nil, fmt.Errorf("screening cancelled: %w", err)
		}

		text, err := s.pdfParser.ExtractFile(upload.FilePath)
		if err != nil {
			ExtractionFailuresTotal.Inc()
			ScreeningsTotal.WithLabelValues("extraction_failed").Inc()
			var extErr *ExtractionError
			if errors.As(err, &extErr) {
				extErr.Name = upload.Name
				return nil, extErr
			}
			return nil, &ExtractionError{Name: upload.Name, Err: err}
		}

		s.log.Debug("extracted resume",
			zap.String("resume", upload.Name),
			zap.Int("chars", len(text)),
			zap.String("preview", logger.Preview(text, 60)),
		)
		texts[i] = text
		names[i] = upload.Name
	}

	// Step 2: Rank
	report, err := s.rank(jobDescription, names, texts)
	if err != nil {
		ScreeningsTotal.WithLabelValues("ranking_failed").Inc()
		return nil, err
	}

	ScreeningsTotal.WithLabelValues("ok").Inc()
	return report, nil
}

// RankTexts implements ScreeningService for résumés that are already text.
func (s *screeningService) RankTexts(jobDescription string, resumes []models.Resume) (*models.Report, error) {
	if err := checkInputs(jobDescription, len(resumes)); err != nil {
		return nil, err
	}

	names := make([]string, len(resumes))
	texts := make([]string, len(resumes))
	for i, r := range resumes {
		names[i] = r.Name
		texts[i] = r.Text
	}
	return s.rank(jobDescription, names, texts)
}

func (s *screeningService) rank(jobDescription string, names, texts []string) (*models.Report, error) {
	scores, err := s.ranker.Rank(jobDescription, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to rank resumes: %w", err)
	}

	report, err := NewReport(names, scores)
	if err != nil {
		return nil, err
	}

	if len(report.Results) > 0 {
		best := report.Results[0]
		s.log.Info("ranking completed",
			zap.Int("resumes", report.ResumeCount),
			zap.String("top_resume", best.Name),
			zap.Float64("top_score", best.Score),
		)
	}
	return report, nil
}

func checkInputs(jobDescription string, resumes int) error {
	if strings.TrimSpace(jobDescription) == "" || resumes == 0 {
		return ErrMissingInput
	}
	return nil
}
