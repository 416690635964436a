package repositories

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	UpdateResult(id uuid.UUID, report *models.Report) error
	UpdateError(id uuid.UUID, errorMsg string) error
	Delete(id uuid.UUID) error
	FindExpired(now time.Time, limit int) ([]models.Session, error)
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[uuid.UUID]*models.Session)}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == uuid.Nil {
		return fmt.Errorf("failed to create session: missing id")
	}
	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("failed to create session: %s already exists", session.ID)
	}

	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

// FindByID implements SessionRepository. The returned session is a copy.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	found := *session
	return &found, nil
}

// UpdateResult implements SessionRepository.
func (r *sessionRepository) UpdateResult(id uuid.UUID, report *models.Report) error {
	return r.update(id, func(s *models.Session) {
		s.Status = models.SessionRanked
		s.Report = report
		s.ErrorMessage = ""
	})
}

// UpdateError implements SessionRepository.
func (r *sessionRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, func(s *models.Session) {
		s.Status = models.SessionFailed
		s.ErrorMessage = errorMsg
	})
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// FindExpired implements SessionRepository. Oldest sessions come first.
func (r *sessionRepository) FindExpired(now time.Time, limit int) ([]models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var expired []models.Session
	for _, s := range r.sessions {
		if s.Expired(now) {
			expired = append(expired, *s)
		}
	}

	sort.Slice(expired, func(i, j int) bool {
		return expired[i].CreatedAt.Before(expired[j].CreatedAt)
	})

	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	return expired, nil
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *sessionRepository) update(id uuid.UUID, apply func(s *models.Session)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	apply(session)
	session.UpdatedAt = time.Now()
	return nil
}
