package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/repositories"
)

const sweepBatch = 100

// Sweeper discards sessions that outlived their TTL.
type Sweeper interface {
	Start()
	Stop()
	SweepOnce(now time.Time) int
}

type sweeper struct {
	sessionRepo repositories.SessionRepository
	screening   ScreeningService
	interval    time.Duration
	log         *zap.Logger
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewSweeper(
	sessionRepo repositories.SessionRepository,
	screening ScreeningService,
	interval time.Duration,
	log *zap.Logger,
) Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &sweeper{
		sessionRepo: sessionRepo,
		screening:   screening,
		interval:    interval,
		log:         log,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Sweeper.
func (s *sweeper) Start() {
	s.wg.Add(1)
	go s.poll()
	s.log.Info("session sweeper started", zap.Duration("interval", s.interval))
}

// Stop implements Sweeper.
func (s *sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.log.Info("session sweeper stopped")
}

// SweepOnce implements Sweeper and returns the number of discarded sessions.
func (s *sweeper) SweepOnce(now time.Time) int {
	expired, err := s.sessionRepo.FindExpired(now, sweepBatch)
	if err != nil {
		s.log.Warn("failed to fetch expired sessions", zap.Error(err))
		return 0
	}

	discarded := 0
	for _, session := range expired {
		if err := s.screening.Discard(session.ID); err != nil {
			s.log.Warn("failed to discard session", zap.String("session_id", session.ID.String()), zap.Error(err))
			continue
		}
		discarded++
	}

	if discarded > 0 {
		s.log.Info("expired sessions discarded", zap.Int("count", discarded))
	}
	return discarded
}

func (s *sweeper) poll() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.SweepOnce(now)
		}
	}
}
