package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/testutil"
)

type screeningFixture struct {
	repo      repositories.SessionRepository
	storage   StorageService
	screening ScreeningService
}

func newScreeningFixture(t *testing.T, ttl time.Duration) *screeningFixture {
	t.Helper()

	repo := repositories.NewSessionRepository()
	storage := NewStorageService(t.TempDir(), 1<<20)
	require.NoError(t, storage.EnsureUploadDir())

	return &screeningFixture{
		repo:    repo,
		storage: storage,
		screening: NewScreeningService(
			repo,
			storage,
			NewPDFParserService(nil),
			NewRanker(nil, nil),
			ttl,
			nil,
		),
	}
}

func (f *screeningFixture) upload(t *testing.T, sessionID uuid.UUID, name string, data []byte) models.Upload {
	t.Helper()
	upload, err := f.storage.SaveReader(sessionID, name, bytes.NewReader(data))
	require.NoError(t, err)
	return *upload
}

func TestScreenRanksUploads(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)
	id := uuid.New()

	uploads := []models.Upload{
		f.upload(t, id, "chef.pdf", testutil.BuildPDF([]string{"Chef restaurant manager"})),
		f.upload(t, id, "gopher.pdf", testutil.BuildPDF([]string{"Go engineer backend services", "Kubernetes PostgreSQL gRPC"})),
		f.upload(t, id, "pythonista.pdf", testutil.BuildPDF([]string{"Python engineer"})),
	}

	report, err := f.screening.Screen(context.Background(), jobDescription, uploads)
	require.NoError(t, err)

	assert.Equal(t, []string{"gopher.pdf", "pythonista.pdf", "chef.pdf"}, report.Names())
	assert.Equal(t, 0.0, report.Results[2].Score)
	assert.Equal(t, 0, report.Results[2].Position)
}

func TestScreenAbortsOnExtractionError(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)
	id := uuid.New()

	uploads := []models.Upload{
		f.upload(t, id, "good.pdf", testutil.BuildPDF([]string{"Go engineer"})),
		f.upload(t, id, "scan.pdf", []byte("not really a pdf")),
	}

	_, err := f.screening.Screen(context.Background(), jobDescription, uploads)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtraction))

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "scan.pdf", extErr.Name)
}

func TestScreenMissingInput(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)

	_, err := f.screening.Screen(context.Background(), "   ", []models.Upload{{Name: "a.pdf"}})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = f.screening.Screen(context.Background(), jobDescription, nil)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestScreenCancelled(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)
	id := uuid.New()
	uploads := []models.Upload{f.upload(t, id, "a.pdf", testutil.BuildPDF([]string{"Go"}))}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.screening.Screen(ctx, jobDescription, uploads)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankTexts(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)

	report, err := f.screening.RankTexts(jobDescription, []models.Resume{
		{Name: "empty", Text: ""},
		{Name: "same", Text: jobDescription},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"same", "empty"}, report.Names())
	assert.InDelta(t, 1.0, report.Results[0].Score, 1e-6)
	assert.Equal(t, 0.0, report.Results[1].Score)

	_, err = f.screening.RankTexts("", []models.Resume{{Name: "x", Text: "go"}})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestSessionReportLifecycle(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)
	id := uuid.New()
	upload := f.upload(t, id, "gopher.pdf", testutil.BuildPDF([]string{"Go engineer Kubernetes"}))

	session, err := f.screening.CreateSession(SessionInput{
		ID:             id,
		JobDescription: jobDescription,
		Uploads:        []models.Upload{upload},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionPending, session.Status)
	assert.False(t, session.ExpiresAt.IsZero())

	report, err := f.screening.Report(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	_, err = os.Stat(upload.FilePath)
	assert.True(t, os.IsNotExist(err), "uploads should be removed after the report is rendered")

	stored, err := f.repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.SessionRanked, stored.Status)

	again, err := f.screening.Report(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, report, again)

	require.NoError(t, f.screening.Discard(id))
	_, err = f.screening.Report(context.Background(), id)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestSessionReportFailure(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)
	id := uuid.New()
	upload := f.upload(t, id, "broken.pdf", []byte("garbage"))

	_, err := f.screening.CreateSession(SessionInput{ID: id, JobDescription: jobDescription, Uploads: []models.Upload{upload}})
	require.NoError(t, err)

	_, err = f.screening.Report(context.Background(), id)
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = f.screening.Report(context.Background(), id)
	assert.ErrorIs(t, err, ErrSessionFailed)

	stored, err := f.repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.SessionFailed, stored.Status)
	assert.Contains(t, stored.ErrorMessage, "broken.pdf")
}

func TestCreateSessionDiscardsPrevious(t *testing.T) {
	f := newScreeningFixture(t, time.Hour)

	firstID := uuid.New()
	first := f.upload(t, firstID, "a.pdf", testutil.BuildPDF([]string{"Go"}))
	_, err := f.screening.CreateSession(SessionInput{ID: firstID, JobDescription: jobDescription, Uploads: []models.Upload{first}})
	require.NoError(t, err)

	secondID := uuid.New()
	second := f.upload(t, secondID, "b.pdf", testutil.BuildPDF([]string{"Go"}))
	_, err = f.screening.CreateSession(SessionInput{
		ID:             secondID,
		JobDescription: jobDescription,
		Uploads:        []models.Upload{second},
		Previous:       firstID,
	})
	require.NoError(t, err)

	_, err = f.repo.FindByID(firstID)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
	_, err = os.Stat(filepath.Dir(first.FilePath))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 1, f.repo.Count())

	_, err = f.screening.CreateSession(SessionInput{JobDescription: "", Uploads: []models.Upload{second}})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestSweeperDiscardsExpiredSessions(t *testing.T) {
	f := newScreeningFixture(t, time.Minute)
	id := uuid.New()
	upload := f.upload(t, id, "a.pdf", testutil.BuildPDF([]string{"Go"}))

	_, err := f.screening.CreateSession(SessionInput{ID: id, JobDescription: jobDescription, Uploads: []models.Upload{upload}})
	require.NoError(t, err)

	sweeper := NewSweeper(f.repo, f.screening, time.Hour, nil)
	assert.Equal(t, 0, sweeper.SweepOnce(time.Now()))
	assert.Equal(t, 1, sweeper.SweepOnce(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, f.repo.Count())

	_, err = os.Stat(upload.FilePath)
	assert.True(t, os.IsNotExist(err))
}

func TestSweeperStartStop(t *testing.T) {
	f := newScreeningFixture(t, time.Minute)
	sweeper := NewSweeper(f.repo, f.screening, 10*time.Millisecond, nil)

	sweeper.Start()
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()
	sweeper.Stop()
}
