package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_ranker_rankings_total",
			Help: "Number of completed ranking passes",
		},
	)

	ResumesScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_ranker_resumes_scored_total",
			Help: "Number of résumés scored across all ranking passes",
		},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_ranker_ranking_duration_seconds",
			Help:    "Time spent vectorizing and scoring one corpus",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)

	ExtractionFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_ranker_extraction_failures_total",
			Help: "Number of résumés whose text could not be extracted",
		},
	)

	ScreeningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_ranker_screenings_total",
			Help: "Screening passes by outcome",
		},
		[]string{"outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_ranker_active_sessions",
			Help: "Sessions currently held in memory",
		},
	)
)

func observeRanking(resumes int, elapsed time.Duration) {
	RankingsTotal.Inc()
	ResumesScoredTotal.Add(float64(resumes))
	RankingDuration.Observe(elapsed.Seconds())
}
