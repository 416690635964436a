package models

import (
	"math"
	"time"
)

// Resume is an uploaded résumé after text extraction.
type Resume struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ScoredResume is one row of a ranking report.
type ScoredResume struct {
	Name     string  `json:"resume"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
	Position int     `json:"position"`
}

// Percent returns the score as a percentage rounded to two decimals.
func (s ScoredResume) Percent() float64 {
	return RoundPercent(s.Score)
}

// Report holds résumés ordered by score descending. Equal scores keep upload order.
type Report struct {
	Results     []ScoredResume `json:"results"`
	ResumeCount int            `json:"resume_count"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Top returns at most n leading results.
func (r *Report) Top(n int) []ScoredResume {
	if n <= 0 || n > len(r.Results) {
		n = len(r.Results)
	}
	return r.Results[:n]
}

// Names returns résumé names in report order.
func (r *Report) Names() []string {
	names := make([]string, len(r.Results))
	for i, res := range r.Results {
		names[i] = res.Name
	}
	return names
}

// RoundPercent converts a [0,1] score to a percentage with two decimals.
func RoundPercent(score float64) float64 {
	return math.Round(score*10000) / 100
}
