package services

import (
	"fmt"
	"sort"
	"time"

	"alfredoptarigan/resume-ranker/internal/models"
)

const DefaultTopN = 5

// NewReport pairs names with scores and orders them by score descending.
// Equal scores keep their upload order.
func NewReport(names []string, scores []float64) (*models.Report, error) {
	if len(names) != len(scores) {
		return nil, fmt.Errorf("%w: %d names, %d scores", ErrLengthMismatch, len(names), len(scores))
	}

	results := make([]models.ScoredResume, len(names))
	for i := range names {
		results[i] = models.ScoredResume{
			Name:     names[i],
			Score:    scores[i],
			Position: i,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	return &models.Report{
		Results:     results,
		ResumeCount: len(results),
		GeneratedAt: time.Now(),
	}, nil
}

// BuildCharts derives chart series from a report, keeping report order.
func BuildCharts(report *models.Report, topN int) models.ChartSet {
	if topN <= 0 {
		topN = DefaultTopN
	}

	n := len(report.Results)
	charts := models.ChartSet{
		Bar: models.BarChart{
			Labels: make([]string, n),
			Values: make([]float64, n),
			Text:   make([]string, n),
		},
		Pie: models.PieChart{
			Labels:      make([]string, n),
			Values:      make([]float64, n),
			Proportions: make([]float64, n),
		},
		Heatmap: models.HeatmapChart{
			X: make([]string, n),
			Z: [][]float64{make([]float64, n)},
		},
		Top: []models.TopEntry{},
	}

	var total float64
	for _, res := range report.Results {
		total += res.Score
	}

	for i, res := range report.Results {
		percent := res.Score * 100

		charts.Bar.Labels[i] = res.Name
		charts.Bar.Values[i] = percent
		charts.Bar.Text[i] = fmt.Sprintf("%.2f%%", res.Percent())

		charts.Pie.Labels[i] = res.Name
		charts.Pie.Values[i] = res.Score
		if total > 0 {
			charts.Pie.Proportions[i] = res.Score / total
		}

		charts.Heatmap.X[i] = res.Name
		charts.Heatmap.Z[0][i] = percent
	}

	for _, res := range report.Top(topN) {
		charts.Top = append(charts.Top, models.TopEntry{
			Name:     res.Name,
			Percent:  res.Percent(),
			BarWidth: res.Percent(),
		})
	}

	return charts
}

// NewReportResponse wraps a report with its top entries and chart series.
func NewReportResponse(sessionID string, report *models.Report, topN int) models.ReportResponse {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return models.ReportResponse{
		SessionID: sessionID,
		Results:   report.Results,
		Top:       report.Top(topN),
		Charts:    BuildCharts(report, topN),
	}
}
