package models

type UploadResponse struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type SessionResponse struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Uploads   []UploadResponse `json:"uploads"`
	ExpiresAt string           `json:"expires_at"`
	Error     *string          `json:"error_message,omitempty"`
}

type RankRequest struct {
	JobDescription string   `json:"job_description"`
	Resumes        []Resume `json:"resumes"`
}

type ReportResponse struct {
	SessionID string         `json:"session_id,omitempty"`
	Results   []ScoredResume `json:"results"`
	Top       []ScoredResume `json:"top"`
	Charts    ChartSet       `json:"charts"`
}

// ChartSet holds chart-ready series derived from a report.
type ChartSet struct {
	Bar     BarChart     `json:"bar"`
	Pie     PieChart     `json:"pie"`
	Heatmap HeatmapChart `json:"heatmap"`
	Top     []TopEntry   `json:"top"`
}

type BarChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Text   []string  `json:"text"`
}

type PieChart struct {
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
	Proportions []float64 `json:"proportions"`
}

type HeatmapChart struct {
	X []string    `json:"x"`
	Z [][]float64 `json:"z"`
}

type TopEntry struct {
	Name     string  `json:"name"`
	Percent  float64 `json:"percent"`
	BarWidth float64 `json:"bar_width"`
}
