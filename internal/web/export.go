package web

import (
	"time"

	"github.com/spacesedan/datatalks/internal/models"
	"github.com/spacesedan/datatalks/internal/sentiment"
	"github.com/spacesedan/datatalks/internal/session"
)

// ExportData is the downloadable snapshot of a session's analysis.
type ExportData struct {
	ExportedAt  string                  `json:"exported_at"`
	ResultCount int                     `json:"result_count"`
	Summary     sentiment.Summary       `json:"summary"`
	Results     []models.AnalysisResult `json:"results"`
}

// StateResponse is what /api/state returns.
type StateResponse struct {
	session.ViewState
	Summary         sentiment.Summary `json:"summary"`
	AnalyzerHealthy bool              `json:"analyzer_healthy"`
}

func newExport(view session.ViewState, now time.Time) ExportData {
	results := view.Results
	if results == nil {
		results = []models.AnalysisResult{}
	}

	summary := view.Summary()
	return ExportData{
		ExportedAt:  now.Format(time.RFC3339),
		ResultCount: summary.Total(),
		Summary:     summary,
		Results:     results,
	}
}
