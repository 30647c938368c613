package session

import (
	"time"

	"github.com/spacesedan/datatalks/internal/models"
	"github.com/spacesedan/datatalks/internal/sentiment"
)

// ViewState is everything one browser session sees on the page. Each
// operation owns its own loading flag so the two can run side by side.
type ViewState struct {
	Input          string                  `json:"input"`
	VideoURL       string                  `json:"video_url"`
	Results        []models.AnalysisResult `json:"results"`
	ManualLoading  bool                    `json:"manual_loading"`
	YouTubeLoading bool                    `json:"youtube_loading"`
	Notice         string                  `json:"notice,omitempty"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func (v ViewState) HasResults() bool {
	return len(v.Results) > 0
}

func (v ViewState) Summary() sentiment.Summary {
	return sentiment.Summarize(v.Results)
}
