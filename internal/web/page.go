package web

import (
	"html/template"
	"strconv"

	"github.com/spacesedan/datatalks/internal/models"
	"github.com/spacesedan/datatalks/internal/sentiment"
	"github.com/spacesedan/datatalks/internal/session"
)

const (
	captionYouTubeIdle = "Analyze YouTube Comments 🎥"
	captionYouTubeBusy = "Analyzing YouTube..."
	captionManualIdle  = "Analyze Manual Comments ✍️"
	captionManualBusy  = "Analyzing..."
)

type page struct {
	Input          string
	VideoURL       string
	YouTubeCaption string
	ManualCaption  string
	YouTubeBusy    string
	ManualBusy     string
	Loading        bool
	Notice         string
	AnalyzerDown   bool
	HasResults     bool
	Chart          Chart
	Results        []resultItem
}

type resultItem struct {
	Label   string
	Style   template.CSS
	Comment string
	Score   string
}

func newPage(view session.ViewState, analyzerHealthy bool) page {
	p := page{
		Input:          view.Input,
		VideoURL:       view.VideoURL,
		YouTubeCaption: caption(view.YouTubeLoading, captionYouTubeIdle, captionYouTubeBusy),
		ManualCaption:  caption(view.ManualLoading, captionManualIdle, captionManualBusy),
		YouTubeBusy:    captionYouTubeBusy,
		ManualBusy:     captionManualBusy,
		Loading:        view.ManualLoading || view.YouTubeLoading,
		Notice:         view.Notice,
		AnalyzerDown:   !analyzerHealthy,
		HasResults:     view.HasResults(),
	}
	if !p.HasResults {
		return p
	}

	p.Chart = newChart(view.Summary())
	p.Results = make([]resultItem, 0, len(view.Results))
	for _, res := range view.Results {
		p.Results = append(p.Results, newResultItem(res))
	}
	return p
}

func newResultItem(res models.AnalysisResult) resultItem {
	return resultItem{
		Label:   sentiment.DisplayLabel(res.Sentiment),
		Style:   template.CSS("color: " + sentiment.ParseLabel(res.Sentiment).Color().Hex()),
		Comment: res.Comment,
		Score:   strconv.FormatFloat(res.Score, 'f', -1, 64),
	}
}

func caption(loading bool, idle, busy string) string {
	if loading {
		return busy
	}
	return idle
}
