package models

// AnalysisResult is one comment as labelled by the sentiment service. The
// sentiment label is kept as the raw wire string; see sentiment.ParseLabel.
type AnalysisResult struct {
	Comment   string  `json:"comment"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

type AnalyzeRequest struct {
	Comments []string `json:"comments"`
}

// Analysis is a pointer so a body without the key can be told apart from an
// empty result list.
type AnalyzeResponse struct {
	Analysis *[]AnalysisResult `json:"analysis"`
}
