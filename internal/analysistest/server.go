// Package analysistest provides an in-process stand-in for the sentiment
// service, speaking the same JSON wire format.
package analysistest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/spacesedan/datatalks/internal/models"
)

type Backend struct {
	*httptest.Server

	mu            sync.Mutex
	videoComments map[string][]string
	status        int
	received      [][]string
	videoRequests []string
}

// NewBackend starts a backend that knows the comments of the given videos.
// Callers must Close it.
func NewBackend(videos map[string][]string) *Backend {
	b := &Backend{videoComments: videos}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", b.handleAnalyze)
	mux.HandleFunc("GET /analyze-youtube-comments", b.handleYouTube)
	b.Server = httptest.NewServer(mux)
	return b
}

// FailWith makes every following request answer with status. Zero restores
// normal behaviour.
func (b *Backend) FailWith(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

// Received returns the comment batches posted to /analyze, in order.
func (b *Backend) Received() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.received...)
}

// VideoRequests returns the video ids asked for, in order.
func (b *Backend) VideoRequests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.videoRequests...)
}

func (b *Backend) failing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Backend) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	b.received = append(b.received, req.Comments)
	b.mu.Unlock()

	if status := b.failing(); status != 0 {
		writeJSON(w, status, map[string]string{"detail": "analysis failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": analyze(req.Comments)})
}

func (b *Backend) handleYouTube(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")

	b.mu.Lock()
	b.videoRequests = append(b.videoRequests, videoID)
	comments, ok := b.videoComments[videoID]
	b.mu.Unlock()

	if status := b.failing(); status != 0 {
		writeJSON(w, status, map[string]string{"detail": "analysis failed"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "video not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": analyze(comments)})
}

func analyze(comments []string) []models.AnalysisResult {
	results := make([]models.AnalysisResult, 0, len(comments))
	for _, comment := range comments {
		score, label := Label(comment)
		results = append(results, models.AnalysisResult{
			Comment:   comment,
			Sentiment: label,
			Score:     score,
		})
	}
	return results
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
