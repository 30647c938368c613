package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spacesedan/datatalks/config"
	"github.com/spacesedan/datatalks/internal/models"
)

var ErrMissingAnalysis = errors.New("response has no analysis field")

// StatusError is returned when the sentiment service answers with a non-2xx
// status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sentiment service returned status %d", e.StatusCode)
}

// AnalyzerClient talks to the external sentiment service.
type AnalyzerClient struct {
	BaseURL string
	Client  *http.Client
}

func NewAnalyzerClient(cfg config.AnalyzerConfig) *AnalyzerClient {
	slog.Info("[AnalyzerClient] Initializing Client",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", cfg.Timeout))

	return &AnalyzerClient{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// AnalyzeComments posts the comments as-is and returns the service's analysis.
func (a *AnalyzerClient) AnalyzeComments(ctx context.Context, comments []string) ([]models.AnalysisResult, error) {
	slog.Info("[AnalyzerClient] Requesting sentiment analysis for comments",
		slog.Int("comments", len(comments)))
	start := time.Now()

	var result models.AnalyzeResponse
	err := a.postJSON(ctx, ANALYZE_COMMENTS_PATH, models.AnalyzeRequest{Comments: comments}, &result)
	if err != nil {
		slog.Error("[AnalyzerClient] Comment analysis request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[AnalyzerClient] Comment analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return analysisOf(result)
}

// AnalyzeYouTubeComments asks the service to fetch and analyze the comments of
// a single video.
func (a *AnalyzerClient) AnalyzeYouTubeComments(ctx context.Context, videoID string) ([]models.AnalysisResult, error) {
	slog.Info("[AnalyzerClient] Requesting YouTube comment analysis",
		slog.String("video_id", videoID))
	start := time.Now()

	query := url.Values{}
	query.Set("video_id", videoID)

	var result models.AnalyzeResponse
	err := a.getJSON(ctx, ANALYZE_YOUTUBE_PATH, query, &result)
	if err != nil {
		slog.Error("[AnalyzerClient] YouTube analysis request failed",
			slog.String("video_id", videoID),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[AnalyzerClient] YouTube analysis request successful",
		slog.String("video_id", videoID),
		slog.Duration("elapsed", time.Since(start)))
	return analysisOf(result)
}

// HealthCheck reports whether the service answers at all. Any HTTP response,
// even a 404, counts as reachable.
func (a *AnalyzerClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := a.Client.Do(req)
	if err != nil {
		slog.Debug("[AnalyzerClient] Health check failed",
			slog.String("error", err.Error()))
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

func analysisOf(result models.AnalyzeResponse) ([]models.AnalysisResult, error) {
	if result.Analysis == nil {
		return nil, ErrMissingAnalysis
	}
	return *result.Analysis, nil
}

func (a *AnalyzerClient) postJSON(ctx context.Context, path string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return a.do(req, output)
}

func (a *AnalyzerClient) getJSON(ctx context.Context, path string, query url.Values, output interface{}) error {
	endpoint := a.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return a.do(req, output)
}

func (a *AnalyzerClient) do(req *http.Request, output interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := a.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Error("[AnalyzerClient] Sentiment service returned an error status",
			slog.String("endpoint", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("raw_response", preview(respBody)))
		return &StatusError{StatusCode: resp.StatusCode, Body: preview(respBody)}
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[AnalyzerClient] Failed to unmarshal response",
			slog.String("endpoint", req.URL.Path),
			slog.String("error", err.Error()),
			slog.String("raw_response", preview(respBody)),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func preview(respBody []byte) string {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}
