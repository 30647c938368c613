package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/datatalks/internal/models"
	"github.com/spacesedan/datatalks/internal/youtube"
)

var (
	ErrNoComments     = errors.New("no comments to analyze")
	ErrInvalidVideoID = errors.New("invalid YouTube link or ID")
)

const (
	NoticeInvalidVideoID = "Please enter a valid YouTube link or ID"
	NoticeYouTubeFailed  = "Something went wrong while fetching YouTube comments."
	NoticeManualFailed   = "Something went wrong while analyzing comments."
)

// Analyzer is the remote sentiment service as seen by a session.
type Analyzer interface {
	AnalyzeComments(ctx context.Context, comments []string) ([]models.AnalysisResult, error)
	AnalyzeYouTubeComments(ctx context.Context, videoID string) ([]models.AnalysisResult, error)
}

// Manager hands out sessions backed by a shared store. State changes go
// through Store.Update so managers in other processes sharing the store never
// overwrite each other; network calls happen outside any update.
type Manager struct {
	store    Store
	analyzer Analyzer
	now      func() time.Time
}

func NewManager(store Store, analyzer Analyzer) *Manager {
	return &Manager{
		store:    store,
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (m *Manager) Session(id string) *Session {
	return &Session{id: id, m: m}
}

type Session struct {
	id string
	m  *Manager
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) View(ctx context.Context) (ViewState, error) {
	state, err := s.m.store.Load(ctx, s.id)
	if err != nil {
		return ViewState{}, fmt.Errorf("load session: %w", err)
	}
	return state, nil
}

// SplitComments returns the lines of raw that are not blank, unmodified and in
// order. A trailing carriage return is dropped from each line since browsers
// submit textarea content with CRLF line breaks.
func SplitComments(raw string) []string {
	var comments []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		comments = append(comments, line)
	}
	return comments
}

// SubmitManualComments sends the non-blank lines of rawText for analysis. With
// nothing to send it makes no call and returns ErrNoComments.
func (s *Session) SubmitManualComments(ctx context.Context, rawText string) error {
	comments := SplitComments(rawText)
	if len(comments) == 0 {
		if _, err := s.update(ctx, func(v *ViewState) { v.Input = rawText }); err != nil {
			return err
		}
		return ErrNoComments
	}

	if _, err := s.update(ctx, func(v *ViewState) {
		v.Input = rawText
		v.ManualLoading = true
		v.Notice = ""
	}); err != nil {
		return err
	}

	var (
		results   []models.AnalysisResult
		succeeded bool
	)
	defer s.finish(ctx, func(v *ViewState) {
		v.ManualLoading = false
		if succeeded {
			v.Results = results
		} else {
			v.Notice = NoticeManualFailed
		}
	})

	results, err := s.m.analyzer.AnalyzeComments(ctx, comments)
	if err != nil {
		slog.Error("[Session] Manual comment analysis failed",
			slog.String("session", s.id),
			slog.Int("comments", len(comments)),
			slog.String("error", err.Error()))
		return fmt.Errorf("analyze comments: %w", err)
	}

	succeeded = true
	slog.Info("[Session] Manual comment analysis complete",
		slog.String("session", s.id),
		slog.Int("results", len(results)))
	return nil
}

// AnalyzeYouTube has the service fetch and analyze the comments of the video
// named by urlOrID. An input without a usable id makes no call and returns
// ErrInvalidVideoID.
func (s *Session) AnalyzeYouTube(ctx context.Context, urlOrID string) error {
	videoID := youtube.ExtractVideoID(urlOrID)
	if videoID == "" {
		if _, err := s.update(ctx, func(v *ViewState) {
			v.VideoURL = urlOrID
			v.Notice = NoticeInvalidVideoID
		}); err != nil {
			return err
		}
		return ErrInvalidVideoID
	}

	if _, err := s.update(ctx, func(v *ViewState) {
		v.VideoURL = urlOrID
		v.YouTubeLoading = true
		v.Notice = ""
	}); err != nil {
		return err
	}

	var (
		results   []models.AnalysisResult
		succeeded bool
	)
	defer s.finish(ctx, func(v *ViewState) {
		v.YouTubeLoading = false
		if succeeded {
			v.Results = results
		} else {
			v.Notice = NoticeYouTubeFailed
		}
	})

	results, err := s.m.analyzer.AnalyzeYouTubeComments(ctx, videoID)
	if err != nil {
		slog.Error("[Session] YouTube comment analysis failed",
			slog.String("session", s.id),
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return fmt.Errorf("analyze youtube comments: %w", err)
	}

	succeeded = true
	slog.Info("[Session] YouTube comment analysis complete",
		slog.String("session", s.id),
		slog.String("video_id", videoID),
		slog.Int("results", len(results)))
	return nil
}

func (s *Session) DismissNotice(ctx context.Context) error {
	_, err := s.update(ctx, func(v *ViewState) { v.Notice = "" })
	return err
}

// finish applies the closing update of an operation. It runs even when the
// request context is already cancelled so the loading flag always clears.
func (s *Session) finish(ctx context.Context, fn func(*ViewState)) {
	if _, err := s.update(context.WithoutCancel(ctx), fn); err != nil {
		slog.Error("[Session] Failed to store operation outcome",
			slog.String("session", s.id),
			slog.String("error", err.Error()))
	}
}

func (s *Session) update(ctx context.Context, fn func(*ViewState)) (ViewState, error) {
	now := s.m.now()
	state, err := s.m.store.Update(ctx, s.id, func(v *ViewState) {
		fn(v)
		v.UpdatedAt = now
	})
	if err != nil {
		return ViewState{}, fmt.Errorf("update session: %w", err)
	}
	return state, nil
}
