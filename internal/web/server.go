package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/datatalks/config"
	"github.com/spacesedan/datatalks/internal/session"
)

const SESSION_COOKIE = "datatalks_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Server struct {
	manager *session.Manager
	healthy *atomic.Bool
	cfg     config.WebConfig
	now     func() time.Time
}

// NewServer serves the analyzer page. healthy may be nil when no health
// monitor runs; the service is then assumed reachable.
func NewServer(manager *session.Manager, healthy *atomic.Bool, cfg config.WebConfig) *Server {
	return &Server{
		manager: manager,
		healthy: healthy,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze/manual", s.handleManual)
	mux.HandleFunc("POST /analyze/youtube", s.handleYouTube)
	mux.HandleFunc("POST /notice/dismiss", s.handleDismiss)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /export.json", s.handleExport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) analyzerHealthy() bool {
	return s.healthy == nil || s.healthy.Load()
}

// session resolves the caller's session from its cookie, issuing a fresh id
// when the cookie is missing or malformed. The cookie is re-sent on every
// request so it expires together with the store entry, which slides on use.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := ""
	if c, err := r.Cookie(SESSION_COOKIE); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SESSION_COOKIE,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return s.manager.Session(id)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	view, err := sess.View(r.Context())
	if err != nil {
		slog.Error("[Web] Failed to load session",
			slog.String("session", sess.ID()),
			slog.String("error", err.Error()))
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPage(view, s.analyzerHealthy())); err != nil {
		slog.Error("[Web] Failed to render page",
			slog.String("error", err.Error()))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// The analysis outlives a closed tab; the client timeout still bounds it.
	err := sess.SubmitManualComments(context.WithoutCancel(r.Context()), r.PostFormValue("comments"))
	s.respond(w, r, sess, err)
}

func (s *Server) handleYouTube(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err := sess.AnalyzeYouTube(context.WithoutCancel(r.Context()), r.PostFormValue("video_url"))
	s.respond(w, r, sess, err)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.respond(w, r, sess, sess.DismissNotice(r.Context()))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeState(w, r, sess, http.StatusOK)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	view, err := sess.View(r.Context())
	if err != nil {
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="sentiment-analysis.json"`)
	writeJSON(w, http.StatusOK, newExport(view, s.now()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"analyzer_healthy": s.analyzerHealthy(),
	})
}

// respond finishes a form post: browsers are sent back to the page, API
// callers get the resulting state with a status code matching the outcome.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNoComments), errors.Is(err, session.ErrInvalidVideoID):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadGateway
	}
	s.writeState(w, r, sess, status)
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	view, err := sess.View(r.Context())
	if err != nil {
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, StateResponse{
		ViewState:       view,
		Summary:         view.Summary(),
		AnalyzerHealthy: s.analyzerHealthy(),
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[Web] Failed to encode response",
			slog.String("error", err.Error()))
	}
}
