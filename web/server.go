// Package web serves the dashboard page and accepts roll commands from its
// buttons.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/dashboard/dashboard"
	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

// Routes.
const (
	PathIndex  = "/"
	PathView   = "/view"
	PathRolls  = "/rolls"
	PathHealth = "/healthz"
	PathStatus = "/api/status"
)

// Controller is the part of *dashboard.Dashboard the server drives.
type Controller interface {
	Refresh(ctx context.Context) error
	Roll(ctx context.Context, cmd report.RollCommand) (report.RollKind, error)
	Document() *view.Document
}

type Config struct {
	Addr  string
	Title string
	// RefreshOnLoad re-queries the backend on every GET /.
	RefreshOnLoad bool
	// Reload makes the page re-fetch itself on this interval. Zero disables it.
	Reload    time.Duration
	ReloadURL string
	Log       zerolog.Logger
}

type Server struct {
	cfg    Config
	ctl    Controller
	layout view.Layout
	log    zerolog.Logger
}

func NewServer(cfg Config, ctl Controller) *Server {
	if cfg.ReloadURL == "" {
		cfg.ReloadURL = PathView
	}
	return &Server{
		cfg: cfg,
		ctl: ctl,
		layout: dashboard.Layout(dashboard.LayoutOptions{
			Title:     cfg.Title,
			Action:    PathRolls,
			Reload:    cfg.Reload,
			ReloadURL: cfg.ReloadURL,
		}),
		log: cfg.Log.With().Str("component", "web").Logger(),
	}
}

// Handler returns the router with its middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get(PathIndex, s.handleIndex)
	r.Get(PathView, s.handleView)
	r.Post(PathRolls, s.handleRoll)
	r.Get(PathHealth, s.handleHealth)
	r.Get(PathStatus, s.handleStatus)
	return r
}

// HTTPServer wraps Handler in an *http.Server bound to cfg.Addr.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A page load may wait on a full refresh.
		WriteTimeout: 60 * time.Second,
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := s.HTTPServer()

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.cfg.RefreshOnLoad {
		// Failed panels carry a fault and are rendered with it.
		if err := s.ctl.Refresh(r.Context()); err != nil {
			s.log.Debug().Err(err).Msg("refresh on load incomplete")
		}
	}
	s.render(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.render(w)
}

func (s *Server) render(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := view.Render(&buf, s.layout, s.ctl.Document().Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	cmd, err := parseRollForm(r)
	if err != nil {
		s.log.Warn().Err(err).Msg("rejected roll form")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Backend failures are shown as a fault on the rolls panel.
	if _, err := s.ctl.Roll(r.Context(), cmd); err != nil {
		s.log.Debug().Err(err).Msg("roll failed")
	}
	http.Redirect(w, r, PathView, http.StatusSeeOther)
}

func parseRollForm(r *http.Request) (report.RollCommand, error) {
	if err := r.ParseForm(); err != nil {
		return report.RollCommand{}, fmt.Errorf("parse form: %w", err)
	}

	var cmd report.RollCommand
	cmd.Instrument = strings.TrimSpace(r.PostForm.Get("instrument"))

	st, err := report.ParseRollState(r.PostForm.Get("state"))
	if err != nil {
		return cmd, err
	}
	cmd.State = st

	if v := r.PostForm.Get("confirmed"); v != "" {
		if cmd.Confirmed, err = strconv.ParseBool(v); err != nil {
			return cmd, fmt.Errorf("confirmed: %w", err)
		}
	}
	return cmd, cmd.Validate()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

type indicatorJSON struct {
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}

type faultJSON struct {
	Error string    `json:"error"`
	At    time.Time `json:"at"`
}

type statusJSON struct {
	Indicators map[string]indicatorJSON `json:"indicators"`
	Faults     map[string]faultJSON     `json:"faults"`
	Updated    map[string]time.Time     `json:"updated"`
	Taken      time.Time                `json:"taken"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.ctl.Document().Snapshot()

	resp := statusJSON{
		Indicators: make(map[string]indicatorJSON, len(snap.Indicators)),
		Faults:     make(map[string]faultJSON, len(snap.Faults)),
		Updated:    snap.Updated,
		Taken:      snap.Taken,
	}
	for id, ind := range snap.Indicators {
		resp.Indicators[id] = indicatorJSON{Status: string(ind.Status), Text: ind.Text}
	}
	for panel, f := range snap.Faults {
		resp.Faults[panel] = faultJSON{Error: f.Err, At: f.At}
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("took", time.Since(start)).
					Msg("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
