package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"logdash/internal/metrics"
	"logdash/internal/models"
	"logdash/internal/storage"
)

//go:embed static/*
var embeddedStatic embed.FS

const (
	defaultHistoryLimit = 200
	defaultPushInterval = 5 * time.Second
	liveSuffix          = "/ws"
)

// Summaries lists logs and resolves them to run summaries.
type Summaries interface {
	List(ctx context.Context) ([]models.LogFile, error)
	Summary(ctx context.Context, name string) (models.RunSummary, error)
}

// History exposes recorded runs.
type History interface {
	HistoryN(n int) []models.RunRecord
}

// Options configures a Server.
type Options struct {
	Addr                 string
	DashboardPath        string
	ScreenshotsDirectory string
	HistoryLimit         int
	PushInterval         time.Duration
	Summaries            Summaries
	History              History
	Log                  logrus.FieldLogger
}

// Server wraps HTTP serving of API + static assets.
type Server struct {
	httpServer     *http.Server
	summaries      Summaries
	history        History
	staticFS       fs.FS
	dashboardPath  string
	screenshotsDir string
	historyLimit   int
	pushInterval   time.Duration
	log            logrus.FieldLogger
}

// New creates a configured HTTP server for the dashboard.
func New(opts Options) *Server {
	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic("static assets missing: " + err.Error())
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.PushInterval <= 0 {
		opts.PushInterval = defaultPushInterval
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer:     &http.Server{Addr: opts.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		summaries:      opts.Summaries,
		history:        opts.History,
		staticFS:       staticFS,
		dashboardPath:  opts.DashboardPath,
		screenshotsDir: opts.ScreenshotsDirectory,
		historyLimit:   opts.HistoryLimit,
		pushInterval:   opts.PushInterval,
		log:            opts.Log,
	}
	s.registerRoutes(mux)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	fileServer := http.FileServer(http.FS(s.staticFS))

	mux.Handle("/", http.HandlerFunc(s.handleIndex))
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))
	mux.Handle("/favicon.ico", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		icon, err := fs.ReadFile(s.staticFS, "favicon.ico")
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "image/x-icon")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(icon)
	}))
	if s.screenshotsDir != "" {
		mux.Handle("/screenshots/", http.StripPrefix("/screenshots/", http.FileServer(http.Dir(s.screenshotsDir))))
	}
	mux.HandleFunc("/api/logs", s.handleList)
	mux.HandleFunc("/api/logs/", s.handleLog)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/stats", s.handleStats)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := s.dashboardPage()
	if err != nil {
		s.log.WithError(err).Error("dashboard page unavailable")
		http.Error(w, "index missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) dashboardPage() ([]byte, error) {
	if s.dashboardPath != "" {
		return os.ReadFile(s.dashboardPath)
	}
	return fs.ReadFile(s.staticFS, "index.html")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	files, err := s.summaries.List(r.Context())
	if err != nil {
		s.log.WithError(err).Warn("list logs failed")
		writeJSON(w, http.StatusOK, map[string]any{
			"logs":  []string{},
			"error": err.Error(),
		})
		return
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": names})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/logs/")
	if name == "" {
		s.handleList(w, r)
		return
	}
	if live, ok := strings.CutSuffix(name, liveSuffix); ok {
		s.handleLive(w, r, live)
		return
	}

	summary, err := s.summaries.Summary(r.Context(), name)
	if err != nil {
		s.writeSummaryError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) writeSummaryError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Log file not found"})
		return
	}
	s.log.WithError(err).WithField("log", name).Error("read log failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read log file"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	writeJSON(w, http.StatusOK, s.recordedRuns(limit))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	stats := metrics.ComputeLogStats(s.recordedRuns(limit))
	if stats == nil {
		stats = []metrics.LogStats{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) recordedRuns(limit int) []models.RunRecord {
	if s.history == nil {
		return []models.RunRecord{}
	}
	return s.history.HistoryN(limit)
}

func parseLimit(r *http.Request, fallback int) int {
	if fallback <= 0 {
		return fallback
	}
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > fallback {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
