package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"logdash/internal/models"
	"logdash/internal/summary"
)

const (
	liveWriteTimeout = 5 * time.Second
	liveFetchTimeout = 30 * time.Second
)

var liveUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

// liveMessage is pushed to websocket clients whenever the parsed run changes.
type liveMessage struct {
	Log         string             `json:"log"`
	GeneratedAt time.Time          `json:"generated_at"`
	Summary     *models.RunSummary `json:"summary,omitempty"`
	Error       string             `json:"error,omitempty"`
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request, name string) {
	initial, err := s.summaries.Summary(r.Context(), name)
	if err != nil {
		s.writeSummaryError(w, name, err)
		return
	}
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveLiveConnection(conn, name, initial)
}

func (s *Server) serveLiveConnection(conn *websocket.Conn, name string, initial models.RunSummary) {
	defer conn.Close()

	if err := writeLivePayload(conn, name, initial); err != nil {
		return
	}
	lastFingerprint := summary.Fingerprint(initial)

	ticker := time.NewTicker(s.pushInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			current, err := s.fetchSummary(name)
			if err != nil {
				s.log.WithError(err).WithField("log", name).Debug("live refresh failed")
				_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
				if err := conn.WriteJSON(liveMessage{Log: name, GeneratedAt: time.Now().UTC(), Error: err.Error()}); err != nil {
					return
				}
				continue
			}
			fingerprint := summary.Fingerprint(current)
			if fingerprint == lastFingerprint {
				continue
			}
			if err := writeLivePayload(conn, name, current); err != nil {
				return
			}
			lastFingerprint = fingerprint
		case <-done:
			return
		}
	}
}

func (s *Server) fetchSummary(name string) (models.RunSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), liveFetchTimeout)
	defer cancel()
	return s.summaries.Summary(ctx, name)
}

func writeLivePayload(conn *websocket.Conn, name string, current models.RunSummary) error {
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return conn.WriteJSON(liveMessage{
		Log:         name,
		GeneratedAt: time.Now().UTC(),
		Summary:     &current,
	})
}
