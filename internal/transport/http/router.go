package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

// Panel is the read side of a session
type Panel interface {
	ID() string
	Color() domain.DisplayColor
	Log(ctx context.Context) ([]*domain.LogEntry, error)
	Capabilities() string
}

// NewRouter wires the health, metrics and read-only panel endpoints.
func NewRouter(panel Panel) *mux.Router {
	h := &handlers{panel: panel}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/v1/state", h.state).Methods(http.MethodGet)
	r.HandleFunc("/v1/log", h.log).Methods(http.MethodGet)
	return r
}

type handlers struct {
	panel Panel
}

type stateResponse struct {
	SessionID    string `json:"session_id"`
	Color        string `json:"color"`
	Capabilities string `json:"capabilities"`
}

type logLine struct {
	Seq       int64  `json:"seq"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Bucket    string `json:"bucket,omitempty"`
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) state(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse{
		SessionID:    h.panel.ID(),
		Color:        string(h.panel.Color()),
		Capabilities: h.panel.Capabilities(),
	})
}

func (h *handlers) log(w http.ResponseWriter, r *http.Request) {
	entries, err := h.panel.Log(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list log")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read log"})
		return
	}

	lines := make([]logLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, logLine{
			Seq:       e.Seq,
			Text:      e.Text,
			Timestamp: e.Timestamp.UnixMilli(),
			Bucket:    string(e.Bucket),
		})
	}
	writeJSON(w, http.StatusOK, lines)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
