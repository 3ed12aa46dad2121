package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

type stubPanel struct {
	entries []*domain.LogEntry
	err     error
}

func (p *stubPanel) ID() string                 { return "s1" }
func (p *stubPanel) Color() domain.DisplayColor { return domain.ColorRed }
func (p *stubPanel) Capabilities() string       { return "Sorry, there is no accelerometer" }
func (p *stubPanel) Log(context.Context) ([]*domain.LogEntry, error) {
	return p.entries, p.err
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(&stubPanel{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestState(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(&stubPanel{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "RED", got.Color)
	require.Equal(t, "s1", got.SessionID)
}

func TestLog(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)
	panel := &stubPanel{entries: []*domain.LogEntry{
		{Seq: 1, Text: "Sorry, there is no light sensor", Timestamp: at},
	}}

	rec := httptest.NewRecorder()
	NewRouter(panel).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/log", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []logLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, at.UnixMilli(), got[0].Timestamp)
}

func TestLog_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(&stubPanel{err: errors.New("db closed")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/log", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(&stubPanel{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/state", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
