package shared

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydesk/internal/platform/logger"
)

func newLoggedRequest(t *testing.T) (*http.Request, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.GetTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/api/graves", nil)
	ctx := logger.WithLogger(req.Context(), log)
	ctx = WithTraceID(ctx, "trace-1")
	return req.WithContext(ctx), buf
}

func TestRespondWithJSON(t *testing.T) {
	req, _ := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]int{"count": 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count": 2}`, w.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	req, buf := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	logger.AssertLogContains(t, buf, "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	req, _ := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "grave entry not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "grave entry not found", body.Error)
	assert.Equal(t, "trace-1", body.TraceID)
	assert.Zero(t, body.Code, "Code is never serialized")
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "bad")

	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "conflict", status: http.StatusConflict, wantLevel: "WARN"},
		{name: "bad request", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "elevated bad request", status: http.StatusBadRequest, opts: []ResponseOption{WithElevatedLogLevel()}, wantLevel: "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, buf := newLoggedRequest(t)
			w := httptest.NewRecorder()
			err := errors.New("open /home/alice/studydesk.db: permission denied")

			RespondWithErrorAndLog(w, req, tc.status, "something went wrong", err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "permission denied")
			assert.NotContains(t, buf.String(), "/home/alice")

			entries, perr := buf.GetLogEntries()
			require.NoError(t, perr)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0][slog.LevelKey])
			assert.Equal(t, "API error response", entries[0][slog.MessageKey])
		})
	}
}

func TestRespondWithHTML(t *testing.T) {
	t.Run("renders", func(t *testing.T) {
		req, _ := newLoggedRequest(t)
		w := httptest.NewRecorder()
		RespondWithHTML(w, req, func(w http.ResponseWriter) error {
			_, err := io.WriteString(w, "<p>ok</p>")
			return err
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>ok</p>", w.Body.String())
	})

	t.Run("render failure", func(t *testing.T) {
		req, _ := newLoggedRequest(t)
		w := httptest.NewRecorder()
		RespondWithHTML(w, req, func(http.ResponseWriter) error { return errors.New("boom") })
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
