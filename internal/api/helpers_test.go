package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydesk/internal/api/middleware"
	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/audio"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/platform/memory"
	"github.com/phrazzld/studydesk/internal/schedule"
	"github.com/phrazzld/studydesk/internal/service"
	"github.com/phrazzld/studydesk/internal/web"
)

var testEpoch = time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)

type testEnv struct {
	router http.Handler
	desk   *service.Desk
	loop   *schedule.ManualLoop
	store  *memory.Store
	logs   *logger.TestLogBuffer
}

func newTestEnv(t *testing.T, seed map[string]string, ambient bool) *testEnv {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	loop := schedule.NewManualLoop(testEpoch)
	kv := memory.NewStoreWith(seed)

	desk, err := service.NewDesk(service.Deps{Store: kv, Loop: loop, Logger: log}, service.Options{
		DefaultTheme:   domain.DefaultTheme,
		SessionMinutes: 25,
		Stamina:        service.DefaultStaminaConfig(),
		Ambient: audio.Config{
			SampleRate: 8000,
			CutoffHz:   400,
			Level:      0.08,
			Ramp:       200 * time.Millisecond,
			Loop:       2 * time.Second,
			Seed:       3,
		},
		AmbientEnabled: ambient,
		Location:       time.UTC,
	})
	require.NoError(t, err)
	t.Cleanup(desk.Close)
	desk.Load(t.Context())

	h := NewHandler(desk, web.MustLoad(), HandlerOptions{
		AssetVersion: "test",
		StreamChunk:  10 * time.Millisecond,
	}, log)

	r := chi.NewRouter()
	r.Use(middleware.Trace(log))
	h.Mount(r)

	return &testEnv{router: r, desk: desk, loop: loop, store: kv, logs: buf}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&v), w.Body.String())
	return v
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w)
}
