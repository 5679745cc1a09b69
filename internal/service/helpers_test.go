package service

import (
	"testing"
	"time"

	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/platform/memory"
	"github.com/phrazzld/studydesk/internal/schedule"
)

var testEpoch = time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)

type fixture struct {
	deps   Deps
	loop   *schedule.ManualLoop
	store  *memory.Store
	events *events.Recorder
	logs   *logger.TestLogBuffer
}

func newFixture(t *testing.T, seed map[string]string) *fixture {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	emitter := events.NewInMemoryEventEmitter(log)
	rec := &events.Recorder{}
	emitter.RegisterHandler(rec)

	loop := schedule.NewManualLoop(testEpoch)
	kv := memory.NewStoreWith(seed)

	return &fixture{
		deps: Deps{
			Store:  kv,
			Loop:   loop,
			Events: emitter,
			Logger: log,
		},
		loop:   loop,
		store:  kv,
		events: rec,
		logs:   buf,
	}
}

func (f *fixture) stored(key string) string {
	return f.store.Snapshot()[key]
}
