package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/redact"
	"github.com/phrazzld/studydesk/internal/schedule"
	"github.com/phrazzld/studydesk/internal/store"
)

// EventBus is the event emitter components publish to, which also accepts
// handler registrations.
type EventBus interface {
	events.EventEmitter
	Emit(ctx context.Context, eventType string, payload any)
	RegisterHandler(handler events.EventHandler)
}

// Deps are the collaborators shared by every component.
type Deps struct {
	Store  store.KeyValueStore
	Loop   schedule.Loop
	Events EventBus
	Logger *slog.Logger
}

// component carries the plumbing common to all widget components.
type component struct {
	name   string
	store  store.KeyValueStore
	loop   schedule.Loop
	events EventBus
	logger *slog.Logger
}

func newComponent(name string, d Deps) component {
	l := d.Logger
	if l == nil {
		l = slog.Default()
	}
	return component{
		name:   name,
		store:  d.Store,
		loop:   d.Loop,
		events: d.Events,
		logger: l.With("component", name),
	}
}

// log returns the request logger from ctx tagged with the component, or the
// component logger.
func (c *component) log(ctx context.Context) *slog.Logger {
	l := logger.FromContextOrDefault(ctx, nil)
	if l == nil {
		return c.logger
	}
	return l.With("component", c.name)
}

// read returns the stored value for key. A missing key and a failed read
// both report ok=false; only the latter is logged.
func (c *component) read(ctx context.Context, key string) (string, bool) {
	v, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log(ctx).Warn("failed to read persisted value, using default",
				slog.String("key", key),
				redact.Attr(err))
		}
		return "", false
	}
	return v, true
}

// persist writes value under key. Failures are logged and swallowed: the
// in-memory state remains authoritative.
func (c *component) persist(ctx context.Context, key, value string) {
	if err := c.store.Set(ctx, key, value); err != nil {
		c.log(ctx).Warn("failed to persist value",
			slog.String("key", key),
			redact.Attr(err))
	}
}

// persistMany writes several keys together, with persist's failure policy.
func (c *component) persistMany(ctx context.Context, values map[string]string) {
	if err := store.SetMany(ctx, c.store, values); err != nil {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		c.log(ctx).Warn("failed to persist values",
			slog.Any("keys", keys),
			redact.Attr(err))
	}
}

// emit publishes an event. Encoding and handler failures are logged by the
// emitter and never fail the operation that caused the event.
func (c *component) emit(ctx context.Context, eventType string, payload any) {
	if c.events == nil {
		return
	}
	c.events.Emit(ctx, eventType, payload)
}

// do runs fn on the loop and returns its result.
func do[T any](loop schedule.Loop, fn func() T) T {
	var out T
	loop.Do(func() { out = fn() })
	return out
}

// do2 is do for functions that also return an error.
func do2[T any](loop schedule.Loop, fn func() (T, error)) (T, error) {
	var (
		out T
		err error
	)
	loop.Do(func() { out, err = fn() })
	return out, err
}
