// Package worker turns queued ledger events into activity feed entries.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendwise/internal/amqp"
	"spendwise/internal/store"
)

// EventSource delivers ledger events to a handler until ctx ends.
type EventSource interface {
	ConsumeEvents(ctx context.Context, handler func(context.Context, *amqp.LedgerEvent) error) error
}

// ActivityWorker appends every consumed event to the activity log.
type ActivityWorker struct {
	source EventSource
	log    store.ActivityLog
}

func NewActivityWorker(source EventSource, log store.ActivityLog) *ActivityWorker {
	return &ActivityWorker{source: source, log: log}
}

// HandleEvent records a single event. A returned error requeues it.
func (w *ActivityWorker) HandleEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	if err := w.log.Record(ctx, ev.Activity()); err != nil {
		return fmt.Errorf("record activity %s: %w", ev.ID, err)
	}
	slog.DebugContext(ctx, "Recorded activity",
		"event_id", ev.ID,
		"type", ev.Type,
		"entity_id", ev.EntityID)
	return nil
}

// Run consumes events until ctx is cancelled.
func (w *ActivityWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Activity worker started")
	err := w.source.ConsumeEvents(ctx, w.HandleEvent)
	if ctx.Err() != nil {
		slog.InfoContext(ctx, "Activity worker stopped")
		return nil
	}
	return err
}
