// Package worker runs refresh jobs on a schedule.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// Updater refreshes every published dataset once.
type Updater interface {
	Update(ctx context.Context) error
}

// UpdateWorker periodically runs an Updater.
type UpdateWorker struct {
	updater  Updater
	interval time.Duration
}

// NewUpdateWorker creates a new UpdateWorker.
func NewUpdateWorker(updater Updater, interval time.Duration) *UpdateWorker {
	return &UpdateWorker{
		updater:  updater,
		interval: interval,
	}
}

// Run starts the update loop. It blocks until the context is cancelled.
func (w *UpdateWorker) Run(ctx context.Context) {
	slog.Info("UpdateWorker: starting", "interval", w.interval)

	// Update immediately on startup
	w.update(ctx, "initial update")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("UpdateWorker: shutting down")
			return
		case <-ticker.C:
			w.update(ctx, "update")
		}
	}
}

func (w *UpdateWorker) update(ctx context.Context, label string) {
	start := time.Now()
	if err := w.updater.Update(ctx); err != nil {
		slog.Error("UpdateWorker: "+label+" failed", "error", err, "elapsed", time.Since(start))
		return
	}
	slog.Info("UpdateWorker: "+label+" completed", "elapsed", time.Since(start))
}
