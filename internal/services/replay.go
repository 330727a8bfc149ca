package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Lllllllleong/contentstatusflow/internal/models"
	"golang.org/x/sync/errgroup"
)

// SnapshotSource yields the current snapshot of existing documents.
type SnapshotSource interface {
	Snapshots(ctx context.Context, yield func(documentID string, fields models.Fields) error) error
}

// ReplaySummary counts what a replay did.
type ReplaySummary struct {
	Scanned  int
	Outcomes map[models.Outcome]int
}

// Replayer delivers existing documents to a ChangeHandler as if each had just
// been written. It is used to backfill documents that predate the trigger.
type Replayer struct {
	handler     ChangeHandler
	source      SnapshotSource
	concurrency int
}

// NewReplayer creates a Replayer. concurrency below 1 is treated as 1.
func NewReplayer(handler ChangeHandler, source SnapshotSource, concurrency int) *Replayer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Replayer{handler: handler, source: source, concurrency: concurrency}
}

// Run scans the source and hands every snapshot to the handler. A scan error
// aborts the run; per-document outcomes, including write failures, are counted.
func (r *Replayer) Run(ctx context.Context) (ReplaySummary, error) {
	slog.Info("Starting replay.", "concurrency", r.concurrency)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.concurrency)

	var mu sync.Mutex
	summary := ReplaySummary{Outcomes: map[models.Outcome]int{}}

	scanErr := r.source.Snapshots(gctx, func(documentID string, fields models.Fields) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		mu.Lock()
		summary.Scanned++
		mu.Unlock()

		event := &models.ChangeEvent{DocumentID: documentID, After: fields}
		eg.Go(func() error {
			outcome := r.handler.Handle(gctx, event)
			mu.Lock()
			summary.Outcomes[outcome]++
			mu.Unlock()
			return nil
		})
		return nil
	})
	waitErr := eg.Wait()

	if scanErr != nil {
		slog.Error("Replay aborted.", "error", scanErr, "scanned", summary.Scanned)
		return summary, fmt.Errorf("failed to scan documents: %w", scanErr)
	}
	if waitErr != nil {
		return summary, waitErr
	}
	slog.Info("Replay complete.", "scanned", summary.Scanned, "outcomes", summary.Outcomes)
	return summary, nil
}
