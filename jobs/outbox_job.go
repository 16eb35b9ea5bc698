package jobs

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/college_review/models"
)

type OutboxFlusher interface {
	FlushOutbox(ctx context.Context) (models.FlushResult, error)
}

type ReviewPuller interface {
	PullAll(ctx context.Context) (int, error)
}

// RetryOutbox returns a cron job that flushes the outbox once. It catches
// entries whose backoff elapsed while nothing else signalled the worker.
func RetryOutbox(flusher OutboxFlusher, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := flusher.FlushOutbox(ctx)
		if err != nil {
			log.Printf("🔥 Outbox retry job failed: %v", err)
			return
		}
		if result.Retrying > 0 || result.Failed > 0 {
			log.Printf("⚠️ Outbox retry job: %d delivered, %d retrying, %d failed", result.Delivered, result.Retrying, result.Failed)
		}
	}
}

// PullReviews returns a cron job that refreshes the local cache from the
// ledger.
func PullReviews(puller ReviewPuller, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := puller.PullAll(ctx); err != nil {
			log.Printf("⚠️ Scheduled review sync failed: %v", err)
		}
	}
}
