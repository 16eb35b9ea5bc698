package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/college_review/models"
)

// Signal asks the worker started by Run to flush the outbox. It never blocks.
func (s *SyncService) Signal() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run flushes the outbox whenever it is signalled, until ctx is done.
func (s *SyncService) Run(ctx context.Context) {
	s.Signal()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.kick:
			if _, err := s.FlushOutbox(ctx); err != nil {
				log.Printf("🔥 Outbox flush failed: %v", err)
			}
		}
	}
}

// FlushOutbox delivers every due entry to the ledger, oldest first. Entries of
// the same review are delivered in order: once one is waiting or failing, the
// later ones for that review wait too.
func (s *SyncService) FlushOutbox(ctx context.Context) (models.FlushResult, error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	var result models.FlushResult
	entries, err := s.outbox.Pending(ctx)
	if err != nil {
		return result, fmt.Errorf("read outbox: %w", err)
	}

	now := s.now()
	blocked := make(map[string]bool)
	for _, entry := range entries {
		if blocked[entry.ReviewID] {
			continue
		}
		if entry.NextAttemptAt.After(now) {
			blocked[entry.ReviewID] = true
			continue
		}

		deliverErr := s.deliver(ctx, entry)
		if deliverErr == nil {
			if err := s.outbox.Delivered(ctx, entry.ID); err != nil {
				return result, fmt.Errorf("settle outbox entry %d: %w", entry.ID, err)
			}
			result.Delivered++
			s.publish(ctx, entry, now)
			continue
		}

		blocked[entry.ReviewID] = true
		attempts := entry.Attempts + 1
		if attempts >= s.opts.MaxAttempts {
			if err := s.outbox.Fail(ctx, entry.ID, attempts, deliverErr.Error()); err != nil {
				return result, fmt.Errorf("fail outbox entry %d: %w", entry.ID, err)
			}
			result.Failed++
			log.Printf("🔥 Giving up on %s of review %s after %d attempt(s): %v", entry.Op, entry.ReviewID, attempts, deliverErr)

			entry.Attempts = attempts
			entry.LastError = deliverErr.Error()
			entry.Status = models.OutboxFailed
			if s.notifier != nil {
				go s.notifier.NotifySyncFailure(entry)
			}
			continue
		}

		next := now.Add(s.backoff(attempts))
		if err := s.outbox.Retry(ctx, entry.ID, attempts, next, deliverErr.Error()); err != nil {
			return result, fmt.Errorf("reschedule outbox entry %d: %w", entry.ID, err)
		}
		result.Retrying++
		log.Printf("⚠️ %s of review %s failed (attempt %d), retrying at %s: %v", entry.Op, entry.ReviewID, attempts, next.Format(time.RFC3339), deliverErr)
	}

	if result.Delivered > 0 {
		log.Printf("✅ Delivered %d outbox entr(ies) to the ledger", result.Delivered)
	}
	return result, nil
}

// Outbox lists the remote writes that have not been delivered yet, including
// the ones that were given up on.
func (s *SyncService) Outbox(ctx context.Context) ([]models.OutboxEntry, error) {
	return s.outbox.List(ctx)
}

func (s *SyncService) deliver(ctx context.Context, entry models.OutboxEntry) error {
	switch entry.Op {
	case models.OutboxOpUpsert:
		return s.ledger.Set(ctx, models.CollectionReviews, entry.ReviewID, entry.Payload)
	case models.OutboxOpDelete:
		return s.ledger.Delete(ctx, models.CollectionReviews, entry.ReviewID)
	default:
		return fmt.Errorf("unknown outbox op %q", entry.Op)
	}
}

// backoff doubles from BaseBackoff per attempt and is capped at MaxBackoff.
func (s *SyncService) backoff(attempts int) time.Duration {
	d := s.opts.BaseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= s.opts.MaxBackoff {
			return s.opts.MaxBackoff
		}
	}
	return d
}

func (s *SyncService) publish(ctx context.Context, entry models.OutboxEntry, at time.Time) {
	if s.events == nil {
		return
	}

	event := models.ReviewEvent{
		Type:       models.ReviewUpserted,
		ReviewID:   entry.ReviewID,
		Review:     entry.Payload,
		OccurredAt: at,
	}
	if entry.Op == models.OutboxOpDelete {
		event.Type = models.ReviewDeleted
		event.Review = nil
	}

	if err := s.events.PublishReviewEvent(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s for review %s: %v", event.Type, entry.ReviewID, err)
	}
}
