package database

import (
	"context"
	"time"

	"github.com/anjiri1684/college_review/models"
	"gorm.io/gorm"
)

// Outbox reads and settles the pending remote writes kept next to the cache.
type Outbox struct {
	db *gorm.DB
}

func NewOutbox(db *gorm.DB) *Outbox {
	return &Outbox{db: db}
}

// Pending returns every entry still owed to the ledger in the order it was
// recorded.
func (o *Outbox) Pending(ctx context.Context) ([]models.OutboxEntry, error) {
	var entries []models.OutboxEntry
	err := o.db.WithContext(ctx).
		Where("status = ?", models.OutboxPending).
		Order("id asc").
		Find(&entries).Error
	return entries, err
}

// List returns pending and permanently failed entries.
func (o *Outbox) List(ctx context.Context) ([]models.OutboxEntry, error) {
	entries := []models.OutboxEntry{}
	err := o.db.WithContext(ctx).Order("id asc").Find(&entries).Error
	return entries, err
}

// PendingReviewIDs returns the reviews whose local copy is ahead of the ledger.
func (o *Outbox) PendingReviewIDs(ctx context.Context) (map[string]bool, error) {
	return pendingReviewIDs(o.db.WithContext(ctx))
}

func pendingReviewIDs(tx *gorm.DB) (map[string]bool, error) {
	var ids []string
	err := tx.Model(&models.OutboxEntry{}).
		Where("status = ?", models.OutboxPending).
		Distinct().
		Pluck("review_id", &ids).Error
	if err != nil {
		return nil, err
	}

	pending := make(map[string]bool, len(ids))
	for _, id := range ids {
		pending[id] = true
	}
	return pending, nil
}

func (o *Outbox) Delivered(ctx context.Context, id uint) error {
	return o.db.WithContext(ctx).Delete(&models.OutboxEntry{}, id).Error
}

func (o *Outbox) Retry(ctx context.Context, id uint, attempts int, next time.Time, lastErr string) error {
	return o.db.WithContext(ctx).
		Model(&models.OutboxEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":        attempts,
			"next_attempt_at": next,
			"last_error":      lastErr,
		}).Error
}

func (o *Outbox) Fail(ctx context.Context, id uint, attempts int, lastErr string) error {
	return o.db.WithContext(ctx).
		Model(&models.OutboxEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   attempts,
			"last_error": lastErr,
			"status":     models.OutboxFailed,
		}).Error
}
