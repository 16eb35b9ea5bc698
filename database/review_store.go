package database

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/anjiri1684/college_review/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewStore is the local review table plus a live feed of its contents.
// Every committed mutation pushes a fresh snapshot, newest review first, to
// every subscriber. A subscriber that falls behind only sees the latest one.
type ReviewStore struct {
	db *gorm.DB

	mu          sync.Mutex
	subscribers map[uint64]chan []models.Review
	nextID      uint64
}

func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{
		db:          db,
		subscribers: make(map[uint64]chan []models.Review),
	}
}

func (s *ReviewStore) UpsertOne(ctx context.Context, review models.Review) error {
	return s.UpsertMany(ctx, []models.Review{review})
}

// UpsertMany replaces any existing rows with the same ids.
func (s *ReviewStore) UpsertMany(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertReviews(tx, reviews)
	})
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// UpsertUnlessPending caches reviews read from the ledger, skipping every
// review that still has a pending outbox entry. The check and the write share
// one transaction so a local write recorded meanwhile is never overwritten.
// It returns how many reviews were written.
func (s *ReviewStore) UpsertUnlessPending(ctx context.Context, reviews []models.Review) (int, error) {
	written := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending, err := pendingReviewIDs(tx)
		if err != nil {
			return err
		}

		fresh := make([]models.Review, 0, len(reviews))
		for _, review := range reviews {
			if !pending[review.ID] {
				fresh = append(fresh, review)
			}
		}
		if len(fresh) == 0 {
			return nil
		}
		if err := upsertReviews(tx, fresh); err != nil {
			return err
		}
		written = len(fresh)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if written > 0 {
		s.publish(ctx)
	}
	return written, nil
}

func (s *ReviewStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// SaveWithOutbox upserts the review and records the remote write it still owes
// in the same transaction.
func (s *ReviewStore) SaveWithOutbox(ctx context.Context, review models.Review, entry models.OutboxEntry) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertReviews(tx, []models.Review{review}); err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// DeleteWithOutbox removes the review and records the remote delete in the
// same transaction.
func (s *ReviewStore) DeleteWithOutbox(ctx context.Context, id string, entry models.OutboxEntry) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Review{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func (s *ReviewStore) Get(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// All returns the current contents ordered by timestamp, newest first.
func (s *ReviewStore) All(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).
		Order("timestamp desc").
		Order("id asc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ObserveAll subscribes to the live review list. The channel receives the
// current snapshot straight away and a new one after every mutation; it is
// closed once ctx is done. Calling it again starts a fresh subscription.
func (s *ReviewStore) ObserveAll(ctx context.Context) (<-chan []models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan []models.Review, 1)
	ch <- snapshot

	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *ReviewStore) publish(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.subscribers) == 0 {
		return
	}

	snapshot, err := s.All(context.WithoutCancel(ctx))
	if err != nil {
		log.Printf("🔥 Failed to load review snapshot for observers: %v", err)
		return
	}

	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

// upsertBatchSize keeps each INSERT well under SQLite's bound variable limit.
const upsertBatchSize = 100

func upsertReviews(tx *gorm.DB, reviews []models.Review) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(&reviews, upsertBatchSize).Error
}
