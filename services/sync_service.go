package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/anjiri1684/college_review/database"
	"github.com/anjiri1684/college_review/models"
	"github.com/google/uuid"
)

const anonymousLabel = "Anonymous"

// profileLookupTimeout bounds the ledger read Submit makes for a user whose
// profile is not cached yet.
const profileLookupTimeout = 500 * time.Millisecond

type ReviewStore interface {
	ReviewFeed
	UpsertUnlessPending(ctx context.Context, reviews []models.Review) (int, error)
	SaveWithOutbox(ctx context.Context, review models.Review, entry models.OutboxEntry) error
	DeleteWithOutbox(ctx context.Context, id string, entry models.OutboxEntry) error
	Get(ctx context.Context, id string) (*models.Review, error)
	All(ctx context.Context) ([]models.Review, error)
}

type Ledger interface {
	List(ctx context.Context, collection string) ([]models.Document, error)
	Get(ctx context.Context, collection, id string) (*models.Document, error)
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	Merge(ctx context.Context, collection, id string, data map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	AddBatch(ctx context.Context, collection string, bodies []map[string]interface{}) (int, error)
}

type Outbox interface {
	Pending(ctx context.Context) ([]models.OutboxEntry, error)
	List(ctx context.Context) ([]models.OutboxEntry, error)
	Delivered(ctx context.Context, id uint) error
	Retry(ctx context.Context, id uint, attempts int, next time.Time, lastErr string) error
	Fail(ctx context.Context, id uint, attempts int, lastErr string) error
}

type EventPublisher interface {
	PublishReviewEvent(ctx context.Context, event models.ReviewEvent) error
}

type FailureNotifier interface {
	NotifySyncFailure(entry models.OutboxEntry)
}

type SyncOptions struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	CollegesTTL time.Duration
}

func (o SyncOptions) withDefaults() SyncOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 8
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = 5 * time.Second
	}
	if o.MaxBackoff < o.BaseBackoff {
		o.MaxBackoff = o.BaseBackoff
	}
	return o
}

// SyncService keeps the local review cache and the remote ledger in step.
// Local writes land first and are owed to the ledger through the outbox.
type SyncService struct {
	store    ReviewStore
	ledger   Ledger
	outbox   Outbox
	events   EventPublisher
	notifier FailureNotifier
	opts     SyncOptions
	now      func() time.Time

	kick    chan struct{}
	flushMu sync.Mutex

	collegesMu      sync.RWMutex
	colleges        []string
	collegesFetched time.Time

	profilesMu sync.RWMutex
	profiles   map[string]models.UserProfile
}

// NewSyncService wires the coordinator. events and notifier may be nil.
func NewSyncService(store ReviewStore, ledger Ledger, outbox Outbox, events EventPublisher, notifier FailureNotifier, opts SyncOptions) *SyncService {
	return &SyncService{
		store:    store,
		ledger:   ledger,
		outbox:   outbox,
		events:   events,
		notifier: notifier,
		opts:     opts.withDefaults(),
		now:      time.Now,
		kick:     make(chan struct{}, 1),
		profiles: make(map[string]models.UserProfile),
	}
}

// PullAll copies every remote review into the local cache in one
// transaction. Reviews with a pending outbox entry are skipped because the
// local copy is newer. On failure the cache is left as it was.
//
// No outbox flush runs while a pull is in progress, so any local write made
// after the ledger snapshot was read still has its pending entry when the
// snapshot is applied.
func (s *SyncService) PullAll(ctx context.Context) (int, error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	docs, err := s.ledger.List(ctx, models.CollectionReviews)
	if err != nil {
		log.Printf("🔥 Review sync failed: %v", err)
		return 0, fmt.Errorf("pull reviews: %w", err)
	}

	now := s.now().UnixMilli()
	reviews := make([]models.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, ReviewFromDocument(doc.ID, doc.Data, now))
	}

	written, err := s.store.UpsertUnlessPending(ctx, reviews)
	if err != nil {
		return 0, fmt.Errorf("cache pulled reviews: %w", err)
	}

	log.Printf("✅ Synced %d review(s) from the ledger", written)
	return written, nil
}

// Submit validates the review, stores it locally and queues the remote write.
// It returns as soon as the local write commits.
func (s *SyncService) Submit(ctx context.Context, session *models.Session, input models.ReviewInput) (models.Review, error) {
	if err := ValidateSubmission(session, input); err != nil {
		return models.Review{}, err
	}

	email := session.Email
	if email == "" {
		email = anonymousLabel
	}

	now := s.now()
	review := models.Review{
		ID:          uuid.NewString(),
		UserID:      session.UserID,
		UserEmail:   email,
		UserName:    s.displayName(ctx, session.UserID),
		CollegeName: input.CollegeName,
		Category:    input.Category,
		Description: input.Description,
		Rating:      input.Rating,
		Timestamp:   now.UnixMilli(),
	}

	entry := models.OutboxEntry{
		ReviewID:      review.ID,
		Op:            models.OutboxOpUpsert,
		Payload:       review.Document(),
		NextAttemptAt: now,
		Status:        models.OutboxPending,
	}
	if err := s.store.SaveWithOutbox(ctx, review, entry); err != nil {
		return models.Review{}, fmt.Errorf("save review: %w", err)
	}

	s.Signal()
	return review, nil
}

// DeleteByID removes a review owned by the session and queues the remote
// delete.
func (s *SyncService) DeleteByID(ctx context.Context, session *models.Session, id string) error {
	if session == nil || session.UserID == "" || session.IsAnonymous {
		return newCommandError(ErrUnauthorized, "You can only delete your own reviews")
	}

	review, err := s.store.Get(ctx, id)
	if errors.Is(err, database.ErrReviewNotFound) {
		return newCommandError(ErrNotFound, "Review not found")
	}
	if err != nil {
		return fmt.Errorf("load review: %w", err)
	}

	if review.UserID != session.UserID {
		return newCommandError(ErrForbidden, "You can only delete your own reviews")
	}

	entry := models.OutboxEntry{
		ReviewID:      id,
		Op:            models.OutboxOpDelete,
		NextAttemptAt: s.now(),
		Status:        models.OutboxPending,
	}
	if err := s.store.DeleteWithOutbox(ctx, id, entry); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.Signal()
	return nil
}

// Reviews returns the cached reviews, newest first, optionally for one college.
func (s *SyncService) Reviews(ctx context.Context, collegeName string) ([]models.Review, error) {
	reviews, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if collegeName == "" {
		return reviews, nil
	}
	return ReviewsFor(reviews, collegeName), nil
}

func (s *SyncService) Stats(ctx context.Context) ([]models.CollegeStats, error) {
	reviews, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(reviews), nil
}

// displayName prefers the cached profile. A cold cache costs at most one
// short ledger read; if that fails the review is posted as Anonymous.
func (s *SyncService) displayName(ctx context.Context, userID string) string {
	profile, ok := s.cachedProfile(userID)
	if !ok {
		lookupCtx, cancel := context.WithTimeout(ctx, profileLookupTimeout)
		defer cancel()

		var err error
		profile, _, err = s.GetUserProfile(lookupCtx, userID)
		if err != nil {
			log.Printf("⚠️ Could not load profile for %s, posting as %s: %v", userID, anonymousLabel, err)
		}
	}
	if isBlank(profile.Name) {
		return anonymousLabel
	}
	return profile.Name
}
