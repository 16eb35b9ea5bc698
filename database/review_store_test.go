package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anjiri1684/college_review/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := ConnectLocal(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, MigrateLocal(db))
	require.NoError(t, MigrateRemote(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func review(id, college string, rating float64, ts int64) models.Review {
	return models.Review{
		ID:          id,
		UserID:      "user-1",
		UserEmail:   "user@example.com",
		CollegeName: college,
		Category:    "Hostel",
		Description: "fine",
		Rating:      rating,
		Timestamp:   ts,
	}
}

func ids(reviews []models.Review) []string {
	out := make([]string, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.ID)
	}
	return out
}

func receive(t *testing.T, ch <-chan []models.Review) []models.Review {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "feed closed")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
		return nil
	}
}

func TestReviewStoreUpsertReplacesOnConflict(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore(openMemoryDB(t))

	require.NoError(t, store.UpsertOne(ctx, review("r1", "MIT", 3, 100)))
	updated := review("r1", "MIT", 5, 100)
	updated.Description = "changed my mind"
	require.NoError(t, store.UpsertMany(ctx, []models.Review{updated}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5.0, all[0].Rating)
	assert.Equal(t, "changed my mind", all[0].Description)
}

func TestReviewStoreAllOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore(openMemoryDB(t))

	require.NoError(t, store.UpsertMany(ctx, []models.Review{
		review("old", "A", 1, 100),
		review("new", "A", 2, 300),
		review("mid", "A", 3, 200),
	}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))
}

func TestReviewStoreDeleteByID(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore(openMemoryDB(t))

	require.NoError(t, store.UpsertOne(ctx, review("r1", "A", 4, 1)))
	require.NoError(t, store.DeleteByID(ctx, "r1"))

	_, err := store.Get(ctx, "r1")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewStoreObserveAllIsLive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewReviewStore(openMemoryDB(t))
	require.NoError(t, store.UpsertOne(ctx, review("r1", "A", 4, 100)))

	first, err := store.ObserveAll(ctx)
	require.NoError(t, err)
	second, err := store.ObserveAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, ids(receive(t, first)))
	assert.Equal(t, []string{"r1"}, ids(receive(t, second)))

	require.NoError(t, store.UpsertOne(ctx, review("r2", "A", 5, 200)))
	assert.Equal(t, []string{"r2", "r1"}, ids(receive(t, first)))
	assert.Equal(t, []string{"r2", "r1"}, ids(receive(t, second)))

	require.NoError(t, store.DeleteByID(ctx, "r1"))
	assert.Equal(t, []string{"r2"}, ids(receive(t, first)))
	assert.Equal(t, []string{"r2"}, ids(receive(t, second)))
}

func TestReviewStoreObserveAllConflatesForSlowReaders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewReviewStore(openMemoryDB(t))

	feed, err := store.ObserveAll(ctx)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.UpsertOne(ctx, review(fmt.Sprintf("r%d", i), "A", 1, int64(i))))
	}

	assert.Equal(t, []string{"r3", "r2", "r1"}, ids(receive(t, feed)))
	select {
	case extra := <-feed:
		t.Fatalf("unexpected extra snapshot %v", ids(extra))
	default:
	}
}

func TestReviewStoreObserveAllRestarts(t *testing.T) {
	store := NewReviewStore(openMemoryDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	feed, err := store.ObserveAll(ctx)
	require.NoError(t, err)
	receive(t, feed)
	cancel()

	require.Eventually(t, func() bool {
		_, ok := <-feed
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	require.NoError(t, store.UpsertOne(ctx2, review("r1", "A", 2, 1)))

	restarted, err := store.ObserveAll(ctx2)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids(receive(t, restarted)))
}

func TestReviewStoreSaveWithOutboxIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	store := NewReviewStore(db)
	outbox := NewOutbox(db)

	entry := models.OutboxEntry{
		ReviewID:      "r1",
		Op:            models.OutboxOpUpsert,
		NextAttemptAt: time.Now(),
		Status:        models.OutboxPending,
	}
	require.NoError(t, store.SaveWithOutbox(ctx, review("r1", "A", 4, 1), entry))

	pending, err := outbox.PendingReviewIDs(ctx)
	require.NoError(t, err)
	assert.True(t, pending["r1"])

	del := entry
	del.Op = models.OutboxOpDelete
	require.NoError(t, store.DeleteWithOutbox(ctx, "r1", del))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	entries, err := outbox.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.OutboxOpUpsert, entries[0].Op)
	assert.Equal(t, models.OutboxOpDelete, entries[1].Op)
}

func TestReviewStoreUpsertManyHandlesLargeBatches(t *testing.T) {
	ctx := context.Background()
	store := NewReviewStore(openMemoryDB(t))

	reviews := make([]models.Review, 0, 5000)
	for i := 0; i < 5000; i++ {
		reviews = append(reviews, review(fmt.Sprintf("r%05d", i), "A", 3, int64(i)))
	}
	require.NoError(t, store.UpsertMany(ctx, reviews))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5000)
	assert.Equal(t, "r04999", all[0].ID)
}

func TestReviewStoreUpsertUnlessPendingSkipsLocalWrites(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	store := NewReviewStore(db)

	local := review("r1", "A", 5, 200)
	require.NoError(t, store.SaveWithOutbox(ctx, local, models.OutboxEntry{
		ReviewID:      "r1",
		Op:            models.OutboxOpUpsert,
		NextAttemptAt: time.Now(),
		Status:        models.OutboxPending,
	}))
	require.NoError(t, store.DeleteWithOutbox(ctx, "r2", models.OutboxEntry{
		ReviewID:      "r2",
		Op:            models.OutboxOpDelete,
		NextAttemptAt: time.Now(),
		Status:        models.OutboxPending,
	}))

	written, err := store.UpsertUnlessPending(ctx, []models.Review{
		review("r1", "A", 1, 100),
		review("r2", "B", 2, 100),
		review("r3", "C", 3, 100),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, ids(all))
	assert.Equal(t, 5.0, all[0].Rating)
}
