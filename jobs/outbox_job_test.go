package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/college_review/models"
	"github.com/stretchr/testify/assert"
)

type countingFlusher struct {
	calls    int
	deadline bool
	err      error
}

func (f *countingFlusher) FlushOutbox(ctx context.Context) (models.FlushResult, error) {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return models.FlushResult{Retrying: 1}, f.err
}

type countingPuller struct {
	calls int
}

func (p *countingPuller) PullAll(ctx context.Context) (int, error) {
	p.calls++
	return 0, errors.New("offline")
}

func TestRetryOutboxFlushesWithDeadline(t *testing.T) {
	flusher := &countingFlusher{}
	job := RetryOutbox(flusher, time.Minute)

	job()
	job()

	assert.Equal(t, 2, flusher.calls)
	assert.True(t, flusher.deadline)
}

func TestRetryOutboxSurvivesErrors(t *testing.T) {
	flusher := &countingFlusher{err: errors.New("disk full")}

	assert.NotPanics(t, RetryOutbox(flusher, time.Second))
	assert.Equal(t, 1, flusher.calls)
}

func TestPullReviewsSurvivesErrors(t *testing.T) {
	puller := &countingPuller{}

	assert.NotPanics(t, PullReviews(puller, time.Second))
	assert.Equal(t, 1, puller.calls)
}
