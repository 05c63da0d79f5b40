package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/metrics"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSettler struct {
	calls atomic.Int32
	err   error
}

func (s *countingSettler) PublishDue(context.Context) (int, int, error) {
	s.calls.Add(1)
	return 2, 1, s.err
}

func TestPublisherTickRecordsMetrics(t *testing.T) {
	m := metrics.New()
	p := NewPublisher(&countingSettler{}, time.Minute, m, zap.NewNop())

	p.tick(context.Background())
	p.tick(context.Background())

	assert.Equal(t, 4.0, testutil.ToFloat64(m.ContentPublished.WithLabelValues("published")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ContentPublished.WithLabelValues("failed")))
}

func TestPublisherTickSurvivesError(t *testing.T) {
	s := &countingSettler{err: errors.New("store down")}
	p := NewPublisher(s, time.Minute, nil, zap.NewNop())
	p.tick(context.Background())
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestPublisherRunStopsOnCancel(t *testing.T) {
	s := &countingSettler{}
	p := NewPublisher(s, 10*time.Millisecond, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}

func TestPublisherSettlesDueContent(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	content := services.NewContentService(store.Content, nil, zap.NewNop())

	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)
	due, err := content.Add(ctx, "ws", "u", services.ContentInput{
		Title: "due", Status: models.StatusScheduled, ScheduledAt: &past,
		Platforms: []models.Platform{models.PlatformTwitter},
	})
	require.NoError(t, err)
	orphan, err := content.Add(ctx, "ws", "u", services.ContentInput{
		Title: "no platforms", Status: models.StatusScheduled, ScheduledAt: &past,
	})
	require.NoError(t, err)
	later, err := content.Add(ctx, "ws", "u", services.ContentInput{
		Title: "later", Status: models.StatusScheduled, ScheduledAt: &future,
		Platforms: []models.Platform{models.PlatformLinkedIn},
	})
	require.NoError(t, err)

	m := metrics.New()
	NewPublisher(content, time.Minute, m, zap.NewNop()).tick(ctx)

	got, _ := content.Get(ctx, "ws", due.ID)
	assert.Equal(t, models.StatusPublished, got.Status)
	assert.NotNil(t, got.PublishedAt)
	got, _ = content.Get(ctx, "ws", orphan.ID)
	assert.Equal(t, models.StatusFailed, got.Status)
	got, _ = content.Get(ctx, "ws", later.ID)
	assert.Equal(t, models.StatusScheduled, got.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContentPublished.WithLabelValues("published")))
}
