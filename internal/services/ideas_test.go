package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/events"
	"github.com/emmyxjay/contentFlow-New/internal/generator"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIdeaService(t *testing.T, gen generator.ContentGenerator) (*IdeaService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	gs, _ := newGeneration(gen)
	return NewIdeaService(repository.NewMemoryStore().Ideas, gs, pub, zap.NewNop()), pub
}

func TestGenerateAndSaveStoresEveryIdea(t *testing.T) {
	svc, pub := newIdeaService(t, &generator.MockGenerator{})
	ctx := context.Background()

	before, err := svc.List(ctx, "ws")
	require.NoError(t, err)
	start := time.Now().UTC()

	saved, err := svc.GenerateAndSave(ctx, "ws", "content marketing")
	require.NoError(t, err)
	require.Len(t, saved, 4)

	after, err := svc.List(ctx, "ws")
	require.NoError(t, err)
	assert.Len(t, after, len(before)+4)

	seen := map[string]bool{}
	for _, idea := range saved {
		assert.NotEmpty(t, idea.ID)
		assert.False(t, seen[idea.ID], "duplicate id %s", idea.ID)
		seen[idea.ID] = true
		assert.False(t, idea.CreatedAt.Before(start))
		assert.Equal(t, "ws", idea.WorkspaceID)
	}
	assert.Equal(t, []string{events.IdeaCreated, events.IdeaCreated, events.IdeaCreated, events.IdeaCreated}, pub.types())
}

func TestGenerateAndSaveParseFailureStoresNothing(t *testing.T) {
	svc, _ := newIdeaService(t, &fakeGenerator{reply: "not json"})
	ctx := context.Background()

	_, err := svc.GenerateAndSave(ctx, "ws", "x")
	assert.ErrorIs(t, err, ErrIdeasParse)

	list, err := svc.List(ctx, "ws")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIdeaAddAndRemove(t *testing.T) {
	svc, _ := newIdeaService(t, &fakeGenerator{})
	ctx := context.Background()

	idea, err := svc.Add(ctx, "ws", models.IdeaDraft{Title: "Manual idea", Score: 70})
	require.NoError(t, err)
	assert.NotNil(t, idea.Keywords)

	require.NoError(t, svc.Remove(ctx, "ws", idea.ID))
	assert.ErrorIs(t, svc.Remove(ctx, "ws", idea.ID), repository.ErrNotFound)
}

func TestIdeaRemoveOtherWorkspace(t *testing.T) {
	svc, _ := newIdeaService(t, &fakeGenerator{})
	ctx := context.Background()

	idea, err := svc.Add(ctx, "ws-a", models.IdeaDraft{Title: "mine"})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Remove(ctx, "ws-b", idea.ID), repository.ErrNotFound)

	list, _ := svc.List(ctx, "ws-a")
	assert.Len(t, list, 1)
}

type flakyIdeaRepo struct {
	repository.IdeaRepository
	failOn int
	calls  int
}

func (r *flakyIdeaRepo) Create(ctx context.Context, idea *models.ContentIdea) error {
	r.calls++
	if r.calls == r.failOn {
		return errors.New("write conflict")
	}
	return r.IdeaRepository.Create(ctx, idea)
}

func TestGenerateAndSaveRemovesBatchWhenOneWriteFails(t *testing.T) {
	repo := &flakyIdeaRepo{IdeaRepository: repository.NewMemoryStore().Ideas, failOn: 3}
	gs, _ := newGeneration(&generator.MockGenerator{})
	svc := NewIdeaService(repo, gs, &recordingPublisher{}, zap.NewNop())
	ctx := context.Background()

	saved, err := svc.GenerateAndSave(ctx, "ws", "content marketing")
	assert.Error(t, err)
	assert.Nil(t, saved)

	list, err := svc.List(ctx, "ws")
	require.NoError(t, err)
	assert.Empty(t, list)
}
