package repository

import (
	"context"
	"testing"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContentIsWorkspaceScoped(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "c1", WorkspaceID: "ws-a", Title: "A"}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "c2", WorkspaceID: "ws-b", Title: "B"}))

	_, err := s.Content.Get(ctx, "ws-b", "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.Content.Get(ctx, "ws-a", "c1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	list, err := s.Content.List(ctx, "ws-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)

	assert.ErrorIs(t, s.Content.Delete(ctx, "ws-b", "c1"), ErrNotFound)
	assert.ErrorIs(t, s.Content.Update(ctx, &models.Content{ID: "c1", WorkspaceID: "ws-b"}, ""), ErrNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := &models.ContentIdea{ID: "i1", WorkspaceID: "ws", Title: "original"}
	require.NoError(t, s.Ideas.Create(ctx, in))

	in.Title = "mutated after insert"
	got, err := s.Ideas.Get(ctx, "ws", "i1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)

	got.Title = "mutated after read"
	again, err := s.Ideas.Get(ctx, "ws", "i1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestMemoryListKeepsInsertionOrderAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Ideas.Create(ctx, &models.ContentIdea{ID: id, WorkspaceID: "ws"}))
	}
	require.NoError(t, s.Ideas.Delete(ctx, "ws", "b"))

	list, err := s.Ideas.List(ctx, "ws")
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, i := range list {
		ids = append(ids, i.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}

func TestMemoryUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Users.Create(ctx, &models.User{ID: "u1", Email: "a@example.com"}))
	assert.ErrorIs(t, s.Users.Create(ctx, &models.User{ID: "u2", Email: "A@example.com"}), ErrDuplicate)

	u, err := s.Users.GetByEmail(ctx, "a@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestMemoryListDue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "due", WorkspaceID: "a", Status: models.StatusScheduled, ScheduledAt: &past}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "exact", WorkspaceID: "b", Status: models.StatusScheduled, ScheduledAt: &now}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "later", WorkspaceID: "a", Status: models.StatusScheduled, ScheduledAt: &future}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "draft", WorkspaceID: "a", Status: models.StatusDraft, ScheduledAt: &past}))

	due, err := s.Content.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "due", due[0].ID)
	assert.Equal(t, "exact", due[1].ID)
}

func TestMemoryCopiesAreDeep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	at := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	in := &models.Content{
		ID: "c1", WorkspaceID: "ws", Status: models.StatusScheduled, ScheduledAt: &at,
		Keywords: []string{"go"}, Platforms: []models.Platform{models.PlatformTwitter},
	}
	require.NoError(t, s.Content.Create(ctx, in))

	in.Keywords[0] = "mutated"
	*in.ScheduledAt = at.Add(time.Hour)

	got, err := s.Content.Get(ctx, "ws", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Keywords)
	assert.Equal(t, at, *got.ScheduledAt)

	got.Platforms[0] = models.PlatformMedium
	*got.ScheduledAt = at.Add(2 * time.Hour)
	again, err := s.Content.Get(ctx, "ws", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.PlatformTwitter, again.Platforms[0])
	assert.Equal(t, at, *again.ScheduledAt)

	require.NoError(t, s.Ideas.Create(ctx, &models.ContentIdea{ID: "i1", WorkspaceID: "ws", Keywords: []string{"a"}}))
	list, err := s.Ideas.List(ctx, "ws")
	require.NoError(t, err)
	list[0].Keywords[0] = "b"
	idea, err := s.Ideas.Get(ctx, "ws", "i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, idea.Keywords)
}

func TestMemoryUpdateRejectsStaleStatus(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "c1", WorkspaceID: "ws", Status: models.StatusPublished}))

	// a writer that read the item while it was still scheduled
	stale := &models.Content{ID: "c1", WorkspaceID: "ws", Status: models.StatusScheduled, Body: "edit"}
	assert.ErrorIs(t, s.Content.Update(ctx, stale, models.StatusScheduled), ErrStatusChanged)

	got, err := s.Content.Get(ctx, "ws", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Status)
	assert.Empty(t, got.Body)

	fresh := &models.Content{ID: "c1", WorkspaceID: "ws", Status: models.StatusPublished, Body: "edit"}
	require.NoError(t, s.Content.Update(ctx, fresh, models.StatusPublished))
}

func TestMemorySettleDue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "pub", WorkspaceID: "ws", Status: models.StatusScheduled,
		ScheduledAt: &past, Body: "kept", Platforms: []models.Platform{models.PlatformLinkedIn}}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "fail", WorkspaceID: "ws", Status: models.StatusScheduled, ScheduledAt: &past}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "later", WorkspaceID: "ws", Status: models.StatusScheduled, ScheduledAt: &future}))
	require.NoError(t, s.Content.Create(ctx, &models.Content{ID: "draft", WorkspaceID: "ws", Status: models.StatusDraft, ScheduledAt: &past}))

	c, err := s.Content.SettleDue(ctx, "ws", "pub", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, c.Status)
	require.NotNil(t, c.PublishedAt)
	assert.Equal(t, now, *c.PublishedAt)
	assert.Equal(t, "kept", c.Body)

	c, err = s.Content.SettleDue(ctx, "ws", "fail", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, c.Status)

	_, err = s.Content.SettleDue(ctx, "ws", "later", now)
	assert.ErrorIs(t, err, ErrNotDue)
	_, err = s.Content.SettleDue(ctx, "ws", "draft", now)
	assert.ErrorIs(t, err, ErrNotDue)
	_, err = s.Content.SettleDue(ctx, "ws", "pub", now)
	assert.ErrorIs(t, err, ErrNotDue)
	_, err = s.Content.SettleDue(ctx, "other", "fail", now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()
	require.NoError(t, Seed(ctx, s, now))
	require.NoError(t, Seed(ctx, s, now))

	ideas, err := s.Ideas.List(ctx, DemoWorkspaceID)
	require.NoError(t, err)
	assert.Len(t, ideas, 4)

	content, err := s.Content.List(ctx, DemoWorkspaceID)
	require.NoError(t, err)
	assert.Len(t, content, 3)

	u, err := s.Users.GetByEmail(ctx, DemoEmail)
	require.NoError(t, err)
	assert.Equal(t, DemoWorkspaceID, u.WorkspaceID)
}
