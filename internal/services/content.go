package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/events"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"go.uber.org/zap"
)

type ContentInput struct {
	Title            string
	Body             string
	Type             models.ContentType
	Status           models.ContentStatus
	Tone             string
	SEOScore         *int
	ReadabilityScore *int
	Keywords         []string
	Platforms        []models.Platform
	ScheduledAt      *time.Time
	IdeaID           string
	MediaAssets      []models.MediaAsset
}

// ContentPatch holds the fields to change; nil fields are left as they are.
type ContentPatch struct {
	Title            *string
	Body             *string
	Type             *models.ContentType
	Status           *models.ContentStatus
	Tone             *string
	SEOScore         *int
	ReadabilityScore *int
	Keywords         *[]string
	Platforms        *[]models.Platform
	ScheduledAt      *time.Time
	MediaAssets      *[]models.MediaAsset
}

type ContentFilter struct {
	Status   models.ContentStatus
	Platform models.Platform
	Type     models.ContentType
}

type ContentService struct {
	repo   repository.ContentRepository
	events events.Publisher
	log    *zap.Logger
	now    clock
	newID  func() string
}

func NewContentService(repo repository.ContentRepository, pub events.Publisher, logger *zap.Logger) *ContentService {
	return &ContentService{repo: repo, events: pub, log: logger, now: utcNow, newID: newID}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validPlatforms(ps []models.Platform) error {
	for _, p := range ps {
		if !p.Valid() {
			return invalid("unknown platform %q", p)
		}
	}
	return nil
}

func (s *ContentService) Add(ctx context.Context, workspaceID, authorID string, in ContentInput) (*models.Content, error) {
	if in.Type == "" {
		in.Type = models.TypeBlog
	}
	if !in.Type.Valid() {
		return nil, invalid("unknown content type %q", in.Type)
	}
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if in.Status != models.StatusDraft && in.Status != models.StatusScheduled {
		return nil, invalid("new content must be draft or scheduled")
	}
	if in.Status == models.StatusScheduled && in.ScheduledAt == nil {
		return nil, invalid("scheduled content needs scheduledAt")
	}
	if err := validPlatforms(in.Platforms); err != nil {
		return nil, err
	}

	now := s.now()
	c := &models.Content{
		ID:               s.newID(),
		Title:            in.Title,
		Body:             in.Body,
		Type:             in.Type,
		Status:           in.Status,
		Tone:             in.Tone,
		SEOScore:         in.SEOScore,
		ReadabilityScore: in.ReadabilityScore,
		Keywords:         nonNil(in.Keywords),
		Platforms:        nonNil(in.Platforms),
		ScheduledAt:      in.ScheduledAt,
		CreatedAt:        now,
		UpdatedAt:        now,
		WorkspaceID:      workspaceID,
		AuthorID:         authorID,
		IdeaID:           in.IdeaID,
		MediaAssets:      nonNil(in.MediaAssets),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	s.emit(ctx, events.ContentCreated, c)
	return c, nil
}

func (s *ContentService) Get(ctx context.Context, workspaceID, id string) (*models.Content, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

// List returns the workspace's content narrowed by every non-empty field of f.
func (s *ContentService) List(ctx context.Context, workspaceID string, f ContentFilter) ([]*models.Content, error) {
	items, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if f.Status != "" {
		items = FilterByStatus(items, f.Status)
	}
	if f.Platform != "" {
		items = FilterByPlatform(items, f.Platform)
	}
	if f.Type != "" {
		items = FilterByType(items, f.Type)
	}
	return items, nil
}

// Update applies p to the content. A status change must be a legal
// transition; the whole patch is rejected otherwise.
func (s *ContentService) Update(ctx context.Context, workspaceID, id string, p ContentPatch) (*models.Content, error) {
	c, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	before := c.Status
	now := s.now()

	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Body != nil {
		c.Body = *p.Body
	}
	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, invalid("unknown content type %q", *p.Type)
		}
		c.Type = *p.Type
	}
	if p.Tone != nil {
		c.Tone = *p.Tone
	}
	if p.SEOScore != nil {
		c.SEOScore = p.SEOScore
	}
	if p.ReadabilityScore != nil {
		c.ReadabilityScore = p.ReadabilityScore
	}
	if p.Keywords != nil {
		c.Keywords = nonNil(*p.Keywords)
	}
	if p.Platforms != nil {
		if err := validPlatforms(*p.Platforms); err != nil {
			return nil, err
		}
		c.Platforms = nonNil(*p.Platforms)
	}
	if p.ScheduledAt != nil {
		c.ScheduledAt = p.ScheduledAt
	}
	if p.MediaAssets != nil {
		c.MediaAssets = nonNil(*p.MediaAssets)
	}
	if p.Status != nil {
		if err := s.transition(c, *p.Status, now); err != nil {
			return nil, err
		}
	}
	c.UpdatedAt = now

	if err := s.repo.Update(ctx, c, before); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	s.emit(ctx, events.ContentUpdated, c)
	if c.Status != before {
		s.emit(ctx, events.ContentStatusChanged, c)
	}
	return c, nil
}

// SetStatus moves content to status. When scheduling, at (if given)
// becomes the new scheduled time.
func (s *ContentService) SetStatus(ctx context.Context, workspaceID, id string, status models.ContentStatus, at *time.Time) (*models.Content, error) {
	c, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if status == c.Status && at == nil {
		return c, nil
	}
	now := s.now()
	if at != nil && status == models.StatusScheduled {
		c.ScheduledAt = at
	}
	before := c.Status
	if err := s.transition(c, status, now); err != nil {
		return nil, err
	}
	c.UpdatedAt = now
	if err := s.repo.Update(ctx, c, before); err != nil {
		return nil, fmt.Errorf("update content status: %w", err)
	}
	if c.Status != before {
		s.emit(ctx, events.ContentStatusChanged, c)
	} else {
		s.emit(ctx, events.ContentUpdated, c)
	}
	return c, nil
}

func (s *ContentService) transition(c *models.Content, to models.ContentStatus, now time.Time) error {
	if !to.Valid() {
		return invalid("unknown status %q", to)
	}
	if to == models.StatusScheduled && c.ScheduledAt == nil {
		return invalid("scheduled content needs scheduledAt")
	}
	if err := c.SetStatus(to, now); err != nil {
		return fmt.Errorf("%s -> %s: %w", c.Status, to, err)
	}
	return nil
}

func (s *ContentService) Remove(ctx context.Context, workspaceID, id string) error {
	if err := s.repo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	events.Emit(ctx, s.events, s.log, events.Event{
		Type: events.ContentDeleted, WorkspaceID: workspaceID, EntityID: id, OccurredAt: s.now(),
	})
	return nil
}

// PublishDue settles every scheduled item whose time has come, across all
// workspaces. Items with at least one platform are published, the rest fail.
// Each item is settled by a conditional write, so an item the user edited or
// unscheduled after it was listed is left alone.
func (s *ContentService) PublishDue(ctx context.Context) (published, failed int, err error) {
	now := s.now()
	due, err := s.repo.ListDue(ctx, now)
	if err != nil {
		return 0, 0, fmt.Errorf("list due content: %w", err)
	}
	for _, listed := range due {
		c, err := s.repo.SettleDue(ctx, listed.WorkspaceID, listed.ID, now)
		if errors.Is(err, repository.ErrNotDue) || errors.Is(err, repository.ErrNotFound) {
			s.log.Debug("due content changed before settling", zap.String("content_id", listed.ID))
			continue
		}
		if err != nil {
			return published, failed, fmt.Errorf("settle content %s: %w", listed.ID, err)
		}
		if c.Status == models.StatusPublished {
			published++
		} else {
			failed++
		}
		s.emit(ctx, events.ContentStatusChanged, c)
	}
	return published, failed, nil
}

func (s *ContentService) emit(ctx context.Context, typ string, c *models.Content) {
	events.Emit(ctx, s.events, s.log, events.Event{
		Type: typ, WorkspaceID: c.WorkspaceID, EntityID: c.ID, OccurredAt: c.UpdatedAt, Data: c,
	})
}

// FilterByStatus returns the items whose status is status, in their
// original order. items is not modified.
func FilterByStatus(items []*models.Content, status models.ContentStatus) []*models.Content {
	return filter(items, func(c *models.Content) bool { return c.Status == status })
}

func FilterByPlatform(items []*models.Content, p models.Platform) []*models.Content {
	return filter(items, func(c *models.Content) bool { return c.HasPlatform(p) })
}

func FilterByType(items []*models.Content, t models.ContentType) []*models.Content {
	return filter(items, func(c *models.Content) bool { return c.Type == t })
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
