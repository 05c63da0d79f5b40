package repository

import (
	"context"
	"errors"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	// ErrStatusChanged means the stored status is no longer the one the
	// caller read, so its write was not applied.
	ErrStatusChanged = errors.New("status changed concurrently")
	// ErrNotDue means the content is no longer scheduled and due.
	ErrNotDue = errors.New("content is no longer due")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type WorkspaceRepository interface {
	Create(ctx context.Context, w *models.Workspace) error
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Workspace, error)
	Update(ctx context.Context, w *models.Workspace) error
}

// The repositories below are workspace scoped: a record that exists but
// belongs to another workspace is reported as ErrNotFound.

type IdeaRepository interface {
	Create(ctx context.Context, i *models.ContentIdea) error
	Get(ctx context.Context, workspaceID, id string) (*models.ContentIdea, error)
	List(ctx context.Context, workspaceID string) ([]*models.ContentIdea, error)
	Delete(ctx context.Context, workspaceID, id string) error
}

type ContentRepository interface {
	Create(ctx context.Context, c *models.Content) error
	Get(ctx context.Context, workspaceID, id string) (*models.Content, error)
	List(ctx context.Context, workspaceID string) ([]*models.Content, error)
	// Update replaces the record only while its stored status is still
	// from, and returns ErrStatusChanged otherwise.
	Update(ctx context.Context, c *models.Content, from models.ContentStatus) error
	Delete(ctx context.Context, workspaceID, id string) error
	// ListDue returns scheduled content of every workspace whose
	// scheduled time is not after now.
	ListDue(ctx context.Context, now time.Time) ([]*models.Content, error)
	// SettleDue moves one item to its DueStatus in a single conditional
	// write, touching only the status fields. It returns ErrNotDue when the
	// stored item is no longer scheduled or not yet due.
	SettleDue(ctx context.Context, workspaceID, id string, now time.Time) (*models.Content, error)
}

type MediaRepository interface {
	Create(ctx context.Context, m *models.MediaAsset) error
	Get(ctx context.Context, workspaceID, id string) (*models.MediaAsset, error)
	List(ctx context.Context, workspaceID string) ([]*models.MediaAsset, error)
	Delete(ctx context.Context, workspaceID, id string) error
}

type AnalyticsRepository interface {
	Create(ctx context.Context, a *models.Analytics) error
	List(ctx context.Context, workspaceID string) ([]*models.Analytics, error)
	ListByContent(ctx context.Context, workspaceID, contentID string) ([]*models.Analytics, error)
}

// Store bundles one repository per entity.
type Store struct {
	Users      UserRepository
	Workspaces WorkspaceRepository
	Ideas      IdeaRepository
	Content    ContentRepository
	Media      MediaRepository
	Analytics  AnalyticsRepository

	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
