package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
)

// table keeps rows in insertion order. Rows are deep-copied on the way in
// and on the way out, slices and pointers included, so callers never share
// memory with the store.
type table[T any] struct {
	order []string
	rows  map[string]*T
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	if clone == nil {
		clone = func(v *T) *T {
			c := *v
			return &c
		}
	}
	return &table[T]{rows: make(map[string]*T), clone: clone}
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) get(id string) (*T, bool) {
	r, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.clone(r), true
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *table[T]) filter(keep func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, id := range t.order {
		r := t.rows[id]
		if keep(r) {
			out = append(out, t.clone(r))
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneContent(c *models.Content) *models.Content {
	cp := *c
	cp.Keywords = slices.Clone(c.Keywords)
	cp.Platforms = slices.Clone(c.Platforms)
	cp.MediaAssets = slices.Clone(c.MediaAssets)
	cp.SEOScore = clonePtr(c.SEOScore)
	cp.ReadabilityScore = clonePtr(c.ReadabilityScore)
	cp.ScheduledAt = clonePtr(c.ScheduledAt)
	cp.PublishedAt = clonePtr(c.PublishedAt)
	return &cp
}

func cloneIdea(i *models.ContentIdea) *models.ContentIdea {
	cp := *i
	cp.Keywords = slices.Clone(i.Keywords)
	return &cp
}

func cloneAnalytics(a *models.Analytics) *models.Analytics {
	cp := *a
	cp.RankingPosition = clonePtr(a.RankingPosition)
	return &cp
}

type memoryDB struct {
	mu         sync.RWMutex
	users      *table[models.User]
	workspaces *table[models.Workspace]
	ideas      *table[models.ContentIdea]
	content    *table[models.Content]
	media      *table[models.MediaAsset]
	analytics  *table[models.Analytics]
}

// NewMemoryStore returns a Store kept in process memory. Nothing survives a
// restart.
func NewMemoryStore() *Store {
	db := &memoryDB{
		users:      newTable[models.User](nil),
		workspaces: newTable[models.Workspace](nil),
		ideas:      newTable(cloneIdea),
		content:    newTable(cloneContent),
		media:      newTable[models.MediaAsset](nil),
		analytics:  newTable(cloneAnalytics),
	}
	return &Store{
		Users:      &memUsers{db},
		Workspaces: &memWorkspaces{db},
		Ideas:      &memIdeas{db},
		Content:    &memContent{db},
		Media:      &memMedia{db},
		Analytics:  &memAnalytics{db},
	}
}

type memUsers struct{ db *memoryDB }

func (r *memUsers) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users.rows[u.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range r.db.users.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	r.db.users.put(u.ID, u)
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	found := r.db.users.filter(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

type memWorkspaces struct{ db *memoryDB }

func (r *memWorkspaces) Create(_ context.Context, w *models.Workspace) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.workspaces.rows[w.ID]; ok {
		return ErrDuplicate
	}
	r.db.workspaces.put(w.ID, w)
	return nil
}

func (r *memWorkspaces) GetByID(_ context.Context, id string) (*models.Workspace, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	w, ok := r.db.workspaces.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

func (r *memWorkspaces) ListByOwner(_ context.Context, ownerID string) ([]*models.Workspace, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.workspaces.filter(func(w *models.Workspace) bool { return w.OwnerID == ownerID }), nil
}

func (r *memWorkspaces) Update(_ context.Context, w *models.Workspace) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.workspaces.rows[w.ID]; !ok {
		return ErrNotFound
	}
	r.db.workspaces.put(w.ID, w)
	return nil
}

type memIdeas struct{ db *memoryDB }

func (r *memIdeas) Create(_ context.Context, i *models.ContentIdea) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.ideas.rows[i.ID]; ok {
		return ErrDuplicate
	}
	r.db.ideas.put(i.ID, i)
	return nil
}

func (r *memIdeas) Get(_ context.Context, workspaceID, id string) (*models.ContentIdea, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	i, ok := r.db.ideas.get(id)
	if !ok || i.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return i, nil
}

func (r *memIdeas) List(_ context.Context, workspaceID string) ([]*models.ContentIdea, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.ideas.filter(func(i *models.ContentIdea) bool { return i.WorkspaceID == workspaceID }), nil
}

func (r *memIdeas) Delete(_ context.Context, workspaceID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	i, ok := r.db.ideas.rows[id]
	if !ok || i.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	r.db.ideas.remove(id)
	return nil
}

type memContent struct{ db *memoryDB }

func (r *memContent) Create(_ context.Context, c *models.Content) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.content.rows[c.ID]; ok {
		return ErrDuplicate
	}
	r.db.content.put(c.ID, c)
	return nil
}

func (r *memContent) Get(_ context.Context, workspaceID, id string) (*models.Content, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.content.get(id)
	if !ok || c.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *memContent) List(_ context.Context, workspaceID string) ([]*models.Content, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.content.filter(func(c *models.Content) bool { return c.WorkspaceID == workspaceID }), nil
}

func (r *memContent) Update(_ context.Context, c *models.Content, from models.ContentStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.content.rows[c.ID]
	if !ok || existing.WorkspaceID != c.WorkspaceID {
		return ErrNotFound
	}
	if existing.Status != from {
		return ErrStatusChanged
	}
	r.db.content.put(c.ID, c)
	return nil
}

func (r *memContent) Delete(_ context.Context, workspaceID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.content.rows[id]
	if !ok || c.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	r.db.content.remove(id)
	return nil
}

func (r *memContent) ListDue(_ context.Context, now time.Time) ([]*models.Content, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.content.filter(func(c *models.Content) bool {
		return c.Status == models.StatusScheduled && c.ScheduledAt != nil && !c.ScheduledAt.After(now)
	}), nil
}

func (r *memContent) SettleDue(_ context.Context, workspaceID, id string, now time.Time) (*models.Content, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	row, ok := r.db.content.rows[id]
	if !ok || row.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	if row.Status != models.StatusScheduled || row.ScheduledAt == nil || row.ScheduledAt.After(now) {
		return nil, ErrNotDue
	}
	if err := row.SetStatus(row.DueStatus(), now); err != nil {
		return nil, err
	}
	row.UpdatedAt = now
	return r.db.content.clone(row), nil
}

type memMedia struct{ db *memoryDB }

func (r *memMedia) Create(_ context.Context, m *models.MediaAsset) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.media.rows[m.ID]; ok {
		return ErrDuplicate
	}
	r.db.media.put(m.ID, m)
	return nil
}

func (r *memMedia) Get(_ context.Context, workspaceID, id string) (*models.MediaAsset, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	m, ok := r.db.media.get(id)
	if !ok || m.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return m, nil
}

func (r *memMedia) List(_ context.Context, workspaceID string) ([]*models.MediaAsset, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.media.filter(func(m *models.MediaAsset) bool { return m.WorkspaceID == workspaceID }), nil
}

func (r *memMedia) Delete(_ context.Context, workspaceID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.media.rows[id]
	if !ok || m.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	r.db.media.remove(id)
	return nil
}

type memAnalytics struct{ db *memoryDB }

func (r *memAnalytics) Create(_ context.Context, a *models.Analytics) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.analytics.rows[a.ID]; ok {
		return ErrDuplicate
	}
	r.db.analytics.put(a.ID, a)
	return nil
}

func (r *memAnalytics) List(_ context.Context, workspaceID string) ([]*models.Analytics, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.analytics.filter(func(a *models.Analytics) bool { return a.WorkspaceID == workspaceID }), nil
}

func (r *memAnalytics) ListByContent(_ context.Context, workspaceID, contentID string) ([]*models.Analytics, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.analytics.filter(func(a *models.Analytics) bool {
		return a.WorkspaceID == workspaceID && a.ContentID == contentID
	}), nil
}
