package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
)

const (
	topContentLimit = 5
	topIdeasLimit   = 4
)

type AnalyticsInput struct {
	ContentID       string
	Platform        models.Platform
	Impressions     int64
	Clicks          int64
	Engagement      int64
	Shares          int64
	Comments        int64
	Likes           int64
	RankingPosition *int
	Date            time.Time
}

type Totals struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Engagement  int64 `json:"engagement"`
	Shares      int64 `json:"shares"`
	Comments    int64 `json:"comments"`
	Likes       int64 `json:"likes"`
}

func (t *Totals) add(a *models.Analytics) {
	t.Impressions += a.Impressions
	t.Clicks += a.Clicks
	t.Engagement += a.Engagement
	t.Shares += a.Shares
	t.Comments += a.Comments
	t.Likes += a.Likes
}

type PlatformStats struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Engagement  int64 `json:"engagement"`
}

type ContentPerformance struct {
	ContentID   string             `json:"contentId"`
	Title       string             `json:"title"`
	Type        models.ContentType `json:"type"`
	Platforms   []models.Platform  `json:"platforms"`
	Impressions int64              `json:"impressions"`
	Engagement  int64              `json:"engagement"`
}

type Summary struct {
	Totals
	CTR            float64                            `json:"ctr"`
	EngagementRate float64                            `json:"engagementRate"`
	Platforms      map[models.Platform]*PlatformStats `json:"platforms"`
	TopContent     []ContentPerformance               `json:"topContent"`
}

type Dashboard struct {
	TotalContent int                   `json:"totalContent"`
	Drafts       int                   `json:"drafts"`
	Scheduled    int                   `json:"scheduled"`
	Published    int                   `json:"published"`
	Failed       int                   `json:"failed"`
	Ideas        int                   `json:"ideas"`
	Media        int                   `json:"media"`
	Totals       Totals                `json:"totals"`
	TopIdeas     []*models.ContentIdea `json:"topIdeas"`
}

type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	content   repository.ContentRepository
	ideas     repository.IdeaRepository
	media     repository.MediaRepository
	now       clock
	newID     func() string
}

func NewAnalyticsService(store *repository.Store) *AnalyticsService {
	return &AnalyticsService{
		analytics: store.Analytics,
		content:   store.Content,
		ideas:     store.Ideas,
		media:     store.Media,
		now:       utcNow,
		newID:     newID,
	}
}

// Record appends a sample row for content that exists in the workspace.
// Rows are never merged.
func (s *AnalyticsService) Record(ctx context.Context, workspaceID string, in AnalyticsInput) (*models.Analytics, error) {
	if !in.Platform.Valid() {
		return nil, invalid("unknown platform %q", in.Platform)
	}
	if in.Impressions < 0 || in.Clicks < 0 || in.Engagement < 0 || in.Shares < 0 || in.Comments < 0 || in.Likes < 0 {
		return nil, invalid("counters must not be negative")
	}
	if _, err := s.content.Get(ctx, workspaceID, in.ContentID); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = s.now()
	}
	a := &models.Analytics{
		ID:              s.newID(),
		ContentID:       in.ContentID,
		Platform:        in.Platform,
		Impressions:     in.Impressions,
		Clicks:          in.Clicks,
		Engagement:      in.Engagement,
		Shares:          in.Shares,
		Comments:        in.Comments,
		Likes:           in.Likes,
		RankingPosition: in.RankingPosition,
		Date:            in.Date,
		WorkspaceID:     workspaceID,
	}
	if err := s.analytics.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create analytics: %w", err)
	}
	return a, nil
}

// List returns the workspace's rows, or only those of contentID when set.
func (s *AnalyticsService) List(ctx context.Context, workspaceID, contentID string) ([]*models.Analytics, error) {
	if contentID != "" {
		return s.analytics.ListByContent(ctx, workspaceID, contentID)
	}
	return s.analytics.List(ctx, workspaceID)
}

func (s *AnalyticsService) Summary(ctx context.Context, workspaceID string) (*Summary, error) {
	rows, err := s.analytics.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	content, err := s.content.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	sum := Summarize(rows, content)
	return &sum, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context, workspaceID string) (*Dashboard, error) {
	content, err := s.content.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	rows, err := s.analytics.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	ideas, err := s.ideas.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	media, err := s.media.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalContent: len(content),
		Drafts:       len(FilterByStatus(content, models.StatusDraft)),
		Scheduled:    len(FilterByStatus(content, models.StatusScheduled)),
		Published:    len(FilterByStatus(content, models.StatusPublished)),
		Failed:       len(FilterByStatus(content, models.StatusFailed)),
		Ideas:        len(ideas),
		Media:        len(media),
	}
	for _, a := range rows {
		d.Totals.add(a)
	}
	sort.SliceStable(ideas, func(i, j int) bool { return ideas[i].Score > ideas[j].Score })
	if len(ideas) > topIdeasLimit {
		ideas = ideas[:topIdeasLimit]
	}
	d.TopIdeas = ideas
	return d, nil
}

// Summarize aggregates analytics rows. Rates are percentages rounded to two
// decimals and are zero when there were no impressions. Top content ranks
// published items by total engagement.
func Summarize(rows []*models.Analytics, content []*models.Content) Summary {
	s := Summary{Platforms: map[models.Platform]*PlatformStats{}}
	byContent := map[string]*Totals{}
	for _, a := range rows {
		s.Totals.add(a)

		ps, ok := s.Platforms[a.Platform]
		if !ok {
			ps = &PlatformStats{}
			s.Platforms[a.Platform] = ps
		}
		ps.Impressions += a.Impressions
		ps.Clicks += a.Clicks
		ps.Engagement += a.Engagement

		ct, ok := byContent[a.ContentID]
		if !ok {
			ct = &Totals{}
			byContent[a.ContentID] = ct
		}
		ct.add(a)
	}
	s.CTR = percent(s.Clicks, s.Impressions)
	s.EngagementRate = percent(s.Engagement, s.Impressions)

	top := make([]ContentPerformance, 0)
	for _, c := range FilterByStatus(content, models.StatusPublished) {
		p := ContentPerformance{ContentID: c.ID, Title: c.Title, Type: c.Type, Platforms: c.Platforms}
		if t, ok := byContent[c.ID]; ok {
			p.Impressions = t.Impressions
			p.Engagement = t.Engagement
		}
		top = append(top, p)
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Engagement > top[j].Engagement })
	if len(top) > topContentLimit {
		top = top[:topContentLimit]
	}
	s.TopContent = top
	return s
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}
