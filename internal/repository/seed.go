package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoWorkspaceID = "workspace-1"
	DemoUserID      = "user-1"
	DemoEmail       = "demo@contentflow.io"
	DemoPassword    = "demo1234"
)

// Seed loads the demo workspace. It is idempotent: records that already
// exist are skipped.
func Seed(ctx context.Context, s *Store, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	day := 24 * time.Hour
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	score := func(v int) *int { return &v }

	user := &models.User{
		ID: DemoUserID, Email: DemoEmail, Name: "Demo User", Role: models.RoleAdmin,
		PasswordHash: string(hash), WorkspaceID: DemoWorkspaceID, CreatedAt: now,
	}
	workspace := &models.Workspace{
		ID: DemoWorkspaceID, Name: "My Workspace", Niche: "Technology & SaaS",
		Description: "Content for tech startups", OwnerID: DemoUserID, CreatedAt: now,
	}
	ideas := []*models.ContentIdea{
		{
			ID: "idea-1", Title: "10 AI Tools That Will Transform Your Workflow in 2024",
			Description:  "A comprehensive guide to the latest AI productivity tools",
			Keywords:     []string{"AI tools", "productivity", "automation", "workflow"},
			SearchVolume: 12500, Competition: models.CompetitionMedium, SearchIntent: models.IntentInformational,
			Score: 85, Source: models.SourceTrending,
		},
		{
			ID: "idea-2", Title: "How to Build a SaaS MVP in 30 Days",
			Description:  "Step-by-step guide for aspiring founders",
			Keywords:     []string{"SaaS", "MVP", "startup", "development"},
			SearchVolume: 8200, Competition: models.CompetitionHigh, SearchIntent: models.IntentInformational,
			Score: 78, Source: models.SourceKeyword,
		},
		{
			ID: "idea-3", Title: "Content Marketing ROI: What Metrics Actually Matter?",
			Description:  "Deep dive into measuring content performance",
			Keywords:     []string{"content marketing", "ROI", "metrics", "analytics"},
			SearchVolume: 5400, Competition: models.CompetitionLow, SearchIntent: models.IntentCommercial,
			Score: 92, Source: models.SourceQuestion,
		},
		{
			ID: "idea-4", Title: "Why Remote Teams Outperform Traditional Offices",
			Description:  "Data-driven analysis of remote work productivity",
			Keywords:     []string{"remote work", "productivity", "team management"},
			SearchVolume: 15200, Competition: models.CompetitionMedium, SearchIntent: models.IntentInformational,
			Score: 88, Source: models.SourceTrending,
		},
	}
	content := []*models.Content{
		{
			ID: "content-1", Title: "The Ultimate Guide to Content Automation",
			Body:   "<h2>Introduction</h2><p>Content automation is revolutionizing how businesses create and distribute content...</p>",
			Type:   models.TypeBlog, Status: models.StatusPublished, Tone: "professional",
			SEOScore: score(87), ReadabilityScore: score(72),
			Keywords:    []string{"content automation", "AI writing", "productivity"},
			Platforms:   []models.Platform{models.PlatformWordPress, models.PlatformLinkedIn},
			PublishedAt: at(-7 * day), CreatedAt: now.Add(-10 * day), UpdatedAt: now.Add(-7 * day),
		},
		{
			ID: "content-2", Title: "Excited to share our latest feature launch!",
			Body:   "We just shipped something amazing! 🚀\n\n#ProductLaunch #SaaS #ContentMarketing",
			Type:   models.TypeSocial, Status: models.StatusScheduled, Tone: "casual",
			Keywords:    []string{"product launch", "startup"},
			Platforms:   []models.Platform{models.PlatformTwitter, models.PlatformLinkedIn},
			ScheduledAt: at(2 * day), CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "content-3", Title: "5 SEO Mistakes Killing Your Rankings",
			Body:   "<h2>Are You Making These Common SEO Errors?</h2><p>Even experienced marketers fall into these traps.</p>",
			Type:   models.TypeBlog, Status: models.StatusDraft, Tone: "authoritative",
			SEOScore: score(78), ReadabilityScore: score(85),
			Keywords:  []string{"SEO", "search engine optimization", "rankings"},
			Platforms: []models.Platform{models.PlatformWordPress, models.PlatformMedium},
			CreatedAt: now.Add(-2 * day), UpdatedAt: now.Add(-1 * day),
		},
	}
	analytics := []*models.Analytics{
		{
			ID: "analytics-1", ContentID: "content-1", Platform: models.PlatformWordPress,
			Impressions: 2450, Clicks: 312, Engagement: 45, Shares: 28, Comments: 12, Likes: 89, Date: now,
		},
		{
			ID: "analytics-2", ContentID: "content-1", Platform: models.PlatformLinkedIn,
			Impressions: 8900, Clicks: 567, Engagement: 234, Shares: 45, Comments: 67, Likes: 312, Date: now,
		},
	}

	if err := skipDuplicate(s.Users.Create(ctx, user)); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if err := skipDuplicate(s.Workspaces.Create(ctx, workspace)); err != nil {
		return fmt.Errorf("seed workspace: %w", err)
	}
	for _, i := range ideas {
		i.WorkspaceID = DemoWorkspaceID
		i.CreatedAt = now
		if err := skipDuplicate(s.Ideas.Create(ctx, i)); err != nil {
			return fmt.Errorf("seed idea %s: %w", i.ID, err)
		}
	}
	for _, c := range content {
		c.WorkspaceID = DemoWorkspaceID
		c.AuthorID = DemoUserID
		c.MediaAssets = []models.MediaAsset{}
		if err := skipDuplicate(s.Content.Create(ctx, c)); err != nil {
			return fmt.Errorf("seed content %s: %w", c.ID, err)
		}
	}
	for _, a := range analytics {
		a.WorkspaceID = DemoWorkspaceID
		if err := skipDuplicate(s.Analytics.Create(ctx, a)); err != nil {
			return fmt.Errorf("seed analytics %s: %w", a.ID, err)
		}
	}
	return nil
}

func skipDuplicate(err error) error {
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}
