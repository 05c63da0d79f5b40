package models

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type ContentType string

const (
	TypeBlog    ContentType = "blog"
	TypeSocial  ContentType = "social"
	TypeEmail   ContentType = "email"
	TypeCaption ContentType = "caption"
)

func (t ContentType) Valid() bool {
	switch t {
	case TypeBlog, TypeSocial, TypeEmail, TypeCaption:
		return true
	}
	return false
}

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusScheduled ContentStatus = "scheduled"
	StatusPublished ContentStatus = "published"
	StatusFailed    ContentStatus = "failed"
)

func (s ContentStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// transitions lists the statuses reachable from each status.
var transitions = map[ContentStatus][]ContentStatus{
	StatusDraft:     {StatusScheduled},
	StatusScheduled: {StatusPublished, StatusFailed, StatusDraft},
	StatusFailed:    {StatusScheduled, StatusDraft},
	StatusPublished: nil,
}

// CanTransition reports whether content in status from may move to status to.
// Staying in the same status is always allowed.
func CanTransition(from, to ContentStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Platform string

const (
	PlatformWordPress Platform = "wordpress"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformMedium    Platform = "medium"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformWordPress, PlatformLinkedIn, PlatformTwitter, PlatformInstagram, PlatformFacebook, PlatformMedium:
		return true
	}
	return false
}

type Content struct {
	ID               string        `bson:"_id" json:"id"`
	Title            string        `bson:"title" json:"title"`
	Body             string        `bson:"body" json:"body"` // HTML for blog posts, plain text otherwise
	Type             ContentType   `bson:"type" json:"type"`
	Status           ContentStatus `bson:"status" json:"status"`
	Tone             string        `bson:"tone" json:"tone"`
	SEOScore         *int          `bson:"seo_score,omitempty" json:"seoScore,omitempty"`
	ReadabilityScore *int          `bson:"readability_score,omitempty" json:"readabilityScore,omitempty"`
	Keywords         []string      `bson:"keywords" json:"keywords"`
	Platforms        []Platform    `bson:"platforms" json:"platforms"`
	ScheduledAt      *time.Time    `bson:"scheduled_at,omitempty" json:"scheduledAt,omitempty"`
	PublishedAt      *time.Time    `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updatedAt"`
	WorkspaceID      string        `bson:"workspace_id" json:"workspaceId"`
	AuthorID         string        `bson:"author_id" json:"authorId"`
	IdeaID           string        `bson:"idea_id,omitempty" json:"ideaId,omitempty"`
	MediaAssets      []MediaAsset  `bson:"media_assets" json:"mediaAssets"`
}

func (c *Content) HasPlatform(p Platform) bool {
	for _, cp := range c.Platforms {
		if cp == p {
			return true
		}
	}
	return false
}

// SetStatus moves c to status to, stamping PublishedAt on publish.
func (c *Content) SetStatus(to ContentStatus, now time.Time) error {
	if !CanTransition(c.Status, to) {
		return ErrInvalidTransition
	}
	if to == StatusPublished && c.Status != StatusPublished {
		t := now
		c.PublishedAt = &t
	}
	c.Status = to
	return nil
}

// DueStatus is where scheduled content goes once its time has come:
// published when it targets at least one platform, failed otherwise.
func (c *Content) DueStatus() ContentStatus {
	if len(c.Platforms) == 0 {
		return StatusFailed
	}
	return StatusPublished
}
