package models

import "time"

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaGIF   MediaType = "gif"
)

type MediaSource string

const (
	MediaAIGenerated MediaSource = "ai-generated"
	MediaStock       MediaSource = "stock"
	MediaUploaded    MediaSource = "uploaded"
)

func (s MediaSource) Valid() bool {
	switch s {
	case MediaAIGenerated, MediaStock, MediaUploaded:
		return true
	}
	return false
}

type MediaAsset struct {
	ID          string      `bson:"_id" json:"id"`
	URL         string      `bson:"url" json:"url"`
	Key         string      `bson:"key,omitempty" json:"key,omitempty"` // object storage key
	Thumbnail   string      `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Type        MediaType   `bson:"type" json:"type"`
	Source      MediaSource `bson:"source" json:"source"`
	Alt         string      `bson:"alt,omitempty" json:"alt,omitempty"`
	Width       int         `bson:"width,omitempty" json:"width,omitempty"`
	Height      int         `bson:"height,omitempty" json:"height,omitempty"`
	Size        int64       `bson:"size,omitempty" json:"size,omitempty"`
	ContentType string      `bson:"content_type,omitempty" json:"contentType,omitempty"`
	WorkspaceID string      `bson:"workspace_id" json:"workspaceId"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
}
