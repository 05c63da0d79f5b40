package models

import "time"

// Analytics is one sample row for a content item on a platform. Rows are
// additive; two rows for the same content/platform/date both count.
type Analytics struct {
	ID              string    `bson:"_id" json:"id"`
	ContentID       string    `bson:"content_id" json:"contentId"`
	Platform        Platform  `bson:"platform" json:"platform"`
	Impressions     int64     `bson:"impressions" json:"impressions"`
	Clicks          int64     `bson:"clicks" json:"clicks"`
	Engagement      int64     `bson:"engagement" json:"engagement"`
	Shares          int64     `bson:"shares" json:"shares"`
	Comments        int64     `bson:"comments" json:"comments"`
	Likes           int64     `bson:"likes" json:"likes"`
	RankingPosition *int      `bson:"ranking_position,omitempty" json:"rankingPosition,omitempty"`
	Date            time.Time `bson:"date" json:"date"`
	WorkspaceID     string    `bson:"workspace_id" json:"workspaceId"`
}
