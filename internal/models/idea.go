package models

import "time"

type Competition string

const (
	CompetitionLow    Competition = "low"
	CompetitionMedium Competition = "medium"
	CompetitionHigh   Competition = "high"
)

type SearchIntent string

const (
	IntentInformational SearchIntent = "informational"
	IntentCommercial    SearchIntent = "commercial"
	IntentTransactional SearchIntent = "transactional"
	IntentNavigational  SearchIntent = "navigational"
)

type IdeaSource string

const (
	SourceTrending   IdeaSource = "trending"
	SourceCompetitor IdeaSource = "competitor"
	SourceKeyword    IdeaSource = "keyword"
	SourceQuestion   IdeaSource = "question"
)

type ContentIdea struct {
	ID           string       `bson:"_id" json:"id"`
	Title        string       `bson:"title" json:"title"`
	Description  string       `bson:"description" json:"description"`
	Keywords     []string     `bson:"keywords" json:"keywords"`
	SearchVolume int          `bson:"search_volume" json:"searchVolume"`
	Competition  Competition  `bson:"competition" json:"competition"`
	SearchIntent SearchIntent `bson:"search_intent" json:"searchIntent"`
	Score        float64      `bson:"score" json:"score"`
	Source       IdeaSource   `bson:"source" json:"source"`
	WorkspaceID  string       `bson:"workspace_id" json:"workspaceId"`
	CreatedAt    time.Time    `bson:"created_at" json:"createdAt"`
}

// IdeaDraft is an idea as returned by the completion service, before it is
// stored. Field values are whatever the model produced; nothing checks that
// score or the enums are within their documented ranges.
type IdeaDraft struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Keywords     []string     `json:"keywords"`
	SearchVolume int          `json:"searchVolume"`
	Competition  Competition  `json:"competition"`
	SearchIntent SearchIntent `json:"searchIntent"`
	Score        float64      `json:"score"`
	Source       IdeaSource   `json:"source"`
}

func (d IdeaDraft) ToIdea(workspaceID string) *ContentIdea {
	return &ContentIdea{
		Title:        d.Title,
		Description:  d.Description,
		Keywords:     d.Keywords,
		SearchVolume: d.SearchVolume,
		Competition:  d.Competition,
		SearchIntent: d.SearchIntent,
		Score:        d.Score,
		Source:       d.Source,
		WorkspaceID:  workspaceID,
	}
}
