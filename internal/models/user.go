package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Avatar       string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	WorkspaceID  string    `bson:"workspace_id" json:"workspaceId"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Workspace is the tenant unit. Every idea, content item, media asset and
// analytics row belongs to exactly one workspace.
type Workspace struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Niche       string    `bson:"niche" json:"niche"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
