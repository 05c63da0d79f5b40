package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	usersCollection      = "users"
	workspacesCollection = "workspaces"
	ideasCollection      = "ideas"
	contentCollection    = "content"
	mediaCollection      = "media"
	analyticsCollection  = "analytics"
)

// ConnectMongo dials and pings MongoDB and returns a Store backed by db.
func ConnectMongo(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("MongoDB connected", zap.String("database", dbName))

	s := NewMongoStore(ctx, client.Database(dbName), logger)
	s.close = client.Disconnect
	return s, nil
}

// NewMongoStore builds the repositories on db and makes sure the indexes
// exist. Index failures are logged, not fatal.
func NewMongoStore(ctx context.Context, db *mongo.Database, logger *zap.Logger) *Store {
	users := db.Collection(usersCollection)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		logger.Warn("create users index", zap.Error(err))
	}
	for _, name := range []string{ideasCollection, contentCollection, mediaCollection, analyticsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "created_at", Value: 1}},
		}); err != nil {
			logger.Warn("create workspace index", zap.String("collection", name), zap.Error(err))
		}
	}
	content := db.Collection(contentCollection)
	if _, err := content.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_at", Value: 1}},
	}); err != nil {
		logger.Warn("create content schedule index", zap.Error(err))
	}

	return &Store{
		Users:      &mongoUsers{col: users},
		Workspaces: &mongoWorkspaces{col: db.Collection(workspacesCollection)},
		Ideas:      &mongoIdeas{col: db.Collection(ideasCollection)},
		Content:    &mongoContent{col: content},
		Media:      &mongoMedia{col: db.Collection(mediaCollection)},
		Analytics:  &mongoAnalytics{col: db.Collection(analyticsCollection)},
	}
}

func insert(ctx context.Context, col *mongo.Collection, doc any) error {
	_, err := col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (*T, error) {
	var v T
	err := col.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M) ([]*T, error) {
	cur, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func replace(ctx context.Context, col *mongo.Collection, filter bson.M, doc any) error {
	res, err := col.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, col *mongo.Collection, filter bson.M) error {
	res, err := col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func scoped(workspaceID, id string) bson.M {
	return bson.M{"_id": id, "workspace_id": workspaceID}
}

type mongoUsers struct{ col *mongo.Collection }

func (r *mongoUsers) Create(ctx context.Context, u *models.User) error {
	return insert(ctx, r.col, u)
}

func (r *mongoUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"_id": id})
}

func (r *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"email": email})
}

type mongoWorkspaces struct{ col *mongo.Collection }

func (r *mongoWorkspaces) Create(ctx context.Context, w *models.Workspace) error {
	return insert(ctx, r.col, w)
}

func (r *mongoWorkspaces) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	return findOne[models.Workspace](ctx, r.col, bson.M{"_id": id})
}

func (r *mongoWorkspaces) ListByOwner(ctx context.Context, ownerID string) ([]*models.Workspace, error) {
	return findAll[models.Workspace](ctx, r.col, bson.M{"owner_id": ownerID})
}

func (r *mongoWorkspaces) Update(ctx context.Context, w *models.Workspace) error {
	return replace(ctx, r.col, bson.M{"_id": w.ID}, w)
}

type mongoIdeas struct{ col *mongo.Collection }

func (r *mongoIdeas) Create(ctx context.Context, i *models.ContentIdea) error {
	return insert(ctx, r.col, i)
}

func (r *mongoIdeas) Get(ctx context.Context, workspaceID, id string) (*models.ContentIdea, error) {
	return findOne[models.ContentIdea](ctx, r.col, scoped(workspaceID, id))
}

func (r *mongoIdeas) List(ctx context.Context, workspaceID string) ([]*models.ContentIdea, error) {
	return findAll[models.ContentIdea](ctx, r.col, bson.M{"workspace_id": workspaceID})
}

func (r *mongoIdeas) Delete(ctx context.Context, workspaceID, id string) error {
	return deleteOne(ctx, r.col, scoped(workspaceID, id))
}

type mongoContent struct{ col *mongo.Collection }

func (r *mongoContent) Create(ctx context.Context, c *models.Content) error {
	return insert(ctx, r.col, c)
}

func (r *mongoContent) Get(ctx context.Context, workspaceID, id string) (*models.Content, error) {
	return findOne[models.Content](ctx, r.col, scoped(workspaceID, id))
}

func (r *mongoContent) List(ctx context.Context, workspaceID string) ([]*models.Content, error) {
	return findAll[models.Content](ctx, r.col, bson.M{"workspace_id": workspaceID})
}

func (r *mongoContent) Update(ctx context.Context, c *models.Content, from models.ContentStatus) error {
	filter := scoped(c.WorkspaceID, c.ID)
	filter["status"] = from
	err := replace(ctx, r.col, filter, c)
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	// tell a missing record apart from one whose status moved on
	if _, getErr := r.Get(ctx, c.WorkspaceID, c.ID); getErr == nil {
		return ErrStatusChanged
	}
	return ErrNotFound
}

func (r *mongoContent) Delete(ctx context.Context, workspaceID, id string) error {
	return deleteOne(ctx, r.col, scoped(workspaceID, id))
}

func (r *mongoContent) ListDue(ctx context.Context, now time.Time) ([]*models.Content, error) {
	return findAll[models.Content](ctx, r.col, bson.M{
		"status":       models.StatusScheduled,
		"scheduled_at": bson.M{"$lte": now},
	})
}

// SettleDue first tries to publish (the item still has a platform), then
// falls back to failing it. Both writes only match while the item is
// scheduled and due, and only set status fields.
func (r *mongoContent) SettleDue(ctx context.Context, workspaceID, id string, now time.Time) (*models.Content, error) {
	due := func() bson.M {
		f := scoped(workspaceID, id)
		f["status"] = models.StatusScheduled
		f["scheduled_at"] = bson.M{"$lte": now}
		return f
	}

	withPlatforms := due()
	withPlatforms["platforms.0"] = bson.M{"$exists": true}
	c, err := r.setStatus(ctx, withPlatforms, bson.M{
		"status": models.StatusPublished, "published_at": now, "updated_at": now,
	})
	if !errors.Is(err, ErrNotDue) {
		return c, err
	}
	return r.setStatus(ctx, due(), bson.M{"status": models.StatusFailed, "updated_at": now})
}

func (r *mongoContent) setStatus(ctx context.Context, filter, set bson.M) (*models.Content, error) {
	var c models.Content
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotDue
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type mongoMedia struct{ col *mongo.Collection }

func (r *mongoMedia) Create(ctx context.Context, m *models.MediaAsset) error {
	return insert(ctx, r.col, m)
}

func (r *mongoMedia) Get(ctx context.Context, workspaceID, id string) (*models.MediaAsset, error) {
	return findOne[models.MediaAsset](ctx, r.col, scoped(workspaceID, id))
}

func (r *mongoMedia) List(ctx context.Context, workspaceID string) ([]*models.MediaAsset, error) {
	return findAll[models.MediaAsset](ctx, r.col, bson.M{"workspace_id": workspaceID})
}

func (r *mongoMedia) Delete(ctx context.Context, workspaceID, id string) error {
	return deleteOne(ctx, r.col, scoped(workspaceID, id))
}

type mongoAnalytics struct{ col *mongo.Collection }

func (r *mongoAnalytics) Create(ctx context.Context, a *models.Analytics) error {
	return insert(ctx, r.col, a)
}

func (r *mongoAnalytics) List(ctx context.Context, workspaceID string) ([]*models.Analytics, error) {
	return findAll[models.Analytics](ctx, r.col, bson.M{"workspace_id": workspaceID})
}

func (r *mongoAnalytics) ListByContent(ctx context.Context, workspaceID, contentID string) ([]*models.Analytics, error) {
	return findAll[models.Analytics](ctx, r.col, bson.M{"workspace_id": workspaceID, "content_id": contentID})
}
