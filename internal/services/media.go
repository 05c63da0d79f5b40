package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/emmyxjay/contentFlow-New/internal/events"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"go.uber.org/zap"
)

const (
	MaxUploadBytes = 50 * 1024 * 1024
	thumbWidth     = 320
)

var allowedTypes = map[string]models.MediaType{
	"image/png":  models.MediaImage,
	"image/jpeg": models.MediaImage,
	"image/jpg":  models.MediaImage,
	"image/webp": models.MediaImage,
	"image/gif":  models.MediaGIF,
	"video/mp4":  models.MediaVideo,
	"video/webm": models.MediaVideo,
}

// ObjectStore is the blob storage behind uploads.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Cache holds presigned URLs until shortly before they expire.
type Cache interface {
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type MediaInput struct {
	URL    string
	Type   models.MediaType
	Source models.MediaSource
	Alt    string
	Width  int
	Height int
}

type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	Source      models.MediaSource
	Alt         string
}

type MediaService struct {
	repo       repository.MediaRepository
	store      ObjectStore
	cache      Cache
	presignTTL time.Duration
	cacheTTL   time.Duration
	events     events.Publisher
	log        *zap.Logger
	now        clock
	newID      func() string
}

// NewMediaService wires media handling. store and cache may be nil: without
// a store uploads are refused, without a cache every URL is presigned anew.
func NewMediaService(repo repository.MediaRepository, store ObjectStore, cache Cache, presignTTL, cacheTTL time.Duration, pub events.Publisher, logger *zap.Logger) *MediaService {
	if cacheTTL <= 0 || cacheTTL > presignTTL {
		cacheTTL = presignTTL
	}
	return &MediaService{
		repo: repo, store: store, cache: cache,
		presignTTL: presignTTL, cacheTTL: cacheTTL,
		events: pub, log: logger, now: utcNow, newID: newID,
	}
}

// Add records an asset that already lives elsewhere, such as a stock photo.
func (s *MediaService) Add(ctx context.Context, workspaceID string, in MediaInput) (*models.MediaAsset, error) {
	if in.URL == "" {
		return nil, invalid("url is required")
	}
	if in.Type == "" {
		in.Type = models.MediaImage
	}
	if in.Source == "" {
		in.Source = models.MediaStock
	}
	if !in.Source.Valid() {
		return nil, invalid("unknown media source %q", in.Source)
	}
	m := &models.MediaAsset{
		ID: s.newID(), URL: in.URL, Type: in.Type, Source: in.Source, Alt: in.Alt,
		Width: in.Width, Height: in.Height, WorkspaceID: workspaceID, CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return m, nil
}

// ValidateUpload checks size and content type before anything is stored.
func ValidateUpload(size int64, contentType string) (models.MediaType, error) {
	if size <= 0 || size > MaxUploadBytes {
		return "", fmt.Errorf("%w: file size not allowed", ErrUnsupportedMedia)
	}
	t, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: content type %q", ErrUnsupportedMedia, contentType)
	}
	return t, nil
}

func (s *MediaService) Upload(ctx context.Context, workspaceID string, up Upload) (*models.MediaAsset, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	mediaType, err := ValidateUpload(int64(len(up.Data)), up.ContentType)
	if err != nil {
		return nil, err
	}
	source := up.Source
	if source == "" {
		source = models.MediaUploaded
	}
	if !source.Valid() {
		return nil, invalid("unknown media source %q", source)
	}

	id := s.newID()
	key := workspaceID + "/" + id + "_" + path.Base(up.Filename)
	url, err := s.store.Upload(ctx, key, up.ContentType, up.Data)
	if err != nil {
		return nil, err
	}

	m := &models.MediaAsset{
		ID:          id,
		URL:         url,
		Key:         key,
		Type:        mediaType,
		Source:      source,
		Alt:         up.Alt,
		Size:        int64(len(up.Data)),
		ContentType: up.ContentType,
		WorkspaceID: workspaceID,
		CreatedAt:   s.now(),
	}
	if mediaType != models.MediaVideo {
		s.attachThumbnail(ctx, m, up.Data)
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	events.Emit(ctx, s.events, s.log, events.Event{
		Type: events.MediaUploaded, WorkspaceID: workspaceID, EntityID: m.ID, OccurredAt: m.CreatedAt, Data: m,
	})
	return m, nil
}

// attachThumbnail fills in dimensions and uploads a thumbnail. Images the
// decoder does not understand are stored without one.
func (s *MediaService) attachThumbnail(ctx context.Context, m *models.MediaAsset, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		s.log.Debug("no thumbnail", zap.String("key", m.Key), zap.Error(err))
		return
	}
	b := img.Bounds()
	m.Width, m.Height = b.Dx(), b.Dy()

	thumb, err := Thumbnail(img)
	if err != nil {
		s.log.Warn("thumbnail encode failed", zap.String("key", m.Key), zap.Error(err))
		return
	}
	thumbKey := m.Key + "_thumb.jpg"
	if _, err := s.store.Upload(ctx, thumbKey, "image/jpeg", thumb); err != nil {
		s.log.Warn("thumbnail upload failed", zap.String("key", thumbKey), zap.Error(err))
		return
	}
	m.Thumbnail = thumbKey
}

func (s *MediaService) List(ctx context.Context, workspaceID string) ([]*models.MediaAsset, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *MediaService) Remove(ctx context.Context, workspaceID, id string) error {
	m, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	if m.Key != "" && s.store != nil {
		for _, k := range []string{m.Key, m.Thumbnail} {
			if k == "" {
				continue
			}
			if err := s.store.Delete(ctx, k); err != nil {
				s.log.Warn("delete object failed", zap.String("key", k), zap.Error(err))
			}
		}
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, urlCacheKey(m.Key))
	}
	return nil
}

// SignedURL returns a URL the browser can load the asset from. Stored
// objects get a presigned GET URL; external assets return their own URL.
func (s *MediaService) SignedURL(ctx context.Context, workspaceID, id string) (string, error) {
	m, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return "", err
	}
	if m.URL != "" {
		return m.URL, nil
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	ck := urlCacheKey(m.Key)
	if s.cache != nil {
		if u, err := s.cache.Get(ctx, ck); err == nil && u != "" {
			return u, nil
		}
	}
	u, err := s.store.PresignURL(ctx, m.Key, s.presignTTL)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, ck, u, s.cacheTTL); err != nil {
			s.log.Warn("cache presigned url failed", zap.String("key", m.Key), zap.Error(err))
		}
	}
	return u, nil
}

func urlCacheKey(objectKey string) string {
	return "media:url:" + objectKey
}

// Thumbnail scales img to thumbWidth pixels wide and encodes it as JPEG.
func Thumbnail(img image.Image) ([]byte, error) {
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
