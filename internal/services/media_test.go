package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/events"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newMediaService(store ObjectStore, cache Cache) (*MediaService, *recordingPublisher) {
	pub := &recordingPublisher{}
	svc := NewMediaService(repository.NewMemoryStore().Media, store, cache, 10*time.Minute, 5*time.Minute, pub, zap.NewNop())
	return svc, pub
}

func TestUploadWithoutStore(t *testing.T) {
	svc, _ := newMediaService(nil, nil)
	_, err := svc.Upload(context.Background(), "ws", Upload{Filename: "a.png", ContentType: "image/png", Data: []byte{1}})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestUploadImageStoresThumbnail(t *testing.T) {
	objects := newMemObjects()
	svc, pub := newMediaService(objects, nil)

	m, err := svc.Upload(context.Background(), "ws", Upload{
		Filename: "../../banner.png", ContentType: "image/png", Data: pngBytes(t, 640, 200), Alt: "banner",
	})
	require.NoError(t, err)

	assert.Equal(t, models.MediaImage, m.Type)
	assert.Equal(t, models.MediaUploaded, m.Source)
	assert.Equal(t, 640, m.Width)
	assert.Equal(t, 200, m.Height)
	assert.True(t, strings.HasPrefix(m.Key, "ws/"+m.ID+"_"))
	assert.True(t, strings.HasSuffix(m.Key, "_banner.png"))
	assert.Equal(t, m.Key+"_thumb.jpg", m.Thumbnail)

	thumb, ok := objects.objects[m.Thumbnail]
	require.True(t, ok)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 100, cfg.Height)

	assert.Equal(t, []string{events.MediaUploaded}, pub.types())
}

func TestUploadUndecodableImageHasNoThumbnail(t *testing.T) {
	svc, _ := newMediaService(newMemObjects(), nil)
	m, err := svc.Upload(context.Background(), "ws", Upload{Filename: "x.webp", ContentType: "image/webp", Data: []byte("RIFF....WEBP")})
	require.NoError(t, err)
	assert.Empty(t, m.Thumbnail)
	assert.Zero(t, m.Width)
}

func TestValidateUpload(t *testing.T) {
	typ, err := ValidateUpload(10, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, models.MediaVideo, typ)

	typ, err = ValidateUpload(10, "image/GIF")
	require.NoError(t, err)
	assert.Equal(t, models.MediaGIF, typ)

	_, err = ValidateUpload(0, "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
	_, err = ValidateUpload(MaxUploadBytes+1, "image/png")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
	_, err = ValidateUpload(10, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestSignedURLUsesCache(t *testing.T) {
	objects := newMemObjects()
	cache := newMemCache()
	svc, _ := newMediaService(objects, cache)
	ctx := context.Background()

	m, err := svc.Upload(ctx, "ws", Upload{Filename: "clip.mp4", ContentType: "video/mp4", Data: []byte("mp4")})
	require.NoError(t, err)

	first, err := svc.SignedURL(ctx, "ws", m.ID)
	require.NoError(t, err)
	second, err := svc.SignedURL(ctx, "ws", m.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, objects.presigns)
	assert.Contains(t, first, "expires=600")
	assert.Equal(t, 5*time.Minute, cache.ttls[urlCacheKey(m.Key)])

	_, err = svc.SignedURL(ctx, "other", m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSignedURLExternalAsset(t *testing.T) {
	svc, _ := newMediaService(nil, nil)
	ctx := context.Background()

	m, err := svc.Add(ctx, "ws", MediaInput{URL: "https://images.example.com/a.jpg", Alt: "stock"})
	require.NoError(t, err)
	assert.Equal(t, models.MediaStock, m.Source)

	u, err := svc.SignedURL(ctx, "ws", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/a.jpg", u)

	_, err = svc.Add(ctx, "ws", MediaInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveDeletesObjects(t *testing.T) {
	objects := newMemObjects()
	cache := newMemCache()
	svc, _ := newMediaService(objects, cache)
	ctx := context.Background()

	m, err := svc.Upload(ctx, "ws", Upload{Filename: "a.png", ContentType: "image/png", Data: pngBytes(t, 40, 40)})
	require.NoError(t, err)
	_, err = svc.SignedURL(ctx, "ws", m.ID)
	require.NoError(t, err)
	require.Len(t, objects.objects, 2)

	require.NoError(t, svc.Remove(ctx, "ws", m.ID))
	assert.Empty(t, objects.objects)
	_, err = cache.Get(ctx, urlCacheKey(m.Key))
	assert.Error(t, err)

	list, _ := svc.List(ctx, "ws")
	assert.Empty(t, list)
}
