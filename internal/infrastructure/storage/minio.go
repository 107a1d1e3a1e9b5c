package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bestiespace-backend/internal/config"
)

// UploadResult is what the blob store hands back after a successful upload.
// Key is the deletable reference id for the stored object.
type UploadResult struct {
	URL          string
	Key          string
	Format       string
	Bytes        int64
	ResourceType string // "image" or "video"; audio is stored as video
}

// DeleteOutcome is the typed result of a best-effort delete. A non-fatal
// failure carries the reason but never fails the surrounding operation.
type DeleteOutcome struct {
	Succeeded bool
	Reason    string
}

// MinIOStorage handles media uploads to MinIO.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload stores data under key and returns the public URL plus derived
// metadata. key is the full object path in the bucket
// (e.g. bestiespace/gallery/<bestieID>/<id>.jpg).
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (*UploadResult, error) {
	reader := bytes.NewReader(data)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		reader,
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key)

	return &UploadResult{
		URL:          url,
		Key:          key,
		Format:       formatFromKey(key, contentType),
		Bytes:        int64(len(data)),
		ResourceType: ResourceTypeFor(contentType),
	}, nil
}

// Delete removes an object by key.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// BestEffortDelete removes an old object before a replacement upload. A
// failure here must never block the new upload, so it is reported as an
// outcome rather than an error.
func (s *MinIOStorage) BestEffortDelete(ctx context.Context, key string) DeleteOutcome {
	if key == "" {
		return DeleteOutcome{Succeeded: true}
	}
	if err := s.Delete(ctx, key); err != nil {
		return DeleteOutcome{Succeeded: false, Reason: err.Error()}
	}
	return DeleteOutcome{Succeeded: true}
}

// ResourceTypeFor maps a mime type onto the store's resource kinds. There is
// no first-class audio kind, so audio rides under "video".
func ResourceTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"), strings.HasPrefix(contentType, "audio/"):
		return "video"
	default:
		return "raw"
	}
}

// formatFromKey derives a short format label, preferring the file extension
// over the mime subtype.
func formatFromKey(key, contentType string) string {
	if ext := strings.TrimPrefix(path.Ext(key), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if i := strings.Index(contentType, "/"); i >= 0 && i+1 < len(contentType) {
		return contentType[i+1:]
	}
	return ""
}
